package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/jtree/debug"
	"github.com/signadot/jtree/ir"

	"github.com/scott-cotton/cli"
)

func jtMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	if cfg.Stats || debug.Alloc() {
		cfg.tracker = ir.NewTracker(ir.CurrentAllocator())
		prev := ir.SetAllocator(cfg.tracker)
		defer func() {
			ir.SetAllocator(prev)
			logStats(cfg.tracker)
		}()
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func logStats(tr *ir.Tracker) {
	s := tr.Stats()
	if debug.Alloc() {
		debug.Logf("allocations: %v\n", s)
	}
	theLog.Info("allocations",
		"allocs", s.Allocs,
		"frees", s.Frees,
		"failed", s.Failed,
		"liveNodes", s.LiveNodes,
		"liveTexts", s.LiveTexts,
		"liveBytes", s.LiveBytes)
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
