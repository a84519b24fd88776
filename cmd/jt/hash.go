package main

import (
	"fmt"

	"github.com/signadot/jtree/ir"

	"github.com/scott-cotton/cli"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	format := "%d\t%s\n"
	if cfg.Hex {
		format = "%016x\t%s\n"
	}
	return eachDoc(cc, args, cfg.parseOpts(), func(file string, doc *ir.Node) error {
		_, err := fmt.Fprintf(cc.Out, format, doc.Hash(), file)
		return err
	})
}
