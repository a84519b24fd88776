package main

import (
	"fmt"

	"github.com/signadot/jtree/token"

	"github.com/scott-cotton/cli"
)

func minify(cfg *MinifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Minify.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		d = append(token.Minify(d), '\n')
		if _, err := cc.Out.Write(d); err != nil {
			return fmt.Errorf("error writing %s: %w", file, err)
		}
	}
	return nil
}
