package main

import (
	"fmt"

	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, file := range args {
		doc, err := getObjFile(cc, file, parse.RequireTerminated(true))
		if err != nil {
			failed++
			fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			continue
		}
		ir.Delete(doc)
		fmt.Fprintf(cc.Out, "%s: ok\n", file)
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
