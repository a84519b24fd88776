package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	defer ir.Delete(a)
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	defer ir.Delete(b)
	if ir.Equal(a, b, !cfg.Fold) {
		return nil
	}
	if err := diffLines(cc.Out, a, b, cfg.useColor(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// diffLines writes a line diff of the formatted text of a and b.
func diffLines(w io.Writer, a, b *ir.Node, colored bool) error {
	as, err := encode.Print(a)
	if err != nil {
		return err
	}
	bs, err := encode.Print(b)
	if err != nil {
		return err
	}
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(as+"\n", bs+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)
	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	for _, d := range diffs {
		prefix, c := " ", (*color.Color)(nil)
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, c = "-", del
		case diffpatch.DiffInsert:
			prefix, c = "+", ins
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			ln = prefix + ln
			if colored && c != nil {
				ln = c.Sprint(ln)
			}
			if _, err := io.WriteString(w, ln); err != nil {
				return err
			}
		}
	}
	return nil
}
