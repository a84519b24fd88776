package main

import (
	"fmt"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	ops, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	w := cc.Out
	opts := cfg.encOpts(w)
	return eachDoc(cc, args[1:], cfg.parseOpts(), func(_ string, doc *ir.Node) error {
		res, err := applyPatch(ops, doc)
		if err != nil {
			return err
		}
		defer ir.Delete(res)
		if err := encode.Encode(res, w, opts...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		_, err = w.Write([]byte("\n"))
		return err
	})
}

func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (jsonpatch.Patch, error) {
	d := []byte(arg)
	if !cfg.String {
		var err error
		d, err = readInput(cc, arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	// reject what the parser would, so patches and documents agree on JSON
	p, err := parse.Parse(d, parse.RequireTerminated(true))
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	ir.Delete(p)
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	return ops, nil
}

// applyPatch returns a new tree holding doc with ops applied.
func applyPatch(ops jsonpatch.Patch, doc *ir.Node) (*ir.Node, error) {
	d, err := encode.PrintBuffered(doc, 0, false)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("error patching: %w", err)
	}
	return parse.Parse(out, parse.RequireTerminated(true))
}
