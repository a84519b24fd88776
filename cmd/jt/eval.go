package main

import (
	"fmt"
	"os"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func jtEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	prg, err := compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	w := cc.Out
	opts := cfg.encOpts(w)
	return eachDoc(cc, args[1:], cfg.parseOpts(), func(_ string, doc *ir.Node) error {
		res, err := evalDoc(prg, doc)
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

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func compile(src string) (*vm.Program, error) {
	return expr.Compile(src, exprOpts()...)
}

// evalDoc runs prg with doc bound to "doc" and returns the result as a new
// tree.
func evalDoc(prg *vm.Program, doc *ir.Node) (*ir.Node, error) {
	out, err := expr.Run(prg, map[string]any{"doc": ir.ToAny(doc)})
	if err != nil {
		return nil, fmt.Errorf("error evaluating: %w", err)
	}
	res, err := ir.FromAny(out)
	if err != nil {
		return nil, fmt.Errorf("error converting result %T: %w", out, err)
	}
	return res, nil
}
