package main

import (
	"fmt"
	"io"
	"math"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	w := cc.Out
	opts := cfg.encOpts(w)
	return eachDoc(cc, args, cfg.parseOpts(), func(_ string, doc *ir.Node) error {
		if cfg.Sort {
			if err := ir.SortObject(doc); err != nil {
				return err
			}
		}
		if cfg.YAML {
			return viewYAML(w, doc)
		}
		if err := encode.Encode(doc, w, opts...); err != nil {
			return fmt.Errorf("error encoding: %w", err)
		}
		_, err := w.Write([]byte("\n"))
		return err
	})
}

func viewYAML(w io.Writer, doc *ir.Node) error {
	d, err := yaml.Marshal(toYAML(doc))
	if err != nil {
		return fmt.Errorf("error encoding yaml: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts n to values go-yaml marshals in member order.
func toYAML(n *ir.Node) any {
	switch n.Type() {
	case ir.TrueType:
		return true
	case ir.FalseType:
		return false
	case ir.NumberType:
		f := n.Number()
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case ir.StringType, ir.RawType:
		return n.Text()
	case ir.ArrayType:
		res := make([]any, 0, n.Len())
		for _, c := range n.Children() {
			res = append(res, toYAML(c))
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, 0, n.Len())
		for _, c := range n.Children() {
			res = append(res, yaml.MapItem{Key: c.Key(), Value: toYAML(c)})
		}
		return res
	default:
		return nil
	}
}
