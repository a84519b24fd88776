package main

import (
	"io"
	"os"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	U      bool `cli:"name=u desc='print without insignificant whitespace'"`
	Color  bool `cli:"name=color desc='print with color'"`
	Strict bool `cli:"name=strict desc='reject content after the document'"`
	Stats  bool `cli:"name=stats desc='log allocation statistics on exit'"`

	Out      string
	CloseOut func() error

	tracker *ir.Tracker

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.RequireTerminated(cfg.Strict)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Formatted(!cfg.U),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	YAML bool `cli:"name=yaml desc='print as YAML'"`
	Sort bool `cli:"name=sort desc='sort object members by key'"`

	View *cli.Command
}

type MinifyConfig struct {
	*MainConfig

	Minify *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Fold bool `cli:"name=i desc='compare object keys case insensitively'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}

type HashConfig struct {
	*MainConfig

	Hex bool `cli:"name=x desc='print fingerprints in hex'"`

	Hash *cli.Command
}
