package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/parse"

	"github.com/scott-cotton/cli"
)

// readInput reads path, or the command input for "-".
func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// eachDoc calls f with the tree of every file in files, or of the command
// input when files is empty, deleting each tree afterwards.
func eachDoc(cc *cli.Context, files []string, opts []parse.ParseOption, f func(file string, doc *ir.Node) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		doc, err := getObjFile(cc, file, opts...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		err = f(file, doc)
		ir.Delete(doc)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}
