package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	nitro "github.com/nitrosh/nitro-datastore"
	"github.com/nitrosh/nitro-datastore/load"
)

// inputStore reads a document from a file argument, or from stdin when
// the argument is empty or "-". Stdin is decoded as YAML, which also
// accepts JSON.
func inputStore(cc *cli.Context, arg string) (*nitro.Store, error) {
	if arg == "" || arg == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		root, err := load.Decode("stdin.yaml", d)
		if err != nil {
			return nil, err
		}
		return nitro.FromMap(root)
	}
	return load.File(arg)
}

// fileArg returns the optional trailing file argument, if present.
func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
