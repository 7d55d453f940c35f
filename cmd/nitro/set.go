package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a dotted path and a value", cli.ErrUsage)
	}
	var v any
	if err := yaml.Unmarshal([]byte(args[1]), &v); err != nil {
		return fmt.Errorf("could not decode value %q: %w", args[1], err)
	}
	s, err := inputStore(cc, fileArg(args[2:]))
	if err != nil {
		return err
	}
	if err := s.Set(args[0], v); err != nil {
		return err
	}
	return encode.Encode(cc.Out, s.ToMap(), cfg.encOpts(cc.Out)...)
}
