package main

import (
	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		cfg.Flatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := inputStore(cc, fileArg(args))
	if err != nil {
		return err
	}
	return encode.Encode(cc.Out, s.Flatten(cfg.Sep), cfg.encOpts(cc.Out)...)
}
