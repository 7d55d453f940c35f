package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least two documents", cli.ErrUsage)
	}
	out, err := inputStore(cc, args[0])
	if err != nil {
		return err
	}
	for _, arg := range args[1:] {
		overlay, err := inputStore(cc, arg)
		if err != nil {
			return err
		}
		if err := out.MergeStore(overlay); err != nil {
			return fmt.Errorf("merging %s: %w", arg, err)
		}
	}
	return encode.Encode(cc.Out, out.ToMap(), cfg.encOpts(cc.Out)...)
}
