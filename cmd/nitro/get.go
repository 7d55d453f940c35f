package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a dotted path", cli.ErrUsage)
	}
	s, err := inputStore(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	v, ok, err := s.Get(args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "no value at %q\n", args[0])
		return cli.ExitCodeErr(1)
	}
	return encode.Encode(cc.Out, v, cfg.encOpts(cc.Out)...)
}
