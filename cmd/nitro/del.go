package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: del requires a dotted path", cli.ErrUsage)
	}
	s, err := inputStore(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	deleted, err := s.Delete(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "nothing at %q\n", args[0])
	}
	return encode.Encode(cc.Out, s.ToMap(), cfg.encOpts(cc.Out)...)
}
