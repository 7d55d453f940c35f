package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func paths(cfg *PathsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Paths.Parse(cc, args)
	if err != nil {
		cfg.Paths.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: paths requires a pattern", cli.ErrUsage)
	}
	s, err := inputStore(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	found, err := s.FindPaths(args[0])
	if err != nil {
		return err
	}
	for _, p := range found {
		fmt.Fprintln(cc.Out, p)
	}
	return nil
}
