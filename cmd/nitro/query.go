package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires a dotted path to a sequence", cli.ErrUsage)
	}
	s, err := inputStore(cc, fileArg(args[1:]))
	if err != nil {
		return err
	}
	q, err := s.Query(args[0])
	if err != nil {
		return err
	}
	if cfg.Where != "" {
		q = q.WhereExpr(cfg.Where)
	}
	switch {
	case cfg.SortBy != "" && cfg.Desc:
		q = q.SortByDesc(cfg.SortBy)
	case cfg.SortBy != "":
		q = q.SortBy(cfg.SortBy)
	}
	q = q.Offset(cfg.Offset).Limit(cfg.Limit)

	encOpts := cfg.encOpts(cc.Out)
	switch {
	case cfg.Count:
		n, err := q.Count()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, n)
		return nil
	case cfg.First:
		rec, ok, err := q.First()
		if err != nil {
			return err
		}
		if !ok {
			return cli.ExitCodeErr(1)
		}
		return encode.Encode(cc.Out, rec, encOpts...)
	case cfg.Pluck != "":
		vals, err := q.Pluck(cfg.Pluck)
		if err != nil {
			return err
		}
		return encode.Encode(cc.Out, vals, encOpts...)
	case cfg.GroupBy != "":
		groups, err := q.GroupBy(cfg.GroupBy)
		if err != nil {
			return err
		}
		out := make(map[string]any, len(groups))
		for _, g := range groups {
			out[g.Key] = g.Items
		}
		return encode.Encode(cc.Out, out, encOpts...)
	default:
		recs, err := q.Execute()
		if err != nil {
			return err
		}
		return encode.Encode(cc.Out, recs, encOpts...)
	}
}
