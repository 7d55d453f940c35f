package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/nitrosh/nitro-datastore/encode"
)

type MainConfig struct {
	Y       bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Compact bool `cli:"name=c aliases=compact desc='compact one-line json output'"`
	Color   bool `cli:"name=color desc='force colorized output'"`

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.Compact(cfg.Compact)}
	if cfg.Y {
		opts = append(opts, encode.EncodeFormat(encode.YAMLFormat))
		return opts
	}
	if cfg.Color {
		opts = append(opts, encode.EncodeColors(encode.NewColors()))
		return opts
	}
	if c := encode.AutoColors(w); c != nil {
		opts = append(opts, encode.EncodeColors(c))
	}
	return opts
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Set *cli.Command
}

type DelConfig struct {
	*MainConfig
	Del *cli.Command
}

type PathsConfig struct {
	*MainConfig
	Paths *cli.Command
}

type FlattenConfig struct {
	*MainConfig
	Sep string `cli:"name=sep desc='path separator in flattened keys'"`

	Flatten *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Where   string `cli:"name=where desc='expr predicate over each record'"`
	SortBy  string `cli:"name=sort desc='field to sort by'"`
	Desc    bool   `cli:"name=desc desc='sort descending'"`
	Limit   int    `cli:"name=limit desc='max records'"`
	Offset  int    `cli:"name=offset desc='records to skip'"`
	Pluck   string `cli:"name=pluck desc='extract one field per record'"`
	GroupBy string `cli:"name=group desc='bucket records by field'"`
	Count   bool   `cli:"name=count desc='print only the record count'"`
	First   bool   `cli:"name=first desc='print only the first record'"`

	Query *cli.Command
}
