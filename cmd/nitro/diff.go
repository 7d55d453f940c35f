package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	nitro "github.com/nitrosh/nitro-datastore"
	"github.com/nitrosh/nitro-datastore/encode"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents, got %d", cli.ErrUsage, len(args))
	}
	before, err := inputStore(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	after, err := inputStore(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	d := before.Diff(after)
	renderDelta(cc.Out, d, cfg.useColor(cc.Out))
	if !d.Empty() {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func (cfg *DiffConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && encode.AutoColors(f) != nil
}

func renderDelta(w io.Writer, d *nitro.Delta, colored bool) {
	plain := func(s string, args ...any) string { return fmt.Sprintf(s, args...) }
	green, red, yellow := plain, plain, plain
	if colored {
		green = color.GreenString
		red = color.RedString
		yellow = color.YellowString
	}
	for _, p := range sortedDeltaKeys(d.Added) {
		fmt.Fprintln(w, green("+ %s: %s", p, compactJSON(d.Added[p])))
	}
	for _, p := range sortedDeltaKeys(d.Removed) {
		fmt.Fprintln(w, red("- %s: %s", p, compactJSON(d.Removed[p])))
	}
	changed := make([]string, 0, len(d.Changed))
	for p := range d.Changed {
		changed = append(changed, p)
	}
	sort.Strings(changed)
	for _, p := range changed {
		ch := d.Changed[p]
		if delta := stringChange(ch); delta != "" {
			fmt.Fprintln(w, yellow("~ %s: %s", p, delta))
			continue
		}
		fmt.Fprintln(w, yellow("~ %s: %s -> %s", p, compactJSON(ch.Old), compactJSON(ch.New)))
	}
}

// stringChange renders a compact inline delta when both sides of a
// change are strings with enough in common.
func stringChange(ch nitro.Change) string {
	from, fromOK := ch.Old.(string)
	to, toOK := ch.New.(string)
	if !fromOK || !toOK {
		return ""
	}
	return encode.StringDelta(from, to)
}

func sortedDeltaKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func compactJSON(v any) string {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
