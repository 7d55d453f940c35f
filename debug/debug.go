// Package debug provides env-var-gated trace logging. Gates are read
// once at init from NITRO_DEBUG_* variables and never change.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Traverse bool
	Match    bool
	Merge    bool
	Diff     bool
	Query    bool
	Load     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Traverse = boolEnv("NITRO_DEBUG_TRAVERSE")
	d.Match = boolEnv("NITRO_DEBUG_MATCH")
	d.Merge = boolEnv("NITRO_DEBUG_MERGE")
	d.Diff = boolEnv("NITRO_DEBUG_DIFF")
	d.Query = boolEnv("NITRO_DEBUG_QUERY")
	d.Load = boolEnv("NITRO_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Traverse() bool {
	return d.Traverse
}
func Match() bool {
	return d.Match
}
func Merge() bool {
	return d.Merge
}
func Diff() bool {
	return d.Diff
}
func Query() bool {
	return d.Query
}
func Load() bool {
	return d.Load
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func JSON(v any) string {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
