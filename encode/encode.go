// Package encode renders plain datastore values (mappings, sequences,
// scalars) as JSON or YAML, with optional colorized output for
// terminals. It operates only on exported deep copies; it never sees
// live store state.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "y":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

type config struct {
	format  Format
	indent  int
	compact bool
	colors  *Colors
}

type EncodeOption func(*config)

func EncodeFormat(f Format) EncodeOption {
	return func(c *config) { c.format = f }
}

// Indent sets the JSON indentation width in spaces. The default is 2.
func Indent(n int) EncodeOption {
	return func(c *config) { c.indent = n }
}

// Compact selects single-line JSON output.
func Compact(v bool) EncodeOption {
	return func(c *config) { c.compact = v }
}

// EncodeColors turns on colorized rendering. YAML output ignores
// colors.
func EncodeColors(colors *Colors) EncodeOption {
	return func(c *config) { c.colors = colors }
}

// Encode writes a value to w in the configured format, followed by a
// newline.
func Encode(w io.Writer, v any, opts ...EncodeOption) error {
	cfg := &config{format: JSONFormat, indent: 2}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.format == YAMLFormat {
		d, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	if cfg.colors != nil && !cfg.compact {
		if err := encodeColor(w, v, cfg, 0); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	var d []byte
	var err error
	if cfg.compact {
		d, err = json.Marshal(v)
	} else {
		d, err = json.MarshalIndent(v, "", strings.Repeat(" ", cfg.indent))
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func encodeColor(w io.Writer, v any, cfg *config, depth int) error {
	pad := strings.Repeat(" ", cfg.indent*depth)
	inner := strings.Repeat(" ", cfg.indent*(depth+1))
	switch c := v.(type) {
	case map[string]any:
		if len(c) == 0 {
			_, err := io.WriteString(w, "{}")
			return err
		}
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if _, err := io.WriteString(w, "{\n"); err != nil {
			return err
		}
		for i, k := range keys {
			kd, _ := json.Marshal(k)
			if _, err := io.WriteString(w, inner+cfg.colors.Key("%s", kd)+": "); err != nil {
				return err
			}
			if err := encodeColor(w, c[k], cfg, depth+1); err != nil {
				return err
			}
			sep := ",\n"
			if i == len(keys)-1 {
				sep = "\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, pad+"}")
		return err
	case []any:
		if len(c) == 0 {
			_, err := io.WriteString(w, "[]")
			return err
		}
		if _, err := io.WriteString(w, "[\n"); err != nil {
			return err
		}
		for i, cv := range c {
			if _, err := io.WriteString(w, inner); err != nil {
				return err
			}
			if err := encodeColor(w, cv, cfg, depth+1); err != nil {
				return err
			}
			sep := ",\n"
			if i == len(c)-1 {
				sep = "\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, pad+"]")
		return err
	default:
		d, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, cfg.colors.scalar(v)("%s", d))
		return err
	}
}
