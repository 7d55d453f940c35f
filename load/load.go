// Package load is the filesystem collaborator of the datastore: it
// reads JSON and YAML documents into stores and writes stores back
// out. All sandboxing happens here, before any bytes reach the core;
// the core never touches a filesystem.
package load

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	nitro "github.com/nitrosh/nitro-datastore"
	"github.com/nitrosh/nitro-datastore/debug"
	"github.com/nitrosh/nitro-datastore/encode"
)

var (
	// ErrOutsideBase reports a file path escaping the configured
	// base directory.
	ErrOutsideBase = errors.New("path escapes base directory")
	// ErrTooLarge reports a file exceeding the configured size cap.
	ErrTooLarge = errors.New("file exceeds size limit")
)

// DefaultPatterns are the globs Dir matches when none are configured.
var DefaultPatterns = []string{"*.json", "*.yaml", "*.yml"}

type config struct {
	baseDir  string
	maxSize  int64
	patterns []string
}

type Option func(*config)

// WithBaseDir confines every file access to dir: paths resolving
// outside it fail with ErrOutsideBase.
func WithBaseDir(dir string) Option {
	return func(c *config) { c.baseDir = dir }
}

// WithMaxSize rejects files larger than n bytes with ErrTooLarge.
func WithMaxSize(n int64) Option {
	return func(c *config) { c.maxSize = n }
}

// WithPatterns replaces the glob patterns Dir matches files against.
func WithPatterns(globs ...string) Option {
	return func(c *config) { c.patterns = globs }
}

func newConfig(opts []Option) *config {
	cfg := &config{patterns: DefaultPatterns}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// File reads one JSON or YAML document (by extension; anything not
// .yaml/.yml decodes as JSON) into a store. The document root must be
// a mapping.
func File(path string, opts ...Option) (*nitro.Store, error) {
	cfg := newConfig(opts)
	root, err := readFile(cfg, path)
	if err != nil {
		return nil, err
	}
	return nitro.FromMap(root)
}

// Dir reads every pattern-matched file in dir, sorted by filename, and
// deep-merges them in order into one store, later files overriding
// earlier ones. Files that fail to decode are skipped, not fatal; a
// missing directory is an error.
func Dir(dir string, opts ...Option) (*nitro.Store, error) {
	cfg := newConfig(opts)
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %q: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}
	var files []string
	for _, pat := range cfg.patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	out := nitro.New()
	for _, f := range files {
		root, err := readFile(cfg, f)
		if err != nil {
			if errors.Is(err, ErrOutsideBase) || errors.Is(err, ErrTooLarge) {
				return nil, err
			}
			if debug.Load() {
				debug.Logf("skipping %s: %v\n", f, err)
			}
			continue
		}
		if err := out.Merge(root); err != nil {
			return nil, fmt.Errorf("merging %s: %w", f, err)
		}
	}
	return out, nil
}

// Save writes a store to path through the serializer. The same
// WithBaseDir sandbox applies to writes.
func Save(path string, s *nitro.Store, encOpts ...encode.EncodeOption) error {
	return SaveOpts(path, s, nil, encOpts...)
}

// SaveOpts is Save with loader options (sandboxing) applied.
func SaveOpts(path string, s *nitro.Store, opts []Option, encOpts ...encode.EncodeOption) error {
	cfg := newConfig(opts)
	if err := checkPath(cfg, path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if isYAML(path) {
		encOpts = append(encOpts, encode.EncodeFormat(encode.YAMLFormat))
	}
	if err := encode.Encode(f, s.ToMap(), encOpts...); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}

func readFile(cfg *config, path string) (map[string]any, error) {
	if err := checkPath(cfg, path); err != nil {
		return nil, err
	}
	if cfg.maxSize > 0 {
		st, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("could not stat %q: %w", path, err)
		}
		if st.Size() > cfg.maxSize {
			return nil, fmt.Errorf("%w: %q is %d bytes (limit %d)", ErrTooLarge, path, st.Size(), cfg.maxSize)
		}
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Decode(path, d)
}

// Decode decodes raw document bytes, picking YAML or JSON from the
// file extension. The document root must be a mapping.
func Decode(path string, d []byte) (map[string]any, error) {
	var v any
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(d, &v)
	} else {
		err = json.Unmarshal(d, &v)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root of %q is a %s, want a mapping", path, nitro.KindOf(v))
	}
	return m, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func checkPath(cfg *config, path string) error {
	if cfg.baseDir == "" {
		return nil
	}
	absBase, err := filepath.Abs(cfg.baseDir)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// resolve symlinks on both sides, so a link inside the base
	// pointing out of it cannot smuggle a path past the check
	absBase = resolveSymlinks(absBase)
	absPath = resolveSymlinks(absPath)
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q is outside %q", ErrOutsideBase, path, cfg.baseDir)
	}
	return nil
}

// resolveSymlinks resolves as much of the path as exists. A save
// target may not exist yet, so fall back to resolving its directory
// and rejoining the base name.
func resolveSymlinks(path string) string {
	if r, err := filepath.EvalSymlinks(path); err == nil {
		return r
	}
	if r, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(r, filepath.Base(path))
	}
	return path
}
