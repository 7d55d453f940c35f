package nitro

import (
	"errors"
	"testing"
)

type pathTest struct {
	In   string
	Segs []string
	Err  bool
}

var pathTests = []pathTest{
	{In: "a", Segs: []string{"a"}},
	{In: "a.b.c", Segs: []string{"a", "b", "c"}},
	{In: "a.b.2.c", Segs: []string{"a", "b", "2", "c"}},
	{In: "123", Segs: []string{"123"}},
	{In: "with space.key", Segs: []string{"with space", "key"}},
	{In: "", Err: true},
	{In: "   ", Err: true},
	{In: ".", Err: true},
	{In: "a.", Err: true},
	{In: ".a", Err: true},
	{In: "a..b", Err: true},
	{In: "..", Err: true},
}

func TestParsePath(t *testing.T) {
	for _, tst := range pathTests {
		p, err := ParsePath(tst.In)
		if tst.Err {
			if err == nil {
				t.Errorf("ParsePath(%q): expected error, got %v", tst.In, p)
				continue
			}
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("ParsePath(%q): error %v is not ErrInvalidPath", tst.In, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePath(%q): %v", tst.In, err)
			continue
		}
		if len(p) != len(tst.Segs) {
			t.Errorf("ParsePath(%q): got %v, want %v", tst.In, p, tst.Segs)
			continue
		}
		for i := range p {
			if p[i] != tst.Segs[i] {
				t.Errorf("ParsePath(%q)[%d]: got %q, want %q", tst.In, i, p[i], tst.Segs[i])
			}
		}
		if p.String() != tst.In {
			t.Errorf("ParsePath(%q).String(): got %q", tst.In, p.String())
		}
	}
}

// every path-taking entry point must reject the same malformed
// strings
func TestInvalidPathEverywhere(t *testing.T) {
	s := mustStore(t, map[string]any{"a": 1})
	bad := []string{"", ".", "a.", ".a", "a..b"}
	for _, path := range bad {
		if _, _, err := s.Get(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Get(%q): %v", path, err)
		}
		if _, err := s.Has(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Has(%q): %v", path, err)
		}
		if err := s.Set(path, 1); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Set(%q): %v", path, err)
		}
		if _, err := s.Delete(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Delete(%q): %v", path, err)
		}
		if _, err := s.FindPaths(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("FindPaths(%q): %v", path, err)
		}
	}
}
