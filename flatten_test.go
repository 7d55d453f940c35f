package nitro

import (
	"testing"
)

func TestFlatten(t *testing.T) {
	s := mustStore(t, map[string]any{
		"a": map[string]any{"b": 1},
		"seq": []any{"x", map[string]any{"k": true}},
		"top": "leaf",
	})
	got := s.Flatten(".")
	want := map[string]any{
		"a.b":     1,
		"seq.0":   "x",
		"seq.1.k": true,
		"top":     "leaf",
	}
	if len(got) != len(want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
	for k, v := range want {
		if !scalarEqual(got[k], v) {
			t.Errorf("Flatten[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestFlattenSeparator(t *testing.T) {
	s := mustStore(t, map[string]any{"a": map[string]any{"b": 1}})
	got := s.Flatten("/")
	if _, ok := got["a/b"]; !ok {
		t.Errorf("Flatten(\"/\") = %v", got)
	}
	// empty separator falls back to the default
	got = s.Flatten("")
	if _, ok := got["a.b"]; !ok {
		t.Errorf("Flatten(\"\") = %v", got)
	}
}

// empty containers leave no trace in the flat view
func TestFlattenEmptyContainers(t *testing.T) {
	s := mustStore(t, map[string]any{
		"empty_map": map[string]any{},
		"empty_seq": []any{},
		"real":      1,
	})
	got := s.Flatten(".")
	if len(got) != 1 || !scalarEqual(got["real"], 1) {
		t.Errorf("Flatten = %v", got)
	}
}

// every flat entry must resolve back through Get
func TestFlattenRoundTrip(t *testing.T) {
	s := mustStore(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
		"l": []any{1, []any{2}},
	})
	for path, v := range s.Flatten(".") {
		got, ok, err := s.Get(path)
		if err != nil || !ok {
			t.Errorf("Get(%q): ok=%v err=%v", path, ok, err)
			continue
		}
		if !scalarEqual(got, v) {
			t.Errorf("Get(%q) = %v, flat value %v", path, got, v)
		}
	}
}
