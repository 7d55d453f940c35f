package nitro

import (
	"strings"
	"testing"
)

func TestKeysValuesItems(t *testing.T) {
	s := mustStore(t, map[string]any{"b": 2, "a": 1, "c": 3})
	keys := s.Keys()
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys = %v", keys)
		}
	}
	vals := s.Values()
	for i, wv := range []any{1, 2, 3} {
		if !scalarEqual(vals[i], wv) {
			t.Errorf("Values[%d] = %v, want %v", i, vals[i], wv)
		}
	}
	items := s.Items()
	if len(items) != 3 || items[0].Key != "a" || !scalarEqual(items[2].Value, 3) {
		t.Errorf("Items = %v", items)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestUpdateWhere(t *testing.T) {
	s := mustStore(t, map[string]any{
		"site": map[string]any{
			"home": "http://example.com",
			"docs": "https://docs.example.com",
		},
		"count": 3,
	})
	n, err := s.UpdateWhere(
		func(path string, v any) bool {
			str, ok := v.(string)
			return ok && strings.HasPrefix(str, "http://")
		},
		func(v any) any {
			return "https://" + strings.TrimPrefix(v.(string), "http://")
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("UpdateWhere rewrote %d leaves, want 1", n)
	}
	v, _, _ := s.Get("site.home")
	if v != "https://example.com" {
		t.Errorf("site.home = %v", v)
	}
	v, _, _ = s.Get("site.docs")
	if v != "https://docs.example.com" {
		t.Errorf("site.docs changed: %v", v)
	}
}

func TestUpdateWhereNoMatches(t *testing.T) {
	s := mustStore(t, map[string]any{"a": 1})
	n, err := s.UpdateWhere(
		func(string, any) bool { return false },
		func(v any) any { return v },
	)
	if err != nil || n != 0 {
		t.Errorf("UpdateWhere = %d, %v", n, err)
	}
}

func TestRemoveNulls(t *testing.T) {
	s := mustStore(t, map[string]any{
		"user": map[string]any{
			"name":    "alice",
			"email":   nil,
			"address": nil,
		},
		"settings": map[string]any{
			"theme":    "dark",
			"language": nil,
		},
		"metadata": nil,
		"items":    []any{1, nil, 2, nil, 3},
	})
	n := s.RemoveNulls()
	if n != 6 {
		t.Errorf("RemoveNulls = %d, want 6", n)
	}
	want := mustStore(t, map[string]any{
		"user":     map[string]any{"name": "alice"},
		"settings": map[string]any{"theme": "dark"},
		"items":    []any{1, 2, 3},
	})
	if !s.Equal(want) {
		t.Errorf("after RemoveNulls: %v", s.ToMap())
	}
	// second pass finds nothing
	if n := s.RemoveNulls(); n != 0 {
		t.Errorf("second RemoveNulls = %d", n)
	}
}

func TestRemoveEmpty(t *testing.T) {
	s := mustStore(t, map[string]any{
		"config": map[string]any{},
		"tags":   []any{},
		"valid": map[string]any{
			"value": 1,
			"nested": map[string]any{
				"empty_dict":   map[string]any{},
				"empty_list":   []any{},
				"actual_value": "keep this",
			},
		},
		"items": []any{1, 2, 3},
	})
	n := s.RemoveEmpty()
	if n != 4 {
		t.Errorf("RemoveEmpty = %d, want 4", n)
	}
	want := mustStore(t, map[string]any{
		"valid": map[string]any{
			"value":  1,
			"nested": map[string]any{"actual_value": "keep this"},
		},
		"items": []any{1, 2, 3},
	})
	if !s.Equal(want) {
		t.Errorf("after RemoveEmpty: %v", s.ToMap())
	}
}

// a container emptied by the cleaning of its children goes too
func TestRemoveEmptyCascades(t *testing.T) {
	s := mustStore(t, map[string]any{
		"a":    map[string]any{"b": map[string]any{}},
		"seq":  []any{[]any{}, 1},
		"keep": 1,
	})
	n := s.RemoveEmpty()
	if n != 3 {
		t.Errorf("RemoveEmpty = %d, want 3", n)
	}
	want := mustStore(t, map[string]any{
		"seq":  []any{1},
		"keep": 1,
	})
	if !s.Equal(want) {
		t.Errorf("after cascade: %v", s.ToMap())
	}
}

func TestTransformAll(t *testing.T) {
	s := mustStore(t, map[string]any{
		"a": 1,
		"b": map[string]any{"c": 2},
	})
	out, err := s.TransformAll(func(path string, v any) any {
		if f, ok := toFloat(v); ok {
			return f * 10
		}
		return v
	})
	if err != nil {
		t.Fatal(err)
	}
	want := mustStore(t, map[string]any{
		"a": 10,
		"b": map[string]any{"c": 20},
	})
	if !out.Equal(want) {
		t.Errorf("TransformAll = %v", out.ToMap())
	}
	// the receiver is untouched
	v, _, _ := s.Get("a")
	if !scalarEqual(v, 1) {
		t.Errorf("receiver mutated: a = %v", v)
	}
}

func TestTransformKeys(t *testing.T) {
	s := mustStore(t, map[string]any{
		"First-Name": "x",
		"Nested":     map[string]any{"Inner-Key": 1},
		"seq":        []any{map[string]any{"Deep": 2}},
	})
	out, err := s.TransformKeys(func(k string) string {
		return strings.ToLower(strings.ReplaceAll(k, "-", "_"))
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"first_name", "nested.inner_key", "seq.0.deep"} {
		if ok, _ := out.Has(path); !ok {
			t.Errorf("missing %q in %v", path, out.ToMap())
		}
	}
	if ok, _ := s.Has("First-Name"); !ok {
		t.Error("receiver keys rewritten in place")
	}
}

func TestStats(t *testing.T) {
	s := mustStore(t, map[string]any{
		"a": map[string]any{"b": 1},
		"c": []any{1, 2},
	})
	st := s.Stats()
	if st.TotalKeys != 3 {
		t.Errorf("TotalKeys = %d, want 3", st.TotalKeys)
	}
	if st.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", st.MaxDepth)
	}
	if st.TotalMappings != 1 || st.TotalSequences != 1 {
		t.Errorf("containers = %d mappings, %d sequences", st.TotalMappings, st.TotalSequences)
	}
	if st.TotalLeaves != 3 {
		t.Errorf("TotalLeaves = %d, want 3", st.TotalLeaves)
	}
}

func TestStatsEmpty(t *testing.T) {
	st := New().Stats()
	if st != (Stats{}) {
		t.Errorf("empty store stats = %+v", st)
	}
}

func TestDescribe(t *testing.T) {
	s := mustStore(t, map[string]any{
		"m": map[string]any{"k1": 1, "k2": 2},
		"l": []any{1, "x"},
		"n": 42,
	})
	d := s.Describe()
	md := d["m"].(map[string]any)
	if md["type"] != "mapping" {
		t.Errorf("m.type = %v", md["type"])
	}
	keys := md["keys"].([]string)
	if len(keys) != 2 || keys[0] != "k1" || keys[1] != "k2" {
		t.Errorf("m.keys = %v", keys)
	}
	ld := d["l"].(map[string]any)
	if ld["type"] != "sequence" || ld["length"] != 2 {
		t.Errorf("l = %v", ld)
	}
	items := ld["item_types"].([]string)
	if len(items) != 2 {
		t.Errorf("l.item_types = %v", items)
	}
	nd := d["n"].(map[string]any)
	if nd["type"] != "scalar" || !scalarEqual(nd["value"], 42) {
		t.Errorf("n = %v", nd)
	}
}
