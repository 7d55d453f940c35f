package nitro

import (
	"fmt"
	"sort"

	"github.com/nitrosh/nitro-datastore/debug"
)

// Get resolves a dotted path. Absence is not an error: a well-formed
// path that the data does not contain yields (nil, false, nil). Only a
// malformed path string errors. Container results are independent deep
// copies; mutating them does not affect the store.
func (s *Store) Get(path string) (any, bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	v, ok := getPath(s.root, p)
	if !ok {
		return nil, false, nil
	}
	return cloneAcyclic(v), true, nil
}

// GetDefault is Get with a caller-supplied default for absent paths.
func (s *Store) GetDefault(path string, def any) (any, error) {
	v, ok, err := s.Get(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Has reports whether the path resolves in the data.
func (s *Store) Has(path string) (bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return false, err
	}
	_, ok := getPath(s.root, p)
	return ok, nil
}

// Set writes a value at a dotted path, creating missing intermediate
// mappings as needed. Sequences are never auto-extended: a sequence
// segment must be an in-range index. The value is deep-copied into the
// store, so a cyclic value fails with ErrCircularRef before anything
// is written.
func (s *Store) Set(path string, v any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	cl, err := deepClone(v, cycleGuard{})
	if err != nil {
		return err
	}
	if debug.Traverse() {
		debug.Logf("set %s (%s)\n", p, KindOf(cl))
	}
	return setPath(s.root, p, cl)
}

// Delete removes the value at a path. Deleting an absent path, however
// deep, is a no-op returning false, never an error. Sequence deletion
// splices the element out.
func (s *Store) Delete(path string) (bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return false, err
	}
	upd, deleted := deletePath(s.root, p)
	if deleted {
		s.root = upd.(map[string]any)
	}
	return deleted, nil
}

// Len reports the number of top-level keys.
func (s *Store) Len() int {
	return len(s.root)
}

// Keys returns the top-level keys in sorted order.
func (s *Store) Keys() []string {
	return sortedKeys(s.root)
}

// Values returns deep copies of the top-level values, in key-sorted
// order.
func (s *Store) Values() []any {
	keys := s.Keys()
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = cloneAcyclic(s.root[k])
	}
	return out
}

// Item is one top-level key/value pair.
type Item struct {
	Key   string
	Value any
}

// Items returns deep-copied top-level pairs in key-sorted order.
func (s *Store) Items() []Item {
	keys := s.Keys()
	out := make([]Item, len(keys))
	for i, k := range keys {
		out[i] = Item{Key: k, Value: cloneAcyclic(s.root[k])}
	}
	return out
}

// Merge deep-merges an overlay into the store. Keys only in the
// overlay are added; mapping-on-mapping recurses; anything else is
// replaced wholesale (sequences replace, never append). The overlay is
// cycle-checked and deep-copied before the first write, so a failed
// merge leaves the store unchanged.
func (s *Store) Merge(overlay map[string]any) error {
	cl, err := deepClone(overlay, cycleGuard{})
	if err != nil {
		return err
	}
	if debug.Merge() {
		debug.Logf("merge %d top-level keys\n", len(overlay))
	}
	deepMerge(s.root, cl.(map[string]any))
	return nil
}

// MergeStore merges another store's tree into this one under Merge's
// policy.
func (s *Store) MergeStore(other *Store) error {
	return s.Merge(other.root)
}

// Diff computes the structural delta from this store to another:
// paths added in other, removed from this, and changed between the
// two. Diff never mutates either store.
func (s *Store) Diff(other *Store) *Delta {
	d, err := diffValues(s.root, other.root)
	if err != nil {
		panic("nitro: acyclic invariant violated: " + err.Error())
	}
	if debug.Diff() {
		debug.Logf("diff: %d added, %d removed, %d changed\n",
			len(d.Added), len(d.Removed), len(d.Changed))
	}
	return d
}

// Flatten produces a single-level mapping from separator-joined path
// to leaf value. Empty containers contribute no entry, so their
// presence is lost. This is a documented limitation of the flat view.
func (s *Store) Flatten(sep string) map[string]any {
	if sep == "" {
		sep = "."
	}
	return flattenValue(s.root, sep)
}

// FindPaths returns every concrete path matching a wildcard pattern,
// in depth-first order. Star matches exactly one segment, DoubleStar
// zero or more.
func (s *Store) FindPaths(pattern string) ([]string, error) {
	pat, err := ParsePath(pattern)
	if err != nil {
		return nil, err
	}
	paths := findPaths(s.root, pat)
	if debug.Match() {
		debug.Logf("pattern %s matched %d paths\n", pat, len(paths))
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out, nil
}

// FindAllKeys collects every value stored under the given key name at
// any depth, keyed by full dotted path.
func (s *Store) FindAllKeys(key string) (map[string]any, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	paths, err := s.FindPaths(DoubleStar + "." + key)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(paths))
	for _, ps := range paths {
		p, _ := ParsePath(ps)
		v, _ := getPath(s.root, p)
		out[ps] = cloneAcyclic(v)
	}
	return out, nil
}

// FindValues walks every node, containers and leaves alike, in
// deterministic depth-first order and collects those for which the
// predicate holds, keyed by dotted path. Collected containers are
// deep copies.
func (s *Store) FindValues(pred func(path string, v any) bool) map[string]any {
	out := map[string]any{}
	walkTree(s.root, nil, func(p Path, v any) bool {
		ps := p.String()
		if pred(ps, v) {
			out[ps] = cloneAcyclic(v)
		}
		return true
	})
	return out
}

// UpdateWhere rewrites, in place, every leaf for which the predicate
// holds, replacing it with transform's result, and reports how many
// leaves changed. Transform results are deep-copied into the store; a
// cyclic result aborts with ErrCircularRef after the rewrites already
// applied.
func (s *Store) UpdateWhere(pred func(path string, v any) bool, transform func(v any) any) (int, error) {
	type hit struct {
		p Path
		v any
	}
	var hits []hit
	walkLeaves(s.root, nil, func(p Path, v any) {
		ps := p.String()
		if pred(ps, v) {
			hits = append(hits, hit{p: append(Path{}, p...), v: v})
		}
	})
	count := 0
	for _, h := range hits {
		nv, err := deepClone(transform(h.v), cycleGuard{})
		if err != nil {
			return count, err
		}
		if err := setPath(s.root, h.p, nv); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// RemoveNulls deletes every null value in the tree, at all depths:
// null mapping entries are dropped and null sequence elements spliced
// out. It reports how many nulls were removed.
func (s *Store) RemoveNulls() int {
	v, n := removeNulls(s.root)
	s.root = v.(map[string]any)
	return n
}

func removeNulls(v any) (any, int) {
	count := 0
	switch c := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(c) {
			if c[k] == nil {
				delete(c, k)
				count++
				continue
			}
			nv, n := removeNulls(c[k])
			c[k] = nv
			count += n
		}
		return c, count
	case []any:
		out := c[:0]
		for _, cv := range c {
			if cv == nil {
				count++
				continue
			}
			nv, n := removeNulls(cv)
			count += n
			out = append(out, nv)
		}
		return out, count
	default:
		return v, 0
	}
}

// RemoveEmpty deletes empty mappings and sequences from the tree,
// bottom-up: children are cleaned first, so a container emptied by
// that cleaning is removed as well. The root mapping itself always
// stays. Reports how many containers were removed.
func (s *Store) RemoveEmpty() int {
	v, n := removeEmpty(s.root)
	s.root = v.(map[string]any)
	return n
}

func removeEmpty(v any) (any, int) {
	count := 0
	switch c := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(c) {
			nv, n := removeEmpty(c[k])
			count += n
			if emptyContainer(nv) {
				delete(c, k)
				count++
				continue
			}
			c[k] = nv
		}
		return c, count
	case []any:
		out := c[:0]
		for _, cv := range c {
			nv, n := removeEmpty(cv)
			count += n
			if emptyContainer(nv) {
				count++
				continue
			}
			out = append(out, nv)
		}
		return out, count
	default:
		return v, 0
	}
}

func emptyContainer(v any) bool {
	switch c := v.(type) {
	case map[string]any:
		return len(c) == 0
	case []any:
		return len(c) == 0
	}
	return false
}

// TransformAll returns a new store with every leaf replaced by fn's
// result; the receiver is unchanged. Containers are not passed to fn.
func (s *Store) TransformAll(fn func(path string, v any) any) (*Store, error) {
	out := s.Copy()
	type hit struct {
		p Path
		v any
	}
	var hits []hit
	walkLeaves(out.root, nil, func(p Path, v any) {
		hits = append(hits, hit{p: append(Path{}, p...), v: v})
	})
	for _, h := range hits {
		nv, err := deepClone(fn(h.p.String(), h.v), cycleGuard{})
		if err != nil {
			return nil, err
		}
		if err := setPath(out.root, h.p, nv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TransformKeys returns a new store with every mapping key rewritten
// by fn, at all depths; the receiver is unchanged. Colliding rewritten
// keys keep the last value in sorted-key order.
func (s *Store) TransformKeys(fn func(key string) string) (*Store, error) {
	v := transformKeys(s.root, fn)
	return FromMap(v.(map[string]any))
}

func transformKeys(v any, fn func(string) string) any {
	switch c := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(c))
		for _, k := range sortedKeys(c) {
			out[fn(k)] = transformKeys(c[k], fn)
		}
		return out
	case []any:
		out := make([]any, len(c))
		for i, cv := range c {
			out[i] = transformKeys(cv, fn)
		}
		return out
	default:
		return v
	}
}

// Stats summarizes the shape of the tree.
type Stats struct {
	TotalKeys      int // mapping keys at every depth
	MaxDepth       int // deepest nesting level, 0 for an empty store
	TotalMappings  int // mapping containers, excluding the root
	TotalSequences int
	TotalLeaves    int
}

// Stats walks the whole tree once and reports shape statistics.
func (s *Store) Stats() Stats {
	st := Stats{TotalKeys: len(s.root)}
	walkTree(s.root, nil, func(p Path, v any) bool {
		if len(p) > st.MaxDepth {
			st.MaxDepth = len(p)
		}
		switch c := v.(type) {
		case map[string]any:
			st.TotalMappings++
			st.TotalKeys += len(c)
		case []any:
			st.TotalSequences++
		default:
			st.TotalLeaves++
		}
		return true
	})
	return st
}

// Describe reports a shallow shape summary per top-level key: the
// kind, and for mappings their keys, for sequences their length and
// element kinds.
func (s *Store) Describe() map[string]any {
	out := make(map[string]any, len(s.root))
	for _, k := range s.Keys() {
		out[k] = describeValue(s.root[k])
	}
	return out
}

func describeValue(v any) map[string]any {
	d := map[string]any{"type": KindOf(v).String()}
	switch c := v.(type) {
	case map[string]any:
		d["keys"] = sortedKeys(c)
	case []any:
		d["length"] = len(c)
		kinds := map[string]bool{}
		for _, cv := range c {
			kinds[KindOf(cv).String()] = true
		}
		ks := make([]string, 0, len(kinds))
		for k := range kinds {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		d["item_types"] = ks
	default:
		d["value"] = v
	}
	return d
}
