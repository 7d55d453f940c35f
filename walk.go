package nitro

import (
	"sort"
	"strconv"
)

// sortedKeys fixes an iteration order for mappings. Go maps are
// unordered, so every walk whose output order is observable visits
// keys in sorted order to stay deterministic and stable across calls.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// forEachChild visits the immediate children of a container in
// deterministic order, passing each child's path segment. Scalars
// have no children.
func forEachChild(node any, fn func(seg string, child any)) {
	switch c := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(c) {
			fn(k, c[k])
		}
	case []any:
		for i, child := range c {
			fn(strconv.Itoa(i), child)
		}
	}
}

// walkTree visits every node below the root, parents before children,
// in deterministic depth-first order. Returning false from fn prunes
// the subtree beneath that node. The Path passed to fn shares its
// backing array with the walk and is valid only during the call;
// callers that keep it must copy it.
func walkTree(node any, prefix Path, fn func(p Path, v any) bool) {
	forEachChild(node, func(seg string, child any) {
		p := append(prefix, seg)
		if !fn(p, child) {
			return
		}
		walkTree(child, p, fn)
	})
}

// walkLeaves visits only scalar leaves, in the same order walkTree
// discovers them.
func walkLeaves(node any, prefix Path, fn func(p Path, v any)) {
	walkTree(node, prefix, func(p Path, v any) bool {
		if KindOf(v) == ScalarKind {
			fn(p, v)
		}
		return true
	})
}
