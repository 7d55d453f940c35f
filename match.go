package nitro

import "slices"

// findPaths enumerates every concrete path in the tree matched by the
// pattern. A literal segment must equal the concrete segment, Star
// consumes exactly one segment of any value, and DoubleStar consumes
// zero or more segments via backtracking, so it works mid-pattern and
// across sibling subtrees. Results are in depth-first discovery order
// and de-duplicated: a pattern with two DoubleStars can reach the same
// concrete path through different expansions.
func findPaths(root any, pat Path) []Path {
	m := &patternMatch{seen: map[string]bool{}}
	m.walk(root, pat, nil)
	return m.out
}

type patternMatch struct {
	seen map[string]bool
	out  []Path
}

func (m *patternMatch) record(p Path) {
	if len(p) == 0 {
		// a pattern of only DoubleStars can expand to nothing;
		// the root itself has no path
		return
	}
	key := p.String()
	if m.seen[key] {
		return
	}
	m.seen[key] = true
	m.out = append(m.out, slices.Clone(p))
}

func (m *patternMatch) walk(node any, pat, prefix Path) {
	if len(pat) == 0 {
		m.record(prefix)
		return
	}
	seg := pat[0]
	if seg == DoubleStar {
		// zero-length expansion first, then consume one segment
		// with the DoubleStar still active
		m.walk(node, pat[1:], prefix)
		forEachChild(node, func(childSeg string, child any) {
			m.walk(child, pat, append(prefix, childSeg))
		})
		return
	}
	if seg == Star {
		forEachChild(node, func(childSeg string, child any) {
			m.walk(child, pat[1:], append(prefix, childSeg))
		})
		return
	}
	switch c := node.(type) {
	case map[string]any:
		if child, ok := c[seg]; ok {
			m.walk(child, pat[1:], append(prefix, seg))
		}
	case []any:
		if idx, ok := seqIndex(seg, len(c)); ok {
			m.walk(c[idx], pat[1:], append(prefix, seg))
		}
	}
}
