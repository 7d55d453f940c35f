package nitro

import (
	"fmt"
	"strconv"
)

// seqIndex interprets a path segment as a sequence index. It fails,
// without error, when the segment is not an integer or is out of
// bounds; the caller treats that step as absent (or, for set, as a
// type mismatch, since sequences are never auto-extended).
func seqIndex(seg string, n int) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// getPath descends a parsed path. Absence is a normal outcome, not an
// error: any unreachable step yields (nil, false).
func getPath(root any, p Path) (any, bool) {
	cur := root
	for _, seg := range p {
		switch c := cur.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, ok := seqIndex(seg, len(c))
			if !ok {
				return nil, false
			}
			cur = c[idx]
		default:
			// scalar with path left over
			return nil, false
		}
	}
	return cur, true
}

// setPath descends to the parent of the terminal segment, creating
// empty mappings for absent intermediate steps, then writes the value.
// Existing scalars in the middle of the path and unusable sequence
// indexes fail with ErrTypeMismatch.
func setPath(root any, p Path, v any) error {
	cur := root
	for i := 0; i < len(p)-1; i++ {
		seg := p[i]
		switch c := cur.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				m := map[string]any{}
				c[seg] = m
				cur = m
				continue
			}
			if !KindOf(next).IsContainer() {
				return fmt.Errorf("%w: %q at %q is a scalar", ErrTypeMismatch, seg, Path(p[:i+1]))
			}
			cur = next
		case []any:
			idx, ok := seqIndex(seg, len(c))
			if !ok {
				return fmt.Errorf("%w: %q is not an index of a %d-element sequence", ErrTypeMismatch, seg, len(c))
			}
			next := c[idx]
			if !KindOf(next).IsContainer() {
				return fmt.Errorf("%w: %q at %q is a scalar", ErrTypeMismatch, seg, Path(p[:i+1]))
			}
			cur = next
		default:
			return fmt.Errorf("%w: cannot descend into %s at %q", ErrTypeMismatch, KindOf(cur), Path(p[:i]))
		}
	}
	last := p[len(p)-1]
	switch c := cur.(type) {
	case map[string]any:
		c[last] = v
	case []any:
		idx, ok := seqIndex(last, len(c))
		if !ok {
			return fmt.Errorf("%w: %q is not an index of a %d-element sequence", ErrTypeMismatch, last, len(c))
		}
		c[idx] = v
	default:
		return fmt.Errorf("%w: cannot set %q on a %s", ErrTypeMismatch, last, KindOf(cur))
	}
	return nil
}

// deletePath removes the terminal segment of a path. It returns the
// possibly-replaced node (sequence deletion splices, which shortens
// the slice) and whether anything was removed. Absent paths are a
// no-op returning false.
func deletePath(node any, p Path) (any, bool) {
	seg := p[0]
	switch c := node.(type) {
	case map[string]any:
		child, ok := c[seg]
		if !ok {
			return node, false
		}
		if len(p) == 1 {
			delete(c, seg)
			return node, true
		}
		upd, deleted := deletePath(child, p[1:])
		if deleted {
			c[seg] = upd
		}
		return node, deleted
	case []any:
		idx, ok := seqIndex(seg, len(c))
		if !ok {
			return node, false
		}
		if len(p) == 1 {
			out := make([]any, 0, len(c)-1)
			out = append(out, c[:idx]...)
			out = append(out, c[idx+1:]...)
			return out, true
		}
		upd, deleted := deletePath(c[idx], p[1:])
		if deleted {
			c[idx] = upd
		}
		return node, deleted
	default:
		return node, false
	}
}
