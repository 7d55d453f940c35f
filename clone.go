package nitro

import (
	"fmt"
	"reflect"
)

// cycleGuard holds the identities of containers on the active
// recursion stack. It is constructed fresh per top-level call and
// entries are removed on unwind, so a value reachable twice through
// non-overlapping branches (a DAG) passes while a container that is
// its own ancestor does not.
type cycleGuard map[uintptr]struct{}

// containerID returns a stable identity for a container value. Empty
// slices are skipped: they cannot participate in a cycle and distinct
// empty slices may share a backing pointer.
func containerID(v any) (uintptr, bool) {
	switch c := v.(type) {
	case map[string]any:
		if c == nil {
			return 0, false
		}
		return reflect.ValueOf(c).Pointer(), true
	case []any:
		if len(c) == 0 {
			return 0, false
		}
		return reflect.ValueOf(c).Pointer(), true
	}
	return 0, false
}

func (g cycleGuard) enter(v any) (uintptr, bool, error) {
	id, ok := containerID(v)
	if !ok {
		return 0, false, nil
	}
	if _, active := g[id]; active {
		return 0, false, fmt.Errorf("%w: container revisited while descending", ErrCircularRef)
	}
	g[id] = struct{}{}
	return id, true, nil
}

func (g cycleGuard) leave(id uintptr) {
	delete(g, id)
}

// deepClone copies a tree of mappings, sequences, and scalars. The
// result shares no mutable substructure with the input. Scalars are
// copied by value; unknown non-container types pass through as-is.
func deepClone(v any, g cycleGuard) (any, error) {
	switch c := v.(type) {
	case map[string]any:
		id, tracked, err := g.enter(c)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(c))
		for k, cv := range c {
			cl, err := deepClone(cv, g)
			if err != nil {
				return nil, err
			}
			out[k] = cl
		}
		if tracked {
			g.leave(id)
		}
		return out, nil
	case []any:
		id, tracked, err := g.enter(c)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(c))
		for i, cv := range c {
			cl, err := deepClone(cv, g)
			if err != nil {
				return nil, err
			}
			out[i] = cl
		}
		if tracked {
			g.leave(id)
		}
		return out, nil
	default:
		return v, nil
	}
}

// ensureAcyclic walks a value without copying it, failing with
// ErrCircularRef when any container is its own ancestor. Used where a
// value enters the store by reference rather than by copy.
func ensureAcyclic(v any, g cycleGuard) error {
	switch c := v.(type) {
	case map[string]any:
		id, tracked, err := g.enter(c)
		if err != nil {
			return err
		}
		for _, cv := range c {
			if err := ensureAcyclic(cv, g); err != nil {
				return err
			}
		}
		if tracked {
			g.leave(id)
		}
	case []any:
		id, tracked, err := g.enter(c)
		if err != nil {
			return err
		}
		for _, cv := range c {
			if err := ensureAcyclic(cv, g); err != nil {
				return err
			}
		}
		if tracked {
			g.leave(id)
		}
	}
	return nil
}

// cloneAcyclic clones a value already known to be cycle-free, such as
// anything reachable from a store root. Roots are cycle-checked on
// every construction and insertion, so the guard cannot trip here.
func cloneAcyclic(v any) any {
	out, err := deepClone(v, cycleGuard{})
	if err != nil {
		panic("nitro: acyclic invariant violated: " + err.Error())
	}
	return out
}

// equalValues reports structural deep equality: same container shape,
// same mapping keys in any order, same sequence values in order, same
// leaf values. Numbers compare numerically across int and float
// representations so literal trees compare equal to decoded ones.
func equalValues(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !equalValues(x, y) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a, b)
	}
}

func scalarEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if _, ok := toFloat(b); ok {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
