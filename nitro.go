// Package nitro provides structured, path-addressable access to deeply
// nested, JSON-shaped data: get/set/delete over dotted paths with
// auto-vivification, wildcard pattern search, deep merge with
// circular-reference detection, structural diff, and a small query
// builder for sequences of records.
//
// A Store exclusively owns its root tree. Operations that return
// container values return independent deep copies; the one documented
// live-reference surface is the View accessor. Stores are not safe for
// concurrent mutation; callers serialize access.
package nitro

import "fmt"

// Store owns a root mapping and offers path-addressed operations over
// it. The root is acyclic: every construction and insertion path runs
// through a cycle-checked deep copy.
type Store struct {
	root map[string]any
}

// New returns an empty store.
func New() *Store {
	return &Store{root: map[string]any{}}
}

// FromMap builds a store from a decoded tree, deep-copying it so the
// store shares nothing with the argument. A tree containing a
// container that is its own ancestor fails with ErrCircularRef; the
// same sub-value reachable through two distinct branches does not.
func FromMap(m map[string]any) (*Store, error) {
	if m == nil {
		return New(), nil
	}
	cl, err := deepClone(m, cycleGuard{})
	if err != nil {
		return nil, err
	}
	return &Store{root: cl.(map[string]any)}, nil
}

// FromValue is FromMap for an untyped decode result. The root must be
// a mapping; anything else fails with ErrTypeMismatch.
func FromValue(v any) (*Store, error) {
	if v == nil {
		return New(), nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is a %s, want a mapping", ErrTypeMismatch, KindOf(v))
	}
	return FromMap(m)
}

// Copy returns an independent deep copy of the store.
func (s *Store) Copy() *Store {
	return &Store{root: cloneAcyclic(s.root).(map[string]any)}
}

// ToMap exports the tree as an independent, plain-types-only deep
// copy, suitable for JSON encoding.
func (s *Store) ToMap() map[string]any {
	return cloneAcyclic(s.root).(map[string]any)
}

// Equal reports structural deep equality with another store: same
// shape, same mapping keys in any order, same sequence order, same
// leaf values.
func (s *Store) Equal(other *Store) bool {
	return equalValues(s.root, other.root)
}
