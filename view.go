package nitro

// View is the attribute-style accessor sugar: a thin window over a
// store's tree that forwards to the traversal engine and, unlike
// every other surface, exposes live references. Mutations
// through a View are visible in the store, and container values
// returned by Value are the store's own. Use View for cheap chained
// navigation; use Store.Get/ToMap when you need an independent copy.
type View struct {
	node any
	ok   bool
}

// View returns a live view rooted at the store's tree.
func (s *Store) View() *View {
	return &View{node: s.root, ok: true}
}

// Get navigates a dotted path and returns a view of the result. An
// absent or malformed path yields a view of nothing, so chains never
// panic; check Exists at the end.
func (v *View) Get(path string) *View {
	p, err := ParsePath(path)
	if err != nil {
		return &View{}
	}
	node, ok := getPath(v.node, p)
	if !ok {
		return &View{}
	}
	return &View{node: node, ok: true}
}

// Exists reports whether the view's path resolved. A stored null
// exists; only an absent or malformed path does not.
func (v *View) Exists() bool {
	return v.ok
}

// Value returns the underlying value, a live reference for
// containers.
func (v *View) Value() any {
	return v.node
}

// Set writes through the view at a dotted path relative to it,
// following the traversal engine's set semantics. The viewed node must
// be a container. The value is stored by reference, not copied, but it
// is still cycle-checked first: a cyclic value fails with
// ErrCircularRef before anything is written.
func (v *View) Set(path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	if err := ensureAcyclic(value, cycleGuard{}); err != nil {
		return err
	}
	return setPath(v.node, p, value)
}

// Has reports whether a path resolves below the view.
func (v *View) Has(path string) bool {
	p, err := ParsePath(path)
	if err != nil {
		return false
	}
	_, ok := getPath(v.node, p)
	return ok
}

// String returns the viewed value if it is a string, else "".
func (v *View) String() string {
	s, _ := v.node.(string)
	return s
}

// Float returns the viewed value as a float64 if it is numeric.
func (v *View) Float() (float64, bool) {
	return toFloat(v.node)
}

// Bool returns the viewed value if it is a bool, else false.
func (v *View) Bool() bool {
	b, _ := v.node.(bool)
	return b
}
