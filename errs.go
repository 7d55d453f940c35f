package nitro

import "errors"

var (
	// ErrInvalidPath reports a malformed path string: empty,
	// whitespace-only, or with a leading, trailing, or doubled dot.
	ErrInvalidPath = errors.New("invalid path")

	// ErrCircularRef reports a container that is its own ancestor,
	// detected during copy, merge, or diff.
	ErrCircularRef = errors.New("circular reference")

	// ErrTypeMismatch reports a set that ran into a scalar where a
	// container was needed, or a sequence segment that is not a
	// usable index.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotSequence reports a query over a path that did not
	// resolve to a sequence.
	ErrNotSequence = errors.New("not a sequence")
)
