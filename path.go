package nitro

import (
	"fmt"
	"strings"
)

// Wildcard segments understood by FindPaths. Star matches exactly one
// segment; DoubleStar matches zero or more segments and may appear
// anywhere in a pattern.
const (
	Star       = "*"
	DoubleStar = "**"
)

// Path is a parsed dotted path: an ordered, non-empty list of
// segments. A segment addresses a mapping key, or a sequence index
// when the container reached at that depth is a sequence. Whether a
// numeric segment is a key or an index is decided at traversal time,
// never at parse time.
type Path []string

// ParsePath validates and splits a dotted path string. A path is
// invalid when it is empty or whitespace-only, or when any segment
// between dots is empty (leading, trailing, or doubled dots).
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
		}
	}
	return Path(segs), nil
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// join is String with a caller-chosen separator, used by Flatten.
func (p Path) join(sep string) string {
	return strings.Join(p, sep)
}
