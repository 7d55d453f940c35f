package nitro

// Kind classifies a value in a document tree. Mappings and sequences
// are containers; everything else is a scalar leaf.
type Kind int

const (
	ScalarKind Kind = iota
	MappingKind
	SequenceKind
)

func (k Kind) String() string {
	switch k {
	case MappingKind:
		return "mapping"
	case SequenceKind:
		return "sequence"
	default:
		return "scalar"
	}
}

func (k Kind) IsContainer() bool {
	return k == MappingKind || k == SequenceKind
}

// KindOf reports the kind of a decoded value. Only map[string]any and
// []any count as containers; any other value, including nil, is a leaf.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return MappingKind
	case []any:
		return SequenceKind
	default:
		return ScalarKind
	}
}
