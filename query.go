package nitro

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nitrosh/nitro-datastore/debug"
)

// Query is a small builder over a sequence of records resolved from a
// path. It operates purely in-memory on a deep-copied snapshot: no
// further path semantics are involved, and builder results never alias
// store state. Chained Where filters are a logical AND; sorting is
// stable; grouping preserves first-seen key order.
type Query struct {
	items   []any
	filters []func(rec any) (bool, error)
	cmp     func(a, b any) int
	offset  int
	limit   int
	err     error
}

// Query resolves a path to a sequence and returns a builder over it.
// A path that is absent or resolves to anything but a sequence fails
// with ErrNotSequence.
func (s *Store) Query(path string) (*Query, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	v, ok := getPath(s.root, p)
	if !ok {
		return nil, fmt.Errorf("%w: nothing at %q", ErrNotSequence, path)
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s at %q", ErrNotSequence, KindOf(v), path)
	}
	if debug.Query() {
		debug.Logf("query %s: %d records\n", p, len(seq))
	}
	return &Query{items: cloneAcyclic(seq).([]any), limit: -1}, nil
}

// Where keeps records for which pred holds.
func (q *Query) Where(pred func(rec any) bool) *Query {
	q.filters = append(q.filters, func(rec any) (bool, error) {
		return pred(rec), nil
	})
	return q
}

// WhereExpr keeps records for which an expr-lang expression evaluates
// to true. Mapping records are the expression's environment, so fields
// are plain identifiers: `age > 30 && name startsWith "A"`.
// Non-mapping records are bound to the identifier `value`.
func (q *Query) WhereExpr(code string) *Query {
	prog, err := expr.Compile(code, expr.Env(map[string]any{}), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("compiling %q: %w", code, err)
		}
		return q
	}
	q.filters = append(q.filters, func(rec any) (bool, error) {
		out, err := runExpr(prog, rec)
		if err != nil {
			return false, fmt.Errorf("evaluating %q: %w", code, err)
		}
		b, ok := out.(bool)
		if !ok {
			return false, fmt.Errorf("expression %q is not a predicate", code)
		}
		return b, nil
	})
	return q
}

func runExpr(prog *vm.Program, rec any) (any, error) {
	env, ok := rec.(map[string]any)
	if !ok {
		env = map[string]any{"value": rec}
	}
	return expr.Run(prog, env)
}

// Sort orders records by a comparison function. The sort is stable.
func (q *Query) Sort(cmp func(a, b any) int) *Query {
	q.cmp = cmp
	return q
}

// SortBy orders records ascending by a mapping field, numerically when
// both values are numeric, otherwise by string form. Records without
// the field sort first.
func (q *Query) SortBy(field string) *Query {
	return q.Sort(fieldCompare(field, false))
}

// SortByDesc is SortBy in descending order.
func (q *Query) SortByDesc(field string) *Query {
	return q.Sort(fieldCompare(field, true))
}

func fieldCompare(field string, reverse bool) func(a, b any) int {
	cmp := func(a, b any) int {
		av, aok := fieldOf(a, field)
		bv, bok := fieldOf(b, field)
		var c int
		switch {
		case !aok && !bok:
			c = 0
		case !aok:
			c = -1
		case !bok:
			c = 1
		default:
			c = compareScalars(av, bv)
		}
		return c
	}
	if !reverse {
		return cmp
	}
	return func(a, b any) int { return -cmp(a, b) }
}

func fieldOf(rec any, field string) (any, bool) {
	m, ok := rec.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[field]
	return v, ok
}

func compareScalars(a, b any) int {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// Offset skips the first n records of the result.
func (q *Query) Offset(n int) *Query {
	if n >= 0 {
		q.offset = n
	}
	return q
}

// Limit caps the result at n records.
func (q *Query) Limit(n int) *Query {
	if n >= 0 {
		q.limit = n
	}
	return q
}

// Execute runs the chain: filters, then stable sort, then offset and
// limit.
func (q *Query) Execute() ([]any, error) {
	if q.err != nil {
		return nil, q.err
	}
	out := make([]any, 0, len(q.items))
	for _, rec := range q.items {
		keep := true
		for _, f := range q.filters {
			ok, err := f(rec)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	if q.cmp != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return q.cmp(out[i], out[j]) < 0
		})
	}
	if q.offset > 0 {
		if q.offset >= len(out) {
			out = nil
		} else {
			out = out[q.offset:]
		}
	}
	if q.limit >= 0 && q.limit < len(out) {
		out = out[:q.limit]
	}
	return out, nil
}

// Count runs the chain and reports the number of records.
func (q *Query) Count() (int, error) {
	out, err := q.Execute()
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// First runs the chain and returns the first record, if any.
func (q *Query) First() (any, bool, error) {
	out, err := q.Execute()
	if err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out[0], true, nil
}

// Pluck runs the chain and extracts one field from every mapping
// record that has it.
func (q *Query) Pluck(field string) ([]any, error) {
	out, err := q.Execute()
	if err != nil {
		return nil, err
	}
	vals := make([]any, 0, len(out))
	for _, rec := range out {
		if v, ok := fieldOf(rec, field); ok {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

// Group is one bucket of a GroupBy result.
type Group struct {
	Key   string
	Items []any
}

// GroupBy runs the chain and buckets records by the string form of a
// field, keeping buckets in first-seen order. Records without the
// field land in the "" bucket.
func (q *Query) GroupBy(field string) ([]Group, error) {
	out, err := q.Execute()
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	var groups []Group
	for _, rec := range out {
		key := ""
		if v, ok := fieldOf(rec, field); ok {
			key = fmt.Sprintf("%v", v)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, rec)
	}
	return groups, nil
}

// FindValuesExpr is FindValues with an expr-lang predicate evaluated
// against `path` and `value` bindings, e.g.
// `value > 100 && path startsWith "posts."`.
func (s *Store) FindValuesExpr(code string) (map[string]any, error) {
	prog, err := expr.Compile(code, expr.Env(map[string]any{}), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", code, err)
	}
	out := map[string]any{}
	var walkErr error
	walkTree(s.root, nil, func(p Path, v any) bool {
		if walkErr != nil {
			return false
		}
		ps := p.String()
		res, err := expr.Run(prog, map[string]any{"path": ps, "value": v})
		if err != nil {
			walkErr = fmt.Errorf("evaluating %q at %s: %w", code, ps, err)
			return false
		}
		if b, ok := res.(bool); ok && b {
			out[ps] = cloneAcyclic(v)
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}
