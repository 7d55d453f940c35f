package nitro

import (
	"errors"
	"testing"
)

func queryFixture(t *testing.T) *Store {
	t.Helper()
	return mustStore(t, map[string]any{
		"users": []any{
			map[string]any{"name": "carol", "age": 35, "dept": "eng"},
			map[string]any{"name": "alice", "age": 30, "dept": "eng"},
			map[string]any{"name": "bob", "age": 45, "dept": "sales"},
			map[string]any{"name": "dave", "dept": "sales"},
		},
		"not_a_seq": map[string]any{"k": 1},
	})
}

func TestQueryNotSequence(t *testing.T) {
	s := queryFixture(t)
	for _, path := range []string{"missing", "not_a_seq", "users.0.name"} {
		if _, err := s.Query(path); !errors.Is(err, ErrNotSequence) {
			t.Errorf("Query(%q): %v, want ErrNotSequence", path, err)
		}
	}
}

func TestQueryWhere(t *testing.T) {
	s := queryFixture(t)
	q, err := s.Query("users")
	if err != nil {
		t.Fatal(err)
	}
	out, err := q.Where(func(rec any) bool {
		age, ok := fieldOf(rec, "age")
		if !ok {
			return false
		}
		f, _ := toFloat(age)
		return f > 30
	}).Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("Where(age>30) = %v", out)
	}
}

func TestQueryWhereExpr(t *testing.T) {
	s := queryFixture(t)
	q, err := s.Query("users")
	if err != nil {
		t.Fatal(err)
	}
	out, err := q.WhereExpr(`dept == "eng" && age > 30`).Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("WhereExpr = %v", out)
	}
	if name, _ := fieldOf(out[0], "name"); name != "carol" {
		t.Errorf("matched %v", out[0])
	}
}

func TestQueryWhereExprBadCode(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	if _, err := q.WhereExpr("age >").Execute(); err == nil {
		t.Error("malformed expression did not surface an error")
	}
}

func TestQuerySortBy(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	out, err := q.SortBy("age").Pluck("name")
	if err != nil {
		t.Fatal(err)
	}
	// dave has no age and sorts first
	want := []any{"dave", "alice", "carol", "bob"}
	if !equalValues(out, want) {
		t.Errorf("SortBy(age) names = %v, want %v", out, want)
	}

	q, _ = s.Query("users")
	out, err = q.SortByDesc("age").Pluck("name")
	if err != nil {
		t.Fatal(err)
	}
	want = []any{"bob", "carol", "alice", "dave"}
	if !equalValues(out, want) {
		t.Errorf("SortByDesc(age) names = %v, want %v", out, want)
	}
}

func TestQueryOffsetLimit(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	out, err := q.SortBy("name").Offset(1).Limit(2).Pluck("name")
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"bob", "carol"}
	if !equalValues(out, want) {
		t.Errorf("Offset(1).Limit(2) = %v, want %v", out, want)
	}

	q, _ = s.Query("users")
	out, err = q.Offset(10).Execute()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("Offset past end = %v", out)
	}
}

func TestQueryCountFirst(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	n, err := q.Count()
	if err != nil || n != 4 {
		t.Errorf("Count = %d, %v", n, err)
	}

	q, _ = s.Query("users")
	rec, ok, err := q.SortBy("name").First()
	if err != nil || !ok {
		t.Fatalf("First: %v, %v", ok, err)
	}
	if name, _ := fieldOf(rec, "name"); name != "alice" {
		t.Errorf("First = %v", rec)
	}

	q, _ = s.Query("users")
	_, ok, err = q.Where(func(any) bool { return false }).First()
	if err != nil || ok {
		t.Errorf("First on empty result: %v, %v", ok, err)
	}
}

func TestQueryGroupBy(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	groups, err := q.GroupBy("dept")
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("GroupBy(dept) = %v", groups)
	}
	// first-seen order: carol's dept comes first
	if groups[0].Key != "eng" || len(groups[0].Items) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Key != "sales" || len(groups[1].Items) != 2 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
}

func TestQuerySnapshotIsolation(t *testing.T) {
	s := queryFixture(t)
	q, _ := s.Query("users")
	out, err := q.Execute()
	if err != nil {
		t.Fatal(err)
	}
	out[0].(map[string]any)["name"] = "mallory"
	v, _, _ := s.Get("users.0.name")
	if v != "carol" {
		t.Errorf("query result aliases store: users.0.name = %v", v)
	}
}

func TestQueryScalarRecords(t *testing.T) {
	s := mustStore(t, map[string]any{"nums": []any{1, 5, 10, 2}})
	q, _ := s.Query("nums")
	out, err := q.WhereExpr("value >= 5").Execute()
	if err != nil {
		t.Fatal(err)
	}
	if !equalValues(out, []any{5, 10}) {
		t.Errorf("WhereExpr(value >= 5) = %v", out)
	}
}

func TestFindValuesExpr(t *testing.T) {
	s := mustStore(t, map[string]any{
		"posts": map[string]any{"views": 500},
		"other": map[string]any{"views": 50},
	})
	got, err := s.FindValuesExpr(`path endsWith ".views" && value > 100`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !scalarEqual(got["posts.views"], 500) {
		t.Errorf("FindValuesExpr = %v", got)
	}
	if _, err := s.FindValuesExpr("value >"); err == nil {
		t.Error("malformed expression did not fail")
	}
}
