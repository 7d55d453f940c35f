package encode

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// StringDelta renders a compact inline delta between two strings:
// insertions as [+text], deletions as [-text], common text verbatim.
// When the strings have little in common (the edit covers more than
// half of the shorter string) it returns "", and the caller should
// show both values whole instead.
func StringDelta(from, to string) string {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, multiLine)
	editSize := 0
	for i := range diffs {
		switch diffs[i].Type {
		case diffpatch.DiffInsert, diffpatch.DiffDelete:
			editSize += len(diffs[i].Text)
		}
	}
	if editSize > min(len(from), len(to))/2 {
		return ""
	}
	var b strings.Builder
	for i := range diffs {
		switch diffs[i].Type {
		case diffpatch.DiffInsert:
			b.WriteString("[+")
			b.WriteString(diffs[i].Text)
			b.WriteString("]")
		case diffpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(diffs[i].Text)
			b.WriteString("]")
		default:
			b.WriteString(diffs[i].Text)
		}
	}
	return b.String()
}
