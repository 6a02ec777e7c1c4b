package compare

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SpanOp is the kind of a diff span.
type SpanOp int

const (
	SpanEqual SpanOp = iota
	SpanInsert
	SpanDelete
)

// Span is one run of characters in a value diff. Concatenating the equal and
// delete spans reproduces the old value, equal and insert spans the new one.
type Span struct {
	Op   SpanOp
	Text string
}

// DiffValue computes a character-level diff between two parameter values,
// with semantic cleanup so related edits merge into readable runs.
func DiffValue(previous, current string) []Span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(previous, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		var op SpanOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = SpanInsert
		case diffmatchpatch.DiffDelete:
			op = SpanDelete
		default:
			op = SpanEqual
		}
		spans = append(spans, Span{Op: op, Text: d.Text})
	}
	return spans
}
