// Package validate projects and diffs the text runs a validator
// consumes, so that only the parts of a document touched by an edit
// need re-checking.
package validate

import "github.com/aarongreenlee/prosemirror-noting/pkg/ranges"

// Input is a contiguous text run tagged with its document position.
// Callers keep To - From == len(Str); Payload carries arbitrary data
// through projection and diffing untouched.
type Input[P any] struct {
	From    int
	To      int
	Str     string
	Payload P
}

// Span returns the document range derived from the run's text length.
func (in Input[P]) Span() ranges.Range {
	return ranges.Range{From: in.From, To: in.From + len(in.Str)}
}

// Spans derives the document ranges of a set of inputs.
func Spans[P any](inputs []Input[P]) []ranges.Range {
	rs := make([]ranges.Range, len(inputs))
	for i, in := range inputs {
		rs[i] = in.Span()
	}
	return rs
}
