package validate

import "github.com/aarongreenlee/prosemirror-noting/pkg/ranges"

// Project slices out of inputs the text covered by r, producing new
// inputs positioned at r's bounds. A record is selected by its
// relationship to r.From alone: r.From must fall inside
// [record.From, record.From+len(record.Str)], both ends inclusive; a
// record touching only r.To is skipped.
//
// When the local start is positive the slice begins one character
// early. That extra character is the boundary character the
// word-matching logic downstream needs; keep it when changing the
// slicing.
func Project[P any](r ranges.Range, inputs []Input[P]) []Input[P] {
	var out []Input[P]
	for _, in := range inputs {
		if r.From < in.From || r.From > in.From+len(in.Str) {
			continue
		}

		localFrom := r.From - in.From
		localTo := localFrom + (r.To - r.From)

		start := localFrom
		if start > 0 {
			start--
		}
		if localTo > len(in.Str) {
			localTo = len(in.Str)
		}
		if start >= localTo {
			continue
		}

		out = append(out, Input[P]{
			From:    r.From,
			To:      r.To,
			Str:     in.Str[start:localTo],
			Payload: in.Payload,
		})
	}
	return out
}

// DiffInputs returns the slices of the first input collection that do
// not fall in any range covered by the second, re-sliced to the
// surviving sub-spans. Both collections must be internally
// non-overlapping; the ranges are derived from each run's text
// length, not its To field.
func DiffInputs[P any](first, second []Input[P]) []Input[P] {
	var out []Input[P]
	for _, r := range ranges.Diff(Spans(first), Spans(second)) {
		out = append(out, Project(r, first)...)
	}
	return out
}
