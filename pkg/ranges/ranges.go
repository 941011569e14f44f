// Package ranges implements the set algebra over integer document
// ranges used to decide which parts of a document need re-validation.
package ranges

// Range is an integer span over document coordinates. A range with
// From == To is empty and never appears in the output of the
// operations below.
type Range struct {
	From int
	To   int
}

// Len returns the number of positions covered by r.
func (r Range) Len() int {
	return r.To - r.From
}

// Empty reports whether r covers no positions.
func (r Range) Empty() bool {
	return r.From >= r.To
}

// IndexOverlapping returns the index of the first range in rs that
// overlaps r: r crosses its left edge, crosses its right edge, or
// fully contains it. Returns -1 when no range overlaps. Ties resolve
// to the first match in slice order.
func IndexOverlapping(r Range, rs []Range) int {
	for i, local := range rs {
		overlapsLeft := local.From <= r.From && r.From <= local.To
		overlapsRight := local.From <= r.To && r.To <= local.To
		contains := r.From <= local.From && local.To <= r.To
		if overlapsLeft || overlapsRight || contains {
			return i
		}
	}
	return -1
}

// Merge returns the smallest range covering both a and b.
func Merge(a, b Range) Range {
	return Range{From: min(a.From, b.From), To: max(a.To, b.To)}
}

// MergeAll folds rs into a set of mutually non-overlapping ranges.
// Each incoming range either widens the first accumulated range it
// overlaps or is appended, so the output keeps first-seen order
// rather than sorted order. Callers depend on that ordering.
func MergeAll(rs []Range) []Range {
	merged := make([]Range, 0, len(rs))
	for _, r := range rs {
		if i := IndexOverlapping(r, merged); i >= 0 {
			merged[i] = Merge(merged[i], r)
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// Diff returns the parts of the first set not covered by the second.
// Both sets are merged before comparison. A first-set range that
// straddles several second-set ranges is split at each overlap: the
// uncovered left part is emitted and the remainder past the overlap
// goes back on the work queue, so no recursion is needed regardless
// of how many second-set ranges a single range crosses. Empty ranges
// are filtered out, never emitted.
func Diff(first, second []Range) []Range {
	queue := MergeAll(first)
	covered := MergeAll(second)

	var out []Range
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		if r.Empty() {
			continue
		}

		i := IndexOverlapping(r, covered)
		if i < 0 {
			out = append(out, r)
			continue
		}

		overlap := covered[i]
		if r.From < overlap.From {
			out = append(out, Range{From: r.From, To: overlap.From})
		}
		if overlap.To < r.To {
			// The remainder goes to the front of the queue so the
			// split stays strictly left-to-right.
			queue = append([]Range{{From: overlap.To + 1, To: r.To}}, queue...)
		}
	}
	return out
}
