// Package editlog remaps document ranges through an ordered log of
// edits, so results computed against an older revision can be carried
// forward instead of recomputed.
package editlog

import "github.com/aarongreenlee/prosemirror-noting/pkg/ranges"

// MapFunc translates a position valid before an edit into the
// corresponding position after it. Implementations must be monotonic.
type MapFunc func(pos int) int

// Record is one entry of a document's edit log. Time is a unique,
// strictly increasing key within the log, not a wall-clock value; the
// log owner assigns it.
type Record struct {
	Time int64
	Map  MapFunc
}

// MapThrough replays the mapping functions of every record from the
// one whose Time equals time through the end of the log, in order,
// over each range in rs, and returns the ranges in current document
// coordinates.
//
// A single-record log means the document is unaltered since any
// reference point, so the ranges come back unchanged. A time with no
// matching record means the reference point is gone from the log;
// those ranges are dropped, so the result may be shorter than rs.
// Neither case is an error.
func MapThrough(rs []ranges.Range, time int64, log []Record) []ranges.Range {
	if len(log) == 1 {
		out := make([]ranges.Range, len(rs))
		copy(out, rs)
		return out
	}

	start := -1
	for i, rec := range log {
		if rec.Time == time {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	out := make([]ranges.Range, 0, len(rs))
	for _, r := range rs {
		mapped := r
		for _, rec := range log[start:] {
			mapped = ranges.Range{From: rec.Map(mapped.From), To: rec.Map(mapped.To)}
		}
		out = append(out, mapped)
	}
	return out
}
