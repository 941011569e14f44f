package editlog_test

import (
	"reflect"
	"testing"

	"github.com/aarongreenlee/prosemirror-noting/pkg/editlog"
	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
)

func identity(pos int) int { return pos }

// shiftAfter moves every position at or past at by delta.
func shiftAfter(at, delta int) editlog.MapFunc {
	return func(pos int) int {
		if pos >= at {
			return pos + delta
		}
		return pos
	}
}

func TestMapThroughSingleRecordLog(t *testing.T) {
	log := []editlog.Record{{Time: 1, Map: shiftAfter(0, 100)}}
	rs := []ranges.Range{{From: 3, To: 9}, {From: 20, To: 25}}

	// A single-record log is an unaltered document: the mapping is
	// not applied, whatever time is asked for.
	got := editlog.MapThrough(rs, 42, log)
	if !reflect.DeepEqual(got, rs) {
		t.Fatalf("expected %+v, got %+v", rs, got)
	}
}

func TestMapThroughUnknownTimeDropsRanges(t *testing.T) {
	log := []editlog.Record{
		{Time: 1, Map: identity},
		{Time: 2, Map: shiftAfter(0, 5)},
	}

	got := editlog.MapThrough([]ranges.Range{{From: 0, To: 4}}, 99, log)
	if len(got) != 0 {
		t.Fatalf("expected stale ranges to be dropped, got %+v", got)
	}
}

func TestMapThroughComposesMappings(t *testing.T) {
	log := []editlog.Record{
		{Time: 1, Map: identity},
		{Time: 2, Map: shiftAfter(0, 10)},
		{Time: 3, Map: shiftAfter(50, 7)},
	}

	got := editlog.MapThrough([]ranges.Range{{From: 5, To: 45}}, 2, log)
	// +10 everywhere, then +7 past position 50: 15 stays, 55 moves.
	want := []ranges.Range{{From: 15, To: 62}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMapThroughStartsAtMatchedRecord(t *testing.T) {
	log := []editlog.Record{
		{Time: 1, Map: shiftAfter(0, 1000)},
		{Time: 2, Map: shiftAfter(0, 1)},
		{Time: 3, Map: shiftAfter(0, 1)},
	}

	// Records before the matched one are not applied; the matched
	// one and everything after it are.
	got := editlog.MapThrough([]ranges.Range{{From: 0, To: 2}}, 2, log)
	want := []ranges.Range{{From: 2, To: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
