package document_test

import (
	"reflect"
	"testing"

	"github.com/aarongreenlee/prosemirror-noting/internal/document"
	"github.com/aarongreenlee/prosemirror-noting/pkg/editlog"
	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
	"github.com/aarongreenlee/prosemirror-noting/pkg/validate"
)

func TestApplyReplacesText(t *testing.T) {
	doc := document.New("hello world")

	if err := doc.Apply(document.Change{From: 6, To: 11, Text: "there"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Content(); got != "hello there" {
		t.Fatalf("expected %q, got %q", "hello there", got)
	}
}

func TestApplyOutOfBounds(t *testing.T) {
	doc := document.New("short")
	if err := doc.Apply(document.Change{From: 2, To: 99, Text: "x"}); err == nil {
		t.Fatal("expected an error for an out-of-bounds change")
	}
}

func TestRuns(t *testing.T) {
	doc := document.New("first paragraph\n\nsecond one")

	got := doc.Runs()
	want := []validate.Input[document.RunInfo]{
		{From: 0, To: 15, Str: "first paragraph", Payload: document.RunInfo{Block: 0}},
		{From: 17, To: 27, Str: "second one", Payload: document.RunInfo{Block: 2}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestBlockAt(t *testing.T) {
	doc := document.New("first paragraph\nsecond one")

	cases := []struct {
		pos       int
		wantStart int
		wantLen   int
	}{
		{0, 0, 15},
		{7, 0, 15},
		{15, 0, 15}, // the terminating newline belongs to its line
		{16, 16, 10},
		{26, 16, 10}, // one past the end resolves to the last paragraph
	}
	for _, c := range cases {
		block, ok := doc.BlockAt(c.pos)
		if !ok {
			t.Fatalf("expected a block at position %d", c.pos)
		}
		if block.Start != c.wantStart || block.Length != c.wantLen {
			t.Fatalf("position %d: expected block %d+%d, got %d+%d",
				c.pos, c.wantStart, c.wantLen, block.Start, block.Length)
		}
	}

	if _, ok := doc.BlockAt(99); ok {
		t.Fatal("expected no block past the document end")
	}
}

func TestEditLogMapsOldPositions(t *testing.T) {
	doc := document.New("abcdef")
	timeBefore := doc.LastTime()

	// Insert three characters at position 2.
	if err := doc.Apply(document.Change{From: 2, To: 2, Text: "XYZ"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := editlog.MapThrough([]ranges.Range{{From: 3, To: 5}}, timeBefore, doc.Log())
	want := []ranges.Range{{From: 6, To: 8}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTakeDirtyMapsThroughLaterEdits(t *testing.T) {
	doc := document.New("aaaa bbbb cccc")

	// Touch "bbbb", then insert text before it; the dirty span must
	// come back shifted by the second edit.
	if err := doc.Apply(document.Change{From: 5, To: 9, Text: "dddd"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.Apply(document.Change{From: 0, To: 0, Text: "xx"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := doc.TakeDirty()
	// The second span covers the inserted text plus the character the
	// widened insertion point mapped onto.
	want := []ranges.Range{{From: 7, To: 11}, {From: 0, To: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if again := doc.TakeDirty(); len(again) != 0 {
		t.Fatalf("expected dirty spans to be cleared, got %+v", again)
	}
}

func TestTakeDirtyMarksDeletionSeam(t *testing.T) {
	doc := document.New("hello world")
	if err := doc.Apply(document.Change{From: 5, To: 11, Text: ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := doc.TakeDirty()
	want := []ranges.Range{{From: 4, To: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
