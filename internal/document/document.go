// Package document is a plain-text document model whose
// newline-delimited paragraphs act as the block-level containers. It
// provides the three collaborators the range engine consumes: text
// runs, block lookup and an edit log.
package document

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aarongreenlee/prosemirror-noting/pkg/blocks"
	"github.com/aarongreenlee/prosemirror-noting/pkg/editlog"
	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
	"github.com/aarongreenlee/prosemirror-noting/pkg/validate"
)

// Change replaces the text between From and To with Text.
type Change struct {
	From int
	To   int
	Text string
}

// RunInfo is the payload carried by the document's text runs through
// projection and diffing.
type RunInfo struct {
	// Block is the index of the paragraph the run was scanned from.
	Block int
}

// dirtySpan is an edited span remembered in the coordinates valid
// before its edit, together with that edit's log time.
type dirtySpan struct {
	r    ranges.Range
	time int64
}

// Document holds text content and an edit log. Every applied change
// appends a position-mapping record to the log and remembers the
// touched span for later re-validation.
type Document struct {
	mu      sync.RWMutex
	content string
	log     []editlog.Record
	dirty   []dirtySpan
	clock   int64
}

// New creates a document. The log starts with an identity record so a
// freshly scanned document has a reference time to validate against.
func New(content string) *Document {
	d := &Document{content: content}
	d.log = append(d.log, editlog.Record{
		Time: d.tick(),
		Map:  func(pos int) int { return pos },
	})
	return d
}

func (d *Document) tick() int64 {
	d.clock++
	return d.clock
}

// Content returns the current document text.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Len returns the current document length in bytes.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.content)
}

// Apply replaces the span [c.From, c.To) with c.Text, appends the
// corresponding position mapping to the edit log and records the
// touched span as dirty.
func (d *Document) Apply(c Change) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c.From < 0 || c.To < c.From || c.To > len(d.content) {
		return fmt.Errorf("change [%d, %d) out of bounds for document of length %d", c.From, c.To, len(d.content))
	}

	d.content = d.content[:c.From] + c.Text + d.content[c.To:]

	time := d.tick()
	d.log = append(d.log, editlog.Record{
		Time: time,
		Map:  replacementMap(c.From, c.To, len(c.Text)),
	})

	// Remember the replaced span in pre-edit coordinates; mapping it
	// through the log from this record on yields its current span.
	span := ranges.Range{From: c.From, To: c.To}
	if span.Empty() {
		span.To++
	}
	d.dirty = append(d.dirty, dirtySpan{r: span, time: time})
	return nil
}

// replacementMap is the position mapping of a single replacement.
// Positions before the replaced span stay, positions after it shift
// by the length delta and positions inside collapse to the end of the
// inserted text. The result is monotonic.
func replacementMap(from, to, insLen int) editlog.MapFunc {
	delta := insLen - (to - from)
	return func(pos int) int {
		switch {
		case pos <= from:
			return pos
		case pos >= to:
			return pos + delta
		default:
			return from + insLen
		}
	}
}

// TakeDirty returns the spans touched since the last call, mapped
// into current document coordinates, and clears them. Spans that
// collapse to nothing under mapping are widened by one position so a
// pure deletion still marks its seam dirty; spans pushed entirely out
// of the document are discarded.
func (d *Document) TakeDirty() []ranges.Range {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []ranges.Range
	for _, span := range d.dirty {
		mapped := editlog.MapThrough([]ranges.Range{span.r}, span.time, d.log)
		if len(mapped) == 0 {
			continue
		}
		r := mapped[0]
		if r.Empty() {
			r.To = r.From + 1
		}
		if r.From >= len(d.content) {
			r = ranges.Range{From: len(d.content) - 1, To: len(d.content)}
		}
		if r.To > len(d.content) {
			r.To = len(d.content)
		}
		if r.From < 0 {
			r.From = 0
		}
		if r.Empty() {
			continue
		}
		out = append(out, r)
	}
	d.dirty = nil
	return out
}

// Log returns a snapshot of the edit log.
func (d *Document) Log() []editlog.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	log := make([]editlog.Record, len(d.log))
	copy(log, d.log)
	return log
}

// LastTime returns the time of the newest edit record.
func (d *Document) LastTime() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.log[len(d.log)-1].Time
}

// Runs scans the document into validation inputs, one per non-empty
// paragraph. Contiguous text within a paragraph forms a single run.
func (d *Document) Runs() []validate.Input[RunInfo] {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []validate.Input[RunInfo]
	offset := 0
	for i, line := range strings.Split(d.content, "\n") {
		if line != "" {
			out = append(out, validate.Input[RunInfo]{
				From:    offset,
				To:      offset + len(line),
				Str:     line,
				Payload: RunInfo{Block: i},
			})
		}
		offset += len(line) + 1
	}
	return out
}

// BlockAt implements blocks.Lookup: the enclosing block of a position
// is the newline-delimited paragraph containing it. The position one
// past the end of the document belongs to the last paragraph.
func (d *Document) BlockAt(pos int) (blocks.Block, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if pos < 0 || pos > len(d.content) {
		return blocks.Block{}, false
	}

	start := strings.LastIndexByte(d.content[:pos], '\n') + 1
	end := strings.IndexByte(d.content[pos:], '\n')
	if end < 0 {
		end = len(d.content)
	} else {
		end += pos
	}
	return blocks.Block{Start: start, Length: end - start}, true
}
