// Package engine drives incremental re-validation of a document: it
// tracks the ranges dirtied by edits, grows them to whole blocks,
// re-checks only those, and remaps the untouched matches to current
// coordinates through the document's edit log.
package engine

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
	"github.com/aarongreenlee/prosemirror-noting/internal/document"
	"github.com/aarongreenlee/prosemirror-noting/pkg/blocks"
	"github.com/aarongreenlee/prosemirror-noting/pkg/editlog"
	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
	"github.com/aarongreenlee/prosemirror-noting/pkg/validate"
)

type Engine struct {
	mu      sync.Mutex
	doc     *document.Document
	rules   []checker.Rule
	matches []checker.Match
	// validated is the edit-log time the current matches refer to;
	// zero until the first validation.
	validated int64
	log       commonlog.Logger
}

func New(doc *document.Document, rules []checker.Rule) *Engine {
	return &Engine{
		doc:   doc,
		rules: rules,
		log:   commonlog.GetLogger("engine"),
	}
}

// Document returns the engine's document.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// Apply forwards a change to the document. The touched span is
// re-checked on the next Validate.
func (e *Engine) Apply(c document.Change) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Apply(c)
}

// Matches returns a copy of the current matches.
func (e *Engine) Matches() []checker.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]checker.Match(nil), e.matches...)
}

// Restore primes the engine with matches computed earlier for the
// document's exact current content, marking it validated at the
// current edit-log time. The next Validate returns them as-is unless
// the document has been edited in between.
func (e *Engine) Restore(matches []checker.Match) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.matches = append([]checker.Match(nil), matches...)
	e.validated = e.doc.LastTime()
	e.doc.TakeDirty()
	e.log.Debugf("restored %d matches", len(e.matches))
}

// Validate re-checks the dirtied parts of the document and remaps the
// surviving matches into current coordinates. A document that has
// never been validated is checked in full.
func (e *Engine) Validate() ([]checker.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runs := e.doc.Runs()

	if e.validated == 0 {
		// A full pass covers any spans dirtied before it.
		e.doc.TakeDirty()
		e.matches = checker.Check(e.rules, runs)
		e.validated = e.doc.LastTime()
		e.log.Debugf("full validation: %d runs, %d matches", len(runs), len(e.matches))
		return append([]checker.Match(nil), e.matches...), nil
	}

	dirty := e.doc.TakeDirty()
	if len(dirty) == 0 {
		return append([]checker.Match(nil), e.matches...), nil
	}

	expanded, err := blocks.ExpandAll(dirty, e.doc, e.doc.Len())
	if err != nil {
		return nil, fmt.Errorf("failed to expand dirty ranges: %w", err)
	}

	// Slice the current runs down to the re-checked ranges and check
	// only those. A merged range can span several paragraphs while
	// projection selects by range start alone, so each range is split
	// at run boundaries first; otherwise only the run containing the
	// range start would be re-checked.
	var fresh []validate.Input[document.RunInfo]
	for _, r := range expanded {
		for _, run := range runs {
			span := run.Span()
			sub := ranges.Range{From: max(r.From, span.From), To: min(r.To, span.To)}
			if sub.Empty() {
				continue
			}
			fresh = append(fresh, validate.Project(sub, runs)...)
		}
	}
	found := checker.Check(e.rules, fresh)

	// Remap the previous matches into current coordinates, then drop
	// the ones inside a re-checked range: their region was just
	// checked again.
	kept := e.remap(expanded)

	e.matches = append(kept, found...)
	e.validated = e.doc.LastTime()
	e.log.Debugf("incremental validation: %d ranges, %d rechecked runs, %d matches",
		len(expanded), len(fresh), len(e.matches))
	return append([]checker.Match(nil), e.matches...), nil
}

// remap carries the previous matches through every edit since the
// last validation and filters out those overlapping a re-checked
// range. Matches whose reference time has left the log are dropped.
func (e *Engine) remap(rechecked []ranges.Range) []checker.Match {
	log := e.doc.Log()

	// Matches are in the coordinates produced by the record at
	// e.validated, so mapping restarts at the first record after it.
	from := int64(-1)
	for _, rec := range log {
		if rec.Time > e.validated {
			from = rec.Time
			break
		}
	}
	if from < 0 {
		// No edits since the last validation.
		return e.matches
	}

	var kept []checker.Match
	for _, m := range e.matches {
		mapped := editlog.MapThrough([]ranges.Range{m.Span()}, from, log)
		if len(mapped) == 0 {
			continue
		}
		r := mapped[0]
		if r.Empty() {
			continue
		}
		if ranges.IndexOverlapping(r, rechecked) >= 0 {
			continue
		}
		m.From, m.To = r.From, r.To
		kept = append(kept, m)
	}
	return kept
}
