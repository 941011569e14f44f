// Package blocks grows ranges to the full span of their enclosing
// block-level container, so re-validation always sees whole blocks of
// context.
package blocks

import (
	"fmt"

	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
)

// Block is the text span of a block-level container.
type Block struct {
	Start  int
	Length int
}

// Span returns the block's full text range.
func (b Block) Span() ranges.Range {
	return ranges.Range{From: b.Start, To: b.Start + b.Length}
}

// Lookup resolves the enclosing block for a document position.
type Lookup interface {
	BlockAt(pos int) (Block, bool)
}

// LookupError reports a position with no enclosing block. It means
// the range and the document it was derived from are out of sync,
// which is a programming or data error, not a recoverable condition.
type LookupError struct {
	Pos int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no enclosing block for position %d", e.Pos)
}

// ExpandToBlock grows r to the full text span of the block enclosing
// its start. Both ends of r must resolve to a block.
func ExpandToBlock(r ranges.Range, lookup Lookup) (ranges.Range, error) {
	block, ok := lookup.BlockAt(r.From)
	if !ok {
		return ranges.Range{}, &LookupError{Pos: r.From}
	}
	if _, ok := lookup.BlockAt(r.To); !ok {
		return ranges.Range{}, &LookupError{Pos: r.To}
	}
	return block.Span(), nil
}

// ExpandAll expands every range to its enclosing block, clamps the
// expansions to [0, docLen] and merges them together with the
// original ranges, so overlapping expansions still coalesce with
// their un-expanded siblings.
func ExpandAll(rs []ranges.Range, lookup Lookup, docLen int) ([]ranges.Range, error) {
	combined := make([]ranges.Range, len(rs), 2*len(rs))
	copy(combined, rs)

	for _, r := range rs {
		expanded, err := ExpandToBlock(r, lookup)
		if err != nil {
			return nil, err
		}
		if expanded.To > docLen {
			expanded.To = docLen
		}
		if expanded.To < 0 {
			expanded.To = 0
		}
		combined = append(combined, expanded)
	}
	return ranges.MergeAll(combined), nil
}
