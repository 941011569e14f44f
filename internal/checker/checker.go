// Package checker runs rule-based checks over validation inputs and
// reports matches in document coordinates.
package checker

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/aarongreenlee/prosemirror-noting/pkg/ranges"
	"github.com/aarongreenlee/prosemirror-noting/pkg/validate"
)

// Rule flags every occurrence of its pattern in a text run.
type Rule struct {
	Name       string
	Pattern    *regexp.Regexp
	Annotation string
}

// Match is one rule hit, positioned in document coordinates.
type Match struct {
	ID         string
	From       int
	To         int
	Text       string
	Rule       string
	Annotation string
}

// Span returns the match's document range.
func (m Match) Span() ranges.Range {
	return ranges.Range{From: m.From, To: m.To}
}

// DefaultRules cover mechanical writing slips that need no dictionary.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "double-space",
			Pattern:    regexp.MustCompile(` {2,}`),
			Annotation: "consecutive spaces",
		},
		{
			Name:       "trailing-space",
			Pattern:    regexp.MustCompile(`[ \t]+$`),
			Annotation: "trailing whitespace",
		},
		{
			Name:       "repeated-punctuation",
			Pattern:    regexp.MustCompile(`[!?.]{2,}`),
			Annotation: "repeated punctuation",
		},
	}
}

// Check runs every rule over every input and returns the matches in
// document coordinates. Projected inputs may carry one boundary
// character ahead of From, so offsets are rebased on the text length,
// not on From alone.
func Check[P any](rules []Rule, inputs []validate.Input[P]) []Match {
	var out []Match
	for _, in := range inputs {
		base := in.From
		if extra := len(in.Str) - (in.To - in.From); extra > 0 {
			base -= extra
		}
		for _, rule := range rules {
			for _, loc := range rule.Pattern.FindAllStringIndex(in.Str, -1) {
				out = append(out, Match{
					ID:         uuid.NewString(),
					From:       base + loc[0],
					To:         base + loc[1],
					Text:       in.Str[loc[0]:loc[1]],
					Rule:       rule.Name,
					Annotation: rule.Annotation,
				})
			}
		}
	}
	return out
}
