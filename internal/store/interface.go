// Package store persists validation results between sessions so an
// unchanged document never has to be re-checked from scratch.
package store

import (
	"errors"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
)

// ErrNotFound is returned when no result is stored for a path.
var ErrNotFound = errors.New("no stored result for path")

// Result is the persisted outcome of validating one document.
type Result struct {
	// Path identifies the document.
	Path string
	// Checksum of the content the matches were computed from; a
	// mismatch on load means the result is stale.
	Checksum []byte
	// Time is the edit-log time the matches were computed at.
	Time int64
	// Matches found in the document.
	Matches []checker.Match
}

// Store persists validation results.
type Store interface {
	// Save stores res, replacing any previous result for its path.
	Save(res Result) error
	// Get returns the stored result for path, or ErrNotFound.
	Get(path string) (*Result, error)
	// Delete removes the stored result for path, if any.
	Delete(path string) error
	// Paths lists every path with a stored result.
	Paths() ([]string, error)

	Close() error
}
