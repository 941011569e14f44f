package sqlite_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
	"github.com/aarongreenlee/prosemirror-noting/internal/store"
	"github.com/aarongreenlee/prosemirror-noting/internal/store/sqlite"
	"github.com/aarongreenlee/prosemirror-noting/internal/utils"
)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.New(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := setupStore(t)

	res := store.Result{
		Path:     "notes/draft.txt",
		Checksum: utils.ComputeChecksum([]byte("some  content")),
		Time:     3,
		Matches: []checker.Match{
			{ID: "a", From: 4, To: 6, Text: "  ", Rule: "double-space", Annotation: "consecutive spaces"},
			{ID: "b", From: 10, To: 12, Text: "!!", Rule: "repeated-punctuation", Annotation: "repeated punctuation"},
		},
	}
	if err := s.Save(res); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := s.Get(res.Path)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !reflect.DeepEqual(*got, res) {
		t.Fatalf("expected %+v, got %+v", res, *got)
	}
}

func TestSaveReplacesMatches(t *testing.T) {
	s := setupStore(t)

	first := store.Result{
		Path:     "a.txt",
		Checksum: []byte{1},
		Time:     1,
		Matches:  []checker.Match{{ID: "old", From: 0, To: 1, Text: "x", Rule: "r", Annotation: "a"}},
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	second := first
	second.Time = 2
	second.Matches = []checker.Match{{ID: "new", From: 2, To: 3, Text: "y", Rule: "r", Annotation: "a"}}
	if err := s.Save(second); err != nil {
		t.Fatalf("failed to save again: %v", err)
	}

	got, err := s.Get("a.txt")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if len(got.Matches) != 1 || got.Matches[0].ID != "new" {
		t.Fatalf("expected only the new match, got %+v", got.Matches)
	}
}

func TestGetMissing(t *testing.T) {
	s := setupStore(t)

	if _, err := s.Get("nope.txt"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndPaths(t *testing.T) {
	s := setupStore(t)

	for _, path := range []string{"a.txt", "b.txt"} {
		if err := s.Save(store.Result{Path: path, Checksum: []byte{1}, Time: 1}); err != nil {
			t.Fatalf("failed to save %s: %v", path, err)
		}
	}
	if err := s.Delete("a.txt"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	paths, err := s.Paths()
	if err != nil {
		t.Fatalf("failed to list paths: %v", err)
	}
	if len(paths) != 1 || paths[0] != "b.txt" {
		t.Fatalf("expected only b.txt, got %v", paths)
	}
}
