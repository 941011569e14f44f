package utils_test

import (
	"bytes"
	"testing"

	"github.com/aarongreenlee/prosemirror-noting/internal/utils"
)

func TestComputeChecksum(t *testing.T) {
	a := utils.ComputeChecksum([]byte("content"))
	b := utils.ComputeChecksum([]byte("content"))
	c := utils.ComputeChecksum([]byte("changed"))

	if !bytes.Equal(a, b) {
		t.Fatal("expected identical content to produce identical checksums")
	}
	if bytes.Equal(a, c) {
		t.Fatal("expected different content to produce different checksums")
	}
}

func TestURI2Path(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{
			uri:      "file:///home/user/notes.txt",
			expected: "/home/user/notes.txt",
		},
		{
			uri:      "file:///tmp/a%20b.txt",
			expected: "/tmp/a b.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := utils.URI2Path(tt.uri)
			if err != nil {
				t.Fatalf("URI2Path() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("URI2Path() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestURI2PathRejectsOtherSchemes(t *testing.T) {
	if _, err := utils.URI2Path("https://example.com/x"); err == nil {
		t.Fatal("expected an error for a non-file scheme")
	}
}
