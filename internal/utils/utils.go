package utils

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"path/filepath"
)

// ComputeMD5Checksum takes a byte slice and returns the raw MD5 checksum as a byte slice
func ComputeChecksum(content []byte) []byte {
	hash := md5.New()
	hash.Write(content)
	return hash.Sum(nil)
}

// URI2Path converts a file:// URI as sent by an LSP client into a
// filesystem path.
func URI2Path(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse URI %q: %w", uri, err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", parsed.Scheme)
	}
	return filepath.FromSlash(parsed.Path), nil
}
