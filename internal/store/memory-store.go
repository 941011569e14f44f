package store

import (
	"sync"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
)

// MemoryStore implements Store with in-memory maps. It backs tests
// and sessions that run without a database path.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]Result)}
}

func (s *MemoryStore) Save(res Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := res
	stored.Matches = append([]checker.Match(nil), res.Matches...)
	stored.Checksum = append([]byte(nil), res.Checksum...)
	s.results[res.Path] = stored
	return nil
}

func (s *MemoryStore) Get(path string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[path]
	if !ok {
		return nil, ErrNotFound
	}
	out := res
	return &out, nil
}

func (s *MemoryStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, path)
	return nil
}

func (s *MemoryStore) Paths() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.results))
	for path := range s.results {
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
