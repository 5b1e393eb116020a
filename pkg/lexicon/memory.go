package lexicon

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory lexicon. It is safe for concurrent use and
// suited to tests and small embedded lexicons.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory lexicon.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Lookup returns the entry for a surface form, or nil if absent.
func (s *MemoryStore) Lookup(_ context.Context, surface string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[strings.ToLower(surface)]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put inserts or replaces an entry.
func (s *MemoryStore) Put(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[strings.ToLower(entry.Surface)] = entry
	return nil
}

// Count returns the number of entries.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
