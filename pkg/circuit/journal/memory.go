package journal

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// Suitable for tests and short-lived processes.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string][]Entry
	closed bool
}

// NewMemoryStore creates a new in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string][]Entry),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.runs[entry.RunID] = append(s.runs[entry.RunID], entry)
	return nil
}

// List implements Store.
func (s *MemoryStore) List(runID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	entries := make([]Entry, len(s.runs[runID]))
	copy(entries, s.runs[runID])
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Seq < entries[j].Seq
	})
	return entries, nil
}

// DeleteRun implements Store.
func (s *MemoryStore) DeleteRun(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	delete(s.runs, runID)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
