// Package memstore provides an in-memory implementation of the history
// store. It enforces the same ordering and adjacency-dedup invariants as
// the durable backend but persists nothing; it backs fast unit tests and
// the ephemeral no-vault mode.
package memstore

import (
	"strings"
	"sync"

	"github.com/yiblet/clipvault/internal/store"
)

// Store is an in-memory store.HistoryStore. It is thread-safe via a
// read-write mutex and exists only for the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	history []*store.Entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{history: []*store.Entry{}}
}

// Add implements store.HistoryStore.
func (s *Store) Add(content string, entryType store.EntryType, metadata map[string]any) *store.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) > 0 && s.history[0].Content == content {
		return nil
	}

	entry := store.NewEntry(content, entryType, metadata)
	s.history = append([]*store.Entry{entry}, s.history...)
	return entry
}

// List implements store.HistoryStore.
func (s *Store) List(limit int) []*store.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*store.Entry, n)
	copy(out, s.history[:n])
	return out
}

// Get implements store.HistoryStore.
func (s *Store) Get(index int) (*store.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.history) {
		return nil, false
	}
	return s.history[index], true
}

// Remove implements store.HistoryStore.
func (s *Store) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.history) {
		return false
	}
	s.history = append(s.history[:index], s.history[index+1:]...)
	return true
}

// Clear implements store.HistoryStore.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []*store.Entry{}
}

// Search implements store.HistoryStore.
func (s *Store) Search(query string) []store.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var results []store.SearchResult
	for i, entry := range s.history {
		if entry.EntryType != store.TypeText {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Content), q) {
			results = append(results, store.SearchResult{Index: i, Entry: entry})
		}
	}
	return results
}

// Stats implements store.HistoryStore. StoragePath is empty: there is no
// backing directory.
func (s *Store) Stats() store.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.Stats{TotalEntries: len(s.history)}
}

// Close implements store.HistoryStore.
func (s *Store) Close() error {
	return nil
}
