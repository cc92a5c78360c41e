// Package store defines the clipboard history model and the storage
// interface implemented by the durable vault backend and the in-memory
// backend. A history is an ordered list of entries, newest first, with
// adjacency-only deduplication: an addition is rejected only when its
// content equals the current newest entry, never by comparison against the
// rest of the history.
package store

// Stats describes a store's current state.
type Stats struct {
	// TotalEntries is the number of entries currently held.
	TotalEntries int

	// StoragePath is the vault directory, empty for in-memory stores.
	StoragePath string

	// EncryptionEnabled reports whether entry bodies are encrypted at
	// rest.
	EncryptionEnabled bool
}

// SearchResult pairs a matching entry with its original position in the
// history, not a re-numbered result index, so a match can still be
// addressed by Get, Remove, or a clipboard restore.
type SearchResult struct {
	Index int
	Entry *Entry
}

// HistoryStore manages clipboard entry persistence. Implementations must be
// safe for one background writer (the poller) running concurrently with
// foreground readers: every method observes a consistent, untorn history.
type HistoryStore interface {
	// Add appends a new entry at the front of the history. It returns nil
	// without storing anything when content equals the current newest
	// entry's content (the sole dedup check). Persistence failures are
	// logged and absorbed; the in-memory history remains authoritative.
	Add(content string, entryType EntryType, metadata map[string]any) *Entry

	// List returns entries newest first. A limit <= 0 returns all
	// entries; otherwise at most limit of the most recent ones.
	List(limit int) []*Entry

	// Get returns the entry at index, or false when out of range.
	Get(index int) (*Entry, bool)

	// Remove deletes the entry at index together with its ciphertext
	// file, if any, and reports whether a removal occurred.
	Remove(index int) bool

	// Clear deletes every entry and every associated ciphertext file.
	Clear()

	// Search finds text entries whose content contains query,
	// case-insensitively, in the same newest-first order as List.
	Search(query string) []SearchResult

	// Stats returns the store's current statistics.
	Stats() Stats

	// Close releases any resources held by the store.
	Close() error
}
