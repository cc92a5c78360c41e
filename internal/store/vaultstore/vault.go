// Package vaultstore implements the durable history store: an in-memory
// ordered entry list mirrored to a plaintext JSON index file, plus one
// AES-GCM ciphertext file per text entry when encryption is on.
//
// Two properties of the on-disk format are deliberate and load-bearing:
//
//   - The index holds entry content in plaintext even when encryption is
//     enabled. The index is the availability copy and the ciphertext files
//     are the integrity/recovery copy; Recover exposes the difference. Use
//     filesystem permissions on the vault directory for confidentiality of
//     the index itself.
//   - Every mutation rewrites the full index, so the index always reflects
//     the complete history after a successful Add. That bounds practical
//     history size to a few thousand entries.
//
// All mutating and reading methods share one mutex: the background poller
// is the single writer and foreground callers always observe a consistent
// list. Persistence failures are logged, never raised; the in-memory list
// stays authoritative until the next successful rewrite.
package vaultstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/yiblet/clipvault/internal/logging"
	"github.com/yiblet/clipvault/internal/store"
	"github.com/yiblet/clipvault/internal/vault"
	"github.com/yiblet/clipvault/internal/vaultfs"
)

// Store is the durable, file-backed history store.
type Store struct {
	mu      sync.RWMutex
	fs      *vaultfs.VaultFS
	cipher  *vault.Cipher
	log     logging.Logger
	history []*store.Entry
}

// Options configures a Store.
type Options struct {
	// Cipher enables encryption at rest for text entries. Nil disables
	// encryption; no ciphertext files are written or deleted.
	Cipher *vault.Cipher

	// Logger receives persistence warnings. Nil discards them.
	Logger logging.Logger
}

// Open loads the history from the vault's index file. A missing index is an
// empty history; an unreadable or malformed index degrades to an empty
// history with a logged error rather than failing, so a damaged vault never
// takes the calling process down.
func Open(vfs *vaultfs.VaultFS, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	s := &Store{
		fs:      vfs,
		cipher:  opts.Cipher,
		log:     log,
		history: []*store.Entry{},
	}
	s.loadIndex()
	return s
}

func (s *Store) loadIndex() {
	data, err := os.ReadFile(s.fs.IndexPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Error("failed to read vault index, starting empty",
				"path", s.fs.IndexPath(), "error", err)
		}
		return
	}

	var history []*store.Entry
	if err := json.Unmarshal(data, &history); err != nil {
		s.log.Error("failed to parse vault index, starting empty",
			"path", s.fs.IndexPath(), "error", err)
		return
	}
	s.history = history
}

// saveIndex rewrites the full index. The write goes through a temp file and
// a rename so readers of the index file never see a torn write. Failures
// are logged and absorbed; callers keep operating on the in-memory list.
func (s *Store) saveIndex() {
	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		s.log.Error("failed to encode vault index", "error", err)
		return
	}

	tmp := s.fs.IndexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		s.log.Warn("failed to write vault index, history is in-memory only until the next successful save",
			"path", s.fs.IndexPath(), "error", err)
		return
	}
	if err := os.Rename(tmp, s.fs.IndexPath()); err != nil {
		s.log.Warn("failed to replace vault index", "path", s.fs.IndexPath(), "error", err)
	}
}

// Add implements store.HistoryStore. Adjacency dedup only: the new content
// is compared against the entry at position 0 and nothing else.
func (s *Store) Add(content string, entryType store.EntryType, metadata map[string]any) *store.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) > 0 && s.history[0].Content == content {
		return nil
	}

	entry := store.NewEntry(content, entryType, metadata)
	s.history = append([]*store.Entry{entry}, s.history...)

	if s.cipher != nil && entryType == store.TypeText {
		s.writeCiphertext(entry)
	}
	s.saveIndex()
	return entry
}

func (s *Store) writeCiphertext(entry *store.Entry) {
	ciphertext, err := s.cipher.Encrypt([]byte(entry.Content))
	if err != nil {
		s.log.Warn("failed to encrypt entry", "error", err)
		return
	}
	path := s.fs.CipherPath(entry.Timestamp)
	if err := os.WriteFile(path, ciphertext, 0600); err != nil {
		s.log.Warn("failed to write ciphertext file", "path", path, "error", err)
	}
}

func (s *Store) removeCiphertext(entry *store.Entry) {
	if s.cipher == nil || entry.EntryType != store.TypeText {
		return
	}
	path := s.fs.CipherPath(entry.Timestamp)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("failed to remove ciphertext file", "path", path, "error", err)
	}
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

	entry := s.history[index]
	s.history = append(s.history[:index], s.history[index+1:]...)
	s.removeCiphertext(entry)
	s.saveIndex()
	return true
}

// Clear implements store.HistoryStore.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.history {
		s.removeCiphertext(entry)
	}
	s.history = []*store.Entry{}
	s.saveIndex()
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

// Stats implements store.HistoryStore.
func (s *Store) Stats() store.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return store.Stats{
		TotalEntries:      len(s.history),
		StoragePath:       s.fs.Root(),
		EncryptionEnabled: s.cipher != nil,
	}
}

// Recover reads the ciphertext file of the text entry at index and decrypts
// it. Unlike the absorb-and-log persistence paths, decryption failures are
// surfaced to the caller: a *vault.DecryptionError means the file was
// tampered with, corrupted, or encrypted under a different key, and
// returning silently wrong plaintext would be worse than failing.
func (s *Store) Recover(index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cipher == nil {
		return "", errors.New("encryption is disabled for this vault")
	}
	if index < 0 || index >= len(s.history) {
		return "", fmt.Errorf("index %d out of range (0-%d)", index, len(s.history)-1)
	}
	entry := s.history[index]
	if entry.EntryType != store.TypeText {
		return "", fmt.Errorf("entry %d is not a text entry", index)
	}

	path := s.fs.CipherPath(entry.Timestamp)
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read ciphertext file: %w", err)
	}

	plaintext, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Close implements store.HistoryStore. The store holds no open handles
// between operations, so there is nothing to release.
func (s *Store) Close() error {
	return nil
}
