// Package monitor implements the clipboard change-detection loop and the
// query/restore façade over the history store.
//
// One background goroutine samples the live clipboard on a fixed interval
// and forwards qualifying transitions to the store; it is the history's
// single writer. Change detection is local to the monitor: the last
// observed value is compared by exact equality, independent of the store's
// own adjacency dedup, so an unchanged clipboard is not re-offered to the
// store on every poll.
package monitor

import (
	"strings"
	"sync"
	"time"

	"github.com/yiblet/clipvault/internal/clipboard"
	"github.com/yiblet/clipvault/internal/logging"
	"github.com/yiblet/clipvault/internal/store"
)

const (
	// DefaultInterval is the fixed polling interval.
	DefaultInterval = 500 * time.Millisecond

	// DefaultMaxItemBytes is the capture size gate, 10 MiB of UTF-8.
	DefaultMaxItemBytes = 10 << 20

	// stopTimeout bounds how long Stop waits for the loop goroutine.
	// Past it, Stop returns and the goroutine exits on its own; the
	// source treats this as best-effort, not guaranteed-terminated.
	stopTimeout = 2 * time.Second
)

// Monitor owns the change-detection loop and exposes the read-side façade
// consumed by presentation layers.
type Monitor struct {
	store    store.HistoryStore
	clip     clipboard.Clipboard
	log      logging.Logger
	interval time.Duration
	maxBytes int

	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	done     chan struct{}
	lastSeen string
}

// Options configures a Monitor. Zero values select the defaults.
type Options struct {
	// Interval overrides the polling interval; tests use a short one.
	Interval time.Duration

	// MaxItemBytes overrides the capture size gate.
	MaxItemBytes int

	// Logger receives poll failures and capture notices. Nil discards.
	Logger logging.Logger
}

// New creates a stopped Monitor over the given store and clipboard.
func New(st store.HistoryStore, clip clipboard.Clipboard, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxItemBytes <= 0 {
		opts.MaxItemBytes = DefaultMaxItemBytes
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Monitor{
		store:    st,
		clip:     clip,
		log:      log,
		interval: opts.Interval,
		maxBytes: opts.MaxItemBytes,
	}
}

// Start transitions Stopped -> Running, spawning the poll loop. Calling
// Start on a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.loop(m.stop, m.done)
	m.log.Info("clipboard monitoring started", "interval", m.interval)
}

// Stop transitions Running -> Stopped and waits up to two seconds for the
// loop goroutine to observe the signal and exit. Calling Stop on a stopped
// monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stop, done := m.stop, m.done
	m.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(stopTimeout):
		m.log.Warn("poll loop did not exit within timeout")
	}
	m.log.Info("clipboard monitoring stopped")
}

// Running reports whether the poll loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll runs one iteration: read, detect transition, gate, store. A read
// failure is logged and the loop carries on; a transient clipboard error
// must never terminate the poller.
func (m *Monitor) poll() {
	content, err := m.clip.Read()
	if err != nil {
		m.log.Warn("failed to read clipboard", "error", err)
		return
	}

	m.mu.Lock()
	changed := content != m.lastSeen
	// Updated whether or not the value qualifies for storage, so the same
	// value is not re-examined on every subsequent poll.
	m.lastSeen = content
	m.mu.Unlock()

	if !changed {
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}
	if len(content) > m.maxBytes {
		m.log.Warn("clipboard item exceeds size limit, skipping",
			"bytes", len(content), "max", m.maxBytes)
		return
	}

	if entry := m.store.Add(content, store.TypeText, nil); entry != nil {
		m.log.Info("captured clipboard entry", "preview", entry.Preview(50))
	}
}

// Restore writes the text entry at index back onto the live clipboard and
// primes the detector with that content so the restore is not immediately
// re-captured as a new change. It reports whether the restore happened.
func (m *Monitor) Restore(index int) bool {
	entry, ok := m.store.Get(index)
	if !ok || entry.EntryType != store.TypeText {
		return false
	}
	if err := m.clip.Write(entry.Content); err != nil {
		m.log.Error("failed to restore entry to clipboard", "index", index, "error", err)
		return false
	}

	m.mu.Lock()
	m.lastSeen = entry.Content
	m.mu.Unlock()
	return true
}

// History returns entries newest first; limit <= 0 returns all.
func (m *Monitor) History(limit int) []*store.Entry {
	return m.store.List(limit)
}

// Search finds text entries matching query, preserving original indices.
func (m *Monitor) Search(query string) []store.SearchResult {
	return m.store.Search(query)
}

// Remove deletes the entry at index.
func (m *Monitor) Remove(index int) bool {
	return m.store.Remove(index)
}

// ClearHistory deletes every entry and resets the change detector, so the
// content cleared away can be captured again if it reappears.
func (m *Monitor) ClearHistory() {
	m.store.Clear()
	m.mu.Lock()
	m.lastSeen = ""
	m.mu.Unlock()
}

// Stats returns the underlying store's statistics.
func (m *Monitor) Stats() store.Stats {
	return m.store.Stats()
}
