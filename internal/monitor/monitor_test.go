package monitor

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/clipvault/internal/clipboard/mockboard"
	"github.com/yiblet/clipvault/internal/store"
	"github.com/yiblet/clipvault/internal/store/memstore"
)

func newTestMonitor(opts Options) (*Monitor, *memstore.Store, *mockboard.MockClipboard) {
	st := memstore.New()
	clip := mockboard.New()
	return New(st, clip, opts), st, clip
}

func TestPollSequence(t *testing.T) {
	// Clipboard sequence "", "x", "x", "y" over successive polls must
	// produce exactly two stored entries; the empty string is never
	// stored.
	m, st, clip := newTestMonitor(Options{})

	for _, content := range []string{"", "x", "x", "y"} {
		clip.SetContent(content)
		m.poll()
	}

	history := st.List(0)
	require.Len(t, history, 2)
	assert.Equal(t, "y", history[0].Content)
	assert.Equal(t, "x", history[1].Content)
}

func TestPollSkipsWhitespaceOnly(t *testing.T) {
	m, st, clip := newTestMonitor(Options{})

	for _, content := range []string{"  ", "\n\t", " \r\n "} {
		clip.SetContent(content)
		m.poll()
	}
	assert.Empty(t, st.List(0))
}

func TestPollSizeGate(t *testing.T) {
	m, st, clip := newTestMonitor(Options{MaxItemBytes: 16})

	clip.SetContent(strings.Repeat("a", 17))
	m.poll()
	assert.Empty(t, st.List(0), "oversized content must not be stored")

	clip.SetContent(strings.Repeat("b", 16))
	m.poll()
	assert.Len(t, st.List(0), 1)
}

func TestPollOversizedStillUpdatesLastSeen(t *testing.T) {
	m, st, clip := newTestMonitor(Options{MaxItemBytes: 4})

	clip.SetContent("toolong")
	m.poll()
	m.poll()
	assert.Empty(t, st.List(0))

	// A later qualifying value is still detected as a change.
	clip.SetContent("ok")
	m.poll()
	assert.Len(t, st.List(0), 1)
}

func TestPollReadErrorContinues(t *testing.T) {
	m, st, clip := newTestMonitor(Options{})

	clip.FailReads(errors.New("display server gone"))
	m.poll()
	m.poll()
	assert.Empty(t, st.List(0))

	clip.FailReads(nil)
	clip.SetContent("recovered")
	m.poll()
	assert.Len(t, st.List(0), 1)
}

func TestRestoreWritesClipboardAndSuppressesRecapture(t *testing.T) {
	m, st, clip := newTestMonitor(Options{})

	clip.SetContent("first")
	m.poll()
	clip.SetContent("second")
	m.poll()
	require.Len(t, st.List(0), 2)

	// Restore "first" (now at index 1).
	require.True(t, m.Restore(1))
	assert.Equal(t, "first", clip.Content())

	// The next poll sees the restored value but must not treat it as a
	// new change.
	m.poll()
	assert.Len(t, st.List(0), 2)
}

func TestRestoreFailures(t *testing.T) {
	m, st, clip := newTestMonitor(Options{})

	assert.False(t, m.Restore(0), "empty history")

	st.Add("[image]", store.TypeOther, nil)
	assert.False(t, m.Restore(0), "non-text entries cannot be restored")

	st.Add("text", store.TypeText, nil)
	clip.FailWrites(errors.New("no clipboard"))
	assert.False(t, m.Restore(0))
}

func TestClearHistoryResetsDetector(t *testing.T) {
	m, st, clip := newTestMonitor(Options{})

	clip.SetContent("keepme")
	m.poll()
	require.Len(t, st.List(0), 1)

	m.ClearHistory()
	assert.Empty(t, st.List(0))

	// The same clipboard value counts as a change again after a clear.
	m.poll()
	assert.Len(t, st.List(0), 1)
}

func TestStartStopStateMachine(t *testing.T) {
	m, st, clip := newTestMonitor(Options{Interval: 5 * time.Millisecond})

	assert.False(t, m.Running())
	m.Start()
	assert.True(t, m.Running())

	// Start on a running monitor is a no-op.
	m.Start()

	clip.SetContent("captured by loop")
	require.Eventually(t, func() bool {
		return len(st.List(0)) == 1
	}, time.Second, 2*time.Millisecond)

	m.Stop()
	assert.False(t, m.Running())

	// Stop on a stopped monitor is a no-op.
	m.Stop()

	// No captures happen after Stop returned.
	clip.SetContent("after stop")
	time.Sleep(25 * time.Millisecond)
	assert.Len(t, st.List(0), 1)
}

func TestRestartAfterStop(t *testing.T) {
	m, st, clip := newTestMonitor(Options{Interval: 5 * time.Millisecond})

	m.Start()
	clip.SetContent("one")
	require.Eventually(t, func() bool { return len(st.List(0)) == 1 }, time.Second, 2*time.Millisecond)
	m.Stop()

	m.Start()
	clip.SetContent("two")
	require.Eventually(t, func() bool { return len(st.List(0)) == 2 }, time.Second, 2*time.Millisecond)
	m.Stop()
}

func TestFacadePassthrough(t *testing.T) {
	m, st, _ := newTestMonitor(Options{})

	for i := 0; i < 5; i++ {
		st.Add(fmt.Sprintf("entry %d", i), store.TypeText, nil)
	}

	assert.Len(t, m.History(0), 5)
	assert.Len(t, m.History(3), 3)
	assert.Len(t, m.Search("entry"), 5)
	assert.Equal(t, 5, m.Stats().TotalEntries)

	assert.True(t, m.Remove(0))
	assert.Equal(t, 4, m.Stats().TotalEntries)
}
