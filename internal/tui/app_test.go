package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yiblet/clipvault/internal/store"
)

// fakeFacade records façade calls without touching a real clipboard.
type fakeFacade struct {
	entries  []*store.Entry
	restored []int
	removed  []int
	cleared  bool
}

func (f *fakeFacade) History(limit int) []*store.Entry {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit]
	}
	return f.entries
}

func (f *fakeFacade) Search(query string) []store.SearchResult {
	var results []store.SearchResult
	q := strings.ToLower(query)
	for i, e := range f.entries {
		if strings.Contains(strings.ToLower(e.Content), q) {
			results = append(results, store.SearchResult{Index: i, Entry: e})
		}
	}
	return results
}

func (f *fakeFacade) Restore(index int) bool {
	if index < 0 || index >= len(f.entries) {
		return false
	}
	f.restored = append(f.restored, index)
	return true
}

func (f *fakeFacade) Remove(index int) bool {
	if index < 0 || index >= len(f.entries) {
		return false
	}
	f.removed = append(f.removed, index)
	f.entries = append(f.entries[:index], f.entries[index+1:]...)
	return true
}

func (f *fakeFacade) ClearHistory() {
	f.cleared = true
	f.entries = nil
}

func newFakeFacade(contents ...string) *fakeFacade {
	f := &fakeFacade{}
	for _, c := range contents {
		f.entries = append(f.entries, &store.Entry{Content: c, EntryType: store.TypeText})
	}
	return f
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation(t *testing.T) {
	app := NewAppModel(newFakeFacade("a", "b", "c"), 0)

	if app.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", app.cursor)
	}

	app.Update(key("down"))
	app.Update(key("j"))
	if app.cursor != 2 {
		t.Errorf("cursor after two downs = %d, want 2", app.cursor)
	}

	// Bottom is sticky.
	app.Update(key("down"))
	if app.cursor != 2 {
		t.Errorf("cursor past bottom = %d, want 2", app.cursor)
	}

	app.Update(key("g"))
	if app.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", app.cursor)
	}
	app.Update(key("G"))
	if app.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", app.cursor)
	}
}

func TestRestoreSelected(t *testing.T) {
	facade := newFakeFacade("a", "b", "c")
	app := NewAppModel(facade, 0)

	app.Update(key("down"))
	app.Update(key("enter"))

	if len(facade.restored) != 1 || facade.restored[0] != 1 {
		t.Errorf("restored = %v, want [1]", facade.restored)
	}
}

func TestSearchFiltersAndKeepsOriginalIndices(t *testing.T) {
	facade := newFakeFacade("apple pie", "banana", "apple juice")
	app := NewAppModel(facade, 0)

	app.Update(key("/"))
	for _, r := range "apple" {
		app.Update(key(string(r)))
	}

	if len(app.rows) != 2 {
		t.Fatalf("filtered rows = %d, want 2", len(app.rows))
	}
	if app.rows[0].index != 0 || app.rows[1].index != 2 {
		t.Errorf("row indices = [%d %d], want [0 2]", app.rows[0].index, app.rows[1].index)
	}

	// Restoring a search result uses the original history index.
	app.Update(key("enter")) // leave search mode
	app.Update(key("down"))
	app.Update(key("enter"))
	if len(facade.restored) != 1 || facade.restored[0] != 2 {
		t.Errorf("restored = %v, want [2]", facade.restored)
	}
}

func TestSearchEscClearsQuery(t *testing.T) {
	app := NewAppModel(newFakeFacade("one", "two"), 0)

	app.Update(key("/"))
	app.Update(key("o"))
	app.Update(key("n"))
	if len(app.rows) != 1 {
		t.Fatalf("filtered rows = %d, want 1", len(app.rows))
	}

	app.Update(key("esc"))
	if app.query != "" {
		t.Errorf("query after esc = %q, want empty", app.query)
	}
	if len(app.rows) != 2 {
		t.Errorf("rows after esc = %d, want 2", len(app.rows))
	}
}

func TestDeleteSelected(t *testing.T) {
	facade := newFakeFacade("a", "b", "c")
	app := NewAppModel(facade, 0)

	app.Update(key("down"))
	app.Update(key("d"))

	if len(facade.removed) != 1 || facade.removed[0] != 1 {
		t.Errorf("removed = %v, want [1]", facade.removed)
	}
	if len(app.rows) != 2 {
		t.Errorf("rows after delete = %d, want 2", len(app.rows))
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	facade := newFakeFacade("a", "b")
	app := NewAppModel(facade, 0)

	app.Update(key("C"))
	app.Update(key("n"))
	if facade.cleared {
		t.Error("history cleared without confirmation")
	}

	app.Update(key("C"))
	app.Update(key("y"))
	if !facade.cleared {
		t.Error("history not cleared after confirmation")
	}
	if len(app.rows) != 0 {
		t.Errorf("rows after clear = %d, want 0", len(app.rows))
	}
}

func TestViewRendersEntries(t *testing.T) {
	app := NewAppModel(newFakeFacade("first entry", "second entry"), 0)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := app.View()
	if !strings.Contains(view, "first entry") {
		t.Error("view missing first entry")
	}
	if !strings.Contains(view, "second entry") {
		t.Error("view missing second entry")
	}
	if !strings.Contains(view, "clipvault") {
		t.Error("view missing title")
	}
}

func TestViewEmptyHistory(t *testing.T) {
	app := NewAppModel(newFakeFacade(), 0)
	view := app.View()
	if !strings.Contains(view, "no entries") {
		t.Error("empty view should mention there are no entries")
	}
}
