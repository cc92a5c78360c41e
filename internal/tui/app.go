// Package tui implements the interactive history browser: a scrollable
// entry list with incremental search, restore, copy, delete, and clear.
// It consumes only the monitor's façade surface and holds no history state
// of its own beyond the currently displayed view.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.design/x/clipboard"

	"github.com/yiblet/clipvault/internal/store"
)

// UIMode represents the current modal state of the application.
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
	ConfirmClearMode
)

// Facade is the read/restore surface the browser consumes; the monitor
// satisfies it.
type Facade interface {
	History(limit int) []*store.Entry
	Search(query string) []store.SearchResult
	Restore(index int) bool
	Remove(index int) bool
	ClearHistory()
}

type flashExpiredMsg struct{}

// row pairs a displayed entry with its original history index, so restore
// and delete address the store correctly even under an active search.
type row struct {
	index int
	entry *store.Entry
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// AppModel is the bubbletea model for the history browser.
type AppModel struct {
	facade Facade
	limit  int

	rows   []row
	cursor int
	mode   UIMode
	query  string

	width  int
	height int

	flash       string
	flashExpiry time.Time
}

// NewAppModel creates a browser over the given façade. limit caps how many
// entries are listed when no search is active; <= 0 lists all.
func NewAppModel(facade Facade, limit int) *AppModel {
	a := &AppModel{facade: facade, limit: limit, width: 80, height: 24}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a *AppModel) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the visible rows from the façade, preserving original
// history indices. An active query switches the view to search results.
func (a *AppModel) refresh() {
	a.rows = a.rows[:0]
	if a.query == "" {
		for i, entry := range a.facade.History(a.limit) {
			a.rows = append(a.rows, row{index: i, entry: entry})
		}
	} else {
		for _, result := range a.facade.Search(a.query) {
			a.rows = append(a.rows, row{index: result.Index, entry: result.Entry})
		}
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Update implements tea.Model.
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case flashExpiredMsg:
		if time.Now().After(a.flashExpiry) {
			a.flash = ""
		}
		return a, nil
	case tea.KeyMsg:
		switch a.mode {
		case SearchMode:
			return a.updateSearch(m)
		case ConfirmClearMode:
			return a.updateConfirmClear(m)
		default:
			return a.updateNormal(m)
		}
	}
	return a, nil
}

func (a *AppModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "g":
		a.cursor = 0
	case "G":
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}
	case "/":
		a.mode = SearchMode
	case "esc":
		if a.query != "" {
			a.query = ""
			a.refresh()
		}
	case "enter":
		return a, a.restoreSelected()
	case "c":
		return a, a.copySelected()
	case "d":
		return a, a.deleteSelected()
	case "C":
		a.mode = ConfirmClearMode
	}
	return a, nil
}

func (a *AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.mode = NormalMode
	case "esc":
		a.mode = NormalMode
		a.query = ""
		a.refresh()
	case "backspace":
		if a.query != "" {
			runes := []rune(a.query)
			a.query = string(runes[:len(runes)-1])
			a.refresh()
		}
	default:
		if msg.Type == tea.KeyRunes {
			a.query += string(msg.Runes)
			a.cursor = 0
			a.refresh()
		}
	}
	return a, nil
}

func (a *AppModel) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		a.facade.ClearHistory()
		a.mode = NormalMode
		a.query = ""
		a.cursor = 0
		a.refresh()
		return a, a.setFlash("History cleared")
	default:
		a.mode = NormalMode
	}
	return a, nil
}

func (a *AppModel) selected() (row, bool) {
	if len(a.rows) == 0 || a.cursor >= len(a.rows) {
		return row{}, false
	}
	return a.rows[a.cursor], true
}

func (a *AppModel) restoreSelected() tea.Cmd {
	r, ok := a.selected()
	if !ok {
		return a.setFlash("No entry selected")
	}
	if !a.facade.Restore(r.index) {
		return a.setFlash("Restore failed")
	}
	return a.setFlash(fmt.Sprintf("Restored entry %d to clipboard", r.index))
}

func (a *AppModel) copySelected() tea.Cmd {
	r, ok := a.selected()
	if !ok {
		return a.setFlash("No entry selected")
	}
	if err := clipboard.Init(); err != nil {
		return a.setFlash(fmt.Sprintf("Error initializing clipboard: %v", err))
	}
	clipboard.Write(clipboard.FmtText, []byte(r.entry.Content))
	return a.setFlash(fmt.Sprintf("Copied %d bytes to clipboard", len(r.entry.Content)))
}

func (a *AppModel) deleteSelected() tea.Cmd {
	r, ok := a.selected()
	if !ok {
		return a.setFlash("No entry selected")
	}
	if !a.facade.Remove(r.index) {
		return a.setFlash("Delete failed")
	}
	a.refresh()
	return a.setFlash("Entry deleted")
}

func (a *AppModel) setFlash(message string) tea.Cmd {
	a.flash = message
	a.flashExpiry = time.Now().Add(2 * time.Second)
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// View implements tea.Model.
func (a *AppModel) View() string {
	var b strings.Builder

	title := "clipvault"
	if a.query != "" || a.mode == SearchMode {
		title += fmt.Sprintf(" — search: %s", a.query)
		if a.mode == SearchMode {
			title += "█"
		}
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(a.rows) == 0 {
		b.WriteString(helpStyle.Render("  (no entries)"))
		b.WriteString("\n")
	}

	visible := a.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(a.rows) {
		end = len(a.rows)
	}

	previewWidth := a.width - 30
	if previewWidth < 10 {
		previewWidth = 10
	}
	for i := start; i < end; i++ {
		r := a.rows[i]
		preview := strings.ReplaceAll(r.entry.Preview(previewWidth), "\n", " ")
		line := fmt.Sprintf("%3d  %s  %s", r.index, timeStyle.Render(r.entry.DisplayTime()), preview)
		if i == a.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch a.mode {
	case ConfirmClearMode:
		b.WriteString(statusStyle.Render("Clear ALL history? (y/N)"))
	default:
		if a.flash != "" {
			b.WriteString(statusStyle.Render(a.flash))
		} else {
			b.WriteString(helpStyle.Render("enter restore · c copy · d delete · / search · C clear · q quit"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Run launches the browser in the alternate screen until the user quits.
func Run(facade Facade, limit int) error {
	program := tea.NewProgram(NewAppModel(facade, limit), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
