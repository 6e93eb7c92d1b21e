// Package sheetmode implements the grid mode controller: an editable week
// grid over the row store with cursor movement, row/cell selection,
// copy/paste through the command engine, and undo/redo.
package sheetmode

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daysheet/internal/keys"
	"daysheet/internal/log"
	"daysheet/internal/mode"
	"daysheet/internal/sheet"
)

// statusTimeout clears transient status messages.
const statusTimeout = 3 * time.Second

// Model is the sheet mode state.
type Model struct {
	services mode.Services
	keymap   keys.KeyMap

	store   *sheet.Store
	sel     *sheet.Selection
	history *sheet.History
	copied  sheet.CopiedColumns

	weekStart time.Time
	columns   []string // full column ordering for the visible week

	cursorRow int
	cursorCol int // index into columns
	rowOffset int // first visible row

	editing  bool
	input    textinput.Model
	showHelp bool

	status   string
	statusAt time.Time // pairs each status with its expiry tick
	isError  bool
	dirty    bool

	width  int
	height int
}

// statusExpiredMsg clears the status line.
type statusExpiredMsg struct{ at time.Time }

// reloadedMsg carries a freshly loaded store after an external change.
type reloadedMsg struct {
	store *sheet.Store
	err   error
}

// New creates the sheet mode for the week containing the given day.
func New(services mode.Services, day time.Time) (Model, error) {
	store, err := services.Repo.LoadWeek(day)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	m := Model{
		services:  services,
		keymap:    keys.DefaultKeyMap(),
		store:     store,
		sel:       sheet.NewSelection(),
		history:   sheet.NewHistory(),
		weekStart: sheet.WeekStart(day),
		columns:   sheet.ColumnIDs(day),
		input:     input,
	}
	if store.Len() == 0 {
		m.store.Append(sheet.NewRow())
	}
	return m, nil
}

// Init returns initial commands for the mode.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.clampScroll()
	return m
}

// Store exposes the row store, for the app's save-on-quit hook.
func (m Model) Store() *sheet.Store {
	return m.store
}

// WeekStart returns the day anchoring the visible week.
func (m Model) WeekStart() time.Time {
	return m.weekStart
}

// Dirty reports whether the sheet has unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

// cursorCell returns the cell under the cursor.
func (m Model) cursorCell() (sheet.CellRef, bool) {
	if m.store.Len() == 0 || m.cursorRow >= m.store.Len() || m.cursorCol >= len(m.columns) {
		return sheet.CellRef{}, false
	}
	return sheet.CellRef{
		RowID:    m.store.Row(m.cursorRow).ID,
		ColumnID: m.columns[m.cursorCol],
	}, true
}

// setStatus records a transient status line message.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.status = msg
	m.isError = isError
	m.statusAt = time.Now()
	at := m.statusAt
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{at: at}
	})
}

// Reload replaces the store from the repository, dropping history. Called
// by the app when the watcher reports an external change; skipped while a
// cell edit is in progress so the edit is never clobbered.
func (m Model) Reload() (Model, tea.Cmd) {
	if m.editing {
		return m, nil
	}
	repo := m.services.Repo
	week := m.weekStart
	return m, func() tea.Msg {
		store, err := repo.LoadWeek(week)
		return reloadedMsg{store: store, err: err}
	}
}

// switchWeek loads the sheet for another week.
func (m Model) switchWeek(day time.Time) (Model, tea.Cmd) {
	store, err := m.services.Repo.LoadWeek(day)
	if err != nil {
		log.ErrorErr(log.CatMode, "switching week", err)
		cmd := m.setStatus("load failed: "+err.Error(), true)
		return m, cmd
	}
	m.store = store
	if m.store.Len() == 0 {
		m.store.Append(sheet.NewRow())
	}
	m.weekStart = day
	m.columns = sheet.ColumnIDs(day)
	m.sel.Clear()
	m.history.Clear()
	m.cursorRow, m.cursorCol, m.rowOffset = 0, 0, 0
	m.dirty = false
	return m, nil
}
