package sheetmode

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"daysheet/internal/config"
	"daysheet/internal/log"
	"daysheet/internal/mode"
	"daysheet/internal/sheet"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case statusExpiredMsg:
		// A tick from an older status must not clear a newer one.
		if msg.at.Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			cmd := m.setStatus("reload failed: "+msg.err.Error(), true)
			return m, cmd
		}
		m.store = msg.store
		if m.store.Len() == 0 {
			m.store.Append(sheet.NewRow())
		}
		m.sel.Clear()
		m.history.Clear()
		m.clampCursor()
		m.dirty = false
		cmd := m.setStatus("sheet reloaded", false)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Paste {
			// Bracketed paste: the terminal folds newlines into \r.
			text := strings.ReplaceAll(string(msg.Runes), "\r\n", "\n")
			text = strings.ReplaceAll(text, "\r", "\n")
			if m.editing {
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
			return m.pasteText(text)
		}
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keys in grid navigation state.
func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		if m.dirty {
			if err := m.services.Repo.SaveWeek(m.weekStart, m.store); err != nil {
				log.ErrorErr(log.CatDB, "saving sheet on quit", err)
				cmd := m.setStatus("save failed: "+err.Error(), true)
				return m, cmd
			}
		}
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, k.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, k.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, k.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, k.SelectRow):
		if m.store.Len() > 0 {
			id := m.store.Row(m.cursorRow).ID
			if m.sel.HasRow(id) {
				m.sel.DeselectRow(id)
			} else {
				m.sel.SelectRow(id)
			}
		}

	case key.Matches(msg, k.SelectCell):
		if ref, ok := m.cursorCell(); ok {
			if m.sel.HasCell(ref) {
				m.sel.DeselectCell(ref)
			} else {
				m.sel.SelectCell(ref)
			}
		}

	case key.Matches(msg, k.SelectAllRow):
		for _, row := range m.store.Rows() {
			m.sel.SelectRow(row.ID)
		}

	case key.Matches(msg, k.ClearSelect):
		m.sel.Clear()

	case key.Matches(msg, k.Edit):
		return m.startEdit()

	case key.Matches(msg, k.AddRow):
		m.store.Append(sheet.NewRow())
		m.cursorRow = m.store.Len() - 1
		m.clampScroll()
		m.dirty = true

	case key.Matches(msg, k.Copy):
		return m.copySelection()

	case key.Matches(msg, k.Paste):
		text, err := m.services.Clipboard.Paste()
		if err != nil {
			log.ErrorErr(log.CatClip, "clipboard read", err)
			cmd := m.setStatus("clipboard read failed", true)
			return m, cmd
		}
		return m.pasteText(text)

	case key.Matches(msg, k.Undo):
		if m.history.Undo() {
			m.dirty = true
			cmd := m.setStatus("undone", false)
			return m, cmd
		}
		cmd := m.setStatus("nothing to undo", false)
		return m, cmd

	case key.Matches(msg, k.Redo):
		if m.history.Redo() {
			m.dirty = true
			cmd := m.setStatus("redone", false)
			return m, cmd
		}
		cmd := m.setStatus("nothing to redo", false)
		return m, cmd

	case key.Matches(msg, k.Save):
		return m.save()

	case key.Matches(msg, k.Refresh):
		next, cmd := m.Reload()
		return next, cmd

	case key.Matches(msg, k.NarrowColumn):
		return m.resizeColumn(-1)
	case key.Matches(msg, k.WidenColumn):
		return m.resizeColumn(1)

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, k.PrevWeek):
		next, cmd := m.switchWeek(m.weekStart.AddDate(0, 0, -7))
		return next, cmd
	case key.Matches(msg, k.NextWeek):
		next, cmd := m.switchWeek(m.weekStart.AddDate(0, 0, 7))
		return next, cmd
	}

	return m, nil
}

// handleEditKey processes keys while a cell edit is in progress.
func (m Model) handleEditKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.commitEdit()
	case tea.KeyEscape:
		m.editing = false
		m.sel.StopEdit()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse moves the cursor to a clicked cell; a second click on the
// cursor cell toggles its selection.
func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	if m.editing || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for r := m.rowOffset; r < m.store.Len(); r++ {
		for c := range m.columns {
			if !zone.Get(m.cellZoneID(r, c)).InBounds(msg) {
				continue
			}
			if m.cursorRow == r && m.cursorCol == c {
				if ref, ok := m.cursorCell(); ok {
					if m.sel.HasCell(ref) {
						m.sel.DeselectCell(ref)
					} else {
						m.sel.SelectCell(ref)
					}
				}
			}
			m.cursorRow, m.cursorCol = r, c
			m.clampScroll()
			return m, nil
		}
	}
	return m, nil
}

// startEdit opens the inline editor for the cursor cell.
func (m Model) startEdit() (mode.Controller, tea.Cmd) {
	ref, ok := m.cursorCell()
	if !ok {
		return m, nil
	}
	idx := m.store.IndexOf(ref.RowID)
	if idx < 0 {
		return m, nil
	}
	m.editing = true
	m.sel.StartEdit(ref)
	m.input.SetValue(m.store.Row(idx).Get(ref.ColumnID))
	m.input.CursorEnd()
	m.input.Focus()
	return m, nil
}

// commitEdit applies the edit through the command engine so it shares the
// undo stack with pastes.
func (m Model) commitEdit() (mode.Controller, tea.Cmd) {
	ref := *m.sel.Editing()
	value := m.input.Value()
	m.editing = false
	m.sel.StopEdit()
	m.input.Blur()

	cmd := sheet.BuildCellEdit(m.store, ref, value)
	if cmd == nil {
		return m, nil
	}
	cmd.Execute()
	m.history.Push(cmd)
	m.dirty = true
	return m, nil
}

// copySelection serializes the selection and sends it to the clipboard.
func (m Model) copySelection() (mode.Controller, tea.Cmd) {
	text, ok := sheet.Serialize(m.sel, m.store, m.columns, &m.copied)
	if !ok {
		cmd := m.setStatus("nothing to copy", false)
		return m, cmd
	}
	if err := m.services.Clipboard.Copy(text); err != nil {
		log.ErrorErr(log.CatClip, "clipboard write", err)
		cmd := m.setStatus("clipboard write failed", true)
		return m, cmd
	}
	lines := strings.Count(text, "\n") + 1
	log.Debug(log.CatClip, "copied selection", "lines", lines)
	cmd := m.setStatus(fmt.Sprintf("copied %d line(s)", lines), false)
	return m, cmd
}

// pasteText runs the pasted payload through the command engine.
func (m Model) pasteText(text string) (mode.Controller, tea.Cmd) {
	cmd := sheet.BuildPaste(text, m.sel, m.store, m.columns, &m.copied)
	if cmd == nil {
		statusCmd := m.setStatus("nothing to paste into", false)
		return m, statusCmd
	}
	cmd.Execute()
	m.history.Push(cmd)
	m.dirty = true
	log.Debug(log.CatClip, "pasted payload", "bytes", len(text))
	statusCmd := m.setStatus("pasted", false)
	return m, statusCmd
}

// save persists the sheet for the visible week.
func (m Model) save() (mode.Controller, tea.Cmd) {
	if err := m.services.Repo.SaveWeek(m.weekStart, m.store); err != nil {
		log.ErrorErr(log.CatDB, "saving sheet", err)
		cmd := m.setStatus("save failed: "+err.Error(), true)
		return m, cmd
	}
	m.dirty = false
	cmd := m.setStatus("saved", false)
	return m, cmd
}

// resizeColumn adjusts the cursor column's width and persists it.
func (m Model) resizeColumn(delta int) (mode.Controller, tea.Cmd) {
	if m.cursorCol >= len(m.columns) {
		return m, nil
	}
	col := m.columns[m.cursorCol]
	width := m.columnWidth(col) + delta
	if width < minColumnWidth {
		width = minColumnWidth
	}
	if m.services.Config.ColumnWidths == nil {
		m.services.Config.ColumnWidths = make(map[string]int)
	}
	m.services.Config.ColumnWidths[col] = width
	if m.services.ConfigPath != "" {
		if err := config.SaveColumnWidths(m.services.ConfigPath, m.services.Config.ColumnWidths); err != nil {
			log.ErrorErr(log.CatConfig, "saving column widths", err)
			cmd := m.setStatus("width save failed", true)
			return m, cmd
		}
	}
	return m, nil
}

// moveCursor moves the cursor by the given deltas, clamped to the grid.
func (m *Model) moveCursor(dr, dc int) {
	m.cursorRow += dr
	m.cursorCol += dc
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if max := m.store.Len() - 1; m.cursorRow > max && max >= 0 {
		m.cursorRow = max
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if max := len(m.columns) - 1; m.cursorCol > max {
		m.cursorCol = max
	}
	m.clampScroll()
}

// clampScroll keeps the cursor row inside the visible window.
func (m *Model) clampScroll() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursorRow < m.rowOffset {
		m.rowOffset = m.cursorRow
	}
	if m.cursorRow >= m.rowOffset+visible {
		m.rowOffset = m.cursorRow - visible + 1
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}
