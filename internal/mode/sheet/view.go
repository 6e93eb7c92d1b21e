package sheetmode

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"daysheet/internal/sheet"
)

const (
	minColumnWidth     = 3
	defaultColumnWidth = 10
	taskColumnWidth    = 24
	rowNumGutterWidth  = 4
	chromeRows         = 3 // header + status + help
)

// View renders the mode's UI.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	st := newStyles(m.services.Config)
	var b strings.Builder

	b.WriteString(m.renderHeader(st))
	b.WriteByte('\n')

	visible := m.visibleRows()
	end := m.rowOffset + visible
	if end > m.store.Len() {
		end = m.store.Len()
	}
	for r := m.rowOffset; r < end; r++ {
		b.WriteString(m.renderRow(st, r))
		b.WriteByte('\n')
	}
	for pad := end - m.rowOffset; pad < visible; pad++ {
		b.WriteByte('\n')
	}

	if m.services.Config.UI.ShowStatusBar {
		b.WriteString(m.renderStatus(st))
		b.WriteByte('\n')
	}
	b.WriteString(st.help.Render(m.helpLine()))

	return b.String()
}

func (m Model) renderHeader(st styles) string {
	var cells []string
	if m.services.Config.UI.ShowRowNumbers {
		cells = append(cells, st.header.Render(pad("#", rowNumGutterWidth)))
	}
	for _, col := range m.columns {
		cells = append(cells, st.header.Render(pad(m.columnTitle(col), m.columnWidth(col))))
	}
	return strings.Join(cells, " ")
}

func (m Model) renderRow(st styles, r int) string {
	row := m.store.Row(r)
	rowSelected := m.sel.HasRow(row.ID)

	var cells []string
	if m.services.Config.UI.ShowRowNumbers {
		cells = append(cells, st.rowNum.Render(pad(fmt.Sprintf("%d", r+1), rowNumGutterWidth)))
	}
	for c, col := range m.columns {
		cells = append(cells, m.renderCell(st, row, rowSelected, r, c, col))
	}
	return strings.Join(cells, " ")
}

func (m Model) renderCell(st styles, row sheet.Row, rowSelected bool, r, c int, col string) string {
	width := m.columnWidth(col)
	atCursor := r == m.cursorRow && c == m.cursorCol

	if atCursor && m.editing {
		m.input.Width = width
		return zone.Mark(m.cellZoneID(r, c), st.editing.Render(pad(m.input.View(), width)))
	}

	value := row.Get(col)
	derived := false
	if col == sheet.TimeValueColumn && value == "" {
		value = sheet.DerivedTimeValue(row, sheet.WeekColumns(m.weekStart))
		derived = true
	}
	content := pad(value, width)

	ref := sheet.CellRef{RowID: row.ID, ColumnID: col}
	style := st.cell
	switch {
	case atCursor:
		style = st.cursor
	case rowSelected || m.sel.HasCell(ref):
		style = st.selected
	case derived:
		style = st.derived
	}
	return zone.Mark(m.cellZoneID(r, c), style.Render(content))
}

func (m Model) renderStatus(st styles) string {
	left := m.weekStart.Format("Jan 2, 2006")
	if m.dirty {
		left += " [+]"
	}
	if m.status == "" {
		return st.status.Render(left)
	}
	msg := m.status
	if m.isError {
		msg = st.statusError.Render(msg)
	}
	return st.status.Render(left + "  " + msg)
}

func (m Model) helpLine() string {
	k := m.keymap
	if m.editing {
		return "enter: commit · esc: cancel"
	}
	bindings := []key.Binding{
		k.SelectCell, k.SelectRow, k.Copy, k.Paste, k.Undo, k.Save, k.Help, k.Quit,
	}
	if m.showHelp {
		bindings = []key.Binding{
			k.Up, k.Down, k.Left, k.Right,
			k.SelectRow, k.SelectCell, k.SelectAllRow, k.ClearSelect,
			k.Edit, k.AddRow, k.Copy, k.Paste, k.Undo, k.Redo,
			k.Save, k.Refresh, k.NarrowColumn, k.WidenColumn,
			k.PrevWeek, k.NextWeek, k.Help, k.Quit,
		}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+": "+b.Help().Desc)
	}
	return strings.Join(parts, " · ")
}

// columnTitle maps a column id to its header label.
func (m Model) columnTitle(col string) string {
	switch {
	case col == "task":
		return "Task"
	case col == "notes":
		return "Notes"
	case col == sheet.TimeValueColumn:
		return "Time"
	case sheet.IsDayColumn(col):
		if date, ok := sheet.DayColumnDate(col); ok {
			return date.Format("Mon 1/2")
		}
	}
	return col
}

// columnWidth returns the configured width for a column, or a default.
func (m Model) columnWidth(col string) int {
	if w, ok := m.services.Config.ColumnWidths[col]; ok && w >= minColumnWidth {
		return w
	}
	if col == "task" || col == "notes" {
		return taskColumnWidth
	}
	return defaultColumnWidth
}

// visibleRows is how many grid rows fit in the current terminal height.
func (m Model) visibleRows() int {
	rows := m.height - chromeRows
	if !m.services.Config.UI.ShowStatusBar {
		rows++
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) cellZoneID(r, c int) string {
	return fmt.Sprintf("cell:%d:%d", r, c)
}

// pad truncates or right-pads a string to exactly width cells.
func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}
