package sheet

import "strings"

// CopiedColumns is a single-slot mutable cell recording which column ids
// were involved in the most recent successful copy. Its only consumer is
// the cell-fill paste path, which checks whether the previous copy came
// from exactly the timeValue column. Reading it before any copy yields an
// empty record.
type CopiedColumns struct {
	ids []string
}

// Set replaces the record with a copy of the given ids.
func (c *CopiedColumns) Set(ids []string) {
	c.ids = append(c.ids[:0:0], ids...)
}

// IDs returns the recorded ids. Callers must not mutate the slice.
func (c *CopiedColumns) IDs() []string {
	return c.ids
}

// OnlyTimeValue reports whether the most recent copy touched exactly the
// timeValue column and nothing else.
func (c *CopiedColumns) OnlyTimeValue() bool {
	return len(c.ids) == 1 && c.ids[0] == TimeValueColumn
}

// Serialize converts the current selection into a TSV clipboard payload:
// columns joined by tab, rows joined by newline, no escaping of either.
// Returns ok=false — and leaves the copied-columns record untouched — when
// a cell edit is in progress, the selection is empty, or nothing
// serializable is selected.
//
// Row selection takes priority over cell selection. In row mode, selected
// rows serialize in store order (selection order is irrelevant) across the
// full column ordering. In cell mode, cells group by row in the order they
// were selected, the synthetic row-number column is skipped, and values
// come from the authoritative store so the literal stored content — never
// a computed display string — is what lands on the clipboard.
func Serialize(sel *Selection, store *Store, columnIDs []string, copied *CopiedColumns) (string, bool) {
	if sel.Editing() != nil || sel.Empty() {
		return "", false
	}

	if sel.HasRows() {
		lines := make([]string, 0, len(sel.RowIDs()))
		for _, row := range store.Rows() {
			if !sel.HasRow(row.ID) {
				continue
			}
			values := make([]string, len(columnIDs))
			for i, col := range columnIDs {
				values[i] = row.Get(col)
			}
			lines = append(lines, strings.Join(values, "\t"))
		}
		if len(lines) == 0 {
			return "", false
		}
		copied.Set(columnIDs)
		return strings.Join(lines, "\n"), true
	}

	// Cell mode: group by row, first-encounter order for both rows and
	// per-row columns. Rows with no serializable cells produce no line.
	rowOrder := make([]string, 0)
	byRow := make(map[string][]string)
	colSeen := make(map[string]struct{})
	cols := make([]string, 0)
	for _, cell := range sel.Cells() {
		if cell.ColumnID == RowNumColumn {
			continue
		}
		idx := store.IndexOf(cell.RowID)
		if idx < 0 {
			continue
		}
		if _, ok := byRow[cell.RowID]; !ok {
			rowOrder = append(rowOrder, cell.RowID)
		}
		byRow[cell.RowID] = append(byRow[cell.RowID], store.Row(idx).Get(cell.ColumnID))
		if _, ok := colSeen[cell.ColumnID]; !ok {
			colSeen[cell.ColumnID] = struct{}{}
			cols = append(cols, cell.ColumnID)
		}
	}
	if len(rowOrder) == 0 {
		return "", false
	}
	lines := make([]string, len(rowOrder))
	for i, id := range rowOrder {
		lines[i] = strings.Join(byRow[id], "\t")
	}
	copied.Set(cols)
	return strings.Join(lines, "\n"), true
}
