package sheet

import (
	"sort"
	"strings"
)

// BuildPaste classifies a pasted TSV payload against the current selection
// and returns a one-shot Command implementing one of four paste modes, or
// nil when the paste is a no-op:
//
//   - row-fill:   one pasted row replicated into every selected row
//   - row-range:  a block of pasted rows written from the lowest selected
//     row position downward, clipped at the end of the store
//   - cell-fill:  one pasted value replicated into every selected cell
//   - cell-range: a TSV grid written from the anchor cell, clipped at the
//     store and column-list edges
//
// The returned Command has already captured the prior values of every cell
// it will touch; callers must Execute it immediately and may then keep it
// on an undo stack. A nil return means nothing was, or will be, mutated.
func BuildPaste(text string, sel *Selection, store *Store, columnIDs []string, copied *CopiedColumns) Command {
	if sel.Editing() != nil || sel.Empty() || text == "" {
		return nil
	}

	if sel.HasRows() {
		parsed := parseTSV(text)
		positions := rowPositions(sel, store)
		if len(positions) == 0 {
			return nil
		}
		if len(parsed) == 1 && len(positions) > 1 {
			return buildRowFill(store, columnIDs, parsed[0], positions)
		}
		return buildRowRange(store, columnIDs, parsed, positions[0])
	}

	cells := sel.Cells()
	anchor := cells[0]
	if anchor.ColumnID == RowNumColumn {
		return nil
	}
	if isSingleCell(text) && len(cells) > 1 {
		return buildCellFill(store, cells, text, copied.OnlyTimeValue())
	}
	anchorRow := store.IndexOf(anchor.RowID)
	anchorCol := columnIndex(columnIDs, anchor.ColumnID)
	if anchorRow < 0 || anchorCol < 0 {
		return nil
	}
	return buildCellRange(store, columnIDs, parseTSV(text), anchorRow, anchorCol)
}

// parseTSV splits clipboard text into a grid: newline-separated rows of
// tab-separated values. No escaping exists in the interchange format, so
// embedded tabs and newlines inside a value are indistinguishable from
// boundaries; this matches spreadsheet clipboard behavior and is kept
// bit-for-bit.
func parseTSV(text string) [][]string {
	lines := strings.Split(text, "\n")
	grid := make([][]string, len(lines))
	for i, line := range lines {
		grid[i] = strings.Split(line, "\t")
	}
	return grid
}

// isSingleCell reports whether the payload is a single value, i.e. holds
// neither a column nor a row separator.
func isSingleCell(text string) bool {
	return !strings.ContainsAny(text, "\t\n")
}

// rowPositions maps the selected row ids to store positions, drops ids not
// present in the store, and sorts ascending. Paste targets store order,
// never selection order.
func rowPositions(sel *Selection, store *Store) []int {
	positions := make([]int, 0, len(sel.RowIDs()))
	for _, id := range sel.RowIDs() {
		if i := store.IndexOf(id); i >= 0 {
			positions = append(positions, i)
		}
	}
	sort.Ints(positions)
	return positions
}

func columnIndex(columnIDs []string, id string) int {
	for i, c := range columnIDs {
		if c == id {
			return i
		}
	}
	return -1
}

// rowFillCommand writes one pasted row into every selected row position.
type rowFillCommand struct{ storeCommand }

// rowRangeCommand writes a block of pasted rows from the anchor position.
type rowRangeCommand struct{ storeCommand }

// cellRangeCommand writes a TSV grid from the anchor cell.
type cellRangeCommand struct{ storeCommand }

// cellFillCommand writes one literal value into every selected cell.
type cellFillCommand struct {
	storeCommand

	// copiedFromTimeValue records whether the most recent copy touched
	// exactly the timeValue column. Paste always writes the literal text —
	// fill-paste never re-establishes a derived link — so the flag does not
	// change behavior today; it is the hook where formula re-linking would
	// attach.
	copiedFromTimeValue bool
}

// buildRowFill captures writes assigning values[i] to columnIDs[i] for
// every target position. Values past the end of the column list are
// ignored; columns past the end of the values are left untouched.
func buildRowFill(store *Store, columnIDs []string, values []string, positions []int) Command {
	cmd := &rowFillCommand{storeCommand{store: store}}
	for _, pos := range positions {
		cmd.writes = append(cmd.writes, rowWrites(store, columnIDs, values, pos)...)
	}
	return cmd
}

// buildRowRange captures writes placing one parsed row per consecutive
// store position from the anchor down, clipped at the end of the store.
// Pasting past the end never appends rows.
func buildRowRange(store *Store, columnIDs []string, parsed [][]string, anchor int) Command {
	cmd := &rowRangeCommand{storeCommand{store: store}}
	n := len(parsed)
	if rest := store.Len() - anchor; rest < n {
		n = rest
	}
	for k := 0; k < n; k++ {
		cmd.writes = append(cmd.writes, rowWrites(store, columnIDs, parsed[k], anchor+k)...)
	}
	return cmd
}

// rowWrites captures the positional column mapping for one target row.
func rowWrites(store *Store, columnIDs []string, values []string, pos int) []cellWrite {
	row := store.Row(pos)
	writes := make([]cellWrite, 0, len(values))
	for i, v := range values {
		if i >= len(columnIDs) {
			break
		}
		writes = append(writes, cellWrite{
			row:    pos,
			column: columnIDs[i],
			old:    row.Get(columnIDs[i]),
			value:  v,
		})
	}
	return writes
}

// buildCellFill captures a write of the literal pasted text into every
// selected cell, skipping the synthetic row-number column and cells whose
// row is no longer in the store.
func buildCellFill(store *Store, cells []CellRef, text string, copiedFromTimeValue bool) Command {
	cmd := &cellFillCommand{
		storeCommand:        storeCommand{store: store},
		copiedFromTimeValue: copiedFromTimeValue,
	}
	for _, cell := range cells {
		if cell.ColumnID == RowNumColumn {
			continue
		}
		idx := store.IndexOf(cell.RowID)
		if idx < 0 {
			continue
		}
		cmd.writes = append(cmd.writes, cellWrite{
			row:    idx,
			column: cell.ColumnID,
			old:    store.Row(idx).Get(cell.ColumnID),
			value:  text,
		})
	}
	return cmd
}

// buildCellRange captures writes placing grid[ro][co] at row anchorRow+ro,
// column columnIDs[anchorCol+co]. Offsets landing outside the store or the
// column list are skipped; the paste never grows rows or columns. Values
// are written as literal text; no formula re-linking occurs.
func buildCellRange(store *Store, columnIDs []string, grid [][]string, anchorRow, anchorCol int) Command {
	cmd := &cellRangeCommand{storeCommand{store: store}}
	for ro, values := range grid {
		target := anchorRow + ro
		if target >= store.Len() {
			break
		}
		row := store.Row(target)
		for co, v := range values {
			col := anchorCol + co
			if col >= len(columnIDs) {
				break
			}
			cmd.writes = append(cmd.writes, cellWrite{
				row:    target,
				column: columnIDs[col],
				old:    row.Get(columnIDs[col]),
				value:  v,
			})
		}
	}
	return cmd
}

// BuildCellEdit wraps a single in-cell edit commit as a Command so grid
// edits share the same undo stack as pastes. Returns nil when the row is
// gone, the column is the synthetic row-number column, or the value is
// unchanged.
func BuildCellEdit(store *Store, ref CellRef, value string) Command {
	if ref.ColumnID == RowNumColumn {
		return nil
	}
	idx := store.IndexOf(ref.RowID)
	if idx < 0 {
		return nil
	}
	old := store.Row(idx).Get(ref.ColumnID)
	if old == value {
		return nil
	}
	return &storeCommand{
		store: store,
		writes: []cellWrite{{
			row:    idx,
			column: ref.ColumnID,
			old:    old,
			value:  value,
		}},
	}
}
