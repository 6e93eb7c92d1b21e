package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Classifier no-ops
// ============================================================================

// TestBuildPaste_EditingCellNoOp tests paste is a no-op mid-edit
func TestBuildPaste_EditingCellNoOp(t *testing.T) {
	store := testStore(2, testColumns)
	sel := NewSelection()
	sel.SelectRow(store.Row(0).ID)
	sel.StartEdit(CellRef{RowID: store.Row(0).ID, ColumnID: "task"})

	cmd := BuildPaste("x", sel, store, testColumns, &CopiedColumns{})

	assert.Nil(t, cmd)
}

// TestBuildPaste_EmptySelectionNoOp tests paste with nothing selected
func TestBuildPaste_EmptySelectionNoOp(t *testing.T) {
	store := testStore(2, testColumns)

	cmd := BuildPaste("x", NewSelection(), store, testColumns, &CopiedColumns{})

	assert.Nil(t, cmd)
}

// TestBuildPaste_EmptyTextNoOp tests pasting an empty payload
func TestBuildPaste_EmptyTextNoOp(t *testing.T) {
	store := testStore(2, testColumns)
	sel := NewSelection()
	sel.SelectRow(store.Row(0).ID)

	cmd := BuildPaste("", sel, store, testColumns, &CopiedColumns{})

	assert.Nil(t, cmd)
}

// TestBuildPaste_RowNumAnchorNoOp tests pasting anchored on the row-number column
func TestBuildPaste_RowNumAnchorNoOp(t *testing.T) {
	store := testStore(2, testColumns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: RowNumColumn})
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "task"})

	cmd := BuildPaste("x", sel, store, testColumns, &CopiedColumns{})

	assert.Nil(t, cmd)
}

// TestBuildPaste_UnresolvableAnchorNoOp tests an anchor missing from store or columns
func TestBuildPaste_UnresolvableAnchorNoOp(t *testing.T) {
	store := testStore(2, testColumns)

	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: "gone", ColumnID: "task"})
	assert.Nil(t, BuildPaste("x", sel, store, testColumns, &CopiedColumns{}))

	sel = NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "unknown"})
	assert.Nil(t, BuildPaste("x", sel, store, testColumns, &CopiedColumns{}))
}

// TestBuildPaste_SelectedRowsGoneNoOp tests row paste when no selected id resolves
func TestBuildPaste_SelectedRowsGoneNoOp(t *testing.T) {
	store := testStore(2, testColumns)
	sel := NewSelection()
	sel.SelectRow("gone")

	cmd := BuildPaste("x", sel, store, testColumns, &CopiedColumns{})

	assert.Nil(t, cmd)
}

// ============================================================================
// Row-fill
// ============================================================================

// TestRowFill_ReplicatesIntoEverySelectedRow tests one pasted row filling three rows
func TestRowFill_ReplicatesIntoEverySelectedRow(t *testing.T) {
	columns := []string{"x", "y", "z"}
	store := testStore(3, columns)
	sel := NewSelection()
	for i := 0; i < 3; i++ {
		sel.SelectRow(store.Row(i).ID)
	}
	before := store.Snapshot()

	cmd := BuildPaste("A\tB\tC", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &rowFillCommand{}, cmd)
	cmd.Execute()

	for i := 0; i < 3; i++ {
		assert.Equal(t, "A", store.Row(i).Get("x"))
		assert.Equal(t, "B", store.Row(i).Get("y"))
		assert.Equal(t, "C", store.Row(i).Get("z"))
	}

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestRowFill_ExtraValuesIgnored tests values past the column list are dropped
func TestRowFill_ExtraValuesIgnored(t *testing.T) {
	columns := []string{"x", "y"}
	store := testStore(2, columns)
	sel := NewSelection()
	sel.SelectRow(store.Row(0).ID)
	sel.SelectRow(store.Row(1).ID)

	cmd := BuildPaste("A\tB\tC\tD", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, "A", store.Row(0).Get("x"))
	assert.Equal(t, "B", store.Row(0).Get("y"))
}

// TestRowFill_ShortRowLeavesTrailingColumns tests columns past the pasted values stay
func TestRowFill_ShortRowLeavesTrailingColumns(t *testing.T) {
	columns := []string{"x", "y", "z"}
	store := testStore(2, columns)
	sel := NewSelection()
	sel.SelectRow(store.Row(0).ID)
	sel.SelectRow(store.Row(1).ID)

	cmd := BuildPaste("A", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, "A", store.Row(1).Get("x"))
	assert.Equal(t, "y-1", store.Row(1).Get("y"))
	assert.Equal(t, "z-1", store.Row(1).Get("z"))
}

// ============================================================================
// Row-range
// ============================================================================

// TestRowRange_AnchorsAtLowestSelectedRow tests block paste from the smallest position
func TestRowRange_AnchorsAtLowestSelectedRow(t *testing.T) {
	columns := []string{"x", "y"}
	store := testStore(4, columns)
	sel := NewSelection()
	// Selection order is irrelevant; position 1 is the anchor.
	sel.SelectRow(store.Row(3).ID)
	sel.SelectRow(store.Row(1).ID)

	cmd := BuildPaste("A\tB\nC\tD", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &rowRangeCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "A", store.Row(1).Get("x"))
	assert.Equal(t, "B", store.Row(1).Get("y"))
	assert.Equal(t, "C", store.Row(2).Get("x"))
	assert.Equal(t, "D", store.Row(2).Get("y"))
	// Row 0 and row 3 untouched.
	assert.Equal(t, "x-0", store.Row(0).Get("x"))
	assert.Equal(t, "x-3", store.Row(3).Get("x"))
}

// TestRowRange_SingleRowSingleTarget tests one pasted row into one selected row
func TestRowRange_SingleRowSingleTarget(t *testing.T) {
	columns := []string{"x", "y"}
	store := testStore(3, columns)
	sel := NewSelection()
	sel.SelectRow(store.Row(2).ID)

	cmd := BuildPaste("A\tB", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &rowRangeCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "A", store.Row(2).Get("x"))
	assert.Equal(t, "x-1", store.Row(1).Get("x"))
}

// TestRowRange_ClipsAtEndOfStore tests pasting past the end never appends rows
func TestRowRange_ClipsAtEndOfStore(t *testing.T) {
	columns := []string{"x"}
	store := testStore(5, columns)
	sel := NewSelection()
	sel.SelectRow(store.Row(3).ID)

	// Ten pasted rows anchored at position 3: only rows 3 and 4 change.
	cmd := BuildPaste("a\nb\nc\nd\ne\nf\ng\nh\ni\nj", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, 5, store.Len())
	assert.Equal(t, "a", store.Row(3).Get("x"))
	assert.Equal(t, "b", store.Row(4).Get("x"))
	assert.Equal(t, "x-2", store.Row(2).Get("x"))
}

// TestRowRange_Undo tests undo restores only the clipped writes
func TestRowRange_Undo(t *testing.T) {
	columns := []string{"x"}
	store := testStore(3, columns)
	sel := NewSelection()
	sel.SelectRow(store.Row(2).ID)
	before := store.Snapshot()

	cmd := BuildPaste("A\nB\nC", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()
	cmd.Undo()

	assert.Equal(t, before, store.Snapshot())
}

// ============================================================================
// Cell-fill
// ============================================================================

// TestCellFill_WritesLiteralIntoEverySelectedCell tests single-value fill paste
func TestCellFill_WritesLiteralIntoEverySelectedCell(t *testing.T) {
	store := testStore(3, testColumns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "task"})
	sel.SelectCell(CellRef{RowID: store.Row(1).ID, ColumnID: "notes"})
	sel.SelectCell(CellRef{RowID: store.Row(2).ID, ColumnID: "task"})
	before := store.Snapshot()

	cmd := BuildPaste("8", sel, store, testColumns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &cellFillCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "8", store.Row(0).Get("task"))
	assert.Equal(t, "8", store.Row(1).Get("notes"))
	assert.Equal(t, "8", store.Row(2).Get("task"))

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestCellFill_TimeValueSourceStaysLiteral tests fill from the derived column copies text only
func TestCellFill_TimeValueSourceStaysLiteral(t *testing.T) {
	store := testStore(5, testColumns)
	copySel := NewSelection()
	copySel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: TimeValueColumn})
	var copied CopiedColumns
	text, ok := Serialize(copySel, store, testColumns, &copied)
	require.True(t, ok)
	require.True(t, copied.OnlyTimeValue())

	pasteSel := NewSelection()
	for i := 1; i < 5; i++ {
		pasteSel.SelectCell(CellRef{RowID: store.Row(i).ID, ColumnID: "notes"})
	}
	before := store.Snapshot()

	cmd := BuildPaste(text, pasteSel, store, testColumns, &copied)
	require.NotNil(t, cmd)
	fill, isFill := cmd.(*cellFillCommand)
	require.True(t, isFill)
	// The detection flag is recorded but never alters the written value.
	assert.True(t, fill.copiedFromTimeValue)
	cmd.Execute()

	for i := 1; i < 5; i++ {
		assert.Equal(t, "timeValue-0", store.Row(i).Get("notes"))
	}

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestCellFill_SkipsRowNumCells tests rowNum cells inside a fill selection are skipped
func TestCellFill_SkipsRowNumCells(t *testing.T) {
	store := testStore(2, testColumns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "task"})
	sel.SelectCell(CellRef{RowID: store.Row(1).ID, ColumnID: RowNumColumn})

	cmd := BuildPaste("v", sel, store, testColumns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, "v", store.Row(0).Get("task"))
	assert.Equal(t, "", store.Row(1).Get(RowNumColumn))
}

// ============================================================================
// Cell-range
// ============================================================================

// TestCellRange_PastesGridFromAnchor tests a block paste at the first selected cell
func TestCellRange_PastesGridFromAnchor(t *testing.T) {
	columns := []string{"a", "b", "c"}
	store := testStore(3, columns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "b"})
	before := store.Snapshot()

	cmd := BuildPaste("1\t2\n3\t4", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &cellRangeCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "1", store.Row(0).Get("b"))
	assert.Equal(t, "2", store.Row(0).Get("c"))
	assert.Equal(t, "3", store.Row(1).Get("b"))
	assert.Equal(t, "4", store.Row(1).Get("c"))
	assert.Equal(t, "a-0", store.Row(0).Get("a"))

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestCellRange_SingleValueSingleCell tests one value into one selected cell
func TestCellRange_SingleValueSingleCell(t *testing.T) {
	columns := []string{"a", "b"}
	store := testStore(2, columns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(1).ID, ColumnID: "a"})

	cmd := BuildPaste("solo", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &cellRangeCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "solo", store.Row(1).Get("a"))
}

// TestCellRange_ClipsColumns tests offsets past the column list are skipped
func TestCellRange_ClipsColumns(t *testing.T) {
	columns := []string{"a", "b", "c"}
	store := testStore(2, columns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "c"})
	before := store.Snapshot()

	cmd := BuildPaste("1\t2\t3", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, "1", store.Row(0).Get("c"))
	// Offsets past "c" land outside the column list: no change anywhere.
	assert.Equal(t, "a-0", store.Row(0).Get("a"))
	assert.Equal(t, "b-0", store.Row(0).Get("b"))

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestCellRange_ClipsRows tests offsets past the store are skipped
func TestCellRange_ClipsRows(t *testing.T) {
	columns := []string{"a"}
	store := testStore(2, columns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(1).ID, ColumnID: "a"})

	cmd := BuildPaste("1\n2\n3", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	cmd.Execute()

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "1", store.Row(1).Get("a"))
	assert.Equal(t, "a-0", store.Row(0).Get("a"))
}

// TestCellRange_AnchorIsFirstSelectedCell tests insertion order decides the anchor
func TestCellRange_AnchorIsFirstSelectedCell(t *testing.T) {
	columns := []string{"a", "b"}
	store := testStore(3, columns)
	sel := NewSelection()
	sel.SelectCell(CellRef{RowID: store.Row(2).ID, ColumnID: "a"})
	sel.SelectCell(CellRef{RowID: store.Row(0).ID, ColumnID: "a"})

	// Multi-cell payload: cell-range anchored at the first selected cell.
	cmd := BuildPaste("1\t2", sel, store, columns, &CopiedColumns{})
	require.NotNil(t, cmd)
	require.IsType(t, &cellRangeCommand{}, cmd)
	cmd.Execute()

	assert.Equal(t, "1", store.Row(2).Get("a"))
	assert.Equal(t, "2", store.Row(2).Get("b"))
	assert.Equal(t, "a-0", store.Row(0).Get("a"))
}

// ============================================================================
// Cell edit
// ============================================================================

// TestBuildCellEdit_UndoableSingleWrite tests an edit commit round-trips
func TestBuildCellEdit_UndoableSingleWrite(t *testing.T) {
	store := testStore(2, testColumns)
	ref := CellRef{RowID: store.Row(0).ID, ColumnID: "notes"}
	before := store.Snapshot()

	cmd := BuildCellEdit(store, ref, "changed")
	require.NotNil(t, cmd)
	cmd.Execute()
	assert.Equal(t, "changed", store.Row(0).Get("notes"))

	cmd.Undo()
	assert.Equal(t, before, store.Snapshot())
}

// TestBuildCellEdit_NoOps tests unchanged value, missing row, and rowNum column
func TestBuildCellEdit_NoOps(t *testing.T) {
	store := testStore(1, testColumns)
	id := store.Row(0).ID

	assert.Nil(t, BuildCellEdit(store, CellRef{RowID: id, ColumnID: "task"}, "task-0"))
	assert.Nil(t, BuildCellEdit(store, CellRef{RowID: "gone", ColumnID: "task"}, "x"))
	assert.Nil(t, BuildCellEdit(store, CellRef{RowID: id, ColumnID: RowNumColumn}, "x"))
}
