package sheet

import "strings"

// Reserved column ids.
const (
	// RowNumColumn is the synthetic row-number column rendered by the grid.
	// It never participates in copy or paste and is never part of the
	// store's column ordering.
	RowNumColumn = "rowNum"

	// TimeValueColumn is the derived total-time column. The engine only
	// ever reads and writes its literal stored value; the displayed value
	// may be computed elsewhere.
	TimeValueColumn = "timeValue"
)

// CellRef identifies a single cell by row id and column id.
type CellRef struct {
	RowID    string
	ColumnID string
}

// Key returns the composite "rowId|columnId" form used by the UI layer.
func (c CellRef) Key() string {
	return c.RowID + "|" + c.ColumnID
}

// ParseCellKey parses a composite "rowId|columnId" key.
func ParseCellKey(key string) (CellRef, bool) {
	i := strings.LastIndex(key, "|")
	if i <= 0 || i == len(key)-1 {
		return CellRef{}, false
	}
	return CellRef{RowID: key[:i], ColumnID: key[i+1:]}, true
}

// Selection is the engine's view of what the user has selected: a set of
// whole rows, an insertion-ordered set of cells, and the cell being edited
// (if any). Cell insertion order is significant — the first selected cell
// anchors range pastes — so an unordered set must never be substituted.
type Selection struct {
	rows    map[string]struct{}
	cells   []CellRef
	cellSet map[CellRef]struct{}
	editing *CellRef
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{
		rows:    make(map[string]struct{}),
		cellSet: make(map[CellRef]struct{}),
	}
}

// SelectRow adds a row id to the row selection.
func (s *Selection) SelectRow(id string) {
	s.rows[id] = struct{}{}
}

// DeselectRow removes a row id from the row selection.
func (s *Selection) DeselectRow(id string) {
	delete(s.rows, id)
}

// HasRow reports whether the row id is selected.
func (s *Selection) HasRow(id string) bool {
	_, ok := s.rows[id]
	return ok
}

// HasRows reports whether any whole rows are selected. Row selection takes
// priority over cell selection for both copy and paste.
func (s *Selection) HasRows() bool {
	return len(s.rows) > 0
}

// RowIDs returns the selected row ids in unspecified order. Serialization
// and paste targeting re-order them by store position, never by selection
// order.
func (s *Selection) RowIDs() []string {
	out := make([]string, 0, len(s.rows))
	for id := range s.rows {
		out = append(out, id)
	}
	return out
}

// SelectCell adds a cell to the selection, preserving insertion order.
// Re-selecting an already-selected cell is a no-op and does not move it.
func (s *Selection) SelectCell(ref CellRef) {
	if _, ok := s.cellSet[ref]; ok {
		return
	}
	s.cellSet[ref] = struct{}{}
	s.cells = append(s.cells, ref)
}

// DeselectCell removes a cell from the selection.
func (s *Selection) DeselectCell(ref CellRef) {
	if _, ok := s.cellSet[ref]; !ok {
		return
	}
	delete(s.cellSet, ref)
	for i, c := range s.cells {
		if c == ref {
			s.cells = append(s.cells[:i], s.cells[i+1:]...)
			break
		}
	}
}

// HasCell reports whether the cell is selected.
func (s *Selection) HasCell(ref CellRef) bool {
	_, ok := s.cellSet[ref]
	return ok
}

// Cells returns the selected cells in insertion order. The first element
// is the anchor for range pastes. Callers must not mutate the slice.
func (s *Selection) Cells() []CellRef {
	return s.cells
}

// Empty reports whether neither rows nor cells are selected.
func (s *Selection) Empty() bool {
	return len(s.rows) == 0 && len(s.cells) == 0
}

// StartEdit marks a cell as being edited. While an edit is in progress
// every copy and paste is a no-op.
func (s *Selection) StartEdit(ref CellRef) {
	c := ref
	s.editing = &c
}

// StopEdit clears the editing marker.
func (s *Selection) StopEdit() {
	s.editing = nil
}

// Editing returns the cell being edited, or nil.
func (s *Selection) Editing() *CellRef {
	return s.editing
}

// Clear resets rows, cells, and the editing marker.
func (s *Selection) Clear() {
	s.rows = make(map[string]struct{})
	s.cells = nil
	s.cellSet = make(map[CellRef]struct{})
	s.editing = nil
}
