// Package sheet implements the day-planner grid model: the ordered row
// store, the selection model, and the copy/paste command engine that turns
// selections into TSV clipboard payloads and pasted payloads into
// reversible Commands over the store.
package sheet

import (
	"github.com/google/uuid"
)

// Row is a single plan entry: a stable identifier plus a mapping from
// column id to cell value. A missing column id reads as the empty string.
// Rows are never mutated in place; all writes go through whole-row
// replacement on the Store so previous render snapshots stay valid.
type Row struct {
	ID    string
	Cells map[string]string
}

// NewRow creates an empty row with a fresh identifier.
func NewRow() Row {
	return Row{
		ID:    uuid.NewString(),
		Cells: make(map[string]string),
	}
}

// NewRowWithCells creates a row with a fresh identifier and the given cells.
// The map is copied.
func NewRowWithCells(cells map[string]string) Row {
	r := NewRow()
	for k, v := range cells {
		r.Cells[k] = v
	}
	return r
}

// Get returns the value for a column id, or "" when absent.
func (r Row) Get(column string) string {
	return r.Cells[column]
}

// withCells returns a copy of the row with the overlay values applied.
// The original cell map is left untouched.
func (r Row) withCells(overlay map[string]string) Row {
	cells := make(map[string]string, len(r.Cells)+len(overlay))
	for k, v := range r.Cells {
		cells[k] = v
	}
	for k, v := range overlay {
		cells[k] = v
	}
	return Row{ID: r.ID, Cells: cells}
}

// Store is an ordered sequence of rows addressed by position or by id.
// It is owned by a single goroutine (the UI event loop); the engine reads
// it to capture undo state and writes to it only through whole-row
// replacement inside Command.Execute/Undo.
type Store struct {
	rows []Row
	byID map[string]int
}

// NewStore creates a store containing the given rows in order.
func NewStore(rows ...Row) *Store {
	s := &Store{
		rows: make([]Row, 0, len(rows)),
		byID: make(map[string]int, len(rows)),
	}
	for _, r := range rows {
		s.Append(r)
	}
	return s
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Row returns the row at the given position. Callers must not mutate the
// returned cell map.
func (s *Store) Row(i int) Row {
	return s.rows[i]
}

// Rows returns the rows in store order. The slice is a copy; the rows
// (and their cell maps) are shared and must be treated as read-only.
func (s *Store) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// IndexOf returns the position of the row with the given id, or -1.
func (s *Store) IndexOf(id string) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// Append adds a row at the end of the store.
func (s *Store) Append(r Row) {
	if r.Cells == nil {
		r.Cells = make(map[string]string)
	}
	s.byID[r.ID] = len(s.rows)
	s.rows = append(s.rows, r)
}

// Remove deletes the row at the given position.
func (s *Store) Remove(i int) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	delete(s.byID, s.rows[i].ID)
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	for j := i; j < len(s.rows); j++ {
		s.byID[s.rows[j].ID] = j
	}
}

// setCells replaces the row at position i with a copy carrying the overlay
// values. This is the only mutation path used by Commands.
func (s *Store) setCells(i int, overlay map[string]string) {
	if i < 0 || i >= len(s.rows) || len(overlay) == 0 {
		return
	}
	s.rows[i] = s.rows[i].withCells(overlay)
}

// Snapshot returns a deep copy of every row, for comparing store state
// across execute/undo cycles.
func (s *Store) Snapshot() []Row {
	out := make([]Row, len(s.rows))
	for i, r := range s.rows {
		cells := make(map[string]string, len(r.Cells))
		for k, v := range r.Cells {
			cells[k] = v
		}
		out[i] = Row{ID: r.ID, Cells: cells}
	}
	return out
}
