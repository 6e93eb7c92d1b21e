package testutil

import (
	"time"

	"daysheet/internal/sheet"
)

// RowOption configures the cells of a row being built.
type RowOption func(cells map[string]string)

// Task sets the task cell.
func Task(value string) RowOption {
	return func(cells map[string]string) { cells["task"] = value }
}

// Notes sets the notes cell.
func Notes(value string) RowOption {
	return func(cells map[string]string) { cells["notes"] = value }
}

// Day sets the cell for the day column of the given date.
func Day(date time.Time, value string) RowOption {
	return func(cells map[string]string) { cells[sheet.DayColumnID(date)] = value }
}

// TimeValue sets a literal time value, overriding the derived total.
func TimeValue(value string) RowOption {
	return func(cells map[string]string) { cells[sheet.TimeValueColumn] = value }
}

// Cell sets an arbitrary column.
func Cell(column, value string) RowOption {
	return func(cells map[string]string) { cells[column] = value }
}
