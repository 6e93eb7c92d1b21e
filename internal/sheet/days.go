package sheet

import (
	"strconv"
	"strings"
	"time"
)

// Day-column bookkeeping. The grid shows one column per day of the visible
// week between the static columns and the derived timeValue column. Day
// column ids embed the date so sheets for different weeks never collide.

const dayColumnPrefix = "day:"

// dayColumnLayout is the date form embedded in day column ids.
const dayColumnLayout = "2006-01-02"

// StaticColumns are the fixed leading columns of every sheet.
var StaticColumns = []string{"task", "notes"}

// DayColumnID returns the column id for the given date, e.g. "day:2026-08-24".
func DayColumnID(t time.Time) string {
	return dayColumnPrefix + t.Format(dayColumnLayout)
}

// IsDayColumn reports whether the id names a day column.
func IsDayColumn(id string) bool {
	return strings.HasPrefix(id, dayColumnPrefix)
}

// DayColumnDate parses the date out of a day column id.
func DayColumnDate(id string) (time.Time, bool) {
	if !IsDayColumn(id) {
		return time.Time{}, false
	}
	t, err := time.Parse(dayColumnLayout, strings.TrimPrefix(id, dayColumnPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WeekStart returns the Monday of the week containing t, at local midnight.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekColumns returns the seven day column ids for the week containing t,
// starting on Monday.
func WeekColumns(t time.Time) []string {
	monday := WeekStart(t)
	ids := make([]string, 7)
	for i := range ids {
		ids[i] = DayColumnID(monday.AddDate(0, 0, i))
	}
	return ids
}

// ColumnIDs returns the full column ordering for a week: static columns,
// then the seven day columns, then timeValue. This is the ordering used
// for TSV serialization and positional paste mapping. It never contains
// the synthetic row-number column.
func ColumnIDs(weekStart time.Time) []string {
	ids := make([]string, 0, len(StaticColumns)+8)
	ids = append(ids, StaticColumns...)
	ids = append(ids, WeekColumns(weekStart)...)
	ids = append(ids, TimeValueColumn)
	return ids
}

// DerivedTimeValue computes the display fallback for the timeValue column:
// the sum of the row's numeric day cells, formatted without a trailing
// zero fraction. Non-numeric day cells contribute nothing. The engine
// itself never calls this — copy and paste always move the literal stored
// value — it exists for the grid to render when the stored cell is empty.
func DerivedTimeValue(row Row, dayColumns []string) string {
	total := 0.0
	any := false
	for _, col := range dayColumns {
		v := strings.TrimSpace(row.Get(col))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		total += f
		any = true
	}
	if !any {
		return ""
	}
	return strconv.FormatFloat(total, 'f', -1, 64)
}
