package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart_NormalizesToMonday(t *testing.T) {
	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, mon, WeekStart(mon.AddDate(0, 0, i)))
	}
}

// TestWeekStart_EarlyLocalMondayEastOfUTC tests that day boundaries come
// from the time's own zone. East of UTC, the first hours of local Monday
// are still Sunday in UTC and must not fall into the previous week.
func TestWeekStart_EarlyLocalMondayEastOfUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	early := time.Date(2026, 8, 24, 0, 30, 0, 0, zone)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, zone), WeekStart(early))

	lateSunday := time.Date(2026, 8, 23, 23, 30, 0, 0, zone)
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, zone), WeekStart(lateSunday))
}

// TestWeekColumns_MondayStart tests the week runs Monday through Sunday
func TestWeekColumns_MondayStart(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	wed := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	cols := WeekColumns(wed)

	require.Len(t, cols, 7)
	assert.Equal(t, "day:2026-08-24", cols[0])
	assert.Equal(t, "day:2026-08-30", cols[6])
}

// TestColumnIDs_Ordering tests static columns, days, then timeValue
func TestColumnIDs_Ordering(t *testing.T) {
	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	ids := ColumnIDs(mon)

	require.Len(t, ids, len(StaticColumns)+8)
	assert.Equal(t, "task", ids[0])
	assert.Equal(t, "notes", ids[1])
	assert.Equal(t, "day:2026-08-24", ids[2])
	assert.Equal(t, TimeValueColumn, ids[len(ids)-1])
	assert.NotContains(t, ids, RowNumColumn)
}

// TestDayColumnDate_RoundTrip tests id parsing
func TestDayColumnDate_RoundTrip(t *testing.T) {
	d := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	id := DayColumnID(d)
	assert.True(t, IsDayColumn(id))

	got, ok := DayColumnDate(id)
	require.True(t, ok)
	assert.True(t, got.Equal(d))

	_, ok = DayColumnDate("task")
	assert.False(t, ok)
	_, ok = DayColumnDate("day:not-a-date")
	assert.False(t, ok)
}

// TestDerivedTimeValue tests summing numeric day cells
func TestDerivedTimeValue(t *testing.T) {
	days := []string{"day:2026-08-24", "day:2026-08-25", "day:2026-08-26"}
	row := NewRowWithCells(map[string]string{
		"day:2026-08-24": "1.5",
		"day:2026-08-25": "lunch",
		"day:2026-08-26": "2",
	})

	assert.Equal(t, "3.5", DerivedTimeValue(row, days))
	assert.Equal(t, "", DerivedTimeValue(NewRow(), days))
}
