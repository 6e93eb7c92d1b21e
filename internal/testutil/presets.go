package testutil

// WithStandardWeek adds a small, representative week: two tracked tasks
// with hours on the first two days and one empty planning row.
func (b *Builder) WithStandardWeek() *Builder {
	mon := b.week
	tue := b.week.AddDate(0, 0, 1)

	return b.
		WithRow(Task("Fix login bug"), Notes("auth"), Day(mon, "2"), Day(tue, "1.5")).
		WithRow(Task("Add search feature"), Day(tue, "4")).
		WithRow()
}
