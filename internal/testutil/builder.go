package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daysheet/internal/infrastructure/sqlite"
	"daysheet/internal/sheet"
)

// Builder accumulates sheet rows and persists them as one week.
type Builder struct {
	t    *testing.T
	repo *sqlite.SheetRepository
	week time.Time
	rows []sheet.Row
}

// NewBuilder creates a builder targeting the week containing day.
func NewBuilder(t *testing.T, repo *sqlite.SheetRepository, day time.Time) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo, week: day}
}

// WithRow adds a row with optional cell configuration.
func (b *Builder) WithRow(opts ...RowOption) *Builder {
	cells := map[string]string{}
	for _, opt := range opts {
		opt(cells)
	}
	b.rows = append(b.rows, sheet.NewRowWithCells(cells))
	return b
}

// Build saves the accumulated rows and returns the loaded store.
func (b *Builder) Build() *sheet.Store {
	b.t.Helper()

	store := sheet.NewStore(b.rows...)
	require.NoError(b.t, b.repo.SaveWeek(b.week, store))

	loaded, err := b.repo.LoadWeek(b.week)
	require.NoError(b.t, err)
	return loaded
}
