// Package testutil provides test utilities for sheet database setup.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"daysheet/internal/infrastructure/sqlite"
)

// NewTestDB creates a migrated sheet database in a temp directory. The
// database is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "daysheet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestRepo creates a sheet repository over a fresh test database.
func NewTestRepo(t *testing.T) *sqlite.SheetRepository {
	t.Helper()
	return sqlite.NewSheetRepository(NewTestDB(t))
}
