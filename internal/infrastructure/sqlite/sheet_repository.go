package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"daysheet/internal/sheet"
)

// weekKeyLayout is the canonical week_start form, always the Monday.
const weekKeyLayout = "2006-01-02"

// SheetRepository loads and saves week sheets. Saving replaces the whole
// sheet in one transaction; the engine's undo history is never persisted.
type SheetRepository struct {
	db *DB
}

// NewSheetRepository creates a repository over the given database.
func NewSheetRepository(db *DB) *SheetRepository {
	return &SheetRepository{db: db}
}

// LoadWeek returns the stored rows for the week containing weekStart, in
// position order. A week with no stored sheet yields an empty store.
func (r *SheetRepository) LoadWeek(weekStart time.Time) (*sheet.Store, error) {
	key := weekKey(weekStart)

	var sheetID int64
	err := r.db.conn.QueryRow(
		`SELECT id FROM sheets WHERE week_start = ?`, key,
	).Scan(&sheetID)
	if err == sql.ErrNoRows {
		return sheet.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading sheet %s: %w", key, err)
	}

	rows, err := r.db.conn.Query(
		`SELECT r.id, c.column_id, c.value
		 FROM sheet_rows r
		 LEFT JOIN sheet_cells c ON c.row_id = r.id
		 WHERE r.sheet_id = ?
		 ORDER BY r.position`, sheetID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading rows for sheet %s: %w", key, err)
	}
	defer rows.Close()

	store := sheet.NewStore()
	var current *sheet.Row
	for rows.Next() {
		var rowID string
		var columnID, value sql.NullString
		if err := rows.Scan(&rowID, &columnID, &value); err != nil {
			return nil, fmt.Errorf("scanning row for sheet %s: %w", key, err)
		}
		if current == nil || current.ID != rowID {
			if current != nil {
				store.Append(*current)
			}
			current = &sheet.Row{ID: rowID, Cells: make(map[string]string)}
		}
		if columnID.Valid {
			current.Cells[columnID.String] = value.String
		}
	}
	if current != nil {
		store.Append(*current)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows for sheet %s: %w", key, err)
	}
	return store, nil
}

// SaveWeek persists the store as the sheet for the given week, replacing
// any previous contents in a single transaction.
func (r *SheetRepository) SaveWeek(weekStart time.Time, store *sheet.Store) error {
	key := weekKey(weekStart)
	now := time.Now().Unix()

	tx, err := r.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting save for sheet %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO sheets (week_start, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(week_start) DO UPDATE SET updated_at = excluded.updated_at`,
		key, now, now,
	); err != nil {
		return fmt.Errorf("upserting sheet %s: %w", key, err)
	}

	var sheetID int64
	if err := tx.QueryRow(
		`SELECT id FROM sheets WHERE week_start = ?`, key,
	).Scan(&sheetID); err != nil {
		return fmt.Errorf("resolving sheet %s: %w", key, err)
	}

	// Whole-sheet replacement keeps positions dense and drops deleted rows.
	if _, err := tx.Exec(
		`DELETE FROM sheet_cells WHERE row_id IN (SELECT id FROM sheet_rows WHERE sheet_id = ?)`,
		sheetID,
	); err != nil {
		return fmt.Errorf("clearing cells for sheet %s: %w", key, err)
	}
	if _, err := tx.Exec(`DELETE FROM sheet_rows WHERE sheet_id = ?`, sheetID); err != nil {
		return fmt.Errorf("clearing rows for sheet %s: %w", key, err)
	}

	for position, row := range store.Rows() {
		if _, err := tx.Exec(
			`INSERT INTO sheet_rows (id, sheet_id, position) VALUES (?, ?, ?)`,
			row.ID, sheetID, position,
		); err != nil {
			return fmt.Errorf("inserting row %s: %w", row.ID, err)
		}
		for columnID, value := range row.Cells {
			if value == "" {
				continue // absent and empty are the same value
			}
			if _, err := tx.Exec(
				`INSERT INTO sheet_cells (row_id, column_id, value) VALUES (?, ?, ?)`,
				row.ID, columnID, value,
			); err != nil {
				return fmt.Errorf("inserting cell %s/%s: %w", row.ID, columnID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sheet %s: %w", key, err)
	}
	return nil
}

// Weeks lists the stored week keys, most recent first.
func (r *SheetRepository) Weeks() ([]time.Time, error) {
	rows, err := r.db.conn.Query(`SELECT week_start FROM sheets ORDER BY week_start DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	defer rows.Close()

	var weeks []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		t, err := time.Parse(weekKeyLayout, key)
		if err != nil {
			return nil, fmt.Errorf("parsing week %q: %w", key, err)
		}
		weeks = append(weeks, t)
	}
	return weeks, rows.Err()
}

// weekKey normalizes any day inside a week to its Monday key.
func weekKey(t time.Time) string {
	return sheet.WeekStart(t).Format(weekKeyLayout)
}
