package app

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daysheet/internal/config"
	"daysheet/internal/infrastructure/sqlite"
	"daysheet/internal/mode"
	"daysheet/internal/mode/shared"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	m.Run()
}

func newTestApp(t *testing.T, autoRefresh bool) Model {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "daysheet.db")
	db, err := sqlite.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Defaults()
	cfg.AutoRefresh = autoRefresh

	services := mode.Services{
		Repo:      sqlite.NewSheetRepository(db),
		Clipboard: &shared.MockClipboard{},
		Config:    &cfg,
		DBPath:    dbPath,
	}

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	m, err := New(services, day)
	require.NoError(t, err)
	return m
}

func TestNewWithoutAutoRefreshHasNoWatcher(t *testing.T) {
	m := newTestApp(t, false)
	assert.Nil(t, m.watcherHandle)
	assert.Nil(t, m.watcherListener)
}

func TestNewWithAutoRefreshStartsWatcher(t *testing.T) {
	m := newTestApp(t, true)
	require.NotNil(t, m.watcherHandle)
	require.NotNil(t, m.watcherListener)
	m.shutdown()
}

func TestWindowSizeIsForwardedToSheetMode(t *testing.T) {
	m := newTestApp(t, false)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.NotEmpty(t, m.View())
}

func TestKeyMessagesReachSheetMode(t *testing.T) {
	m := newTestApp(t, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "Task")
}
