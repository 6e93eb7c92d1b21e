// Package app contains the root application model.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"daysheet/internal/log"
	"daysheet/internal/mode"
	sheetmode "daysheet/internal/mode/sheet"
	"daysheet/internal/pubsub"
	"daysheet/internal/watcher"
)

// Model is the root application state. It owns the watcher lifecycle and
// delegates everything else to the sheet mode controller.
type Model struct {
	sheet    mode.Controller
	services mode.Services

	width  int
	height int

	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.ChangeEvent]
}

// New creates the application model showing the week that contains day.
// Watcher init errors are swallowed: the app works without auto-refresh.
func New(services mode.Services, day time.Time) (Model, error) {
	sheet, err := sheetmode.New(services, day)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sheet:    sheet,
		services: services,
	}

	if services.Config.AutoRefresh && services.DBPath != "" {
		debounce := time.Duration(services.Config.AutoRefreshDebounce) * time.Millisecond
		cfg := watcher.DefaultConfig(services.DBPath)
		if debounce > 0 {
			cfg.DebounceDur = debounce
		}
		if w, err := watcher.New(cfg); err == nil {
			if err := w.Start(); err == nil {
				ctx, cancel := context.WithCancel(context.Background())
				m.watcherHandle = w
				m.watcherCancel = cancel
				m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sheet.Init()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sheet = m.sheet.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.QuitMsg:
		m.shutdown()
		return m, tea.Quit

	case pubsub.Event[watcher.ChangeEvent]:
		log.Debug(log.CatWatcher, "database changed on disk", "path", msg.Payload.Path)
		var cmd tea.Cmd
		if sm, ok := m.sheet.(sheetmode.Model); ok {
			var reloadCmd tea.Cmd
			sm, reloadCmd = sm.Reload()
			m.sheet = sm
			cmd = reloadCmd
		}
		return m, tea.Batch(cmd, m.watcherListener.Listen())
	}

	var cmd tea.Cmd
	m.sheet, cmd = m.sheet.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return zone.Scan(m.sheet.View())
}

// shutdown stops the watcher and its listener.
func (m *Model) shutdown() {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
}
