// Package config provides configuration types, defaults, and persistence
// for daysheet.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"daysheet/internal/log"
)

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowRowNumbers bool `mapstructure:"show_row_numbers"` // Render the synthetic rowNum column
	ShowStatusBar  bool `mapstructure:"show_status_bar"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"` // hex color for the cursor cell
	Selection string `mapstructure:"selection"` // hex color for selected rows/cells
	Subtle    string `mapstructure:"subtle"`    // hex color for chrome and row numbers
	Error     string `mapstructure:"error"`     // hex color for error toasts
	Success   string `mapstructure:"success"`   // hex color for confirmation toasts
}

// Config holds all configuration options for daysheet.
type Config struct {
	DBPath              string         `mapstructure:"db_path"`
	AutoRefresh         bool           `mapstructure:"auto_refresh"`
	AutoRefreshDebounce int            `mapstructure:"auto_refresh_debounce"` // milliseconds
	UI                  UIConfig       `mapstructure:"ui"`
	Theme               ThemeConfig    `mapstructure:"theme"`
	ColumnWidths        map[string]int `mapstructure:"column_widths"` // column id -> display width
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		AutoRefresh:         true,
		AutoRefreshDebounce: 1000,
		UI: UIConfig{
			ShowRowNumbers: true,
			ShowStatusBar:  true,
		},
		Theme: ThemeConfig{
			Highlight: "#7D56F4",
			Selection: "#3B3B60",
			Subtle:    "#6B6B6B",
			Error:     "#EF4444",
			Success:   "#10B981",
		},
		ColumnWidths: map[string]int{},
	}
}

// Validate checks the configuration for errors. Empty values use defaults.
func Validate(cfg Config) error {
	if cfg.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must be >= 0, got %d", cfg.AutoRefreshDebounce)
	}
	for col, width := range cfg.ColumnWidths {
		if width <= 0 {
			return fmt.Errorf("column_widths.%s must be > 0, got %d", col, width)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the commented starter config file.
func DefaultConfigTemplate() string {
	return `# daysheet configuration
# Path to the sheet database. Defaults to ~/.local/share/daysheet/daysheet.db.
# db_path: ""

# Reload the sheet automatically when the database changes on disk.
auto_refresh: true
auto_refresh_debounce: 1000

ui:
  show_row_numbers: true
  show_status_bar: true

theme:
  highlight: "#7D56F4"
  selection: "#3B3B60"
  subtle: "#6B6B6B"
  error: "#EF4444"
  success: "#10B981"

# Per-column display widths, managed by the app ('<' and '>' in the grid).
column_widths: {}
`
}

// WriteDefaultConfig creates a default config file at the given path.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// DefaultDBPath returns the default location of the sheet database.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daysheet.db"
	}
	return filepath.Join(home, ".local", "share", "daysheet", "daysheet.db")
}
