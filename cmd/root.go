package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"daysheet/internal/app"
	"daysheet/internal/config"
	"daysheet/internal/infrastructure/sqlite"
	"daysheet/internal/log"
	"daysheet/internal/mode"
	"daysheet/internal/mode/shared"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "daysheet",
	Short:   "A terminal ui for weekly time sheets",
	Long:    `A terminal user interface for editing weekly time sheets as a grid, with spreadsheet-style copy, paste and undo.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/daysheet/config.yaml)")
	rootCmd.Flags().StringP("db", "d", "",
		"path to the sheet database file")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic reload when the database changes")
	rootCmd.Flags().Bool("debug", false,
		"enable debug logging to daysheet-debug.log")
	rootCmd.Flags().String("week", "",
		"week to open, as any date inside it (YYYY-MM-DD)")

	_ = viper.BindPFlag("db_path", rootCmd.Flags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("ui.show_row_numbers", defaults.UI.ShowRowNumbers)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.selection", defaults.Theme.Selection)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .daysheet/config.yaml (current directory)
		// 2. ~/.config/daysheet/config.yaml (user config)
		if _, err := os.Stat(".daysheet/config.yaml"); err == nil {
			viper.SetConfigFile(".daysheet/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "daysheet"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at
		// ~/.config/daysheet/config.yaml.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "daysheet", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.InitWithTeaLog("daysheet-debug.log", "daysheet")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening sheet database: %w", err)
	}
	defer db.Close()

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	day := time.Now()
	if weekFlag, _ := cmd.Flags().GetString("week"); weekFlag != "" {
		day, err = time.Parse("2006-01-02", weekFlag)
		if err != nil {
			return fmt.Errorf("parsing --week: %w", err)
		}
	}

	// Store the config file path for saving column width changes
	configFilePath := viper.ConfigFileUsed()

	services := mode.Services{
		Repo:       sqlite.NewSheetRepository(db),
		Clipboard:  shared.SystemClipboard{},
		Config:     &cfg,
		ConfigPath: configFilePath,
		DBPath:     dbPath,
	}

	zone.NewGlobal()

	model, err := app.New(services, day)
	if err != nil {
		return fmt.Errorf("loading sheet: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
