package sheetmode

import (
	"github.com/charmbracelet/lipgloss"

	"daysheet/internal/config"
)

// styles holds the lipgloss styles for the grid, built from the theme.
type styles struct {
	header      lipgloss.Style
	rowNum      lipgloss.Style
	cell        lipgloss.Style
	cursor      lipgloss.Style
	selected    lipgloss.Style
	editing     lipgloss.Style
	derived     lipgloss.Style
	status      lipgloss.Style
	statusError lipgloss.Style
	help        lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	highlight := lipgloss.Color(cfg.Theme.Highlight)
	selection := lipgloss.Color(cfg.Theme.Selection)
	subtle := lipgloss.Color(cfg.Theme.Subtle)
	errColor := lipgloss.Color(cfg.Theme.Error)

	return styles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(highlight),
		rowNum:      lipgloss.NewStyle().Foreground(subtle),
		cell:        lipgloss.NewStyle(),
		cursor:      lipgloss.NewStyle().Reverse(true),
		selected:    lipgloss.NewStyle().Background(selection),
		editing:     lipgloss.NewStyle().Underline(true),
		derived:     lipgloss.NewStyle().Foreground(subtle).Italic(true),
		status:      lipgloss.NewStyle().Foreground(subtle),
		statusError: lipgloss.NewStyle().Foreground(errColor).Bold(true),
		help:        lipgloss.NewStyle().Foreground(subtle),
	}
}
