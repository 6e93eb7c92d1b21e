// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	SelectRow    key.Binding
	SelectCell   key.Binding
	ClearSelect  key.Binding
	SelectAllRow key.Binding

	// Editing
	Edit    key.Binding
	AddRow  key.Binding
	Copy    key.Binding
	Paste   key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Save    key.Binding
	Refresh key.Binding

	// Column widths
	NarrowColumn key.Binding
	WidenColumn  key.Binding

	// Week navigation
	NextWeek key.Binding
	PrevWeek key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "move right"),
		),

		SelectRow: key.NewBinding(
			key.WithKeys("V", "shift+v"),
			key.WithHelp("V", "select row"),
		),
		SelectCell: key.NewBinding(
			key.WithKeys("v", " "),
			key.WithHelp("v/space", "select cell"),
		),
		ClearSelect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		SelectAllRow: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all rows"),
		),

		Edit: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "edit cell"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "add row"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "ctrl+c"),
			key.WithHelp("y", "copy selection"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p", "ctrl+v"),
			key.WithHelp("p", "paste"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save sheet"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload sheet"),
		),

		NarrowColumn: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "narrow column"),
		),
		WidenColumn: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "widen column"),
		),

		NextWeek: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next week"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous week"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+q"),
			key.WithHelp("q", "quit"),
		),
	}
}
