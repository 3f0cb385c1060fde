package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings shared by the list and detail screens
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchTab  key.Binding
	Toggle     key.Binding
	Reset      key.Binding
	New        key.Binding
	Rename     key.Binding
	Open       key.Binding
	MarkDelete key.Binding
	Delete     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchTab:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "stopwatches/timers")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Rename:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		MarkDelete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "select for delete")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.New, k.Rename, k.Open, k.MarkDelete, k.SwitchTab, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchTab, k.Open},
		{k.Toggle, k.Reset, k.New, k.Rename},
		{k.MarkDelete, k.Delete, k.Back, k.Quit},
	}
}

// deleteModeKeys is the help shown while rows are being selected for deletion
type deleteModeKeys struct{ keyMap }

func (k deleteModeKeys) ShortHelp() []key.Binding {
	toggle := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark/unmark"))
	return []key.Binding{k.Up, k.Down, toggle, k.Delete, k.Back}
}

// detailKeys is the help shown on a detail screen
type detailKeys struct{ keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Rename, k.Delete, k.Back, k.Quit}
}
