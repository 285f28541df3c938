package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Tab       key.Binding
	Enter     key.Binding
	Capture   key.Binding
	Favorite  key.Binding
	Delete    key.Binding
	Rename    key.Binding
	NewFolder key.Binding
	Clear     key.Binding
	Theme     key.Binding
	Filter    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left pane")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right pane")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:     key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter/y", "copy clip")),
	Capture:   key.NewBinding(key.WithKeys("a", "p"), key.WithHelp("a/p", "capture clipboard")),
	Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
	Delete:    key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
	Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	NewFolder: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
	Clear:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear scope")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
