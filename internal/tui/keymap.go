package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Save        key.Binding
	Quit        key.Binding
	Push        key.Binding
	Pull        key.Binding
	Recent      key.Binding
	Distraction key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Push, k.Pull, k.Recent, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit},
		{k.Push, k.Pull},
		{k.Recent, k.Distraction},
	}
}

var defaultKeys = keyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "ctrl+c"),
		key.WithHelp("ctrl+q", "quit"),
	),
	Push: key.NewBinding(
		key.WithKeys("alt+g"),
		key.WithHelp("alt+g", "git push"),
	),
	Pull: key.NewBinding(
		key.WithKeys("alt+h"),
		key.WithHelp("alt+h", "git pull"),
	),
	Recent: key.NewBinding(
		key.WithKeys("f5"),
		key.WithHelp("f5", "recent files"),
	),
	Distraction: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "focus mode"),
	),
}

type recentKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Cancel key.Binding
}

func (k recentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Cancel}
}

func (k recentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Open, k.Cancel}}
}

var defaultRecentKeys = recentKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
