package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pick    key.Binding
	Next    key.Binding
	Bag     key.Binding
	Back    key.Binding
	Journal key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Next, k.Bag, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pick, k.Next, k.Bag, k.Back},
		{k.Journal, k.Restart, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "next line"),
		),
		Bag: key.NewBinding(
			key.WithKeys("i", "tab"),
			key.WithHelp("i", "inventory"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close inventory"),
		),
		Journal: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "save journal"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
