package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the scene's key bindings for the help footer
type keyMap struct {
	Click key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Click: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "click the flower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click},
		{k.Help, k.Quit},
	}
}
