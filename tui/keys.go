package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next       key.Binding
	Previous   key.Binding
	Momentum   key.Binding
	Spacetime  key.Binding
	Retry      key.Binding
	OrbitLeft  key.Binding
	OrbitRight key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Momentum, k.Spacetime, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous},
		{k.Momentum, k.Spacetime, k.Retry},
		{k.OrbitLeft, k.OrbitRight, k.ZoomIn, k.ZoomOut},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "next event")),
		Previous:   key.NewBinding(key.WithKeys("b", "B"), key.WithHelp("b", "previous event")),
		Momentum:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "momentum view")),
		Spacetime:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "spacetime view")),
		Retry:      key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reload event")),
		OrbitLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "orbit left")),
		OrbitRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "orbit right")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "down"), key.WithHelp("-", "zoom out")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}
