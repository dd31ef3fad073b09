package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	First     key.Binding
	Last      key.Binding
	Wrap      key.Binding
	Layout    key.Binding
	Preview   key.Binding
	Autoplay  key.Binding
	Direction key.Binding
	Interval  key.Binding
	Landscape key.Binding
	Notes     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("right", "l", " ", "pgdown"), key.WithHelp("→/l", "next")),
		Prev:      key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev")),
		First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Wrap:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrap")),
		Layout:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "layout")),
		Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Autoplay:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoplay")),
		Direction: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Interval:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interval")),
		Landscape: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "atomic landscape")),
		Notes:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Autoplay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Layout, k.Wrap, k.Preview, k.Landscape, k.Notes},
		{k.Autoplay, k.Direction, k.Interval},
		{k.Help, k.Quit},
	}
}
