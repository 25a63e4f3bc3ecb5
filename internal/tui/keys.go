package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	enter   key.Binding
	quit    key.Binding
	add     key.Binding
	edit    key.Binding
	delete  key.Binding
	sync    key.Binding
	version key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	toggle:  key.NewBinding(key.WithKeys(" ", "enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	quit:    key.NewBinding(key.WithKeys("q")),
	add:     key.NewBinding(key.WithKeys("a")),
	edit:    key.NewBinding(key.WithKeys("e")),
	delete:  key.NewBinding(key.WithKeys("ctrl+d")),
	sync:    key.NewBinding(key.WithKeys("s")),
	version: key.NewBinding(key.WithKeys("v")),
}
