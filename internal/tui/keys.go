package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	newItem   key.Binding
	reload    key.Binding
	edit      key.Binding
	delete    key.Binding
	copy      key.Binding
	copyName  key.Binding
	reveal    key.Binding
	revealAll key.Binding
	health    key.Binding
	token     key.Binding
	about     key.Binding
	save      key.Binding
	addEntry  key.Binding
	dropEntry key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab", "down")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("L")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	reload:    key.NewBinding(key.WithKeys("r")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("d")),
	copy:      key.NewBinding(key.WithKeys("c")),
	copyName:  key.NewBinding(key.WithKeys("C")),
	reveal:    key.NewBinding(key.WithKeys(" ")),
	revealAll: key.NewBinding(key.WithKeys("a")),
	health:    key.NewBinding(key.WithKeys("h")),
	token:     key.NewBinding(key.WithKeys("t")),
	about:     key.NewBinding(key.WithKeys("v")),
	save:      key.NewBinding(key.WithKeys("ctrl+s")),
	addEntry:  key.NewBinding(key.WithKeys("ctrl+n")),
	dropEntry: key.NewBinding(key.WithKeys("ctrl+x")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
}
