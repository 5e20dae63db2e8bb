package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	prevPage key.Binding
	nextPage key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	logout   key.Binding
	newNote  key.Binding
	refresh  key.Binding
	edit     key.Binding
	delete   key.Binding
	copy     key.Binding
	save     key.Binding
	about    key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	prevPage: key.NewBinding(key.WithKeys("left", "h", "pgup")),
	nextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q")),
	logout:   key.NewBinding(key.WithKeys("o")),
	newNote:  key.NewBinding(key.WithKeys("n")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	edit:     key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("d", "ctrl+d")),
	copy:     key.NewBinding(key.WithKeys("c")),
	save:     key.NewBinding(key.WithKeys("ctrl+s")),
	about:    key.NewBinding(key.WithKeys("?")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
