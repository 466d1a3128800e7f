package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	back    key.Binding
	grab    key.Binding
	save    key.Binding
	reorder key.Binding
	songs   key.Binding
	create  key.Binding
	logout  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		grab:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save order")),
		reorder: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reorder")),
		songs:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "songs")),
		create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		logout:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "sign out")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.left, k.right, k.back},
		{k.grab, k.save, k.reorder},
		{k.songs, k.create, k.logout, k.quit},
	}
}
