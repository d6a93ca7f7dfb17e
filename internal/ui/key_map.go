package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	flip       key.Binding
	prev       key.Binding
	next       key.Binding
	shuffle    key.Binding
	categories key.Binding
	auto       key.Binding
	longer     key.Binding
	shorter    key.Binding
	duration   key.Binding
	enter      key.Binding
	back       key.Binding
	help       key.Binding
	quit       key.Binding
	forceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		flip:       key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "flip")),
		prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		shuffle:    key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "shuffle")),
		categories: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		auto:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-advance")),
		longer:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "longer")),
		shorter:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "shorter")),
		duration:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "set seconds")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.flip, k.prev, k.next, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.flip, k.prev, k.next, k.shuffle},
		{k.categories, k.auto, k.longer, k.shorter, k.duration},
		{k.help, k.quit},
	}
}
