package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	word     lipgloss.Style
	muted    lipgloss.Style
	meaning  lipgloss.Style
	card     lipgloss.Style
	back     lipgloss.Style
	fading   lipgloss.Style
	button   lipgloss.Style
	disabled lipgloss.Style
	active   lipgloss.Style

	accent string
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		word:     NewBold(t),
		muted:    NewStyle(h),
		meaning:  NewBold(s),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2).Align(lipgloss.Center),
		back:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(s)).Padding(1, 2).Align(lipgloss.Center),
		fading:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(1, 2).Align(lipgloss.Center).Faint(true),
		button:   NewBold(t),
		disabled: NewStyle(h).Faint(true),
		active:   NewBold(s),
		accent:   t,
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
