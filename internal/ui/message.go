package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTimerFired MsgKind = iota
)

// timerFiredMsg is the constructor for [MsgTimerFired]
func timerFiredMsg(id uint64) Msg {
	return Msg{kind: MsgTimerFired, data: id}
}
