// Package ui implements the interactive study screen using bubbletea's Elm architecture.
//
// The (view) [Model] owns a [deck.Controller] and renders its latest [deck.View]: the card
// face, prev/flip/next/shuffle buttons, a progress bar (bubbles/progress), the auto-advance
// toggle with its duration stepper, and a countdown bar while the timer runs.
//
// Input routing depends on [Focus]:
//  1. [CardFocus] : shortcut keys and mouse clicks drive the controller
//  2. [CategoryFocus] : a bubbles/list selector chooses the category filter
//  3. [DurationFocus] : a bubbles/textinput sets the auto-advance seconds
//
// Shortcuts are suppressed while an overlay has focus.
//
// Controller timers run through a scheduler whose goroutines only post ids to a channel;
// the model drains it with a tea.Cmd and invokes the callbacks from Update.
package ui
