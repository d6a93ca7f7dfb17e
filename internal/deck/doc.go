// Package deck implements the study session state machine.
//
// A [Controller] owns the loaded [models.Deck], a filtered view over it, a cursor into that view, the flip state and
// the auto-advance timer. It never draws anything itself: after every transition it builds a [View] snapshot and hands
// it to an optional [Renderer].
//
// # Auto-advance
//
// The timer is either Stopped or Running. While Running, a recurring tick registered with the [Scheduler] recomputes
// the elapsed time from the [Clock]. When the configured duration has elapsed the controller flips an unflipped card
// (which restarts the countdown for the reveal phase), advances a flipped one, or stops itself at the end of the view.
//
// Every operation that restarts the countdown cancels the current tick registration before registering a new one, so
// at most one registration is live at a time. A tick from a cancelled registration is ignored.
//
// # Threading
//
// The controller is not safe for concurrent use. Callers and scheduler callbacks must run on the same goroutine,
// normally the UI event loop.
package deck
