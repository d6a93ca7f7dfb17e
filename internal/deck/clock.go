package deck

import "time"

// Clock is the time source for the auto-advance timer.
type Clock interface {
	Now() time.Time
}

// Scheduler registers callbacks with the platform timer service.
//
// Implementations must invoke callbacks on the controller's goroutine and never synchronously from Every or After.
// The returned cancel func prevents any further invocation and is safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
	After(delay time.Duration, fn func()) (cancel func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a [Clock] backed by [time.Now].
func SystemClock() Clock { return systemClock{} }

// idleScheduler never fires. Used when no scheduler is supplied.
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }
func (idleScheduler) After(time.Duration, func()) func() { return func() {} }
