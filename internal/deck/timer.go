package deck

import "time"

// TimerState is the auto-advance state.
type TimerState int

const (
	Stopped TimerState = iota
	Running
)

func (s TimerState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// timerRun is one countdown. A new run replaces the old one on every restart.
type timerRun struct {
	start    time.Time
	cancel   func()
	progress float64
}

// TimerState returns Running while a countdown is registered.
func (c *Controller) TimerState() TimerState {
	if c.run != nil {
		return Running
	}
	return Stopped
}

// Elapsed returns the time since the current countdown started, 0 when stopped.
func (c *Controller) Elapsed() time.Duration {
	if c.run == nil {
		return 0
	}
	return c.clock.Now().Sub(c.run.start)
}

func (c *Controller) duration() time.Duration {
	return time.Duration(c.timer.DurationSeconds) * time.Second
}

func (c *Controller) startTimer() {
	c.stopTimer()
	if c.changing {
		return
	}

	run := &timerRun{start: c.clock.Now()}
	run.cancel = c.scheduler.Every(c.tickInterval, func() { c.tick(run) })
	c.run = run
}

func (c *Controller) stopTimer() {
	if c.run == nil {
		return
	}
	c.run.cancel()
	c.run = nil
}

func (c *Controller) restartTimer() {
	if c.timer.Enabled {
		c.startTimer()
	}
}

func (c *Controller) tick(run *timerRun) {
	if c.run != run {
		return
	}

	elapsed := c.clock.Now().Sub(run.start)
	run.progress = min(float64(elapsed)/float64(c.duration()), 1)

	if elapsed < c.duration() {
		c.render()
		return
	}

	switch {
	case len(c.filtered) == 0:
		c.SetAutoAdvance(false)
	case !c.flipped:
		c.Flip()
	case c.cursor < len(c.filtered)-1:
		c.Next()
	default:
		c.SetAutoAdvance(false)
	}
}
