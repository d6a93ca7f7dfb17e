package testing

import (
	"sort"
	"time"
)

// FakeClock is a manually advanced clock.
type FakeClock struct {
	now time.Time
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time { return c.now }

func (c *FakeClock) Set(t time.Time) { c.now = t }

type scheduled struct {
	seq       int
	due       time.Time
	interval  time.Duration
	repeat    bool
	cancelled bool
	fn        func()
}

// ManualScheduler fires callbacks only when its clock is advanced.
//
// Callbacks run on the goroutine calling [ManualScheduler.Advance], in due-time order.
type ManualScheduler struct {
	clock   *FakeClock
	entries []*scheduled
	seq     int
}

func NewManualScheduler(clock *FakeClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	return s.add(interval, true, fn)
}

func (s *ManualScheduler) After(delay time.Duration, fn func()) func() {
	return s.add(delay, false, fn)
}

func (s *ManualScheduler) add(d time.Duration, repeat bool, fn func()) func() {
	s.seq++
	e := &scheduled{seq: s.seq, due: s.clock.Now().Add(d), interval: d, repeat: repeat, fn: fn}
	s.entries = append(s.entries, e)
	return func() { e.cancelled = true }
}

// Advance moves the clock forward by d, firing every registration that falls due on the way.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		e := s.nextDue(target)
		if e == nil {
			break
		}
		s.clock.Set(e.due)
		if e.repeat {
			e.due = e.due.Add(e.interval)
		} else {
			e.cancelled = true
		}
		e.fn()
	}
	s.clock.Set(target)
	s.compact()
}

func (s *ManualScheduler) nextDue(target time.Time) *scheduled {
	var live []*scheduled
	for _, e := range s.entries {
		if !e.cancelled && !e.due.After(target) {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due.Equal(live[j].due) {
			return live[i].seq < live[j].seq
		}
		return live[i].due.Before(live[j].due)
	})
	return live[0]
}

func (s *ManualScheduler) compact() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// LiveRecurring returns the number of uncancelled recurring registrations.
func (s *ManualScheduler) LiveRecurring() int {
	n := 0
	for _, e := range s.entries {
		if e.repeat && !e.cancelled {
			n++
		}
	}
	return n
}

// LivePending returns the number of uncancelled one-shot registrations.
func (s *ManualScheduler) LivePending() int {
	n := 0
	for _, e := range s.entries {
		if !e.repeat && !e.cancelled {
			n++
		}
	}
	return n
}
