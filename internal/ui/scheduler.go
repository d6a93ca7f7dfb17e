package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/flashdeck/internal/deck"
)

var _ deck.Scheduler = (*programScheduler)(nil)

type registration struct {
	fn        func()
	recurring bool
	stop      func()
}

// programScheduler implements [deck.Scheduler] on top of the bubbletea event loop.
//
// Timer goroutines only post registration ids to a channel. The model reads that channel
// through [programScheduler.wait] and runs the callback from Update, so the controller is
// never touched off the event loop. Ids whose registration was cancelled are dropped.
type programScheduler struct {
	mu    sync.Mutex
	next  uint64
	regs  map[uint64]*registration
	fired chan uint64
	done  chan struct{}
	once  sync.Once
}

func newProgramScheduler() *programScheduler {
	return &programScheduler{
		regs:  map[uint64]*registration{},
		fired: make(chan uint64, 16),
		done:  make(chan struct{}),
	}
}

// Every posts the registration on each tick of interval until cancelled.
func (s *programScheduler) Every(interval time.Duration, fn func()) func() {
	return s.add(fn, true, func(id uint64) func() {
		quit := make(chan struct{})
		go func() {
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				select {
				case <-quit:
					return
				case <-s.done:
					return
				case <-t.C:
					select {
					case s.fired <- id:
					case <-quit:
						return
					case <-s.done:
						return
					}
				}
			}
		}()
		return func() { close(quit) }
	})
}

// After posts the registration once, after delay, unless cancelled first.
func (s *programScheduler) After(delay time.Duration, fn func()) func() {
	return s.add(fn, false, func(id uint64) func() {
		t := time.AfterFunc(delay, func() {
			select {
			case s.fired <- id:
			case <-s.done:
			}
		})
		return func() { t.Stop() }
	})
}

func (s *programScheduler) add(fn func(), recurring bool, start func(id uint64) func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next
	s.regs[id] = &registration{fn: fn, recurring: recurring, stop: start(id)}
	return func() { s.cancel(id) }
}

func (s *programScheduler) cancel(id uint64) {
	s.mu.Lock()
	reg, ok := s.regs[id]
	delete(s.regs, id)
	s.mu.Unlock()

	if ok {
		reg.stop()
	}
}

// fire runs the callback for id on the caller's goroutine. Reports false for stale ids.
func (s *programScheduler) fire(id uint64) bool {
	s.mu.Lock()
	reg, ok := s.regs[id]
	if ok && !reg.recurring {
		delete(s.regs, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	reg.fn()
	return true
}

// live returns the number of active registrations.
func (s *programScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// wait blocks until a registration fires and delivers it as a [MsgTimerFired].
func (s *programScheduler) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case id := <-s.fired:
			return timerFiredMsg(id)
		case <-s.done:
			return nil
		}
	}
}

// Close stops every registration and releases a pending wait.
func (s *programScheduler) Close() {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		regs := s.regs
		s.regs = map[uint64]*registration{}
		s.mu.Unlock()

		for _, reg := range regs {
			reg.stop()
		}
	})
}
