package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// next runs the scheduler's wait command with a timeout and returns the fired id.
func next(t *testing.T, s *programScheduler) uint64 {
	t.Helper()
	out := make(chan Msg, 1)
	go func() {
		if msg, ok := s.wait()().(Msg); ok {
			out <- msg
		}
	}()

	select {
	case msg := <-out:
		require.Equal(t, MsgTimerFired, msg.kind)
		return msg.data.(uint64)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scheduler")
		return 0
	}
}

func TestProgramScheduler(t *testing.T) {
	t.Run("After fires once", func(t *testing.T) {
		s := newProgramScheduler()
		defer s.Close()

		calls := 0
		s.After(time.Millisecond, func() { calls++ })

		id := next(t, s)
		assert.True(t, s.fire(id))
		assert.False(t, s.fire(id), "one-shot registration is consumed")
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, s.live())
	})

	t.Run("Every fires until cancelled", func(t *testing.T) {
		s := newProgramScheduler()
		defer s.Close()

		calls := 0
		cancel := s.Every(time.Millisecond, func() { calls++ })

		for range 3 {
			s.fire(next(t, s))
		}
		assert.Equal(t, 3, calls)
		assert.Equal(t, 1, s.live())

		cancel()
		cancel()
		assert.Equal(t, 0, s.live())
	})

	t.Run("cancelled ids are dropped", func(t *testing.T) {
		s := newProgramScheduler()
		defer s.Close()

		calls := 0
		cancel := s.Every(time.Millisecond, func() { calls++ })
		id := next(t, s)
		cancel()

		assert.False(t, s.fire(id))
		assert.Equal(t, 0, calls)
	})

	t.Run("callbacks may reschedule", func(t *testing.T) {
		s := newProgramScheduler()
		defer s.Close()

		var second bool
		s.After(time.Millisecond, func() {
			s.After(time.Millisecond, func() { second = true })
		})

		s.fire(next(t, s))
		s.fire(next(t, s))
		assert.True(t, second)
	})

	t.Run("Close releases wait", func(t *testing.T) {
		s := newProgramScheduler()
		s.Every(time.Hour, func() {})
		s.Close()
		s.Close()

		assert.Nil(t, s.wait()())
		assert.Equal(t, 0, s.live())
	})
}

func TestModelPumpsScheduler(t *testing.T) {
	m := newRealTimeModel(t)
	m.Controller().SetAutoAdvance(true)

	before := m.view.Countdown
	deadline := time.Now().Add(2 * time.Second)
	cmd := m.Init()
	for m.view.Countdown == before && time.Now().Before(deadline) {
		_, cmd = m.Update(cmd())
	}
	assert.Greater(t, m.view.Countdown, before, "ticks delivered through Update advance the countdown")
}
