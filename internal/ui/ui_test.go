package ui

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/flashdeck/internal/deck"
	"github.com/desertthunder/flashdeck/internal/models"
	tu "github.com/desertthunder/flashdeck/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	model     *Model
	clock     *tu.FakeClock
	scheduler *tu.ManualScheduler
}

func newFixture(t *testing.T, opts ModelOpts) *fixture {
	t.Helper()
	f := &fixture{clock: tu.NewFakeClock()}
	f.scheduler = tu.NewManualScheduler(f.clock)
	opts.Controller.Clock = f.clock
	opts.Controller.Scheduler = f.scheduler
	if opts.Controller.Rand == nil {
		opts.Controller.Rand = rand.New(rand.NewPCG(7, 11))
	}

	m, err := NewModel(models.NewDeck(tu.SampleCards()), opts)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	f.model = m
	return f
}

func (f *fixture) press(msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = f.model.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (f *fixture) words() []string {
	cards := f.model.Controller().Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Word
	}
	return out
}

// click renders the model, then presses the left button inside the region of a.
func (f *fixture) click(t *testing.T, a action) {
	t.Helper()
	f.model.View()
	for _, h := range f.model.hits {
		if h.action == a {
			f.model.Update(tea.MouseMsg{X: h.x0, Y: h.y0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			return
		}
	}
	t.Fatalf("no clickable region for action %d", a)
}

func TestNewModel(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		v := f.model.view

		assert.Equal(t, "Hallo", v.Card.Word)
		assert.Equal(t, "1 of 5", v.ProgressText)
		assert.Equal(t, CardFocus, f.model.Focus())
		assert.Nil(t, f.model.Init(), "injected scheduler needs no event loop pump")
	})

	t.Run("start-up options", func(t *testing.T) {
		f := newFixture(t, ModelOpts{Category: "greetings", Shuffle: true, Auto: true})
		ctrl := f.model.Controller()

		assert.Equal(t, "greetings", ctrl.Filter())
		assert.ElementsMatch(t, []string{"Hallo", "Tschüss"}, f.words())
		assert.True(t, ctrl.Timer().Enabled)
		assert.Equal(t, deck.Running, ctrl.TimerState())
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewModel(models.NewDeck(tu.SampleCards()), ModelOpts{Category: "sports"})
		assert.ErrorIs(t, err, deck.ErrUnknownCategory)
	})

	t.Run("program scheduler by default", func(t *testing.T) {
		m, err := NewModel(models.NewDeck(tu.SampleCards()), ModelOpts{})
		require.NoError(t, err)
		defer m.Close()

		assert.NotNil(t, m.sched)
		assert.NotNil(t, m.Init())
	})
}

func TestCardKeys(t *testing.T) {
	tt := []struct {
		name   string
		keys   []tea.KeyMsg
		cursor int
		flip   bool
	}{
		{name: "right", keys: []tea.KeyMsg{{Type: tea.KeyRight}}, cursor: 1},
		{name: "l", keys: []tea.KeyMsg{runes("l"), runes("l")}, cursor: 2},
		{name: "left at start", keys: []tea.KeyMsg{{Type: tea.KeyLeft}}, cursor: 0},
		{name: "h", keys: []tea.KeyMsg{runes("l"), runes("h")}, cursor: 0},
		{name: "space flips", keys: []tea.KeyMsg{{Type: tea.KeySpace}}, flip: true},
		{name: "enter flips", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, flip: true},
		{name: "navigation resets flip", keys: []tea.KeyMsg{{Type: tea.KeySpace}, {Type: tea.KeyRight}}, cursor: 1},
		{name: "unbound key", keys: []tea.KeyMsg{runes("z")}, cursor: 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, ModelOpts{})
			f.press(tc.keys...)

			assert.Equal(t, tc.cursor, f.model.Controller().Cursor())
			assert.Equal(t, tc.flip, f.model.Controller().Flipped())
		})
	}
}

// firstSource makes IntN(n) return 0 for every small n, so each shuffle step swaps with the first card.
type firstSource struct{}

func (firstSource) Uint64() uint64 { return 1 << 32 }

func TestShuffleKey(t *testing.T) {
	original := []string{"Hallo", "das Brot", "Tschüss", "das Haus", "die Arbeit"}
	rotated := []string{"das Brot", "Tschüss", "das Haus", "die Arbeit", "Hallo"}
	opts := func() ModelOpts {
		return ModelOpts{Controller: deck.Options{Rand: rand.New(firstSource{})}}
	}

	t.Run("s shuffles", func(t *testing.T) {
		f := newFixture(t, opts())
		f.press(runes("l"), runes("s"))

		assert.Equal(t, 0, f.model.Controller().Cursor())
		assert.Equal(t, rotated, f.words())
	})

	t.Run("S shuffles", func(t *testing.T) {
		f := newFixture(t, opts())
		f.press(runes("S"))
		assert.Equal(t, rotated, f.words())
	})

	t.Run("alt+s is ignored", func(t *testing.T) {
		f := newFixture(t, opts())
		f.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s"), Alt: true})
		assert.Equal(t, original, f.words())
	})
}

func TestAutoAdvanceKeys(t *testing.T) {
	f := newFixture(t, ModelOpts{Controller: deck.Options{TimerSeconds: 1}})
	ctrl := f.model.Controller()

	f.press(runes("a"))
	require.True(t, ctrl.Timer().Enabled)

	f.scheduler.Advance(time.Second)
	assert.True(t, ctrl.Flipped(), "timer flips the card first")

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 1, ctrl.Cursor(), "then advances")

	f.press(runes("+"), runes("+"))
	assert.Equal(t, 3, ctrl.Timer().DurationSeconds)

	f.press(runes("-"), runes("-"), runes("-"), runes("-"))
	assert.Equal(t, 1, ctrl.Timer().DurationSeconds, "stepper stops at one second")

	f.press(runes("a"))
	assert.False(t, ctrl.Timer().Enabled)
	assert.Equal(t, 0, f.scheduler.LiveRecurring())
}

func TestStepperUpperBound(t *testing.T) {
	f := newFixture(t, ModelOpts{Controller: deck.Options{TimerSeconds: MaxStepSeconds}})
	f.press(runes("+"))
	assert.Equal(t, MaxStepSeconds, f.model.Controller().Timer().DurationSeconds)
}

func TestCategorySelector(t *testing.T) {
	t.Run("select", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("c"))
		require.Equal(t, CategoryFocus, f.model.Focus())

		// all, greetings, food_drink
		f.press(tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, CardFocus, f.model.Focus())
		assert.Equal(t, "food_drink", f.model.Controller().Filter())
		assert.Equal(t, "1 of 1", f.model.view.ProgressText)
	})

	t.Run("shortcuts are suppressed", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("c"), runes("s"), runes("a"), runes("l"), tea.KeyMsg{Type: tea.KeySpace}, runes("q"))

		ctrl := f.model.Controller()
		assert.Equal(t, CategoryFocus, f.model.Focus())
		assert.Equal(t, 0, ctrl.Cursor())
		assert.False(t, ctrl.Flipped())
		assert.False(t, ctrl.Timer().Enabled)
		assert.Equal(t, "Hallo", ctrl.Cards()[0].Word)
	})

	t.Run("esc cancels", func(t *testing.T) {
		f := newFixture(t, ModelOpts{Category: "home"})
		f.press(runes("c"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc})

		assert.Equal(t, CardFocus, f.model.Focus())
		assert.Equal(t, "home", f.model.Controller().Filter())
	})

	t.Run("opens on the active filter", func(t *testing.T) {
		f := newFixture(t, ModelOpts{Category: "home"})
		f.press(runes("c"))

		it, ok := f.model.categories.SelectedItem().(categoryItem)
		require.True(t, ok)
		assert.Equal(t, "home", it.id)
	})
}

func TestDurationInput(t *testing.T) {
	backspace := tea.KeyMsg{Type: tea.KeyBackspace}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	t.Run("sets seconds", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("t"))
		require.Equal(t, DurationFocus, f.model.Focus())
		assert.Equal(t, "5", f.model.seconds.Value())

		f.press(backspace, runes("1"), runes("2"), enter)
		assert.Equal(t, CardFocus, f.model.Focus())
		assert.Equal(t, 12, f.model.Controller().Timer().DurationSeconds)
	})

	t.Run("shortcut letters are typed, not routed", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("t"), backspace, runes("s"))

		assert.Equal(t, "s", f.model.seconds.Value())
		assert.Equal(t, "Hallo", f.model.Controller().Cards()[0].Word)

		f.press(enter)
		assert.Equal(t, DurationFocus, f.model.Focus(), "invalid input keeps focus")
		assert.True(t, f.model.statusErr)
		assert.Equal(t, 5, f.model.Controller().Timer().DurationSeconds)
	})

	t.Run("zero clamps to one", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("t"), backspace, runes("0"), enter)
		assert.Equal(t, 1, f.model.Controller().Timer().DurationSeconds)
	})
}

func TestParseSeconds(t *testing.T) {
	tt := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: " 12 ", want: 12},
		{in: "0", want: 1},
		{in: "-3", want: 1},
		{in: "99", want: MaxStepSeconds},
		{in: "", wantErr: true},
		{in: "ab", wantErr: true},
	}
	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseSeconds(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQuitAndHelp(t *testing.T) {
	f := newFixture(t, ModelOpts{})

	f.press(runes("?"))
	assert.True(t, f.model.help.ShowAll)

	cmd := f.press(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	keys := newKeyMap()
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	assert.False(t, key.Matches(ctrlC, keys.quit), "ctrl+c belongs to forceQuit only")
	assert.True(t, key.Matches(ctrlC, keys.forceQuit))

	f = newFixture(t, ModelOpts{})
	cmd = f.press(ctrlC)
	require.NotNil(t, cmd, "ctrl+c quits from the card")
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)

	f = newFixture(t, ModelOpts{})
	f.press(runes("c"))
	cmd = f.press(ctrlC)
	require.NotNil(t, cmd, "ctrl+c quits from any focus")
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestMouse(t *testing.T) {
	t.Run("buttons", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		ctrl := f.model.Controller()

		f.click(t, actionNext)
		assert.Equal(t, 1, ctrl.Cursor())

		f.click(t, actionPrev)
		assert.Equal(t, 0, ctrl.Cursor())

		f.click(t, actionFlip)
		assert.True(t, ctrl.Flipped())

		f.click(t, actionToggleAuto)
		assert.True(t, ctrl.Timer().Enabled)

		f.click(t, actionLonger)
		assert.Equal(t, 6, ctrl.Timer().DurationSeconds)
	})

	t.Run("card region flips", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.model.View()

		card := f.model.hits[0]
		require.Equal(t, actionFlip, card.action)
		f.model.Update(tea.MouseMsg{X: card.x1 - 1, Y: card.y1 - 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		assert.True(t, f.model.Controller().Flipped())
	})

	t.Run("disabled prev is not clickable", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.model.View()
		for _, h := range f.model.hits {
			assert.NotEqual(t, actionPrev, h.action)
		}
	})

	t.Run("release and other buttons are ignored", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.model.View()
		card := f.model.hits[0]

		f.model.Update(tea.MouseMsg{X: card.x0, Y: card.y0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
		f.model.Update(tea.MouseMsg{X: card.x0, Y: card.y0, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
		assert.False(t, f.model.Controller().Flipped())
	})

	t.Run("click closes an overlay", func(t *testing.T) {
		f := newFixture(t, ModelOpts{})
		f.press(runes("t"))
		f.click(t, actionNext)

		assert.Equal(t, CardFocus, f.model.Focus())
		assert.Equal(t, 1, f.model.Controller().Cursor())
	})
}

func TestView(t *testing.T) {
	f := newFixture(t, ModelOpts{Controller: deck.Options{Labels: models.LabelsFor(models.German)}})
	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	out := f.model.View()
	assert.Contains(t, out, "Hallo")
	assert.Contains(t, out, "[HA-lo]")
	assert.Contains(t, out, "Hallo, wie geht's?")
	assert.Contains(t, out, "1 von 5")
	assert.Contains(t, out, "Begrüßungen")
	assert.Contains(t, out, "Alle Kategorien")
	assert.NotContains(t, out, "سلام")

	f.press(tea.KeyMsg{Type: tea.KeySpace})
	out = f.model.View()
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "سلام")

	f.press(runes("a"))
	out = f.model.View()
	assert.Contains(t, out, "[x] Auto")
	assert.Contains(t, out, "5.0s")

	f.press(runes("c"))
	assert.Contains(t, f.model.View(), "Essen & Trinken")
}

func TestViewEmptyDeck(t *testing.T) {
	clock := tu.NewFakeClock()
	m, err := NewModel(models.NewDeck(nil), ModelOpts{Controller: deck.Options{Clock: clock, Scheduler: tu.NewManualScheduler(clock)}})
	require.NoError(t, err)
	defer m.Close()

	out := m.View()
	assert.Contains(t, out, "No cards in this category")
	assert.Contains(t, out, "0 of 0")
	for _, h := range m.hits {
		assert.NotEqual(t, actionFlip, h.action, "empty view has nothing to flip")
	}
}

func TestLogRenderer(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	var got []deck.View
	r := newLogRenderer(logger, deck.RendererFunc(func(v deck.View) { got = append(got, v) }))

	v := deck.View{Position: 1, Total: 3, Running: true}
	r.Render(v)
	v.Countdown = 0.5
	r.Render(v)
	v.Flipped = true
	r.Render(v)

	assert.Len(t, got, 3, "every view is forwarded")
	assert.Equal(t, 2, strings.Count(buf.String(), "render"), "countdown-only changes are not logged")
}

func newRealTimeModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(models.NewDeck(tu.SampleCards()), ModelOpts{Controller: deck.Options{TickInterval: 5 * time.Millisecond}})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}
