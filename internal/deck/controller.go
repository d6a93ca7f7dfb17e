package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/desertthunder/flashdeck/internal/models"
)

const (
	DefaultTickInterval = 50 * time.Millisecond
	DefaultTimerSeconds = 5
	MinTimerSeconds     = 1
)

var ErrUnknownCategory = errors.New("unknown category")

// Options configures a [Controller]. Zero values fall back to defaults.
type Options struct {
	Clock     Clock
	Scheduler Scheduler
	Renderer  Renderer
	Rand      *rand.Rand
	Labels    models.Labels

	TickInterval    time.Duration
	TransitionDelay time.Duration // 0 swaps card content synchronously
	TimerSeconds    int
}

// TimerConfig is the user-controlled auto-advance setting.
type TimerConfig struct {
	Enabled         bool
	DurationSeconds int
}

// Controller holds the study session state.
type Controller struct {
	deck     *models.Deck
	filtered []models.Card
	filter   string
	cursor   int
	flipped  bool
	timer    TimerConfig
	run      *timerRun

	changing bool
	pending  func()
	shown    View

	clock           Clock
	scheduler       Scheduler
	renderer        Renderer
	intn            func(int) int
	labels          models.Labels
	tickInterval    time.Duration
	transitionDelay time.Duration
}

// NewController creates a [Controller] over deck with every card in view and the timer stopped.
func NewController(deck *models.Deck, opts Options) *Controller {
	if deck == nil {
		deck = models.NewDeck(nil)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = idleScheduler{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.TimerSeconds == 0 {
		opts.TimerSeconds = DefaultTimerSeconds
	}
	if opts.Labels.Of == "" {
		opts.Labels = models.LabelsFor(models.English)
	}

	intn := rand.IntN
	if opts.Rand != nil {
		intn = opts.Rand.IntN
	}

	c := &Controller{
		deck:            deck,
		filtered:        deck.Cards(),
		filter:          models.CategoryAll,
		timer:           TimerConfig{DurationSeconds: clampSeconds(opts.TimerSeconds)},
		clock:           opts.Clock,
		scheduler:       opts.Scheduler,
		renderer:        opts.Renderer,
		intn:            intn,
		labels:          opts.Labels,
		tickInterval:    opts.TickInterval,
		transitionDelay: opts.TransitionDelay,
	}
	c.render()
	return c
}

// Flip toggles the answer face of the current card.
//
// Ignored during a card-change transition: the incoming card always opens on its front.
func (c *Controller) Flip() {
	if len(c.filtered) == 0 || c.changing {
		return
	}
	c.flipped = !c.flipped
	c.restartTimer()
	c.render()
}

// Next moves to the following card. No-op at the end of the view.
func (c *Controller) Next() {
	if c.cursor >= len(c.filtered)-1 {
		return
	}
	c.cursor++
	c.changeCard()
}

// Previous moves to the preceding card. No-op at the start of the view.
func (c *Controller) Previous() {
	if c.cursor <= 0 {
		return
	}
	c.cursor--
	c.changeCard()
}

// Shuffle permutes the current view and returns to its first card.
func (c *Controller) Shuffle() {
	if len(c.filtered) == 0 {
		return
	}
	c.filtered = Shuffle(c.filtered, c.intn)
	c.cursor = 0
	c.changeCard()
}

// FilterByCategory replaces the view with the deck's cards in category, in deck order.
//
// [models.CategoryAll] restores the whole deck. An unknown category returns [ErrUnknownCategory] and changes nothing.
func (c *Controller) FilterByCategory(category string) error {
	if category != models.CategoryAll && !c.deck.HasCategory(category) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	c.filtered = c.deck.Filter(category)
	c.filter = category
	c.cursor = 0
	c.changeCard()
	return nil
}

// SetAutoAdvance starts or stops the auto-advance timer.
func (c *Controller) SetAutoAdvance(enabled bool) {
	c.timer.Enabled = enabled
	if enabled {
		c.startTimer()
	} else {
		c.stopTimer()
	}
	c.render()
}

// SetTimerDuration sets the auto-advance duration, clamped to [MinTimerSeconds].
func (c *Controller) SetTimerDuration(seconds int) {
	c.timer.DurationSeconds = clampSeconds(seconds)
	c.restartTimer()
	c.render()
}

// Close cancels the timer and any pending card change.
func (c *Controller) Close() {
	c.stopTimer()
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

// changeCard resets the flip state and swaps content, after the transition delay when one is configured.
func (c *Controller) changeCard() {
	c.stopTimer()
	c.flipped = false

	if c.pending != nil {
		c.pending()
		c.pending = nil
	}

	if c.transitionDelay <= 0 {
		c.swap()
		return
	}

	c.changing = true
	c.pending = c.scheduler.After(c.transitionDelay, c.swap)
	c.render()
}

func (c *Controller) swap() {
	c.pending = nil
	c.changing = false
	c.flipped = false
	c.restartTimer()
	c.render()
}

func (c *Controller) render() {
	v := c.snapshot()
	if c.renderer != nil {
		c.renderer.Render(v)
	}
}

// Snapshot returns the current [View].
func (c *Controller) Snapshot() View {
	if c.changing {
		v := c.shown
		v.Changing = true
		c.applyTimer(&v)
		return v
	}
	return c.build()
}

func (c *Controller) snapshot() View {
	v := c.Snapshot()
	if !c.changing {
		c.shown = v
	}
	return v
}

func (c *Controller) build() View {
	total := len(c.filtered)
	v := View{
		Empty:        total == 0,
		Total:        total,
		Filter:       c.filter,
		FilterLabel:  c.labels.CategoryName(c.filter),
		AutoAdvance:  c.timer.Enabled,
		TimerSeconds: c.timer.DurationSeconds,
	}

	if total > 0 {
		card := c.filtered[c.cursor]
		v.Card = card
		v.CategoryLabel = c.labels.CategoryName(card.Category)
		v.Flipped = c.flipped
		v.Position = c.cursor + 1
		v.PrevEnabled = c.cursor > 0
		v.NextEnabled = c.cursor < total-1
	}

	v.ProgressText = ProgressText(c.labels, v.Position, total)
	v.Percent = Percent(v.Position, total)
	c.applyTimer(&v)
	return v
}

func (c *Controller) applyTimer(v *View) {
	v.AutoAdvance = c.timer.Enabled
	v.TimerSeconds = c.timer.DurationSeconds
	v.Running = c.run != nil
	v.Countdown = 0
	if c.run != nil {
		v.Countdown = c.run.progress
	}
}

// Cursor returns the index of the current card in the view.
func (c *Controller) Cursor() int { return c.cursor }

// Flipped reports whether the answer face is showing.
func (c *Controller) Flipped() bool { return c.flipped }

// Filter returns the active category filter.
func (c *Controller) Filter() string { return c.filter }

// Changing reports whether a card change is waiting for its transition to end.
func (c *Controller) Changing() bool { return c.changing }

// Cards returns a copy of the current view.
func (c *Controller) Cards() []models.Card {
	out := make([]models.Card, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// Current returns the card under the cursor.
func (c *Controller) Current() (models.Card, bool) {
	if len(c.filtered) == 0 {
		return models.Card{}, false
	}
	return c.filtered[c.cursor], true
}

// Deck returns the loaded deck.
func (c *Controller) Deck() *models.Deck { return c.deck }

// Labels returns the UI strings the controller renders with.
func (c *Controller) Labels() models.Labels { return c.labels }

// Timer returns the auto-advance setting.
func (c *Controller) Timer() TimerConfig { return c.timer }

func clampSeconds(seconds int) int {
	if seconds < MinTimerSeconds {
		return MinTimerSeconds
	}
	return seconds
}
