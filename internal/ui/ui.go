package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/flashdeck/internal/deck"
	"github.com/desertthunder/flashdeck/internal/models"
)

// MaxStepSeconds bounds the duration stepper and the seconds input.
const MaxStepSeconds = 60

// Focus is the region receiving key input.
type Focus int

const (
	CardFocus Focus = iota
	CategoryFocus
	DurationFocus
)

// ModelOpts configures a study session.
type ModelOpts struct {
	Controller deck.Options // Renderer is ignored; the model renders itself
	Category   string
	Shuffle    bool
	Auto       bool
	Title      string
	Logger     *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctrl   *deck.Controller
	sched  *programScheduler
	view   deck.View
	logger *log.Logger
	title  string

	focus      Focus
	categories list.Model
	seconds    textinput.Model
	bar        progress.Model
	countdown  progress.Model
	help       help.Model
	keys       keyMap

	status    string
	statusErr bool
	hits      []hitRegion
	width     int
	height    int
}

// NewModel creates a study session over d.
//
// When opts.Controller has no Scheduler, timers run on the bubbletea event loop.
// An unknown start-up category returns an error wrapping [deck.ErrUnknownCategory].
func NewModel(d *models.Deck, opts ModelOpts) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		logger: logger,
		title:  opts.Title,
		help:   help.New(),
		keys:   newKeyMap(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		countdown: progress.New(
			progress.WithSolidFill(styles.accent),
			progress.WithoutPercentage(),
		),
	}
	if m.title == "" {
		m.title = "flashdeck"
	}

	ctrlOpts := opts.Controller
	if ctrlOpts.Scheduler == nil {
		m.sched = newProgramScheduler()
		ctrlOpts.Scheduler = m.sched
	}
	ctrlOpts.Renderer = newLogRenderer(logger, deck.RendererFunc(m.setView))

	m.ctrl = deck.NewController(d, ctrlOpts)
	m.categories = newCategoryList(m.ctrl.Deck(), m.ctrl.Labels())
	m.seconds = newSecondsInput()

	if opts.Category != "" && opts.Category != models.CategoryAll {
		if err := m.ctrl.FilterByCategory(opts.Category); err != nil {
			m.Close()
			return nil, err
		}
	}
	if opts.Shuffle {
		m.ctrl.Shuffle()
	}
	if opts.Auto {
		m.ctrl.SetAutoAdvance(true)
	}

	return m, nil
}

func newSecondsInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "seconds"
	ti.Prompt = "⏱ "
	ti.CharLimit = 2
	ti.Width = 8
	return ti
}

func (m *Model) setView(v deck.View) { m.view = v }

// Controller exposes the deck controller driving this model.
func (m *Model) Controller() *deck.Controller { return m.ctrl }

// Focus returns the region receiving key input.
func (m *Model) Focus() Focus { return m.focus }

// Close stops the controller's timers and the scheduler.
func (m *Model) Close() {
	m.ctrl.Close()
	if m.sched != nil {
		m.sched.Close()
	}
}

// Init starts delivering timer callbacks.
func (m *Model) Init() tea.Cmd {
	if m.sched == nil {
		return nil
	}
	return m.sched.wait()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.categories.SetSize(min(msg.Width-4, 50), max(msg.Height-8, 5))
		m.help.Width = msg.Width
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTimerFired:
		if m.sched == nil {
			return m, nil
		}
		m.sched.fire(msg.data.(uint64))
		return m, m.sched.wait()
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if isErr {
		m.logger.Warn(text)
	}
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case CategoryFocus:
		m.categories, cmd = m.categories.Update(msg)
	case DurationFocus:
		m.seconds, cmd = m.seconds.Update(msg)
	}
	return m, cmd
}

// quit stops every timer before the program exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

func (m *Model) openCategories() {
	m.focus = CategoryFocus
	for i, it := range m.categories.Items() {
		if it.(categoryItem).id == m.ctrl.Filter() {
			m.categories.Select(i)
			break
		}
	}
}

func (m *Model) openDuration() tea.Cmd {
	m.focus = DurationFocus
	m.seconds.SetValue(fmt.Sprint(m.ctrl.Timer().DurationSeconds))
	m.seconds.CursorEnd()
	return m.seconds.Focus()
}

func (m *Model) closeOverlay() {
	m.focus = CardFocus
	m.seconds.Blur()
}

func (m *Model) selectCategory() {
	it, ok := m.categories.SelectedItem().(categoryItem)
	m.closeOverlay()
	if !ok {
		return
	}
	if err := m.ctrl.FilterByCategory(it.id); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("", false)
}

func (m *Model) stepDuration(delta int) {
	seconds := m.ctrl.Timer().DurationSeconds + delta
	seconds = min(max(seconds, deck.MinTimerSeconds), MaxStepSeconds)
	m.ctrl.SetTimerDuration(seconds)
}

func (m *Model) toggleAuto() {
	m.ctrl.SetAutoAdvance(!m.ctrl.Timer().Enabled)
}

// elapsedText formats the time left on the countdown.
func elapsedText(v deck.View) string {
	left := time.Duration(float64(v.TimerSeconds) * (1 - v.Countdown) * float64(time.Second))
	return fmt.Sprintf("%.1fs", left.Seconds())
}
