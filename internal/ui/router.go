package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// action is a control the user can trigger by key or click.
type action int

const (
	actionNone action = iota
	actionFlip
	actionPrev
	actionNext
	actionShuffle
	actionCategories
	actionToggleAuto
	actionShorter
	actionLonger
	actionDuration
)

// hitRegion is the screen rectangle of a clickable control, recorded during View.
type hitRegion struct {
	action action
	x0, x1 int // [x0, x1)
	y0, y1 int // [y0, y1)
}

func (h hitRegion) contains(x, y int) bool {
	return x >= h.x0 && x < h.x1 && y >= h.y0 && y < h.y1
}

// handleKey routes a key press. Shortcuts only apply while the card has focus; the
// category selector and the seconds input consume every key but ctrl+c.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.forceQuit) {
		return m.quit()
	}

	switch m.focus {
	case CategoryFocus:
		return m.handleCategoryKeys(msg)
	case DurationFocus:
		return m.handleDurationKeys(msg)
	}
	return m.handleCardKeys(msg)
}

func (m *Model) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.setStatus("", false)
		return m, nil
	}

	return m, m.dispatch(keyAction(m.keys, msg))
}

// keyAction maps a key press on the card to its control.
func keyAction(k keyMap, msg tea.KeyMsg) action {
	switch {
	case key.Matches(msg, k.flip):
		return actionFlip
	case key.Matches(msg, k.prev):
		return actionPrev
	case key.Matches(msg, k.next):
		return actionNext
	case key.Matches(msg, k.shuffle) && !msg.Alt:
		return actionShuffle
	case key.Matches(msg, k.categories):
		return actionCategories
	case key.Matches(msg, k.auto):
		return actionToggleAuto
	case key.Matches(msg, k.longer):
		return actionLonger
	case key.Matches(msg, k.shorter):
		return actionShorter
	case key.Matches(msg, k.duration):
		return actionDuration
	}
	return actionNone
}

// dispatch runs the operation behind a.
func (m *Model) dispatch(a action) tea.Cmd {
	switch a {
	case actionFlip:
		m.ctrl.Flip()
	case actionPrev:
		m.ctrl.Previous()
	case actionNext:
		m.ctrl.Next()
	case actionShuffle:
		m.ctrl.Shuffle()
	case actionCategories:
		m.openCategories()
	case actionToggleAuto:
		m.toggleAuto()
	case actionLonger:
		m.stepDuration(1)
	case actionShorter:
		m.stepDuration(-1)
	case actionDuration:
		return m.openDuration()
	}
	return nil
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.selectCategory()
		return m, nil
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m *Model) handleDurationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		seconds, err := parseSeconds(m.seconds.Value())
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.closeOverlay()
		m.setStatus("", false)
		m.ctrl.SetTimerDuration(seconds)
		return m, nil
	}

	var cmd tea.Cmd
	m.seconds, cmd = m.seconds.Update(msg)
	return m, cmd
}

// parseSeconds reads the seconds input. Non-positive values clamp to 1, large ones to [MaxStepSeconds].
func parseSeconds(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: enter a whole number of seconds", s)
	}
	return min(max(n, 1), MaxStepSeconds), nil
}

// handleMouse maps a left click to the control under the pointer. Clicking a control
// while an overlay is open closes the overlay first.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		if m.focus == CategoryFocus {
			var cmd tea.Cmd
			m.categories, cmd = m.categories.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	for _, h := range m.hits {
		if h.contains(msg.X, msg.Y) {
			if m.focus != CardFocus {
				m.closeOverlay()
			}
			return m, m.dispatch(h.action)
		}
	}
	return m, nil
}
