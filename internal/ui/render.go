package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/flashdeck/internal/deck"
)

const (
	defaultCardWidth = 50
	minCardWidth     = 30
	maxCardWidth     = 64
)

// newLogRenderer logs each distinct view at debug level before passing it on.
// Views that differ only in countdown progress are not logged.
func newLogRenderer(logger *log.Logger, next deck.Renderer) deck.Renderer {
	var last deck.View
	seen := false
	return deck.RendererFunc(func(v deck.View) {
		key := v
		key.Countdown = 0
		if !seen || key != last {
			logger.Debug("render",
				"position", v.Position,
				"total", v.Total,
				"flipped", v.Flipped,
				"filter", v.Filter,
				"auto", v.AutoAdvance,
				"seconds", v.TimerSeconds,
				"changing", v.Changing,
			)
		}
		last, seen = key, true
		next.Render(v)
	})
}

type button struct {
	label   string
	action  action
	enabled bool
}

// layout stacks rendered blocks top to bottom and records where the buttons land.
type layout struct {
	parts []string
	y     int
	hits  []hitRegion
}

func (l *layout) block(s string) (y0, y1 int) {
	y0 = l.y
	l.y += lipgloss.Height(s)
	l.parts = append(l.parts, s)
	return y0, l.y
}

func (l *layout) buttons(bs ...button) {
	var b strings.Builder
	x := 0
	for i, bt := range bs {
		if i > 0 {
			b.WriteString(" ")
			x++
		}

		var text string
		switch {
		case bt.action == actionNone:
			text = styles.muted.Render(bt.label)
		case bt.enabled:
			text = styles.button.Render("[" + bt.label + "]")
		default:
			text = styles.disabled.Render("[" + bt.label + "]")
		}

		w := lipgloss.Width(text)
		if bt.action != actionNone && bt.enabled {
			l.hits = append(l.hits, hitRegion{action: bt.action, x0: x, x1: x + w, y0: l.y, y1: l.y + 1})
		}
		b.WriteString(text)
		x += w
	}
	l.block(b.String())
}

func (l *layout) String() string {
	return strings.Join(l.parts, "\n")
}

func (m *Model) cardWidth() int {
	if m.width <= 0 {
		return defaultCardWidth
	}
	return min(max(m.width-4, minCardWidth), maxCardWidth)
}

// View renders the UI based on the current focus and the latest deck view.
func (m *Model) View() string {
	v := m.view
	l := &layout{}

	l.block(styles.title.Render(fmt.Sprintf("%s · %s", m.title, v.FilterLabel)))

	if m.focus == CategoryFocus {
		l.block(m.categories.View())
	} else {
		card := m.renderCard(v)
		y0, y1 := l.block(card)
		if !v.Empty {
			l.hits = append(l.hits, hitRegion{action: actionFlip, x0: 0, x1: lipgloss.Width(card), y0: y0, y1: y1})
		}
	}
	l.block("")

	l.buttons(
		button{label: "◀ Prev", action: actionPrev, enabled: v.PrevEnabled},
		button{label: "Flip", action: actionFlip, enabled: !v.Empty},
		button{label: "Next ▶", action: actionNext, enabled: v.NextEnabled},
		button{label: "Shuffle", action: actionShuffle, enabled: !v.Empty},
		button{label: "Category", action: actionCategories, enabled: true},
	)

	l.block(m.renderProgress(v))

	toggle := "[ ] Auto"
	if v.AutoAdvance {
		toggle = "[x] Auto"
	}
	l.buttons(
		button{label: toggle, action: actionToggleAuto, enabled: true},
		button{label: "-", action: actionShorter, enabled: v.TimerSeconds > deck.MinTimerSeconds},
		button{label: fmt.Sprintf("%ds", v.TimerSeconds)},
		button{label: "+", action: actionLonger, enabled: v.TimerSeconds < MaxStepSeconds},
		button{label: "Set", action: actionDuration, enabled: true},
	)

	if v.Running {
		m.countdown.Width = m.cardWidth() - 8
		l.block(m.countdown.ViewAs(v.Countdown) + " " + styles.muted.Render(elapsedText(v)))
	}

	if m.focus == DurationFocus {
		l.block(m.seconds.View())
	}

	if m.status != "" {
		if m.statusErr {
			l.block(styles.err.Render(m.status))
		} else {
			l.block(styles.ok.Render(m.status))
		}
	}

	l.block("")
	l.block(m.help.View(m.keys))

	m.hits = l.hits
	return l.String()
}

func (m *Model) renderCard(v deck.View) string {
	style := styles.card
	switch {
	case v.Changing:
		style = styles.fading
	case v.Flipped:
		style = styles.back
	}
	style = style.Width(m.cardWidth())

	if v.Empty {
		return style.Render(styles.muted.Render("No cards in this category"))
	}

	lines := []string{styles.muted.Render(v.CategoryLabel), ""}
	if v.Flipped {
		lines = append(lines, styles.meaning.Render(v.Card.Meaning))
		if v.Card.MeaningFa != "" {
			lines = append(lines, v.Card.MeaningFa)
		}
	} else {
		lines = append(lines, styles.word.Render(v.Card.Word))
		if v.Card.Pronunciation != "" {
			lines = append(lines, styles.muted.Render("["+v.Card.Pronunciation+"]"))
		}
		if v.Card.Example != "" {
			lines = append(lines, "", styles.help.Render(v.Card.Example))
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderProgress(v deck.View) string {
	text := v.ProgressText
	m.bar.Width = max(m.cardWidth()-lipgloss.Width(text)-2, 10)
	return text + "  " + m.bar.ViewAs(v.Percent/100)
}
