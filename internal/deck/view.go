package deck

import (
	"fmt"

	"github.com/desertthunder/flashdeck/internal/models"
)

// View is the derived display state after a transition.
type View struct {
	Empty         bool
	Card          models.Card
	CategoryLabel string // display label of the current card's category
	Flipped       bool

	Position     int // 1-based; 0 when empty
	Total        int
	ProgressText string
	Percent      float64 // 0-100

	PrevEnabled bool
	NextEnabled bool

	Filter      string // active category filter
	FilterLabel string

	AutoAdvance  bool
	TimerSeconds int
	Running      bool
	Countdown    float64 // 0-1, only meaningful while Running

	Changing bool // inside the card-change transition window
}

// Renderer receives a [View] after every transition.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a func to [Renderer].
type RendererFunc func(View)

func (f RendererFunc) Render(v View) { f(v) }

// ProgressText formats the "{position} of {total}" readout.
func ProgressText(labels models.Labels, position, total int) string {
	return fmt.Sprintf("%d %s %d", position, labels.Of, total)
}

// Percent returns position/total as a percentage, 0 when total is 0.
func Percent(position, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(position) / float64(total) * 100
}
