package deck

import (
	"math/rand/v2"

	"github.com/desertthunder/flashdeck/internal/models"
)

// Shuffle returns a uniformly permuted copy of cards (Fisher-Yates).
//
// intn must return a value in [0, n); nil uses [rand.IntN].
func Shuffle(cards []models.Card, intn func(n int) int) []models.Card {
	if intn == nil {
		intn = rand.IntN
	}
	out := make([]models.Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
