// package models defines the vocabulary data model
package models

import (
	"fmt"
	"strings"
)

// CategoryAll selects every card in a deck.
const CategoryAll = "all"

// Card is a single vocabulary entry.
//
// The JSON field names match the vocabulary file format.
type Card struct {
	ID            string `json:"id,omitempty" toml:"id,omitempty"`
	Word          string `json:"word" toml:"word"`
	Pronunciation string `json:"pronunciation" toml:"pronunciation"`
	Example       string `json:"example,omitempty" toml:"example,omitempty"`
	Meaning       string `json:"meaning" toml:"meaning"`
	MeaningFa     string `json:"meaning_fa,omitempty" toml:"meaning_fa,omitempty"`
	Category      string `json:"category" toml:"category"`
}

// Validate checks the fields every card must carry.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Word) == "" {
		return fmt.Errorf("card word is required")
	}
	if strings.TrimSpace(c.Meaning) == "" {
		return fmt.Errorf("card %q: meaning is required", c.Word)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("card %q: category is required", c.Word)
	}
	if c.Category == CategoryAll {
		return fmt.Errorf("card %q: category %q is reserved", c.Word, CategoryAll)
	}
	return nil
}

// Deck is the full set of cards loaded at startup.
type Deck struct {
	cards []Card
}

// NewDeck copies cards into a new [Deck].
func NewDeck(cards []Card) *Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return &Deck{cards: cp}
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns a copy of the cards in load order.
func (d *Deck) Cards() []Card {
	cp := make([]Card, len(d.cards))
	copy(cp, d.cards)
	return cp
}

// Filter returns the cards whose category equals category, in load order.
//
// [CategoryAll] returns every card.
func (d *Deck) Filter(category string) []Card {
	if category == CategoryAll {
		return d.Cards()
	}
	out := []Card{}
	for _, c := range d.cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (d *Deck) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range d.cards {
		if !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out
}

// HasCategory reports whether any card carries category.
func (d *Deck) HasCategory(category string) bool {
	for _, c := range d.cards {
		if c.Category == category {
			return true
		}
	}
	return false
}

// CategoryCounts returns the number of cards per category.
func (d *Deck) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range d.cards {
		counts[c.Category]++
	}
	return counts
}
