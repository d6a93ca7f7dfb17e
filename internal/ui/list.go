package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/flashdeck/internal/models"
)

var (
	_ list.Item = categoryItem{}
)

// categoryItem is one entry of the category selector.
type categoryItem struct {
	id    string
	label string
	count int
}

func (i categoryItem) FilterValue() string { return i.label }
func (i categoryItem) Title() string       { return i.label }
func (i categoryItem) Description() string {
	if i.id == models.CategoryAll || i.id == i.label {
		return fmt.Sprintf("%d cards", i.count)
	}
	return fmt.Sprintf("%d cards • %s", i.count, i.id)
}

// categoryItems lists "all" followed by the deck's categories in first-appearance order.
func categoryItems(deck *models.Deck, labels models.Labels) []list.Item {
	counts := deck.CategoryCounts()
	cats := deck.Categories()

	items := make([]list.Item, 0, len(cats)+1)
	items = append(items, categoryItem{id: models.CategoryAll, label: labels.CategoryName(models.CategoryAll), count: deck.Len()})
	for _, cat := range cats {
		items = append(items, categoryItem{id: cat, label: labels.CategoryName(cat), count: counts[cat]})
	}
	return items
}

func newCategoryList(deck *models.Deck, labels models.Labels) list.Model {
	l := list.New(categoryItems(deck, labels), list.NewDefaultDelegate(), 46, 16)
	l.Title = "Category"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
