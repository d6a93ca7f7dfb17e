// package formatter provides functions to export vocabulary decks to various formats (CSV, Markdown, plain text, JSON, TOML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/desertthunder/flashdeck/internal/vocab"
)

// Format is an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
	TOML     Format = "toml"
)

// Formats lists every supported export format.
var Formats = []Format{CSV, Markdown, Text, JSON, TOML}

// DeckExport is a deck prepared for export.
type DeckExport struct {
	Title    string
	Category string
	Labels   models.Labels
	Cards    []models.Card
}

// NewDeckExport builds an export of deck filtered to category ("all" or empty keeps every card).
func NewDeckExport(title string, deck *models.Deck, category string, labels models.Labels) *DeckExport {
	if category == "" {
		category = models.CategoryAll
	}
	return &DeckExport{Title: title, Category: category, Labels: labels, Cards: deck.Filter(category)}
}

// ParseFormat resolves a format name, accepting the common aliases md and txt.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	case "json", "":
		return JSON, nil
	case "toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, name)
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case Text:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// ExportToCSV converts a DeckExport to CSV format with columns: Word, Pronunciation, Example, Meaning, MeaningFa, Category
func ExportToCSV(export *DeckExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Word", "Pronunciation", "Example", "Meaning", "MeaningFa", "Category"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, card := range export.Cards {
		record := []string{
			card.Word,
			card.Pronunciation,
			card.Example,
			card.Meaning,
			card.MeaningFa,
			card.Category,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a DeckExport to Markdown, one section per category in first-appearance order
func ExportToMarkdown(export *DeckExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Title))
	buf.WriteString(fmt.Sprintf("**Cards**: %d\n", len(export.Cards)))
	buf.WriteString(fmt.Sprintf("**Category**: %s\n\n", export.Labels.CategoryName(export.Category)))

	deck := models.NewDeck(export.Cards)
	for _, cat := range deck.Categories() {
		buf.WriteString(fmt.Sprintf("## %s\n\n", export.Labels.CategoryName(cat)))
		for i, card := range deck.Filter(cat) {
			buf.WriteString(fmt.Sprintf("%d. **%s** [%s]: %s", i+1, card.Word, card.Pronunciation, card.Meaning))
			if card.MeaningFa != "" {
				buf.WriteString(fmt.Sprintf(" (%s)", card.MeaningFa))
			}
			buf.WriteString("\n")
			if card.Example != "" {
				buf.WriteString(fmt.Sprintf("   > %s\n", card.Example))
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a DeckExport to plain text format
func ExportToText(export *DeckExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Deck: %s\n", export.Title))
	buf.WriteString(fmt.Sprintf("Category: %s\n", export.Labels.CategoryName(export.Category)))
	buf.WriteString(fmt.Sprintf("Cards: %d\n\n", len(export.Cards)))

	for i, card := range export.Cards {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, card.Word, card.Meaning))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a DeckExport to the JSON vocabulary format, so exports can be loaded back as a source
func ExportToJSON(export *DeckExport) ([]byte, error) {
	return shared.MarshalJSON(export.Cards, true)
}

// ExportToTOML converts a DeckExport to the TOML vocabulary format
func ExportToTOML(export *DeckExport) ([]byte, error) {
	return vocab.Encode(export.Cards, vocab.TOML)
}

// Export encodes export in the given format.
func Export(export *DeckExport, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(export)
	case Markdown:
		return ExportToMarkdown(export)
	case Text:
		return ExportToText(export)
	case JSON:
		return ExportToJSON(export)
	case TOML:
		return ExportToTOML(export)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport encodes export and writes it to w.
func WriteExport(w io.Writer, export *DeckExport, format Format) error {
	data, err := Export(export, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteExportFile writes export to path, creating parent directories.
//
// Defaults to {category}_cards{ext} as the filename.
func WriteExportFile(export *DeckExport, format Format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_cards%s", export.Category, format.Extension())
	}

	data, err := Export(export, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// CategorySummary describes one category of a deck.
type CategorySummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SummarizeCategories lists the categories of deck in first-appearance order.
func SummarizeCategories(deck *models.Deck, labels models.Labels) []CategorySummary {
	counts := deck.CategoryCounts()
	cats := deck.Categories()
	out := make([]CategorySummary, len(cats))
	for i, cat := range cats {
		out[i] = CategorySummary{ID: cat, Label: labels.CategoryName(cat), Count: counts[cat]}
	}
	return out
}
