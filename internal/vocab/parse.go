package vocab

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/flashdeck/internal/models"
)

// Format is a vocabulary file encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
)

// tomlDeck is the TOML file layout: one [[cards]] table per card.
type tomlDeck struct {
	Cards []models.Card `toml:"cards"`
}

// FormatFor infers the format from a file name, defaulting to JSON.
func FormatFor(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return TOML
	}
	return JSON
}

// Parse decodes a vocabulary document.
//
// JSON documents are a top-level array of cards; TOML documents use [[cards]] tables.
func Parse(data []byte, format Format) ([]models.Card, error) {
	switch format {
	case TOML:
		var doc tomlDeck
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML vocabulary: %w", err)
		}
		return doc.Cards, nil
	case JSON, "":
		var cards []models.Card
		if err := json.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("failed to parse JSON vocabulary: %w", err)
		}
		return cards, nil
	default:
		return nil, fmt.Errorf("unsupported vocabulary format %q", format)
	}
}

// Encode writes cards in the given format.
func Encode(cards []models.Card, format Format) ([]byte, error) {
	switch format {
	case TOML:
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(tomlDeck{Cards: cards}); err != nil {
			return nil, fmt.Errorf("failed to encode TOML vocabulary: %w", err)
		}
		return []byte(b.String()), nil
	default:
		return json.MarshalIndent(cards, "", "  ")
	}
}
