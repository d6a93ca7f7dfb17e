// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/flashdeck/internal/models"
)

// SampleCards returns a small multi-category vocabulary list.
func SampleCards() []models.Card {
	return []models.Card{
		{Word: "Hallo", Pronunciation: "HA-lo", Example: "Hallo, wie geht's?", Meaning: "Hello", MeaningFa: "سلام", Category: "greetings"},
		{Word: "das Brot", Pronunciation: "das broht", Example: "Ich esse Brot.", Meaning: "bread", MeaningFa: "نان", Category: "food_drink"},
		{Word: "Tschüss", Pronunciation: "chüs", Meaning: "Bye", Category: "greetings"},
		{Word: "das Haus", Pronunciation: "das hows", Meaning: "house", Category: "home"},
		{Word: "die Arbeit", Pronunciation: "dee AR-bite", Meaning: "work", Category: "work"},
	}
}

// LetterCards returns one card per word, all in category "letters".
func LetterCards(words ...string) []models.Card {
	cards := make([]models.Card, len(words))
	for i, w := range words {
		cards[i] = models.Card{Word: w, Pronunciation: w, Meaning: w + "-meaning", Category: "letters"}
	}
	return cards
}

// SampleJSON is [SampleCards] in the vocabulary file format.
const SampleJSON = `[
  {"word": "Hallo", "pronunciation": "HA-lo", "example": "Hallo, wie geht's?", "meaning": "Hello", "meaning_fa": "سلام", "category": "greetings"},
  {"word": "das Brot", "pronunciation": "das broht", "example": "Ich esse Brot.", "meaning": "bread", "meaning_fa": "نان", "category": "food_drink"},
  {"word": "Tschüss", "pronunciation": "chüs", "meaning": "Bye", "category": "greetings"},
  {"word": "das Haus", "pronunciation": "das hows", "meaning": "house", "category": "home"},
  {"word": "die Arbeit", "pronunciation": "dee AR-bite", "meaning": "work", "category": "work"}
]`

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
