package models

// Language selects the UI strings.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

// Labels holds the UI strings for one language.
type Labels struct {
	Language   Language
	Of         string // connector in the "3 of 5" progress readout
	All        string
	Categories map[string]string
}

var labelSets = map[Language]Labels{
	English: {
		Language: English,
		Of:       "of",
		All:      "All categories",
		Categories: map[string]string{
			"greetings":  "Greetings",
			"food_drink": "Food & Drink",
			"home":       "Home",
			"education":  "Education",
			"people":     "People",
			"time":       "Time",
			"emotions":   "Emotions",
			"work":       "Work",
		},
	},
	German: {
		Language: German,
		Of:       "von",
		All:      "Alle Kategorien",
		Categories: map[string]string{
			"greetings":  "Begrüßungen",
			"food_drink": "Essen & Trinken",
			"home":       "Zuhause",
			"education":  "Bildung",
			"people":     "Menschen",
			"time":       "Zeit",
			"emotions":   "Gefühle",
			"work":       "Arbeit",
		},
	},
}

// LabelsFor returns the strings for lang, falling back to English.
func LabelsFor(lang Language) Labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets[English]
}

// SupportedLanguage reports whether lang has a label set.
func SupportedLanguage(lang Language) bool {
	_, ok := labelSets[lang]
	return ok
}

// CategoryName returns the display label for category, or the identifier itself when unmapped.
func (l Labels) CategoryName(category string) string {
	if category == CategoryAll {
		return l.All
	}
	if name, ok := l.Categories[category]; ok {
		return name
	}
	return category
}
