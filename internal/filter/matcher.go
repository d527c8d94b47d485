package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher rejects vacancies whose title or employer contains any of the
// configured excluded words. Matching is a caseless, accent-insensitive
// substring check against both fields.
type Matcher struct {
	words []string
}

func NewMatcher(excludedWords []string) *Matcher {
	words := make([]string, 0, len(excludedWords))
	for _, w := range excludedWords {
		w = normalizeText(w)
		if w != "" {
			words = append(words, w)
		}
	}
	return &Matcher{words: words}
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

// Excluded reports whether the vacancy should be dropped and which word hit.
func (m *Matcher) Excluded(title, employer string) (string, bool) {
	title = normalizeText(title)
	employer = normalizeText(employer)
	for _, word := range m.words {
		if strings.Contains(title, word) || strings.Contains(employer, word) {
			return word, true
		}
	}
	return "", false
}
