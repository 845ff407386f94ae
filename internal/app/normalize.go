package app

import (
	_ "embed"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed stopwords_en.txt
var stopwordsRaw string

// englishStopwords is the NLTK english list.
var englishStopwords = func() map[string]struct{} {
	set := make(map[string]struct{}, 200)
	for _, w := range strings.Fields(stopwordsRaw) {
		set[w] = struct{}{}
	}
	return set
}()

// TextNormalizer prepares review text for corpus statistics. It is never
// used on the prediction path.
type TextNormalizer struct {
	stop map[string]struct{}
}

func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{stop: englishStopwords}
}

// Normalize lowercases, keeps only a-z and whitespace, collapses spaces and
// drops stopwords.
func (n *TextNormalizer) Normalize(text string) string {
	lower := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, stop := n.stop[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func (n *TextNormalizer) IsStopword(w string) bool {
	_, ok := n.stop[w]
	return ok
}
