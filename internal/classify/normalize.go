package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases the text, folds diacritics ("regiões" -> "regioes")
// and strips punctuation, so trigger terms can be matched on plain ASCII
// word boundaries.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(foldTransformer, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsTerm reports whether the normalized text contains term as a whole
// word (or whole phrase, for multi-word terms).
func containsTerm(normalized, term string) bool {
	padded := " " + normalized + " "
	return strings.Contains(padded, " "+term+" ")
}
