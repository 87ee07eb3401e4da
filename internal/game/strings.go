package game

import (
	"strings"
	"unicode"
)

// normalizeAnswer lowers and trims the canonical answer before it
// reaches the matcher.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// titleCase upper-cases the first letter of each word and lower-cases
// the rest, for report titles.
func titleCase(s string) string {
	prevLetter := false
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
			return r
		}
		prevLetter = false
		return r
	}, s)
}
