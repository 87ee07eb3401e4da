package game

import (
	"regexp"
	"strings"
)

// Words dropped before similarity scoring. Articles and glue carry no
// signal for a trivia answer.
var bannedWords = map[string]struct{}{
	"a":   {},
	"the": {},
	"of":  {},
	"and": {},
	"&":   {},
}

var bracketRe = regexp.MustCompile(`\([^)]*\)`)

// FilterWords drops banned filler tokens case-insensitively and rejoins
// the rest with single spaces. When every token is filtered out the
// original text is returned unchanged so the comparison string never
// collapses to empty.
func FilterWords(text string) string {
	var kept []string
	for _, tok := range strings.Fields(text) {
		if _, banned := bannedWords[strings.ToLower(tok)]; banned {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return text
	}
	return strings.Join(kept, " ")
}

// StripBrackets removes every parenthesized aside. Nesting is not
// expected: the first ')' closes each '('.
func StripBrackets(text string) string {
	return bracketRe.ReplaceAllString(text, "")
}
