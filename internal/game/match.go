package game

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Similarity at or above this grades a response as correct.
const matchThreshold = 70

// ResponseCorrect grades a free-text response against the canonical
// answer. Both strings have filler words removed, then the response is
// scored against the answer twice: once as-is and once with
// parenthesized clarifications stripped, so "paris" still matches
// "Paris (France)". Scoring is a token-sort ratio (0-100).
func ResponseCorrect(response, answer string) bool {
	filtered := FilterWords(response)
	full := FilterWords(answer)

	score := fuzzy.TokenSortRatio(filtered, full)
	if s := fuzzy.TokenSortRatio(filtered, StripBrackets(full)); s > score {
		score = s
	}
	return score >= matchThreshold
}
