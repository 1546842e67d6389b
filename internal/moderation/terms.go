package moderation

import "strings"

// Classified term lists. Matching is whole-word on the lowercased text so
// that e.g. "scunthorpe" never trips the filter.
var severeTerms = []string{
	"kys",
	"kill yourself",
	"neck yourself",
	"subhuman",
	"gas yourself",
}

var moderateTerms = []string{
	"idiot",
	"moron",
	"stupid",
	"trash",
	"garbage",
	"dumbass",
	"crap",
}

// ClassifySeverity scans content against the classified term lists and
// returns the highest severity found.
func ClassifySeverity(content string) Severity {
	lower := strings.ToLower(content)
	words := tokenize(lower)

	for _, term := range severeTerms {
		if matchTerm(lower, words, term) {
			return SeveritySevere
		}
	}
	for _, term := range moderateTerms {
		if matchTerm(lower, words, term) {
			return SeverityModerate
		}
	}
	return SeverityNone
}

// matchTerm matches multi-word terms as substrings and single words
// against the token list.
func matchTerm(lower string, words []string, term string) bool {
	if strings.Contains(term, " ") {
		return strings.Contains(lower, term)
	}
	for _, w := range words {
		if w == term {
			return true
		}
	}
	return false
}

// tokenize splits lowercased text into alphanumeric words.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}
