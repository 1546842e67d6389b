package moderation

import (
	"strings"
	"unicode"
)

// Quality badge thresholds used by clients. The score never blocks.
const (
	QualityHighThreshold = 75
	QualityLowThreshold  = 30
)

// QualityScore is a 0-100 heuristic over length, vocabulary variety and
// punctuation use.
func QualityScore(content string) int {
	score := 50

	runes := []rune(content)
	if len(runes) >= 40 {
		score += 10
	}
	if len(runes) >= 120 {
		score += 10
	}
	if len(runes) < 10 {
		score -= 20
	}

	words := strings.Fields(strings.ToLower(content))
	if len(words) > 0 {
		unique := map[string]bool{}
		for _, w := range words {
			unique[w] = true
		}
		variety := float64(len(unique)) / float64(len(words))
		// scale [0,1] variety into [-20,+20]
		score += int(variety*40) - 20
	}

	if strings.ContainsAny(content, ".,!?;:") {
		score += 10
	}

	letters, uppers := 0, 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters > 0 && float64(uppers)/float64(letters) > 0.6 {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
