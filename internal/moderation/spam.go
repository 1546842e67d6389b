package moderation

import (
	"strings"
	"sync"
)

// HistorySize is how many recent bodies per author the spam check sees.
const HistorySize = 10

// DetectSpam flags the candidate text as spam when it is an exact or
// near-duplicate of one of the author's recent submissions, or when the
// text itself is dominated by one repeated short pattern. Spam blocks.
func DetectSpam(content string, history []string) (string, bool) {
	norm := normalize(content)

	for _, prev := range history {
		prevNorm := normalize(prev)
		if norm == prevNorm {
			return "duplicate of a recent comment", true
		}
		if similarity(norm, prevNorm) >= 0.85 {
			return "too similar to a recent comment", true
		}
	}

	if internalRepetition(norm) {
		return "comment looks like repeated spam", true
	}

	return "", false
}

// normalize lowercases and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// similarity is token-set Jaccard similarity between two normalized texts.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := map[string]bool{}
	for _, w := range strings.Fields(a) {
		setA[w] = true
	}
	setB := map[string]bool{}
	for _, w := range strings.Fields(b) {
		setB[w] = true
	}
	common := 0
	for w := range setA {
		if setB[w] {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// internalRepetition reports whether one word dominates a long enough text,
// or the same word appears many times consecutively.
func internalRepetition(norm string) bool {
	words := strings.Fields(norm)
	if len(words) < 6 {
		return false
	}

	freq := map[string]int{}
	maxFreq := 0
	for _, w := range words {
		freq[w]++
		if freq[w] > maxFreq {
			maxFreq = freq[w]
		}
	}
	if len(words) >= 10 && float64(maxFreq)/float64(len(words)) >= 0.5 {
		return true
	}

	run := 1
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			run++
			if run >= 5 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// History keeps each author's recent comment bodies for the spam check.
// Purely advisory: bounded, in-memory, lost on restart.
type History struct {
	mu      sync.Mutex
	entries map[string][]string
}

func NewHistory() *History {
	return &History{entries: make(map[string][]string)}
}

// Recent returns the recorded bodies for the user, most recent last.
func (h *History) Recent(userID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	recent := h.entries[userID]
	out := make([]string, len(recent))
	copy(out, recent)
	return out
}

// Record appends a submitted body, keeping only the last HistorySize.
func (h *History) Record(userID, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	recent := append(h.entries[userID], content)
	if len(recent) > HistorySize {
		recent = recent[len(recent)-HistorySize:]
	}
	h.entries[userID] = recent
}
