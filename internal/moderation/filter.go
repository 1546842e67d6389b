// Package moderation is the pure content filter run before any comment is
// persisted. No I/O: every check is a function of the candidate text and
// the author's recent submission history.
package moderation

import (
	"strings"
	"unicode"
)

// MaxContentLength is the hard cap on comment bodies.
const MaxContentLength = 2000

// Severity classifies how problematic submitted text is judged to be.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityModerate
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	default:
		return "none"
	}
}

// Result is the combined outcome of all checks. Allowed=false means the
// submission must be aborted before any store call; Warnings never block.
type Result struct {
	Allowed        bool     `json:"allowed"`
	BlockingReason string   `json:"blocking_reason,omitempty"`
	Warnings       []string `json:"warnings"`
	Severity       Severity `json:"severity"`
	QualityScore   int      `json:"quality_score"`
}

// Evaluate runs structural validation, severity classification, spam
// detection and quality scoring over the candidate text. history holds the
// author's recent comment bodies (most recent last), used only by the spam
// check. Severe content and spam block; moderate content posts with a
// warning — deliberate soft-moderation policy, not an oversight.
func Evaluate(content string, history []string) Result {
	res := Result{Warnings: []string{}}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		res.BlockingReason = "comment cannot be empty"
		return res
	}
	if len([]rune(content)) > MaxContentLength {
		res.BlockingReason = "comment exceeds the maximum length"
		return res
	}

	res.Severity = ClassifySeverity(trimmed)
	if res.Severity == SeveritySevere {
		res.BlockingReason = "comment contains prohibited language"
		return res
	}

	if reason, spam := DetectSpam(trimmed, history); spam {
		res.BlockingReason = reason
		return res
	}

	if res.Severity == SeverityModerate {
		res.Warnings = append(res.Warnings, "comment may contain inappropriate language")
	}
	res.Warnings = append(res.Warnings, structuralWarnings(trimmed)...)

	res.Allowed = true
	res.QualityScore = QualityScore(trimmed)
	return res
}

// ValidateEdit re-runs only the structural checks. Edits correct the
// author's own prior content, so spam and severity are not re-applied.
func ValidateEdit(content string) Result {
	res := Result{Warnings: []string{}}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		res.BlockingReason = "comment cannot be empty"
		return res
	}
	if len([]rune(content)) > MaxContentLength {
		res.BlockingReason = "comment exceeds the maximum length"
		return res
	}

	res.Allowed = true
	res.Warnings = structuralWarnings(trimmed)
	res.QualityScore = QualityScore(trimmed)
	return res
}

// structuralWarnings flags caps abuse, character runs and bare links.
// All of these are advisory only.
func structuralWarnings(content string) []string {
	warnings := []string{}

	letters, uppers := 0, 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters >= 20 && float64(uppers)/float64(letters) > 0.6 {
		warnings = append(warnings, "excessive capitalization")
	}

	if longestRun(content) >= 6 {
		warnings = append(warnings, "excessive repeated characters")
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") || strings.Contains(lower, "www.") {
		warnings = append(warnings, "comment contains a link")
	}

	return warnings
}

func longestRun(s string) int {
	longest, run := 0, 0
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = r
	}
	return longest
}
