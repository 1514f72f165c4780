package agent

import "strings"

const (
	// speechCharBudget is the synthesis provider's per-request character limit.
	speechCharBudget = 2800

	// truncationNotice is appended whenever a reply is cut to fit the budget.
	truncationNotice = " The rest of this response was trimmed for audio playback."
)

// StripMarkdown removes emphasis markers the synthesizer would otherwise read
// aloud. Only '*' and '#' are dropped; every other character keeps its order.
// Stripping is idempotent.
func StripMarkdown(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '*' || r == '#' {
			return -1
		}
		return r
	}, s)
}

// ShapeForSpeech prepares model output for synthesis: markdown markers are
// stripped, and replies longer than the speech budget are truncated at the
// last sentence boundary that still leaves room for the truncation notice.
// When no sentence boundary exists in range, the text is hard-cut instead.
func ShapeForSpeech(s string) string {
	s = StripMarkdown(s)
	runes := []rune(s)
	if len(runes) <= speechCharBudget {
		return s
	}

	cut := speechCharBudget - len([]rune(truncationNotice))
	for i := cut - 1; i >= 0; i-- {
		if runes[i] == '.' {
			return string(runes[:i+1]) + truncationNotice
		}
	}
	return string(runes[:cut]) + truncationNotice
}
