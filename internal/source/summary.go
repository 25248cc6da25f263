package source

import "strings"

// summaryMaxLen caps task summaries when no sentence boundary is found.
const summaryMaxLen = 80

// TaskSummary condenses the opening text of a session into a short
// task description: the first sentence, or the first 80 characters
// when the text has no sentence boundary. The terminator itself is
// dropped.
func TaskSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if idx := strings.IndexAny(text, ".!?\n"); idx >= 0 {
		text = text[:idx]
	}

	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > summaryMaxLen {
		text = strings.TrimSpace(string(runes[:summaryMaxLen]))
	}
	return text
}
