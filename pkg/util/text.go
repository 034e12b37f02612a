package util

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?(.*?)```")

// CleanCompletionText normalizes a chat completion before it is parsed.
// Models sometimes wrap plain-text answers in markdown fences or quotes.
func CleanCompletionText(text string) string {
	cleaned := strings.TrimSpace(text)

	if matches := codeFenceRe.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = strings.TrimSpace(matches[1])
	}

	if len(cleaned) >= 2 {
		if (strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`)) ||
			(strings.HasPrefix(cleaned, "'") && strings.HasSuffix(cleaned, "'")) {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
	}

	return cleaned
}

// SplitWords splits text on any whitespace run, dropping empty tokens.
func SplitWords(text string) []string {
	return strings.Fields(text)
}
