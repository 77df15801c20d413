package textutil

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumericPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespacePattern      = regexp.MustCompile(`\s+`)
)

// NormalizeTitle prepares a title for comparison: special characters removed,
// runs of whitespace collapsed to single spaces, lowercased, trimmed.
func NormalizeTitle(title string) string {
	cleaned := nonAlphanumericPattern.ReplaceAllString(title, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// Truncate returns at most n bytes of s. Comparison inputs are normalized
// ASCII, so byte truncation is safe here.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
