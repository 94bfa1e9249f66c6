package stringutils

import (
	"regexp"
	"strings"
)

var reSpace = regexp.MustCompile(`\s+`)

// Truncate shortens a string to at most n runes, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// CollapseSpace trims a string and folds internal whitespace runs into a
// single space. HTML-extracted text tends to arrive full of both.
func CollapseSpace(s string) string {
	return reSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SplitCSV splits a comma-separated list, trimming each element and
// dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
