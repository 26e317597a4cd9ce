package strings

import (
	"strings"
)

// DefaultCellMaxLen is the widest table cell the console output prints.
const DefaultCellMaxLen = 100

// MinTruncateLen is the smallest maxLen Truncate honours.
const MinTruncateLen = 4

// Truncate flattens s onto one line and cuts it to at most maxLen runes,
// ending in "..." when cut. Runs of whitespace, newlines included, become a
// single space. maxLen below MinTruncateLen is raised to it.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
