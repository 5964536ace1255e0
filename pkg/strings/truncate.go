// Package strings holds small string helpers shared across packages.
package strings

import (
	"strings"
)

// MinTruncateLen is the smallest usable maxLen for Truncate. Anything
// shorter leaves no room for content plus the "..." marker.
const MinTruncateLen = 4

// Truncate squeezes s onto one line and caps it at maxLen runes, appending
// "..." when something was cut. Runs of whitespace, newlines included,
// collapse to single spaces first so multi-line input cannot break a table
// row.
//
// Truncation counts runes, not bytes, so multi-byte characters are never
// split. A maxLen below MinTruncateLen is clamped up to it.
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
