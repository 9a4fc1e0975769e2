package utils

import (
	"strings"
	"unicode/utf8"
)

// TrimSpace trims leading and trailing white space.
func TrimSpace(s string) string { return strings.TrimSpace(s) }

// DefaultIfEmpty returns def if s is empty (after TrimSpace), otherwise s.
func DefaultIfEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Truncate returns a string not exceeding maxRunes runes. Adds ellipsis if truncated and addEllipsis is true.
func Truncate(s string, maxRunes int, addEllipsis bool) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count == maxRunes {
			break
		}
		b.WriteRune(r)
		count++
	}
	out := b.String()
	if addEllipsis && !strings.HasSuffix(out, "…") {
		out += "…"
	}
	return out
}
