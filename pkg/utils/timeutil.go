package utils

import (
	"time"
)

// ParseRFC3339 parses an RFC3339 timestamp.
func ParseRFC3339(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) }

// MustParseDuration parses duration or returns default if invalid.
func MustParseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
