package utils

import (
	"math"
	"strings"
	"time"
)

// InvalidDate is returned by FormatDate for values it cannot interpret.
const InvalidDate = "Invalid Date"

// maxEpochMillis bounds the representable range of millisecond timestamps,
// 100,000,000 days either side of the epoch.
const maxEpochMillis = 8.64e15

// USDateLayout renders dates the way en-US locales do (M/D/YYYY).
const USDateLayout = "1/2/2006"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatDate renders v as an en-US short date. v may be a time.Time,
// *time.Time, a date string or unix milliseconds. Anything else yields
// InvalidDate.
func FormatDate(v any) string {
	t, ok := toTime(v)
	if !ok {
		return InvalidDate
	}
	return t.Format(USDateLayout)
}

func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case string:
		return parseDateString(val)
	case int64:
		return fromMillis(float64(val))
	case int:
		return fromMillis(float64(val))
	case float64:
		return fromMillis(val)
	default:
		return time.Time{}, false
	}
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

func parseDateString(s string) (time.Time, bool) {
	s = TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := ParseRFC3339(s); err == nil {
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// US form already, e.g. "3/5/2024"
	if strings.Count(s, "/") == 2 {
		if t, err := time.Parse(USDateLayout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
