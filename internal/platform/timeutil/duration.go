// Package timeutil implements the compact appointment duration format and
// the end-time/overdue arithmetic built on it.
package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern accepts an optional "<N>h" token followed by an optional
// "<N>m" token, e.g. "1h", "30m", "1h 30m". Anything else is invalid.
var durationPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:\s*(\d+)m)?$`)

// maxComponent caps each duration component so the hour/minute arithmetic
// stays far away from time.Duration overflow.
const maxComponent = 1_000_000

// ParseDuration parses a compact duration string into a time.Duration.
// At least one component must be present and the result must be strictly
// positive; fractional values, negatives, other units, and absurdly large
// components are rejected. The second return value is false on invalid input.
func ParseDuration(text string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}

	hours, ok := parseComponent(m[1])
	if !ok {
		return 0, false
	}
	minutes, ok := parseComponent(m[2])
	if !ok {
		return 0, false
	}
	if hours == 0 && minutes == 0 {
		return 0, false
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, true
}

func parseComponent(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxComponent {
		return 0, false
	}
	return n, true
}

// EndTime returns start plus the parsed duration. The second return value is
// false when the duration text does not parse.
func EndTime(start time.Time, durationText string) (time.Time, bool) {
	d, ok := ParseDuration(durationText)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(d), true
}

// IsOverdue reports whether now is strictly past the appointment's end time.
// An appointment exactly at its end boundary is not yet overdue. Unparseable
// durations are never overdue. A zero now means the current UTC instant.
func IsOverdue(start time.Time, durationText string, now time.Time) bool {
	if now.IsZero() {
		now = UTCNow()
	}
	end, ok := EndTime(start, durationText)
	if !ok {
		return false
	}
	return now.After(end)
}

// UTCNow returns the current instant in UTC.
func UTCNow() time.Time {
	return time.Now().UTC()
}
