package sanitizer

import (
	"regexp"
	"sort"
	"strings"
)

var reClockTime = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})(?::[0-9]{2})?$`)

// NormalizeClockTime brings a wall-clock time to canonical HH:MM form:
// "9:00" becomes "09:00", "14:00:00" becomes "14:00". Input that is not a
// clock time at all is returned trimmed for the validator to reject.
func NormalizeClockTime(t string) string {
	t = strings.TrimSpace(t)

	m := reClockTime.FindStringSubmatch(t)
	if m == nil {
		return t
	}

	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + m[2]
}

// NormalizeTimeSlice normalizes, deduplicates and sorts a set of requested
// slot times. Lexicographic order on HH:MM strings is chronological order.
func NormalizeTimeSlice(times []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, t := range times {
		n := NormalizeClockTime(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	sort.Strings(out)
	return out
}
