package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day key format used throughout the workout log.
const DateLayout = "2006-01-02"

// FormatDate renders t as a log date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local date as a log date key.
func Today() string {
	return FormatDate(time.Now())
}

// CompareDates orders two date keys chronologically, returning -1, 0 or 1.
// Keys that fail to parse fall back to lexicographic order, which matches
// chronological order for well-formed zero-padded dates anyway.
func CompareDates(a, b string) int {
	ta, errA := time.Parse(DateLayout, a)
	tb, errB := time.Parse(DateLayout, b)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}

// DateBefore reports whether a is strictly earlier than b.
func DateBefore(a, b string) bool {
	return CompareDates(a, b) < 0
}
