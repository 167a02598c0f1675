package model

import "time"

// DateOnly is the wire and storage format for civil dates.
const DateOnly = "2006-01-02"

// Midnight truncates t to its civil date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string into a UTC civil date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateOnly, s)
}

// DaysBetween returns b - a in whole days, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)) / (24 * time.Hour))
}

// SameDate reports whether a and b fall on the same civil date.
func SameDate(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}
