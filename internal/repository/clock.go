package repository

import "time"

// Timestamps are stored as local-time text, dates as YYYY-MM-DD.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// now is replaced in tests that need deterministic timestamps.
var now = time.Now

// SetClock replaces the clock used for stored timestamps and returns a
// function that restores the previous one.
func SetClock(fn func() time.Time) (restore func()) {
	prev := now
	now = fn
	return func() { now = prev }
}

// Now returns the current local time from the repository clock.
func Now() time.Time {
	return now().Local()
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return todayLocal()
}

func nowLocal() string {
	return now().Local().Format(TimestampLayout)
}

func todayLocal() string {
	return now().Local().Format(DateLayout)
}

// likePattern wraps s for a substring LIKE match.
func likePattern(s string) string {
	return "%" + s + "%"
}
