// Package timeutil provides calendar helpers for EduTrack.
// All derived metrics work on whole calendar days, so the helpers here
// normalize times to day boundaries and compare dates by day, not by clock.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// Common date/time formats.
const (
	// FormatDate is the canonical date key format (YYYY-MM-DD).
	// Attendance records, focus logs, and saved weekly plans are keyed by it.
	FormatDate = "2006-01-02"
	// FormatTime is the standard time format (HH:MM).
	FormatTime = "15:04"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
)

// StartOfDay returns the start of the day (00:00:00) preserving the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the end of the day (23:59:59.999999999).
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// StartOfWeek returns the most recent week start (Sunday 00:00:00).
// Weeks start on Sunday: weekday 0, matching how the planner buckets days.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t.AddDate(0, 0, -int(t.Weekday())))
}

// EndOfWeek returns the end of the week (Saturday 23:59:59).
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

// DaysBetween returns the signed number of whole calendar days from a to b.
// Positive when b is after a. Clock time within the day is ignored.
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)
	return int(to.Sub(from).Hours() / 24)
}

// DaysUntil returns the whole calendar days from now until t.
// Negative for past dates, 0 for today, 1 for tomorrow.
func DaysUntil(now, t time.Time) int {
	return DaysBetween(now, t)
}

// IsSameDay checks if two times fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsConsecutiveDay checks if b is the calendar day after a.
func IsConsecutiveDay(a, b time.Time) bool {
	return IsSameDay(StartOfDay(a).AddDate(0, 0, 1), b)
}

// WithinLastDays checks if t falls inside the trailing window of n days
// ending at now (inclusive of today).
func WithinLastDays(now, t time.Time, n int) bool {
	cutoff := StartOfDay(now).AddDate(0, 0, -(n - 1))
	return !StartOfDay(t).Before(cutoff) && !StartOfDay(t).After(StartOfDay(now))
}

// DateKey formats a time as the canonical date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDateKey parses a canonical date key into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(FormatDate, key)
}
