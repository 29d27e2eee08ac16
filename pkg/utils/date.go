package utils

import "time"

// DateLayout is the calendar date format used by Zoho Books query parameters and payloads.
const DateLayout = time.DateOnly

// FormatDate renders t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
