package types

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)

	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}

	return parsed, nil
}

// Date truncates t to its calendar day in UTC, keeping the day as read in
// t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return Date(t).Format(DateLayout)
}

// DateAfter reports whether the calendar day of a is strictly after that of b.
func DateAfter(a, b time.Time) bool {
	return Date(a).After(Date(b))
}
