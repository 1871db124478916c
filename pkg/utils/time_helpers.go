package utils

import (
	"strings"
	"time"

	"equipment-tracker/pkg/constants"
)

// ParseDate parses a YYYY-MM-DD calendar date. Empty input reports ok=false.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
