package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ToFloat coerces a decoded JSON value into a float64. Numeric strings are
// accepted ("12.5"); anything else reports false so callers can surface a
// malformed-number validation error instead of writing garbage.
func ToFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// ToBool coerces a decoded JSON value into a bool.
func ToBool(v interface{}) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	}
	return false, false
}

// ParseDate accepts "2006-01-02" or RFC3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// SameOrAfterDay reports whether b falls on the same calendar day as a, or later.
func SameOrAfterDay(b, a time.Time) bool {
	return !day(b).Before(day(a))
}

// DaysBetween returns whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(day(b).Sub(day(a)).Hours() / 24)
}

// day truncates to calendar-day precision. Inputs may arrive in mixed zones
// (request payloads parse as UTC, database timestamps round-trip through the
// driver), so both are read in local time before the components are compared.
// The midnight itself is anchored in UTC to keep day arithmetic exact across
// DST transitions.
func day(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
