package utils

import "time"

// SQLDateTimeFormat is the canonical timestamp layout used in exported
// trade rows and the journal store.
const SQLDateTimeFormat = "2006-01-02 15:04:05"

// FormatTimestamp renders a timestamp in the canonical layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(SQLDateTimeFormat)
}

// ParseTimestamp accepts the canonical layout with or without a
// time-of-day component.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(SQLDateTimeFormat, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
