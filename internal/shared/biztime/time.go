// Package biztime centralizes time handling. All storage and transport
// use UTC; persistence columns hold Unix milliseconds.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FromMillis converts a Unix-millisecond column value back to UTC time.
func FromMillis(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond)).UTC()
}

// FromMillisPtr converts an optional millisecond column value.
func FromMillisPtr(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := FromMillis(*millis)
	return &t
}

// ToMillisPtr converts an optional time to its millisecond column value.
func ToMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// FormatMetadataTime formats a UTC time for storage inside activity
// metadata using RFC3339.
func FormatMetadataTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseMetadataTime parses a timestamp stored by FormatMetadataTime.
func ParseMetadataTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid metadata timestamp format %q: %w", s, err)
	}
	return t, nil
}
