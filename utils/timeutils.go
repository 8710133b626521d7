package utils

import (
	"fmt"
	"time"
)

// Iso8601 formats t in ISO8601 format, UTC.
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Iso8601Date returns just the date portion in YYYY-MM-DD format
func Iso8601Date(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Elapsed formats d as MM:SS. Minutes keep counting past the hour.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Pace formats a time per kilometer as M:SS.
func Pace(perKM time.Duration) string {
	if perKM <= 0 {
		return "0:00"
	}
	secs := int64(perKM.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
