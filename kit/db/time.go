package db

import (
	"fmt"
	"time"
)

// TimeLayout is how timestamps are stored. Fixed-width UTC text sorts the
// same lexically and chronologically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("db: parse time %q: %w", s, err)
	}
	return t, nil
}
