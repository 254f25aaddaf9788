package utils

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Today is the current UTC day. Entries from every client share one calendar.
func Today() string { return DayOf(time.Now()) }

func DayOf(t time.Time) string { return t.UTC().Format(DayLayout) }

// ParseDay validates an ISO day string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidRange checks both ends and that to is not before from.
func ValidRange(from, to string) error {
	f, err := ParseDay(from)
	if err != nil {
		return err
	}
	t, err := ParseDay(to)
	if err != nil {
		return err
	}
	if t.Before(f) {
		return fmt.Errorf("`to` must be on/after `from`")
	}
	return nil
}
