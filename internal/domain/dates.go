package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// Today returns the current calendar date in the local time zone.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// AddMonths moves d forward by n months. When the target month is shorter the
// day is clamped to its last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(d civil.Date, n int) civil.Date {
	// Normalise on the first of the month to avoid time.Date rolling over.
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return civil.Date{Year: first.Year(), Month: first.Month(), Day: day}
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
