package utils

import (
	"fmt"
	"time"
)

// French month names, indexed by time.Month
var monthNames = [...]string{
	"",
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// MonthKey formats a year/month pair as YYYY-MM
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses a YYYY-MM string
func ParseMonthKey(key string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", key, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthName returns the French name of a month
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month]
}

// LastDayOfMonth returns the number of days in the given month
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a configured payment day (1-31) to a valid day of the
// given month, so payment_day=31 lands on the last day of February.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := LastDayOfMonth(year, month); day > last {
		return last
	}
	return day
}

// DueDate builds the due date of a payment for a target month, clamping
// the configured day to the end of the month when needed.
func DueDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, ClampDay(year, month, day), 0, 0, 0, 0, time.UTC)
}

// PeriodWindow resolves a reporting period to a [from, to) interval around
// the reference time. Month is the current calendar month, quarter the
// current calendar-aligned 3-month block, year the current calendar year.
// An open window (zero bounds) means no filtering.
func PeriodWindow(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "month":
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0)
	case "quarter":
		qStart := time.Month((int(now.Month())-1)/3*3 + 1)
		from := time.Date(now.Year(), qStart, 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 3, 0)
	case "year":
		from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

// InWindow reports whether t falls within the [from, to) interval.
// A zero interval matches everything.
func InWindow(t, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	return !t.Before(from) && t.Before(to)
}
