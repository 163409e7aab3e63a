// Package workdays counts business days (Monday to Friday) over calendar date ranges.
package workdays

import "time"

const secondsPerDay = 24 * 60 * 60

// Date projects t onto a date-only value in UTC, keeping the year, month and day
// as observed in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWorkingDay reports whether d falls on Monday through Friday.
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Count returns the number of working days in [start, end], both ends inclusive.
// A zero start or end, or start after end, yields 0.
func Count(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}

	start, end = Date(start), Date(end)
	if start.After(end) {
		return 0
	}

	days := int((end.Unix()-start.Unix())/secondsPerDay) + 1

	n := (days / 7) * 5
	first := int(start.Weekday())
	for i := 0; i < days%7; i++ {
		wd := time.Weekday((first + i) % 7)
		if wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}

	return n
}

// DaysInMonth returns the number of days in the given month of the Gregorian calendar.
func DaysInMonth(month time.Month, year int) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsLeapYear applies the Gregorian leap year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// InMonth counts working days of [start, end] that fall inside the given month.
func InMonth(start, end time.Time, month time.Month, year int) int {
	if start.IsZero() || end.IsZero() || month < time.January || month > time.December {
		return 0
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, DaysInMonth(month, year), 0, 0, 0, 0, time.UTC)

	start, end = Date(start), Date(end)
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}

	return Count(start, end)
}
