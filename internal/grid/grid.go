// Package grid computes month geometry for the calendar layout: week
// offsets, week counts, week-row day ranges and ISO week numbers.
package grid

import "time"

// MonthAt returns the year/month lying offset months after the given
// start month. Offsets may push past a year boundary.
func MonthAt(startYear int, startMonth time.Month, offset int) (int, time.Month) {
	total := startYear*12 + int(startMonth) + offset - 1
	return total / 12, time.Month(total%12 + 1)
}

// DaysInMonth is computed from the first day of the following month, so
// leap years come out right for any proleptic Gregorian year.
func DaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// WeekOffset returns the number of blank leading cells in a month's
// first week row: the first day's distance from the configured week
// start.
func WeekOffset(monthStart time.Time, mondayFirst bool) int {
	wd := int(monthStart.Weekday()) // 0=Sunday
	if mondayFirst {
		return (wd + 6) % 7
	}
	return wd
}

// WeeksInMonth is the number of week rows needed to display the month.
func WeeksInMonth(monthStart time.Time, mondayFirst bool) int {
	offset := WeekOffset(monthStart, mondayFirst)
	days := DaysInMonth(monthStart.Year(), monthStart.Month())
	return (offset + days + 6) / 7
}

// WeekStartDay returns the day-of-month at the first cell of week row
// `week` (0-based). Values outside [1, daysInMonth] mark leading or
// trailing blank cells.
func WeekStartDay(monthStart time.Time, week int, mondayFirst bool) int {
	return week*7 - WeekOffset(monthStart, mondayFirst) + 1
}

// EmptyWeek reports whether a week row holds no day of the month at all
// and should be skipped.
func EmptyWeek(monthStart time.Time, week int, mondayFirst bool) bool {
	start := WeekStartDay(monthStart, week, mondayFirst)
	days := DaysInMonth(monthStart.Year(), monthStart.Month())
	return start > days || start+6 < 1
}

// WeekNumber is the ISO week number of the first in-range day of the
// given week row.
func WeekNumber(monthStart time.Time, week int, mondayFirst bool) int {
	day := WeekStartDay(monthStart, week, mondayFirst)
	if day < 1 {
		day = 1
	}
	_, wk := monthStart.AddDate(0, 0, day-1).ISOWeek()
	return wk
}
