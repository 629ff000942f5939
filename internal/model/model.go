package model

import (
	"sort"
	"time"
)

// Rule is one parsed line of the events file: a raw recurrence pattern
// plus its metadata. Optional fields use the empty string for "unset".
type Rule struct {
	Text        string // raw date-rule pattern, e.g. "E+1", "5/1#1", "7/4"
	Description string
	Category    string // "bday" and "anni" enable yearly recurrence for fixed dates
	FgColor     string
	BgColor     string
}

// Event is one concrete occurrence of a rule on a calendar date.
// Events are value objects: created in bulk during expansion, then only
// filtered and sorted.
type Event struct {
	Date        time.Time // date-only, midnight UTC
	Description string
	Category    string
	FgColor     string
	BgColor     string

	// OriginalYear holds the first occurrence's year for recurring
	// anniversaries and birthdays; zero otherwise.
	OriginalYear int
}

// Date builds the canonical date-only time value used throughout recal.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SortByDate orders events ascending by date, keeping insertion order
// for events that share a day.
func SortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
