package rules

import (
	"time"

	"github.com/igorp74/recal/internal/model"
)

// fixedDateLayouts are the literal date formats accepted for fixed-date
// rules, tried in order.
var fixedDateLayouts = []string{
	"2-1-2006", // DD-MM-YYYY
	"1/2/2006", // MM/DD/YYYY
	"2006-1-2", // YYYY-MM-DD
}

// Span is the inclusive range of years examined during expansion.
type Span struct {
	First, Last int
}

// SpanForWindow computes the year span covering a display window of
// numMonths months starting at startYear/startMonth. The span always
// reaches the year holding the window's exclusive end month, so the
// final displayed month is never under-covered.
func SpanForWindow(startYear int, startMonth time.Month, numMonths int) Span {
	total := startYear*12 + int(startMonth) + numMonths
	return Span{First: startYear, Last: (total - 1) / 12}
}

// Contains reports whether year falls inside the span.
func (s Span) Contains(year int) bool {
	return year >= s.First && year <= s.Last
}

// Expand evaluates every rule across the span and returns all resulting
// events sorted ascending by date (file order preserved on ties).
func Expand(rs []model.Rule, span Span) []model.Event {
	events := make([]model.Event, 0, len(rs))
	for _, r := range rs {
		events = append(events, expandRule(r, span)...)
	}
	model.SortByDate(events)
	return events
}

// expandRule produces the occurrences of a single rule. Fixed-date
// literals take the fast path: tagged "bday"/"anni" they recur yearly
// from their original year, otherwise they fire once, only when their
// own year is in the span. Everything else goes through the pattern
// evaluator once per year. A rule never emits two events on one date.
func expandRule(r model.Rule, span Span) []model.Event {
	if fixed, ok := ParseFixedDate(r.Text); ok {
		if r.Category == "bday" || r.Category == "anni" {
			return expandAnniversary(r, fixed, span)
		}
		if span.Contains(fixed.Year()) {
			return []model.Event{makeEvent(r, fixed, 0)}
		}
		return nil
	}

	var out []model.Event
	seen := make(map[time.Time]struct{})
	for year := span.First; year <= span.Last; year++ {
		date, ok := Evaluate(r.Text, year).Get()
		if !ok {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, makeEvent(r, date, 0))
	}
	return out
}

func expandAnniversary(r model.Rule, fixed time.Time, span Span) []model.Event {
	var out []model.Event
	seen := make(map[time.Time]struct{})
	for year := span.First; year <= span.Last; year++ {
		if year < fixed.Year() {
			continue
		}
		// Feb 29 anniversaries simply skip non-leap years.
		date, ok := ymd(year, int(fixed.Month()), fixed.Day())
		if !ok {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, makeEvent(r, date, fixed.Year()))
	}
	return out
}

// ParseFixedDate recognizes the three fixed-date literal formats
// (DD-MM-YYYY, MM/DD/YYYY, YYYY-MM-DD).
func ParseFixedDate(text string) (time.Time, bool) {
	for _, layout := range fixedDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return model.Date(t.Year(), t.Month(), t.Day()), true
		}
	}
	return time.Time{}, false
}

func makeEvent(r model.Rule, date time.Time, originalYear int) model.Event {
	return model.Event{
		Date:         date,
		Description:  r.Description,
		Category:     r.Category,
		FgColor:      r.FgColor,
		BgColor:      r.BgColor,
		OriginalYear: originalYear,
	}
}
