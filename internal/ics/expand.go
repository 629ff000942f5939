package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	applog "github.com/igorp74/recal/internal/log"
	"github.com/igorp74/recal/internal/model"
)

// maxOccurrencesPerEvent caps runaway RRULEs; recal windows are at most
// a few years of days, so the cap only bites on pathological feeds.
const maxOccurrencesPerEvent = 1000

// Window is the half-open date range [Start, End) occurrences must fall
// into, both midnight UTC date values.
type Window struct {
	Start, End time.Time
}

// Expand flattens parsed VEVENTs to date-only events inside the window.
// recal is date-granular: each occurrence contributes the calendar date
// it starts on, deduplicated per event, carrying the source's colors.
func Expand(events []ParsedEvent, window Window) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, expandEvent(ev, window)...)
	}
	return out
}

func expandEvent(ev ParsedEvent, window Window) []model.Event {
	if ev.RawRRule == "" {
		date := dateOf(ev.Start)
		if date.Before(window.Start) || !date.Before(window.End) {
			return nil
		}
		return []model.Event{makeEvent(ev, date)}
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		applog.Error("ics rrule parse failed", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between works in the event's own location; widen by a day on each
	// side so date flattening never clips a boundary occurrence.
	rangeStart := window.Start.AddDate(0, 0, -1).In(ev.Start.Location())
	rangeEnd := window.End.AddDate(0, 0, 1).In(ev.Start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		applog.Error("ics expansion truncated", errors.New("occurrence cap reached"),
			"uid", ev.UID, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]model.Event, 0, len(starts))
	seen := make(map[time.Time]struct{})
	for _, start := range starts {
		date := dateOf(start)
		if date.Before(window.Start) || !date.Before(window.End) {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, makeEvent(ev, date))
	}
	return out
}

func makeEvent(ev ParsedEvent, date time.Time) model.Event {
	desc := ev.Summary
	if desc == "" {
		desc = ev.UID
	}
	return model.Event{
		Date:        date,
		Description: desc,
		FgColor:     ev.Source.FgColor,
		BgColor:     ev.Source.BgColor,
	}
}

// dateOf flattens a timestamp to its calendar date in its own location.
func dateOf(t time.Time) time.Time {
	return model.Date(t.Year(), t.Month(), t.Day())
}
