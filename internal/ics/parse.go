package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/igorp74/recal/internal/config"
	applog "github.com/igorp74/recal/internal/log"
)

// ParsedEvent is a normalized VEVENT as recal needs it: identity, text,
// the start/end interval and recurrence inputs. Expansion happens in
// expand.go.
type ParsedEvent struct {
	Source config.ICSSource

	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time
}

// Parse reads one ICS payload into ParsedEvents. VEVENTs that fail to
// parse are logged and skipped; the rest of the feed survives.
func Parse(src config.ICSSource, body []byte) ([]ParsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]ParsedEvent, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(src, ve)
		if perr != nil {
			applog.Debug("ics vevent skipped", "id", src.ID, "reason", perr)
			continue
		}
		events = append(events, ev)
	}

	applog.Debug("ics parsed", "id", src.ID, "event_count", len(events))
	return events, nil
}

func parseVEvent(src config.ICSSource, ve *ical.VEvent) (ParsedEvent, error) {
	var out ParsedEvent
	out.Source = src

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		// Date-only DTSTART values surface through the all-day accessor.
		start, err = ve.GetAllDayStartAt()
		if err != nil {
			return out, err
		}
		out.AllDay = true
	}
	out.Start = start
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	} else if end, err := ve.GetAllDayEndAt(); err == nil {
		out.End = end
	} else {
		out.End = start
	}

	// All-day: VALUE=DATE or a date-only DTSTART value.
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if params := p.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(p.Value, "T") {
			out.AllDay = true
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// parseICSTime handles the basic EXDATE forms: UTC date-time, floating
// date-time and bare dates.
func parseICSTime(v string) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
