package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/igorp74/recal/internal/model"
)

// dateRule is the closed set of recurrence pattern kinds. Each kind
// resolves to zero or one date per year.
type dateRule interface {
	resolve(year int) mo.Option[time.Time]
}

// easterRule: "E", "E+2", "E-46". Offset is days relative to Easter Sunday.
type easterRule struct {
	offset int
}

// nthWeekdayRule: "MM/DOW#N". dow is 1=Monday..7=Sunday after remapping
// the textual 0=Sunday convention.
type nthWeekdayRule struct {
	month int
	dow   int
	n     int
}

// conditionalRule: "MM/DD?D+N" / "MM/DD?D-N" fires only when MM/DD falls
// on weekday D (0=Sunday..6=Saturday), shifted by the signed offset.
// plain marks the "MM/DD?" / "MM/DD?YYYY" shorthand that behaves like a
// bare annual rule, any year digits ignored.
type conditionalRule struct {
	month, day int
	weekday    time.Weekday
	sign       int
	offset     int
	plain      bool
}

// annualRule: "MM/DD", every year.
type annualRule struct {
	month, day int
}

// Evaluate resolves a rule pattern for one year. Malformed patterns and
// impossible dates yield None; evaluation never fails hard.
func Evaluate(text string, year int) mo.Option[time.Time] {
	r, ok := classify(text)
	if !ok {
		return mo.None[time.Time]()
	}
	return r.resolve(year)
}

// classify parses rule text into one of the rule kinds, tried in fixed
// priority order: Easter-relative, Nth-weekday, conditional, annual.
func classify(text string) (dateRule, bool) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "E") {
		if text == "E" {
			return easterRule{}, true
		}
		off, err := strconv.Atoi(text[1:])
		if err != nil {
			return nil, false
		}
		return easterRule{offset: off}, true
	}

	if i := strings.IndexByte(text, '#'); i >= 0 {
		parts := strings.Split(text[:i], "/")
		if len(parts) < 2 {
			return nil, false
		}
		month, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, false
		}
		dow, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false
		}
		if dow == 0 {
			dow = 7
		}
		n, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return nil, false
		}
		return nthWeekdayRule{month: month, dow: dow, n: n}, true
	}

	if i := strings.IndexByte(text, '?'); i >= 0 {
		parts := strings.Split(text[:i], "/")
		if len(parts) < 2 {
			return nil, false
		}
		month, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, false
		}
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false
		}
		return classifyCondition(month, day, text[i+1:])
	}

	if strings.Count(text, "/") == 1 {
		m, d, ok := strings.Cut(text, "/")
		if !ok {
			return nil, false
		}
		month, err := strconv.Atoi(m)
		if err != nil {
			return nil, false
		}
		day, err := strconv.Atoi(d)
		if err != nil {
			return nil, false
		}
		return annualRule{month: month, day: day}, true
	}

	return nil, false
}

// classifyCondition parses the part after '?'. An empty or all-digit
// condition ("MM/DD?", "MM/DD?2024") degrades to the plain annual date;
// the digits carry no year constraint.
func classifyCondition(month, day int, cond string) (dateRule, bool) {
	if cond == "" || allDigits(cond) {
		return conditionalRule{month: month, day: day, plain: true}, true
	}
	if len(cond) < 3 {
		return nil, false
	}
	if cond[0] < '0' || cond[0] > '6' {
		return nil, false
	}
	weekday := time.Weekday(cond[0] - '0') // 0=Sunday..6=Saturday
	var sign int
	switch cond[1] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, false
	}
	offset, err := strconv.Atoi(cond[2:])
	if err != nil {
		return nil, false
	}
	return conditionalRule{
		month:   month,
		day:     day,
		weekday: weekday,
		sign:    sign,
		offset:  offset,
	}, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (r easterRule) resolve(year int) mo.Option[time.Time] {
	easter, ok := EasterSunday(year)
	if !ok {
		return mo.None[time.Time]()
	}
	return mo.Some(easter.AddDate(0, 0, r.offset))
}

func (r nthWeekdayRule) resolve(year int) mo.Option[time.Time] {
	return findNthWeekday(year, r.month, r.dow, r.n)
}

func (r conditionalRule) resolve(year int) mo.Option[time.Time] {
	date, ok := ymd(year, r.month, r.day)
	if !ok {
		return mo.None[time.Time]()
	}
	if r.plain {
		return mo.Some(date)
	}
	if date.Weekday() != r.weekday {
		return mo.None[time.Time]()
	}
	return mo.Some(date.AddDate(0, 0, r.sign*r.offset))
}

func (r annualRule) resolve(year int) mo.Option[time.Time] {
	date, ok := ymd(year, r.month, r.day)
	if !ok {
		return mo.None[time.Time]()
	}
	return mo.Some(date)
}

// EasterSunday computes Easter Sunday via the Gauss algorithm. Valid for
// years from 1583 on; earlier years return false.
func EasterSunday(year int) (time.Time, bool) {
	if year < 1583 {
		return time.Time{}, false
	}

	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return model.Date(year, time.Month(month), day), true
}

// findNthWeekday locates the Nth occurrence (1..5) of a weekday
// (1=Monday..7=Sunday) in a month. N=5 means "5th if it exists, else
// last"; anything still outside the month yields None.
func findNthWeekday(year, month, dow, n int) mo.Option[time.Time] {
	if n < 1 || n > 5 || dow < 1 || dow > 7 {
		return mo.None[time.Time]()
	}
	first, ok := ymd(year, month, 1)
	if !ok {
		return mo.None[time.Time]()
	}

	target := time.Weekday(dow % 7) // 7 -> Sunday

	date := first
	for date.Weekday() != target {
		date = date.AddDate(0, 0, 1)
	}

	date = date.AddDate(0, 0, 7*(n-1))
	if n == 5 && int(date.Month()) != month {
		date = date.AddDate(0, 0, -7)
	}
	if int(date.Month()) != month {
		return mo.None[time.Time]()
	}
	return mo.Some(date)
}

// ymd validates a calendar date without time.Date's normalization
// (Feb 30 must not roll over into March).
func ymd(year, month, day int) (time.Time, bool) {
	t := model.Date(year, time.Month(month), day)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
