// Package style maps day-cell signals (weekend, event, today, custom
// colors) to terminal escape sequences under a fixed precedence order.
// The palette is plain 8-color SGR; anything consuming recal's output
// through a pipe sees stable byte sequences.
package style

import "strings"

const (
	Reset  = "\x1b[0m"
	Bold   = "\x1b[1m"
	Invert = "\x1b[7m"

	Red   = "\x1b[31m"
	Green = "\x1b[32m"
	Blue  = "\x1b[34m"

	// Weekend day numbers and header names share the red foreground.
	WeekendFg = Red
	// "Today" falls back to black-on-yellow when the event carries no
	// custom colors.
	TodayBg = "\x1b[43m"
	TodayFg = "\x1b[30m"
)

var fgByName = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
}

var bgByName = map[string]string{
	"black":   "\x1b[40m",
	"red":     "\x1b[41m",
	"green":   "\x1b[42m",
	"yellow":  "\x1b[43m",
	"blue":    "\x1b[44m",
	"magenta": "\x1b[45m",
	"cyan":    "\x1b[46m",
	"white":   "\x1b[47m",
}

// Foreground resolves a color name to its SGR sequence. Unknown names
// resolve to the empty string: no styling, never an error.
func Foreground(name string) string {
	return fgByName[strings.ToLower(name)]
}

// Background resolves a color name to its background SGR sequence.
func Background(name string) string {
	return bgByName[strings.ToLower(name)]
}

// Cell carries the signals that drive one calendar day's styling.
// Fg/Bg are resolved SGR sequences (empty when unset).
type Cell struct {
	Weekend bool
	Event   bool
	Today   bool
	Fg, Bg  string
}

// step is one stage of the precedence pipeline: it may extend or replace
// the accumulated codes.
type step func(Cell, []string) []string

// pipeline orders the styling layers lowest to highest; later steps
// override earlier ones.
var pipeline = []step{weekendStep, eventStep, todayStep}

// Compose runs the pipeline and returns the escape-code prefix for the
// day number. Callers append Reset after the cell content themselves.
func Compose(c Cell) string {
	var codes []string
	for _, s := range pipeline {
		codes = s(c, codes)
	}
	return strings.Join(codes, "")
}

// weekendStep paints Saturday/Sunday red, bold when an event falls on
// the day.
func weekendStep(c Cell, codes []string) []string {
	if !c.Weekend {
		return codes
	}
	codes = append(codes, WeekendFg)
	if c.Event {
		codes = append(codes, Bold)
	}
	return codes
}

// eventStep styles event days outside the weekend: custom colors apply
// background, foreground, bold; without custom colors the cell falls
// back to an inverted default highlight.
func eventStep(c Cell, codes []string) []string {
	if !c.Event || c.Weekend {
		return codes
	}
	if c.Fg != "" || c.Bg != "" {
		if c.Bg != "" {
			codes = append(codes, c.Bg)
		}
		if c.Fg != "" {
			codes = append(codes, c.Fg)
		}
		return append(codes, Bold)
	}
	if c.Bg == "" {
		codes = append(codes, Invert)
	}
	return codes
}

// todayStep has the last word: it drops everything accumulated so far
// and styles the cell with the custom colors when present, default
// highlight colors otherwise.
func todayStep(c Cell, codes []string) []string {
	if !c.Today {
		return codes
	}
	bg, fg := TodayBg, TodayFg
	if c.Bg != "" {
		bg = c.Bg
	}
	if c.Fg != "" {
		fg = c.Fg
	}
	return append(codes[:0], bg, fg)
}
