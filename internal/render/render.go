// Package render lays calendar months out into rows and prints them,
// along with the annotated events list, to a writer.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/igorp74/recal/internal/config"
	"github.com/igorp74/recal/internal/grid"
	"github.com/igorp74/recal/internal/model"
	"github.com/igorp74/recal/internal/style"
)

// Grid widths in character cells: week-number column adds "Wk ".
const (
	widthWithWeeks    = 24
	widthWithoutWeeks = 21
)

// Renderer prints calendars and event lists for one fixed display
// window. The reference date ("today") is injected so output is a pure
// function of its inputs.
type Renderer struct {
	opts  config.Options
	out   io.Writer
	today time.Time
}

func New(opts config.Options, out io.Writer, today time.Time) *Renderer {
	return &Renderer{
		opts:  opts,
		out:   out,
		today: model.Date(today.Year(), today.Month(), today.Day()),
	}
}

// Calendars prints the configured months in rows of NumColumns months.
// A single-month window always renders as one column.
func (r *Renderer) Calendars(events []model.Event) {
	monthsPerRow := r.opts.NumColumns
	if r.opts.NumMonths == 1 {
		monthsPerRow = 1
	}
	if monthsPerRow < 1 {
		return
	}

	numRows := (r.opts.NumMonths + monthsPerRow - 1) / monthsPerRow
	for row := 0; row < numRows; row++ {
		start := row * monthsPerRow
		end := min(start+monthsPerRow, r.opts.NumMonths)
		r.monthRow(events, start, end)
		if row < numRows-1 {
			fmt.Fprintln(r.out)
		}
	}
}

// monthRow renders the months at window indexes [start, end) side by
// side: headers, weekday names, then week rows up to the row's max week
// count so the calendars stay vertically aligned.
func (r *Renderer) monthRow(events []model.Event, start, end int) {
	firsts := make([]time.Time, 0, end-start)
	for idx := start; idx < end; idx++ {
		y, m := grid.MonthAt(r.opts.StartYear, r.opts.StartMonth, idx)
		firsts = append(firsts, model.Date(y, m, 1))
	}

	width := widthWithoutWeeks
	if r.opts.ShowWeekNumbers {
		width = widthWithWeeks
	}

	for i, first := range firsts {
		name := fmt.Sprintf("%s %d", first.Month(), first.Year())
		left := (width - len(name)) / 2
		right := width - left - len(name)
		fmt.Fprintf(r.out, "%s%s%s%s%s",
			strings.Repeat(" ", left), style.Bold, name, style.Reset,
			strings.Repeat(" ", right))
		if i < len(firsts)-1 {
			fmt.Fprint(r.out, "    ")
		}
	}
	fmt.Fprintln(r.out)

	header := r.weekdayHeader()
	for i := range firsts {
		fmt.Fprint(r.out, header)
		if i < len(firsts)-1 {
			fmt.Fprint(r.out, "     ")
		}
	}
	fmt.Fprintln(r.out)

	maxWeeks := 0
	for _, first := range firsts {
		if w := grid.WeeksInMonth(first, r.opts.MondayFirst); w > maxWeeks {
			maxWeeks = w
		}
	}

	for week := 0; week < maxWeeks; week++ {
		empty := true
		for _, first := range firsts {
			if !grid.EmptyWeek(first, week, r.opts.MondayFirst) {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		for i, first := range firsts {
			r.weekRow(first, week, events)
			if i < len(firsts)-1 {
				fmt.Fprint(r.out, "    ")
			}
		}
		fmt.Fprintln(r.out)
	}

	// Keep vertical rhythm roughly constant across month shapes.
	if maxWeeks < 6 {
		fmt.Fprintln(r.out)
	}
}

func (r *Renderer) weekdayHeader() string {
	var b strings.Builder
	if r.opts.ShowWeekNumbers {
		b.WriteString(style.Blue + "Wk" + style.Reset + " ")
	}
	if r.opts.MondayFirst {
		b.WriteString("Mo Tu We Th Fr " + style.WeekendFg + "Sa Su" + style.Reset)
	} else {
		b.WriteString(style.WeekendFg + "Su" + style.Reset + " Mo Tu We Th Fr " + style.WeekendFg + "Sa" + style.Reset)
	}
	return b.String()
}

// weekRow prints one 7-cell row of a month, with the optional ISO
// week-number column in front.
func (r *Renderer) weekRow(first time.Time, week int, events []model.Event) {
	days := grid.DaysInMonth(first.Year(), first.Month())
	start := grid.WeekStartDay(first, week, r.opts.MondayFirst)

	if r.opts.ShowWeekNumbers {
		if start <= days && start+6 >= 1 {
			fmt.Fprintf(r.out, "%s%2d%s ",
				style.Blue, grid.WeekNumber(first, week, r.opts.MondayFirst), style.Reset)
		} else {
			fmt.Fprint(r.out, "   ")
		}
	}

	for off := 0; off < 7; off++ {
		day := start + off
		if day < 1 || day > days {
			fmt.Fprint(r.out, "   ")
			continue
		}
		date := model.Date(first.Year(), first.Month(), day)
		ev, found := eventOn(events, date)
		wd := date.Weekday()

		cell := style.Cell{
			Weekend: wd == time.Saturday || wd == time.Sunday,
			Event:   found,
			Today:   date.Equal(r.today),
		}
		if found {
			cell.Fg = style.Foreground(ev.FgColor)
			cell.Bg = style.Background(ev.BgColor)
		}

		fmt.Fprintf(r.out, "%s%2d%s ", style.Compose(cell), day, style.Reset)
	}
}

// eventOn returns the first event on the given date. Ties keep file
// order, matching the events list below.
func eventOn(events []model.Event, date time.Time) (model.Event, bool) {
	for _, e := range events {
		if e.Date.Equal(date) {
			return e, true
		}
	}
	return model.Event{}, false
}

// Events prints the annotated event list for the display window
// [first displayed month, month after the last displayed month).
func (r *Renderer) Events(events []model.Event) {
	startDate := model.Date(r.opts.StartYear, r.opts.StartMonth, 1)
	endYear, endMonth := grid.MonthAt(r.opts.StartYear, r.opts.StartMonth, r.opts.NumMonths)
	endDate := model.Date(endYear, endMonth, 1)

	filtered := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !e.Date.Before(startDate) && e.Date.Before(endDate) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n%sEvents:%s\n", style.Bold, style.Reset)
	fmt.Fprintln(r.out, strings.Repeat("-", 80))

	for _, e := range filtered {
		prefix := style.Background(e.BgColor) + style.Foreground(e.FgColor)
		desc := e.Description + r.anniversaryLabel(e) + r.relativeLabel(e)
		fmt.Fprintf(r.out, "%s%s%s - %s\n",
			prefix, e.Date.Format("Mon, 02 Jan 2006"), style.Reset, desc)
	}
}

// anniversaryLabel appends "(Nth Birthday)" / "(Nth Anniversary)" for
// recurring fixed-date events past their original year.
func (r *Renderer) anniversaryLabel(e model.Event) string {
	if e.OriginalYear == 0 {
		return ""
	}
	var label string
	switch e.Category {
	case "bday":
		label = "Birthday"
	case "anni":
		label = "Anniversary"
	default:
		return ""
	}
	n := e.Date.Year() - e.OriginalYear
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%d%s %s)", n, ordinalSuffix(n), label)
}

// relativeLabel appends "(In N days)" / "(N days ago)"; today gets no
// label at all.
func (r *Renderer) relativeLabel(e model.Event) string {
	diff := int(e.Date.Sub(r.today) / (24 * time.Hour))
	switch {
	case diff == 0:
		return ""
	case diff > 0:
		return fmt.Sprintf(" %s(In %s%d%s%s days)%s",
			style.Green, style.Bold, diff, style.Reset, style.Green, style.Reset)
	default:
		return fmt.Sprintf(" %s(%s%d%s%s days ago)%s",
			style.Blue, style.Bold, -diff, style.Reset, style.Blue, style.Reset)
	}
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
