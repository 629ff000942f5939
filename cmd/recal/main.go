package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/igorp74/recal/internal/config"
	"github.com/igorp74/recal/internal/ics"
	applog "github.com/igorp74/recal/internal/log"
	"github.com/igorp74/recal/internal/model"
	"github.com/igorp74/recal/internal/render"
	"github.com/igorp74/recal/internal/rules"
)

func main() {
	// .env may provide RECAL_FILE / RECAL_CONFIG; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "recal",
		Usage: "Terminal calendar annotated with recurring and fixed events from a rule file.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "month", Aliases: []string{"m"}, Usage: "start month (1-12)"},
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "start year"},
			&cli.IntFlag{Name: "num-months", Aliases: []string{"n"}, Value: 1, Usage: "number of months to display"},
			&cli.IntFlag{Name: "columns", Aliases: []string{"cols"}, Usage: "calendar columns per row (default: 3)"},
			&cli.BoolFlag{Name: "monday-first", Aliases: []string{"mon"}, Usage: "week starts on Monday (default)"},
			&cli.BoolFlag{Name: "sunday-first", Aliases: []string{"sun"}, Usage: "week starts on Sunday"},
			&cli.StringFlag{Name: "weeks", Aliases: []string{"w"}, Usage: "show ISO week numbers (on|off)"},
			&cli.BoolFlag{Name: "calendar-only", Aliases: []string{"c"}, Usage: "show only the calendar"},
			&cli.BoolFlag{Name: "events-only", Aliases: []string{"e"}, Usage: "show only the events list"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "path to the events file"},
			&cli.StringFlag{Name: "config", Usage: "path to the config file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		applog.Error("recal failed", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	now := time.Now()
	today := model.Date(now.Year(), now.Month(), now.Day())

	cfg := loadConfig(c.String("config"))
	opts := cfg.Options(today)
	applyFlags(c, &opts, today)

	events := loadRuleEvents(opts)
	events = append(events, loadICSEvents(c.Context, cfg, opts)...)
	model.SortByDate(events)

	r := render.New(opts, os.Stdout, today)
	if opts.ShowCalendar {
		r.Calendars(events)
	}
	if opts.ShowEvents {
		r.Events(events)
	}
	return nil
}

// loadConfig resolves the defaults file (flag, then RECAL_CONFIG, then
// ~/.config/recal/config.yaml). Problems fall back to built-in defaults;
// they never abort the run.
func loadConfig(path string) *config.File {
	if path == "" {
		path = os.Getenv("RECAL_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Default()
		}
		path = filepath.Join(home, ".config", "recal", "config.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		applog.Error("config load failed, using defaults", err, "path", path)
		if cfg == nil {
			cfg = config.Default()
		}
	}
	return cfg
}

// applyFlags overlays command-line flags on the config-derived options.
// Out-of-range numbers are reported and replaced with the documented
// defaults rather than aborting.
func applyFlags(c *cli.Context, opts *config.Options, today time.Time) {
	if c.IsSet("month") {
		m := c.Int("month")
		if m < 1 || m > 12 {
			applog.Info("invalid month, using current month", "month", m)
			m = int(today.Month())
		}
		opts.StartMonth = time.Month(m)
	}
	if c.IsSet("year") {
		opts.StartYear = c.Int("year")
	}
	if c.IsSet("num-months") {
		n := c.Int("num-months")
		if n < 1 {
			applog.Info("invalid number of months, using 1", "num_months", n)
			n = 1
		}
		opts.NumMonths = n
	}
	if c.IsSet("columns") {
		cols := c.Int("columns")
		if cols < 1 {
			applog.Info("invalid number of columns, using 1", "columns", cols)
			cols = 1
		}
		opts.NumColumns = cols
	}
	if c.Bool("sunday-first") {
		opts.MondayFirst = false
	}
	if c.Bool("monday-first") {
		opts.MondayFirst = true
	}
	if c.IsSet("weeks") {
		switch strings.ToLower(c.String("weeks")) {
		case "off", "false", "0", "no":
			opts.ShowWeekNumbers = false
		default:
			opts.ShowWeekNumbers = true
		}
	}
	if c.Bool("calendar-only") {
		opts.ShowCalendar = true
		opts.ShowEvents = false
	}
	if c.Bool("events-only") {
		opts.ShowCalendar = false
		opts.ShowEvents = true
	}
	if c.IsSet("file") {
		opts.EventsFile = c.String("file")
	} else if env := os.Getenv("RECAL_FILE"); env != "" {
		opts.EventsFile = env
	}
}

// loadRuleEvents reads the rule file and expands it over the window's
// year span. A missing file is informational only.
func loadRuleEvents(opts config.Options) []model.Event {
	data, err := os.ReadFile(opts.EventsFile)
	if err != nil {
		applog.Info("events file not found, continuing without events", "path", opts.EventsFile)
		return nil
	}

	parsed := rules.ParseLines(strings.Split(string(data), "\n"))
	span := rules.SpanForWindow(opts.StartYear, opts.StartMonth, opts.NumMonths)
	return rules.Expand(parsed, span)
}

// loadICSEvents fetches and expands subscribed calendars, if any.
func loadICSEvents(ctx context.Context, cfg *config.File, opts config.Options) []model.Event {
	if len(cfg.ICS) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	window := ics.Window{
		Start: model.Date(opts.StartYear, opts.StartMonth, 1),
	}
	window.End = window.Start.AddDate(0, opts.NumMonths, 0)

	fetcher := ics.NewFetcher(cfg.CacheDir)
	var out []model.Event
	for _, res := range fetcher.FetchAll(ctx, cfg.ICS) {
		parsed, err := ics.Parse(res.Source, res.Body)
		if err != nil {
			applog.Error("ics parse failed", err, "id", res.Source.ID)
			continue
		}
		out = append(out, ics.Expand(parsed, window)...)
	}
	return out
}
