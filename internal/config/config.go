// Package config holds the per-run options consumed by the calendar
// core and the optional YAML defaults file behind them.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Options is the per-run configuration. All fields are fixed for the
// duration of one run; nothing mutates them after startup.
type Options struct {
	StartYear  int
	StartMonth time.Month
	NumMonths  int
	NumColumns int

	MondayFirst     bool
	ShowCalendar    bool
	ShowEvents      bool
	ShowWeekNumbers bool

	EventsFile string
}

// ICSSource describes one subscribed ICS calendar. URL may be an
// http(s) endpoint or a local file path. Events from the source carry
// the configured colors on the calendar grid.
type ICSSource struct {
	URL     string `yaml:"url"`
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	FgColor string `yaml:"fg,omitempty"`
	BgColor string `yaml:"bg,omitempty"`
}

// File is the YAML defaults file. Command-line flags override it.
type File struct {
	// WeekStart is "monday" (default) or "sunday".
	WeekStart string `yaml:"week_start"`

	// Columns is the number of months per calendar row.
	Columns int `yaml:"columns"`

	// WeekNumbers toggles the ISO week-number column.
	WeekNumbers *bool `yaml:"week_numbers,omitempty"`

	// EventsFile is the default rule file path.
	EventsFile string `yaml:"events_file"`

	// ICS lists subscribed calendar sources.
	ICS []ICSSource `yaml:"ics"`

	// CacheDir is where ICS bodies and conditional-request metadata are
	// cached between runs.
	CacheDir string `yaml:"cache_dir"`
}

// Default returns the in-memory default configuration.
func Default() *File {
	return &File{
		WeekStart:  "monday",
		Columns:    3,
		EventsFile: "events.txt",
		ICS:        []ICSSource{},
	}
}

// Normalize fills missing or invalid values so partially-filled configs
// still behave.
func (f *File) Normalize() {
	switch f.WeekStart {
	case "monday", "sunday":
	default:
		f.WeekStart = "monday"
	}
	if f.Columns < 1 {
		f.Columns = 3
	}
	if f.EventsFile == "" {
		f.EventsFile = "events.txt"
	}
	if f.ICS == nil {
		f.ICS = []ICSSource{}
	}
}

// Options derives the run options the defaults file implies, starting
// the window at today's month.
func (f *File) Options(today time.Time) Options {
	weekNumbers := true
	if f.WeekNumbers != nil {
		weekNumbers = *f.WeekNumbers
	}
	return Options{
		StartYear:       today.Year(),
		StartMonth:      today.Month(),
		NumMonths:       1,
		NumColumns:      f.Columns,
		MondayFirst:     f.WeekStart != "sunday",
		ShowCalendar:    true,
		ShowEvents:      true,
		ShowWeekNumbers: weekNumbers,
		EventsFile:      f.EventsFile,
	}
}

// Load reads the YAML defaults file. On first run (file missing) the
// default config is written to the path and returned.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *File) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".recal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
