// Package config handles the go_chrono configuration file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go_chrono/datetime"
	"go_chrono/timezone"
)

// Config represents the go_chrono configuration.
type Config struct {
	// Timezone is the reference zone used for relative dates: an
	// abbreviation, a numeric offset or an IANA name. Empty means local.
	Timezone string `toml:"timezone" yaml:"timezone"`

	// Strict only accepts formal expressions ("in 2 hours", "4:30 pm").
	Strict bool `toml:"strict" yaml:"strict"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// StateDir holds acknowledged reminders. Defaults to ~/.go_chrono.
	StateDir string `toml:"state_dir" yaml:"state_dir"`

	// Timezones adds or replaces zone abbreviations.
	Timezones map[string]Zone `toml:"timezones" yaml:"timezones"`
}

// Zone is either a fixed offset or a daylight saving rule, in minutes
// east of UTC.
type Zone struct {
	Offset   *int        `toml:"offset" yaml:"offset"`
	DST      int         `toml:"dst" yaml:"dst"`
	NonDST   int         `toml:"non_dst" yaml:"non_dst"`
	DSTStart *Transition `toml:"dst_start" yaml:"dst_start"`
	DSTEnd   *Transition `toml:"dst_end" yaml:"dst_end"`
}

// Transition names the wall-clock moment daylight saving starts or ends:
// the nth weekday of a month, or the last one when nth is "last" or 5.
type Transition struct {
	Month   string `toml:"month" yaml:"month"`
	Weekday string `toml:"weekday" yaml:"weekday"`
	Nth     any    `toml:"nth" yaml:"nth"`
	Hour    int    `toml:"hour" yaml:"hour"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from path. Files ending in .yaml or
// .yml are read as YAML, anything else as TOML.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	if _, err := cfg.Overrides(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// DefaultPath returns ~/.config/go_chrono/config.toml, falling back to the
// OS config directory.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "go_chrono", "config.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "go_chrono", "config.toml")
	}
	return "config.toml"
}

// Overrides converts the configured zones into resolver overrides.
func (c *Config) Overrides() (timezone.Overrides, error) {
	if len(c.Timezones) == 0 {
		return nil, nil
	}
	out := make(timezone.Overrides, len(c.Timezones))
	for name, z := range c.Timezones {
		rule, err := z.rule()
		if err != nil {
			return nil, errors.Wrapf(err, "timezone %q", name)
		}
		out[name] = rule
	}
	return out, nil
}

func (z Zone) rule() (timezone.Rule, error) {
	if z.Offset != nil {
		if abs(*z.Offset) > timezone.MaxOffset {
			return nil, errors.Wrapf(timezone.ErrInvalidRule, "offset %d out of range", *z.Offset)
		}
		return timezone.Fixed(*z.Offset), nil
	}
	if z.DSTStart == nil || z.DSTEnd == nil {
		return nil, errors.Wrap(timezone.ErrInvalidRule, "either offset or dst_start and dst_end are required")
	}
	start, err := z.DSTStart.transition()
	if err != nil {
		return nil, errors.Wrap(err, "dst_start")
	}
	end, err := z.DSTEnd.transition()
	if err != nil {
		return nil, errors.Wrap(err, "dst_end")
	}
	return timezone.NewTransitionRule(z.DST, z.NonDST, start, end)
}

func (t Transition) transition() (timezone.Transition, error) {
	month, ok := months[strings.ToLower(t.Month)]
	if !ok {
		return timezone.Transition{}, errors.Wrapf(timezone.ErrInvalidRule, "unknown month %q", t.Month)
	}
	weekday, ok := weekdays[strings.ToLower(t.Weekday)]
	if !ok {
		return timezone.Transition{}, errors.Wrapf(timezone.ErrInvalidRule, "unknown weekday %q", t.Weekday)
	}
	var nth int
	switch v := t.Nth.(type) {
	case string:
		if strings.ToLower(v) != "last" {
			return timezone.Transition{}, errors.Wrapf(timezone.ErrInvalidRule, "unknown nth %q", v)
		}
		nth = timezone.Last
	case int:
		nth = v
	case int64:
		nth = int(v)
	default:
		return timezone.Transition{}, errors.Wrapf(timezone.ErrInvalidRule, "unknown nth %v", v)
	}
	return timezone.Transition{Month: month, Weekday: weekday, Nth: nth, Hour: t.Hour}, nil
}

var months = func() map[string]time.Month {
	out := make(map[string]time.Month, 24)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		out[name] = m
		out[name[:3]] = m
	}
	return out
}()

var weekdays = func() map[string]time.Weekday {
	out := make(map[string]time.Weekday, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		out[name] = d
		out[name[:3]] = d
	}
	return out
}()

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Level maps LogLevel to a slog level, defaulting to warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Options builds parse options anchored at ref. Overrides are assumed
// valid, which LoadFrom guarantees.
func (c *Config) Options(ref time.Time) datetime.Options {
	overrides, _ := c.Overrides()
	return datetime.Options{
		Reference: ref,
		Timezone:  c.Timezone,
		Timezones: overrides,
		Strict:    c.Strict,
	}
}
