// Package datetime runs the parse and refine pipeline over free text and
// resolves the mentions it finds to instants.
package datetime

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go_chrono/locales/en"
	"go_chrono/parsing"
	"go_chrono/refining"
	"go_chrono/results"
	"go_chrono/timezone"
)

// ErrNoDate is returned when the text holds no date mention.
var ErrNoDate = errors.New("no date found")

// Configuration is an ordered set of parsers and refiners.
type Configuration struct {
	Parsers  []parsing.Parser
	Refiners []refining.Refiner
}

// English returns the English configuration. Strict mode keeps only
// formal expressions and full unit words.
func English(strict bool) Configuration {
	return Configuration{Parsers: en.Parsers(strict), Refiners: en.Refiners()}
}

// Options controls one parse.
type Options struct {
	// Reference anchors relative expressions. Zero means time.Now().
	Reference time.Time
	// Timezone names the reference zone: an abbreviation ("ET", "JST"),
	// a numeric offset ("+09:00") or an IANA name ("Europe/Paris"). Empty
	// keeps the location of Reference.
	Timezone string
	// TimezoneMinutes pins the reference zone to a fixed offset and wins
	// over Timezone.
	TimezoneMinutes *int
	// Timezones overrides or extends the built-in abbreviations.
	Timezones timezone.Overrides
	Strict    bool
	// ForwardDate resolves past-looking mentions to their next occurrence.
	ForwardDate bool
	// DefaultHour places mentions that name no clock time and are not
	// relative to the reference at this hour.
	DefaultHour *int
	Logger      *slog.Logger
}

// reference resolves the reference instant and zone of opts.
func (o Options) reference() (*results.Reference, error) {
	instant := o.Reference
	if instant.IsZero() {
		instant = time.Now()
	}
	switch {
	case o.TimezoneMinutes != nil:
		return results.NewReference(instant, timezone.FixedZone(*o.TimezoneMinutes)), nil
	case o.Timezone != "":
		loc, err := timezone.Location(o.Timezone, instant, o.Timezones)
		if err != nil {
			return nil, fmt.Errorf("reference timezone: %w", err)
		}
		return results.NewReference(instant, loc), nil
	}
	return results.NewReference(instant, nil), nil
}

// Run parses text with every parser, orders the candidates by position and
// passes them through the refiners.
func (c Configuration) Run(text string, opts Options) ([]*results.ParsingResult, error) {
	ref, err := opts.reference()
	if err != nil {
		return nil, err
	}
	ctx := &parsing.Context{
		Text:        text,
		Reference:   ref,
		Strict:      opts.Strict,
		Timezones:   opts.Timezones,
		Logger:      opts.Logger,
		ForwardDate: opts.ForwardDate,
	}

	var rs []*results.ParsingResult
	for _, p := range c.Parsers {
		rs = append(rs, parsing.Execute(ctx, p)...)
	}
	refining.SortByIndex(rs)

	refiners := c.Refiners
	if opts.DefaultHour != nil {
		refiners = append(refiners[:len(refiners):len(refiners)], refining.NewDefaultHour(*opts.DefaultHour))
	}
	refiners = append(refiners[:len(refiners):len(refiners)], refining.ForwardDate)
	for _, r := range refiners {
		rs = r.Refine(ctx, rs)
	}
	return rs, nil
}

// ParseAll finds every date mention in text with the English
// configuration.
func ParseAll(text string, opts Options) ([]*results.ParsingResult, error) {
	return English(opts.Strict).Run(text, opts)
}

// ParseDate returns the start instant of the first mention in text.
func ParseDate(text string, opts Options) (time.Time, error) {
	rs, err := ParseAll(text, opts)
	if err != nil {
		return time.Time{}, err
	}
	if len(rs) == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, text)
	}
	return rs[0].Date(), nil
}

// ReminderDefaultHour is the hour a reminder lands at when its date names
// no time.
const ReminderDefaultHour = 9

// ReminderOptions are the options reminders are parsed with: dates point
// forward and a bare date means nine in the morning.
func ReminderOptions(relativeTo time.Time) Options {
	hour := ReminderDefaultHour
	return Options{Reference: relativeTo, ForwardDate: true, DefaultHour: &hour}
}

// Parse parses input that must be a single date expression as a whole.
// relativeTo is used as the base time for relative times (e.g., +2h).
func Parse(input string, relativeTo time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	rs, err := ParseAll(input, ReminderOptions(relativeTo))
	if err != nil {
		return time.Time{}, err
	}
	if len(rs) != 1 || rs[0].Index != 0 || len(rs[0].Text) != len(input) {
		return time.Time{}, fmt.Errorf("%w: unable to parse datetime: %q", ErrNoDate, input)
	}
	return rs[0].Date(), nil
}
