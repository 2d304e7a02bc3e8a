// Package timezone resolves zone tokens ("JST", "ET", "+09:00") to signed
// minute offsets from UTC. Ambiguous abbreviations switch between their
// daylight and standard offsets according to per-year transition rules.
package timezone

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRule is returned when a rule cannot describe a real zone.
var ErrInvalidRule = errors.New("invalid timezone rule")

// MaxOffset is the largest accepted offset in minutes, either direction.
const MaxOffset = 14 * 60

// Rule yields the offset in minutes that applies at a wall-clock time.
type Rule interface {
	OffsetAt(wall time.Time) int
}

// Fixed is a rule without daylight saving.
type Fixed int

func (f Fixed) OffsetAt(time.Time) int { return int(f) }

// Ambiguous switches between two offsets. Start and End return the wall-clock
// transition instants for a year, encoded in UTC.
type Ambiguous struct {
	DST    int
	NonDST int
	Start  func(year int) time.Time
	End    func(year int) time.Time
}

// NewAmbiguous validates and builds an Ambiguous rule.
func NewAmbiguous(dst, nonDST int, start, end func(year int) time.Time) (*Ambiguous, error) {
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: missing transition", ErrInvalidRule)
	}
	if abs(dst) > MaxOffset || abs(nonDST) > MaxOffset {
		return nil, fmt.Errorf("%w: offset out of range", ErrInvalidRule)
	}
	if s, e := start(2000), end(2000); s.Equal(e) {
		return nil, fmt.Errorf("%w: daylight saving starts and ends at %s", ErrInvalidRule, s)
	}
	return &Ambiguous{DST: dst, NonDST: nonDST, Start: start, End: end}, nil
}

// OffsetAt evaluates the transitions for the year of wall. When End falls
// before Start the daylight window wraps across the new year.
func (a *Ambiguous) OffsetAt(wall time.Time) int {
	w := asUTC(wall)
	start, end := a.Start(w.Year()), a.End(w.Year())
	var inDST bool
	if end.Before(start) {
		inDST = !w.Before(start) || w.Before(end)
	} else {
		inDST = !w.Before(start) && w.Before(end)
	}
	if inDST {
		return a.DST
	}
	return a.NonDST
}

// Transition names a recurring instant: the nth weekday of a month at an hour.
// Nth of Last (or 5) means the final occurrence in the month.
type Transition struct {
	Month   time.Month
	Weekday time.Weekday
	Nth     int
	Hour    int
}

// At returns the transition in year.
func (t Transition) At(year int) time.Time {
	return NthWeekdayOfMonth(year, t.Month, t.Weekday, t.Nth, t.Hour)
}

func (t Transition) validate() error {
	switch {
	case t.Month < time.January || t.Month > time.December:
		return fmt.Errorf("%w: month %d", ErrInvalidRule, t.Month)
	case t.Weekday < time.Sunday || t.Weekday > time.Saturday:
		return fmt.Errorf("%w: weekday %d", ErrInvalidRule, t.Weekday)
	case t.Nth < 1 || t.Nth > Last:
		return fmt.Errorf("%w: occurrence %d", ErrInvalidRule, t.Nth)
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidRule, t.Hour)
	}
	return nil
}

// NewTransitionRule builds an Ambiguous rule from two transitions.
func NewTransitionRule(dst, nonDST int, start, end Transition) (*Ambiguous, error) {
	if err := start.validate(); err != nil {
		return nil, fmt.Errorf("dst start: %w", err)
	}
	if err := end.validate(); err != nil {
		return nil, fmt.Errorf("dst end: %w", err)
	}
	return NewAmbiguous(dst, nonDST, start.At, end.At)
}

func mustTransitionRule(dst, nonDST int, start, end Transition) *Ambiguous {
	r, err := NewTransitionRule(dst, nonDST, start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Last marks the final occurrence of a weekday in a month.
const Last = 5

// NthWeekdayOfMonth returns the nth weekday of the month at hour, as a UTC
// encoded wall clock. n of Last selects the final occurrence.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n, hour int) time.Time {
	if n >= Last {
		return LastWeekdayOfMonth(year, month, weekday, hour)
	}
	first := time.Date(year, month, 1, hour, 0, 0, 0, time.UTC)
	diff := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, diff+7*(n-1))
}

// LastWeekdayOfMonth returns the final weekday of the month at hour.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, hour int) time.Time {
	last := time.Date(year, month+1, 0, hour, 0, 0, 0, time.UTC)
	diff := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -diff)
}

func asUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
