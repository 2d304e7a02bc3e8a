// Package timeunits parses quantity+unit phrases ("2 days 3 hours", "+2w")
// into signed deltas and applies them to instants.
package timeunits

import (
	"time"
)

// Unit is a calendar or clock unit.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var unitNames = [...]string{"millisecond", "second", "minute", "hour", "day", "week", "month", "quarter", "year"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "unknown"
	}
	return unitNames[u]
}

// IsClock reports whether the unit is finer than a day.
func (u Unit) IsClock() bool { return u <= Hour }

// TimeUnits maps a unit to a signed quantity.
type TimeUnits map[Unit]int

// Reverse returns a new mapping with every quantity negated.
func Reverse(units TimeUnits) TimeUnits {
	out := make(TimeUnits, len(units))
	for u, q := range units {
		out[u] = -q
	}
	return out
}

// Clone copies the mapping.
func (t TimeUnits) Clone() TimeUnits {
	out := make(TimeUnits, len(t))
	for u, q := range t {
		out[u] = q
	}
	return out
}

// HasClockUnit reports whether any nonzero quantity is finer than a day.
func (t TimeUnits) HasClockUnit() bool {
	for u, q := range t {
		if q != 0 && u.IsClock() {
			return true
		}
	}
	return false
}

// Has reports whether the unit carries a nonzero quantity.
func (t TimeUnits) Has(u Unit) bool { return t[u] != 0 }

// IsZero reports whether no unit carries a nonzero quantity.
func (t TimeUnits) IsZero() bool {
	for _, q := range t {
		if q != 0 {
			return false
		}
	}
	return true
}

// AddTo applies the deltas to t: years, then months, then weeks and days as
// one day delta, then the clock units. Month steps clamp the day to the
// length of the target month, so Jan 31 + 1 month is the last day of Feb.
func AddTo(t time.Time, units TimeUnits) time.Time {
	if years := units[Year]; years != 0 {
		t = addMonths(t, 12*years)
	}
	if months := units[Month] + 3*units[Quarter]; months != 0 {
		t = addMonths(t, months)
	}
	if days := units[Day] + 7*units[Week]; days != 0 {
		t = t.AddDate(0, 0, days)
	}
	clock := time.Duration(units[Hour])*time.Hour +
		time.Duration(units[Minute])*time.Minute +
		time.Duration(units[Second])*time.Second +
		time.Duration(units[Millisecond])*time.Millisecond
	return t.Add(clock)
}

func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
