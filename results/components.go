// Package results holds the values parsers extract: date and time fields
// that are either stated in the text (certain) or inferred (implied).
package results

import (
	"sort"
	"time"

	"go_chrono/timezone"
)

// Component is a date or time field.
type Component int

const (
	Year Component = iota
	Month
	Day
	Weekday
	Hour
	Minute
	Second
	Millisecond
	Meridiem
	TimezoneOffset
)

var componentNames = [...]string{"year", "month", "day", "weekday", "hour", "minute", "second", "millisecond", "meridiem", "timezoneOffset"}

func (c Component) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return "unknown"
	}
	return componentNames[c]
}

// Certainty tells whether a value was stated or inferred.
type Certainty int

const (
	Implied Certainty = iota + 1
	Certain
)

// Meridiem values.
const (
	AM = 0
	PM = 1
)

// Provenance tags set by the relative factory.
const (
	TagRelativeDate        = "result/relativeDate"
	TagRelativeDateAndTime = "result/relativeDateAndTime"
)

type value struct {
	v int
	c Certainty
}

// ParsingComponents is a set of date/time fields with their certainty.
// Assign always wins; Imply only fills fields that are still empty.
type ParsingComponents struct {
	ref    *Reference
	values map[Component]value
	tags   map[string]struct{}
}

// NewComponents returns an empty set bound to ref.
func NewComponents(ref *Reference) *ParsingComponents {
	return &ParsingComponents{
		ref:    ref,
		values: make(map[Component]value),
		tags:   make(map[string]struct{}),
	}
}

func (p *ParsingComponents) extraction() {}

// Reference returns the shared reference.
func (p *ParsingComponents) Reference() *Reference { return p.ref }

// Assign sets a certain value, replacing whatever was there.
func (p *ParsingComponents) Assign(c Component, v int) *ParsingComponents {
	p.values[c] = value{v: v, c: Certain}
	return p
}

// Imply sets an implied value unless the field already holds one.
func (p *ParsingComponents) Imply(c Component, v int) *ParsingComponents {
	if _, ok := p.values[c]; !ok {
		p.values[c] = value{v: v, c: Implied}
	}
	return p
}

// Reimply replaces an implied value, leaving assigned values alone. Merges
// use it when a sibling result gives a better guess.
func (p *ParsingComponents) Reimply(c Component, v int) *ParsingComponents {
	if !p.IsCertain(c) {
		p.values[c] = value{v: v, c: Implied}
	}
	return p
}

// Get returns the value of a field regardless of certainty.
func (p *ParsingComponents) Get(c Component) (int, bool) {
	val, ok := p.values[c]
	return val.v, ok
}

// Has reports whether the field holds any value.
func (p *ParsingComponents) Has(c Component) bool {
	_, ok := p.values[c]
	return ok
}

// IsCertain reports whether the field was assigned.
func (p *ParsingComponents) IsCertain(c Component) bool {
	return p.values[c].c == Certain
}

// Delete clears a field.
func (p *ParsingComponents) Delete(c Component) {
	delete(p.values, c)
}

// IsEmpty reports whether no field is set at all.
func (p *ParsingComponents) IsEmpty() bool { return len(p.values) == 0 }

// CertainComponents lists assigned fields in declaration order.
func (p *ParsingComponents) CertainComponents() []Component {
	var out []Component
	for c := Year; c <= TimezoneOffset; c++ {
		if p.IsCertain(c) {
			out = append(out, c)
		}
	}
	return out
}

// AddTag records provenance. Tags have no effect on values.
func (p *ParsingComponents) AddTag(tag string) *ParsingComponents {
	p.tags[tag] = struct{}{}
	return p
}

// AddTags records each tag.
func (p *ParsingComponents) AddTags(tags []string) *ParsingComponents {
	for _, tag := range tags {
		p.AddTag(tag)
	}
	return p
}

// HasTag reports whether tag was recorded.
func (p *ParsingComponents) HasTag(tag string) bool {
	_, ok := p.tags[tag]
	return ok
}

// Tags returns the recorded tags, sorted.
func (p *ParsingComponents) Tags() []string {
	out := make([]string, 0, len(p.tags))
	for tag := range p.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Clone copies values and tags. The reference is shared.
func (p *ParsingComponents) Clone() *ParsingComponents {
	out := NewComponents(p.ref)
	for c, v := range p.values {
		out.values[c] = v
	}
	for tag := range p.tags {
		out.tags[tag] = struct{}{}
	}
	return out
}

// IsOnlyDate reports that no time field was stated.
func (p *ParsingComponents) IsOnlyDate() bool {
	return !p.IsCertain(Hour) && !p.IsCertain(Minute) && !p.IsCertain(Second)
}

// IsOnlyTime reports that no date field was stated.
func (p *ParsingComponents) IsOnlyTime() bool {
	return !p.IsCertain(Weekday) && !p.IsCertain(Day) && !p.IsCertain(Month) && !p.IsCertain(Year)
}

// IsOnlyWeekday reports that only a weekday was stated among date fields.
func (p *ParsingComponents) IsOnlyWeekday() bool {
	return p.IsCertain(Weekday) && !p.IsCertain(Day) && !p.IsCertain(Month) && !p.IsCertain(Year)
}

// IsDateWithUnknownYear reports a stated month without a stated year.
func (p *ParsingComponents) IsDateWithUnknownYear() bool {
	return p.IsCertain(Month) && !p.IsCertain(Year)
}

// HasFullDate reports that year, month and day were all stated.
func (p *ParsingComponents) HasFullDate() bool {
	return p.IsCertain(Year) && p.IsCertain(Month) && p.IsCertain(Day)
}

// WallClock materializes the fields as a wall-clock time encoded in UTC.
// Unset date fields fall back to the reference; an unset hour is noon and
// unset finer fields are zero. A meridiem adjusts a twelve-hour value.
func (p *ParsingComponents) WallClock() time.Time {
	ref := p.ref.Instant()
	year := p.getOr(Year, ref.Year())
	month := p.getOr(Month, int(ref.Month()))
	day := p.getOr(Day, ref.Day())
	hour := p.getOr(Hour, 12)
	if m, ok := p.Get(Meridiem); ok {
		switch {
		case m == PM && hour < 12:
			hour += 12
		case m == AM && hour == 12:
			hour = 0
		}
	}
	return time.Date(year, time.Month(month), day, hour,
		p.getOr(Minute, 0), p.getOr(Second, 0), p.getOr(Millisecond, 0)*int(time.Millisecond), time.UTC)
}

// Date materializes the instant. The timezone offset field wins when set;
// otherwise the wall clock is read in the reference location.
func (p *ParsingComponents) Date() time.Time {
	w := p.WallClock()
	loc := p.ref.Location()
	if offset, ok := p.Get(TimezoneOffset); ok {
		loc = timezone.FixedZone(offset)
	}
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
}

// IsValid reports that the stated fields name a real calendar time, so
// "February 30" or "25:00" are rejected.
func (p *ParsingComponents) IsValid() bool {
	w := p.WallClock()
	check := func(c Component, got int) bool {
		v, ok := p.Get(c)
		return !ok || v == got
	}
	hour, ok := p.Get(Hour)
	if ok && (hour < 0 || hour > 24) {
		return false
	}
	return check(Year, w.Year()) &&
		check(Month, int(w.Month())) &&
		check(Day, w.Day()) &&
		check(Minute, w.Minute()) &&
		check(Second, w.Second())
}

func (p *ParsingComponents) getOr(c Component, fallback int) int {
	if v, ok := p.Get(c); ok {
		return v
	}
	return fallback
}

// AssignDate states year, month and day from t.
func (p *ParsingComponents) AssignDate(t time.Time) *ParsingComponents {
	return p.Assign(Year, t.Year()).Assign(Month, int(t.Month())).Assign(Day, t.Day())
}

// ImplyDate infers year, month and day from t.
func (p *ParsingComponents) ImplyDate(t time.Time) *ParsingComponents {
	return p.Imply(Year, t.Year()).Imply(Month, int(t.Month())).Imply(Day, t.Day())
}

// AssignTime states the clock fields from t.
func (p *ParsingComponents) AssignTime(t time.Time) *ParsingComponents {
	p.Assign(Hour, t.Hour()).Assign(Minute, t.Minute()).Assign(Second, t.Second())
	p.Assign(Millisecond, t.Nanosecond()/int(time.Millisecond))
	return p.Assign(Meridiem, meridiemOf(t.Hour()))
}

// ImplyTime infers the clock fields from t.
func (p *ParsingComponents) ImplyTime(t time.Time) *ParsingComponents {
	p.Imply(Hour, t.Hour()).Imply(Minute, t.Minute()).Imply(Second, t.Second())
	p.Imply(Millisecond, t.Nanosecond()/int(time.Millisecond))
	return p.Imply(Meridiem, meridiemOf(t.Hour()))
}

func meridiemOf(hour int) int {
	if hour < 12 {
		return AM
	}
	return PM
}
