package results

import (
	"time"

	"go_chrono/timeunits"
	"go_chrono/timezone"
)

// CreateRelativeFromReference applies units to the reference instant.
//
// A delta with clock units pins every field, including the reference's
// offset, so the result is exactly the reference instant plus the delta.
// Coarser deltas state the date fields down to the finest unit given and
// imply the rest, including the reference's time of day.
func CreateRelativeFromReference(ref *Reference, units timeunits.TimeUnits) *ParsingComponents {
	c := NewComponents(ref)
	c.AddTag(TagRelativeDate)

	if present(units, timeunits.Hour, timeunits.Minute, timeunits.Second, timeunits.Millisecond) {
		offset := ref.Offset()
		target := timeunits.AddTo(ref.Instant().In(timezone.FixedZone(offset)), units)
		c.AddTag(TagRelativeDateAndTime)
		c.AssignTime(target)
		c.AssignDate(target)
		c.Assign(TimezoneOffset, offset)
		return c
	}

	target := timeunits.AddTo(ref.Instant(), units)
	c.ImplyTime(target)
	c.Imply(TimezoneOffset, timezone.OffsetOf(target))
	switch {
	case present(units, timeunits.Day, timeunits.Week):
		c.AssignDate(target)
		c.Imply(Weekday, int(target.Weekday()))
	case present(units, timeunits.Month, timeunits.Quarter):
		c.Assign(Year, target.Year()).Assign(Month, int(target.Month()))
		c.Imply(Day, target.Day())
	case present(units, timeunits.Year):
		c.Assign(Year, target.Year())
		c.Imply(Month, int(target.Month())).Imply(Day, target.Day())
	default:
		c.ImplyDate(target)
	}
	return c
}

// CreateRelativeFrom anchors the delta on an instant other than the
// reference, keeping the reference for materialization.
func CreateRelativeFrom(ref *Reference, anchor time.Time, units timeunits.TimeUnits) *ParsingComponents {
	return CreateRelativeFromReference(NewReference(anchor, anchor.Location()), units).rebind(ref)
}

func (p *ParsingComponents) rebind(ref *Reference) *ParsingComponents {
	p.ref = ref
	return p
}

func present(units timeunits.TimeUnits, keys ...timeunits.Unit) bool {
	for _, k := range keys {
		if _, ok := units[k]; ok {
			return true
		}
	}
	return false
}
