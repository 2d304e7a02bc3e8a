package parsing

import (
	"strconv"

	"go_chrono/pattern"
	"go_chrono/results"
)

const (
	isoYear = iota + 1
	isoMonth
	isoDay
	isoHour
	isoMinute
	isoSecond
	isoFraction
	isoZone
	isoZoneHour
	isoZoneMinute
)

// ISOFormatParser reads "2020-02-13" and "2020-02-13T23:00:05.120+09:00".
var ISOFormatParser = MustPatternParser(Spec{
	Name: "iso",
	Expr: `([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})` +
		`(?:T([0-9]{1,2}):([0-9]{1,2})(?::([0-9]{1,2})(?:\.([0-9]{1,4}))?)?` +
		`(Z|([+-][0-9]{2}):?([0-9]{2})?)?)?(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: isoZoneMinute,
	Extract: func(ctx *Context, m *pattern.Match) results.Extraction {
		c := ctx.NewComponents().
			Assign(results.Year, atoi(m.Group(isoYear))).
			Assign(results.Month, atoi(m.Group(isoMonth))).
			Assign(results.Day, atoi(m.Group(isoDay)))
		if m.HasGroup(isoHour) {
			c.Assign(results.Hour, atoi(m.Group(isoHour)))
			c.Assign(results.Minute, atoi(m.Group(isoMinute)))
			if m.HasGroup(isoSecond) {
				c.Assign(results.Second, atoi(m.Group(isoSecond)))
			}
			if m.HasGroup(isoFraction) {
				c.Assign(results.Millisecond, fractionToMillis(m.Group(isoFraction)))
			}
			if m.HasGroup(isoZone) {
				offset := 0
				if m.HasGroup(isoZoneHour) {
					hours := atoi(m.Group(isoZoneHour))
					minutes := atoi(m.Group(isoZoneMinute))
					if hours < 0 {
						minutes = -minutes
					}
					offset = hours*60 + minutes
				}
				c.Assign(results.TimezoneOffset, offset)
			}
		}
		if !c.IsValid() {
			return nil
		}
		return c.AddTag("parser/ISOFormatParser")
	},
})

func fractionToMillis(s string) int {
	for len(s) < 3 {
		s += "0"
	}
	return atoi(s[:3])
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
