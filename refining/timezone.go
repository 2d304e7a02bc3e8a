package refining

import (
	"strconv"
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
	"go_chrono/timezone"
)

// NewExtractTimezoneOffset absorbs a numeric offset written after a time,
// as in "10:00 +0900" or "10:00 (GMT-5)". unitExpr lists the time-unit words
// of the locale so that "+2 weeks" is not read as an offset.
func NewExtractTimezoneOffset(unitExpr string) Refiner {
	guard := ""
	if unitExpr != "" {
		guard = `(?!\s*(?:` + unitExpr + `)(?![a-z]))`
	}
	p := pattern.MustCompile(
		`^\s*(?:\(?(GMT|UTC)\s?)?([+-])(\d{1,2})(?::?(\d{2}))?\)?(?=\W|$)`+guard,
		pattern.IgnoreCase,
	)
	return Mutate(func(ctx *parsing.Context, r *results.ParsingResult) {
		if r.Start.IsCertain(results.TimezoneOffset) || r.Start.HasTag(results.TagRelativeDateAndTime) {
			return
		}
		suffix := ctx.Text[r.EndIndex():]
		m := p.FindAt(suffix, 0)
		if m == nil {
			return
		}
		if !m.HasGroup(1) && !r.Start.IsCertain(results.Hour) {
			return
		}
		hours, _ := strconv.Atoi(m.Group(3))
		minutes := 0
		if m.HasGroup(4) {
			minutes, _ = strconv.Atoi(m.Group(4))
		}
		offset := hours*60 + minutes
		if minutes >= 60 || offset > timezone.MaxOffset {
			return
		}
		if m.Group(2) == "-" {
			offset = -offset
		}
		if r.End != nil {
			r.End.Assign(results.TimezoneOffset, offset)
		}
		r.Start.Assign(results.TimezoneOffset, offset)
		r.Text += m.Text()
	})
}

var abbrSuffix = pattern.MustCompile(`^\s*,?\s*\(?([A-Z]{2,4})\)?(?=\W|$)`, pattern.IgnoreCase)

// ExtractTimezoneAbbr absorbs a zone abbreviation written after a mention.
// The zone is resolved against the mention's own wall clock so daylight
// saving follows the parsed date. Results pinned to the reference clock
// ("now", "in 2 hours") never take a zone. A token not written in upper
// case is only taken from the caller's overrides, and a date without a time
// only takes an upper-case token.
var ExtractTimezoneAbbr Refiner = Mutate(func(ctx *parsing.Context, r *results.ParsingResult) {
	if r.Start.HasTag(results.TagRelativeDateAndTime) {
		return
	}
	m := abbrSuffix.FindAt(ctx.Text[r.EndIndex():], 0)
	if m == nil {
		return
	}
	token := m.Group(1)
	upper := token == strings.ToUpper(token)
	if !upper && !timezone.InOverrides(token, ctx.Timezones) {
		return
	}
	offset, ok := timezone.Resolve(token, r.Start.WallClock(), ctx.Timezones)
	if !ok {
		ctx.Debug("unknown timezone", "token", token)
		return
	}
	if current, has := r.Start.Get(results.TimezoneOffset); has && current != offset {
		if r.Start.IsCertain(results.TimezoneOffset) || !upper {
			return
		}
	}
	if r.Start.IsOnlyDate() && !upper {
		return
	}

	r.Text += m.Text()
	if !r.Start.IsCertain(results.TimezoneOffset) {
		r.Start.Assign(results.TimezoneOffset, offset)
	}
	if r.End != nil && !r.End.IsCertain(results.TimezoneOffset) {
		endOffset, _ := timezone.Resolve(token, r.End.WallClock(), ctx.Timezones)
		r.End.Assign(results.TimezoneOffset, endOffset)
	}
})
