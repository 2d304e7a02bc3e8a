package en

import (
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
	"go_chrono/timeunits"
)

// RelativeDateFormatParser reads "next week", "last month", "this year" and
// "after this quarter".
var RelativeDateFormatParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en relative date format",
	Expr: `(this|last|past|next|after\s*this)\s*(` + pattern.MatchAny(TimeUnitDictionaryNoAbbr) + `)(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: 2,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		modifier := strings.ToLower(m.Group(1))
		word := strings.ToLower(m.Group(2))
		unit := TimeUnitDictionaryNoAbbr[word]

		switch {
		case modifier == "next" || strings.HasPrefix(modifier, "after"):
			return results.CreateRelativeFromReference(ctx.Reference, timeunits.TimeUnits{unit: 1}).
				AddTag("parser/ENRelativeDateFormatParser")
		case modifier == "last" || modifier == "past":
			return results.CreateRelativeFromReference(ctx.Reference, timeunits.TimeUnits{unit: -1}).
				AddTag("parser/ENRelativeDateFormatParser")
		}

		ref := ctx.Reference.Instant()
		c := ctx.NewComponents()
		switch unit {
		case timeunits.Week:
			c.ImplyDate(ref.AddDate(0, 0, -int(ref.Weekday())))
		case timeunits.Month:
			c.Imply(results.Day, 1).Assign(results.Month, int(ref.Month())).Assign(results.Year, ref.Year())
		case timeunits.Year:
			c.Imply(results.Day, 1).Imply(results.Month, 1).Assign(results.Year, ref.Year())
		default:
			return nil
		}
		return c.AddTag("parser/ENRelativeDateFormatParser")
	},
})

var (
	withinPrefix     = `(?:within|in|for)\s*(?:(?:about|around|roughly|approximately|just)\s*(?:~\s*)?)?`
	forTheUnit       = pattern.MustCompile(`^for\s*the\s*\w+`, pattern.IgnoreCase)
	lenientUnitsExpr = `(` + TimeUnits.RepeatedExpr() + `)`
	strictUnitsExpr  = `(` + StrictTimeUnits.RepeatedExpr() + `)`
)

// TimeUnitWithinParser reads "in 5 minutes", "within 2 days" and
// "for about 3 hours".
var TimeUnitWithinParser = parsing.MustPatternParser(parsing.Spec{
	Name:       "en time unit within",
	Expr:       withinPrefix + lenientUnitsExpr + `(?=\W|$)`,
	StrictExpr: withinPrefix + strictUnitsExpr + `(?=\W|$)`,
	Flags:      pattern.IgnoreCase,
	Groups:     1,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		if forTheUnit.FindAt(m.Text(), 0) != nil {
			return nil
		}
		units := parseUnits(ctx, m.Group(1))
		if units.IsZero() {
			return nil
		}
		return results.CreateRelativeFromReference(ctx.Reference, units).
			AddTag("parser/ENTimeUnitWithinFormatParser")
	},
})

// TimeUnitAgoParser reads "2 days ago", "5 minutes before" and
// "a week earlier".
var TimeUnitAgoParser = parsing.MustPatternParser(parsing.Spec{
	Name:       "en time unit ago",
	Expr:       lenientUnitsExpr + `\s{0,5}(?:ago|before|earlier)(?=\W|$)`,
	StrictExpr: strictUnitsExpr + `\s{0,5}(?:ago|before|earlier)(?=\W|$)`,
	Flags:      pattern.IgnoreCase,
	Groups:     1,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		units := parseUnits(ctx, m.Group(1))
		if units.IsZero() {
			return nil
		}
		return results.CreateRelativeFromReference(ctx.Reference, timeunits.Reverse(units)).
			AddTag("parser/ENTimeUnitAgoFormatParser")
	},
})

// TimeUnitLaterParser reads "2 hours later", "3 days after" and
// "a week from now".
var TimeUnitLaterParser = parsing.MustPatternParser(parsing.Spec{
	Name:       "en time unit later",
	Expr:       lenientUnitsExpr + `\s{0,5}(?:later|after|from now|henceforth|forward|out)(?=\W|$)`,
	StrictExpr: strictUnitsExpr + `\s{0,5}(?:later|after|from now)(?=\W|$)`,
	Flags:      pattern.IgnoreCase,
	Groups:     1,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		units := parseUnits(ctx, m.Group(1))
		if units.IsZero() {
			return nil
		}
		return results.CreateRelativeFromReference(ctx.Reference, units).
			AddTag("parser/ENTimeUnitLaterFormatParser")
	},
})

// TimeUnitCasualRelativeParser reads "+2 weeks", "-3 days", "next 2 hours"
// and "last 5 minutes".
var TimeUnitCasualRelativeParser = parsing.MustPatternParser(parsing.Spec{
	Name:       "en time unit casual relative",
	Expr:       `(this|last|past|next|after|\+|-)\s*` + lenientUnitsExpr + `(?=\W|$)`,
	StrictExpr: `(this|last|past|next|after|\+|-)\s*` + strictUnitsExpr + `(?=\W|$)`,
	Flags:      pattern.IgnoreCase,
	Groups:     2,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		units := parseUnits(ctx, m.Group(2))
		if units.IsZero() {
			return nil
		}
		switch strings.ToLower(m.Group(1)) {
		case "last", "past", "-":
			units = timeunits.Reverse(units)
		}
		return results.CreateRelativeFromReference(ctx.Reference, units).
			AddTag("parser/ENTimeUnitCasualRelativeFormatParser")
	},
})

func parseUnits(ctx *parsing.Context, text string) timeunits.TimeUnits {
	if ctx.Strict {
		return StrictTimeUnits.Parse(text)
	}
	return TimeUnits.Parse(text)
}
