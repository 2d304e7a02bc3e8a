package en

import (
	"strings"
	"time"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

const (
	middleMonthGroup = iota + 1
	middleDateGroup
	middleDateToGroup
	middleYearGroup
)

// MonthNameMiddleEndianParser reads "September 16, 2020",
// "wednesday, september 16, 2020", "Jan 1st 2023" and "Jan 12 - 13, 2012".
var MonthNameMiddleEndianParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en month name middle endian",
	Expr: `(?:(?:` + pattern.MatchAny(WeekdayDictionary) + `)\s*,?\s*)?` +
		`(` + pattern.MatchAny(MonthDictionary) + `)` +
		`(?:-|/|\s*,?\s*)` +
		`(` + OrdinalExpr + `)(?!\s?(?:am|pm))` +
		`(?:\s*(?:to|-)\s*(` + OrdinalExpr + `))?` +
		`(?:(?:-|/|\s*,\s*|\s+)(` + YearExpr + `))?` +
		`(?=\W|$)(?!:\d)`,
	Flags:  pattern.IgnoreCase,
	Groups: middleYearGroup,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		month := MonthDictionary[strings.ToLower(m.Group(middleMonthGroup))]
		day := ParseOrdinal(m.Group(middleDateGroup))
		if day < 1 || day > 31 {
			return nil
		}
		return monthNameResult(ctx, m, month, day, middleDateToGroup, middleYearGroup,
			"parser/ENMonthNameMiddleEndianParser")
	},
})

const (
	littleDateGroup = iota + 1
	littleDateToGroup
	littleMonthGroup
	littleYearGroup
)

// MonthNameLittleEndianParser reads "16 september 2020", "on 3rd of March"
// and "10 - 12 Jan".
var MonthNameLittleEndianParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en month name little endian",
	Expr: `(?:on\s{0,3})?` +
		`(` + OrdinalExpr + `)` +
		`(?:\s{0,3}(?:to|-|–|until|through|till)?\s{0,3}(` + OrdinalExpr + `))?` +
		`(?:-|/|\s{0,3}(?:of)?\s{0,3})` +
		`(` + pattern.MatchAny(MonthDictionary) + `)` +
		`(?:(?:-|/|,?\s{0,3})(` + YearExpr + `(?![^\s]\d)))?` +
		`(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: littleYearGroup,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		month := MonthDictionary[strings.ToLower(m.Group(littleMonthGroup))]
		day := ParseOrdinal(m.Group(littleDateGroup))
		if day < 1 || day > 31 {
			return nil
		}
		return monthNameResult(ctx, m, month, day, littleDateToGroup, littleYearGroup,
			"parser/ENMonthNameLittleEndianParser")
	},
})

func monthNameResult(ctx *parsing.Context, m *pattern.Match, month time.Month, day, toGroup, yearGroup int, tag string) results.Extraction {
	c := ctx.NewComponents().Assign(results.Day, day).Assign(results.Month, int(month))
	if m.HasGroup(yearGroup) {
		c.Assign(results.Year, ParseYear(m.Group(yearGroup)))
	} else {
		c.Imply(results.Year, ClosestYear(ctx.Reference.Instant(), month, day))
	}
	c.AddTag(tag)
	if !m.HasGroup(toGroup) {
		return c
	}

	endDay := ParseOrdinal(m.Group(toGroup))
	if endDay < 1 || endDay > 31 {
		return nil
	}
	return ctx.NewResult(m.Index, m.Text(), c, c.Clone().Assign(results.Day, endDay))
}

// ClosestYear picks the year that puts month/day nearest to ref.
func ClosestYear(ref time.Time, month time.Month, day int) int {
	candidate := time.Date(ref.Year(), month, day, ref.Hour(), ref.Minute(), 0, 0, ref.Location())
	best, bestDiff := candidate.Year(), absDuration(candidate.Sub(ref))
	for _, years := range []int{1, -1} {
		t := candidate.AddDate(years, 0, 0)
		if d := absDuration(t.Sub(ref)); d < bestDiff {
			best, bestDiff = ref.Year()+years, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
