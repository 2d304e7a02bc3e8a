package en

import (
	"strconv"
	"strings"
	"time"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

const (
	slashMonthGroup = iota + 1
	slashDayGroup
	slashYearGroup
)

// SlashDateParser reads month-first numeric dates: "12/25", "12/25/2020",
// "1/2/21".
var SlashDateParser = parsing.MustPatternParser(parsing.Spec{
	Name:   "slash date",
	Expr:   `([0-3]?[0-9])/([0-3]?[0-9])(?:/([0-9]{4}|[0-9]{2}))?(?=\W|$)(?!/)`,
	Groups: slashYearGroup,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		month, _ := strconv.Atoi(m.Group(slashMonthGroup))
		day, _ := strconv.Atoi(m.Group(slashDayGroup))
		if month < 1 || month > 12 {
			if month > 12 && day >= 1 && day <= 12 {
				month, day = day, month
			} else {
				return nil
			}
		}
		if day < 1 || day > 31 {
			return nil
		}

		c := ctx.NewComponents().Assign(results.Day, day).Assign(results.Month, month)
		if m.HasGroup(slashYearGroup) {
			c.Assign(results.Year, ParseYear(m.Group(slashYearGroup)))
		} else {
			c.Imply(results.Year, ClosestYear(ctx.Reference.Instant(), time.Month(month), day))
		}
		return c.AddTag("parser/SlashDateFormatParser")
	},
})

// SlashMonthParser reads a month and a four digit year: "06/2005".
var SlashMonthParser = parsing.MustPatternParser(parsing.Spec{
	Name:   "en slash month",
	Expr:   `(0?[1-9]|1[012])/([0-9]{4})(?=\W|$)`,
	Groups: 2,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		month, _ := strconv.Atoi(m.Group(1))
		year, _ := strconv.Atoi(m.Group(2))
		return ctx.NewComponents().
			Imply(results.Day, 1).
			Assign(results.Month, month).
			Assign(results.Year, year).
			AddTag("parser/ENSlashMonthFormatParser")
	},
})

const (
	ymdYearGroup = iota + 1
	ymdMonthNameGroup
	ymdMonthGroup
	ymdDayGroup
)

// YearMonthDayParser reads big-endian dates: "2012/8/10", "2012.08.10",
// "2012 Aug 10". In strict mode month and day are never swapped.
var YearMonthDayParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en year month day",
	Expr: `([0-9]{4})[-./\s](?:(` + pattern.MatchAny(MonthDictionary) + `)|([0-9]{1,2}))[-./\s]` +
		`([0-9]{1,2})(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: ymdDayGroup,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		year, _ := strconv.Atoi(m.Group(ymdYearGroup))
		day, _ := strconv.Atoi(m.Group(ymdDayGroup))
		var month int
		if m.HasGroup(ymdMonthGroup) {
			month, _ = strconv.Atoi(m.Group(ymdMonthGroup))
		} else {
			month = int(MonthDictionary[strings.ToLower(m.Group(ymdMonthNameGroup))])
		}
		if month < 1 || month > 12 {
			if ctx.Strict || day < 1 || day > 12 {
				return nil
			}
			month, day = day, month
		}
		if day < 1 || day > 31 {
			return nil
		}
		return ctx.NewComponents().
			Assign(results.Day, day).
			Assign(results.Month, month).
			Assign(results.Year, year).
			AddTag("parser/ENYearMonthDayParser")
	},
})
