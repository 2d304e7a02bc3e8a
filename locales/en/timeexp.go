package en

import (
	"strconv"
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

const (
	timeHourGroup = iota + 1
	timeMinuteGroup
	timeSecondGroup
	timeFractionGroup
	timeMeridiemGroup
)

var meridiemExpr = `a\.?m\.?|p\.?m\.?|o\W*clock|at\s*night|in\s*the\s*(?:morning|afternoon|evening)`

// TimeExpressionParser reads clock times: "23:00", "11 am", "4pm",
// "10.30 p.m.", "7 o'clock". A bare number without minutes or a meridiem
// is not a time.
var TimeExpressionParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en time expression",
	Expr: `(\d{1,2})(?:[:.](\d{2})(?::(\d{2})(?:\.(\d{1,6}))?)?)?` +
		`(?:\s*(` + meridiemExpr + `))?(?=\W|$)`,
	StrictExpr: `(\d{1,2})(?:[:.](\d{2})(?::(\d{2})(?:\.(\d{1,6}))?)?)?` +
		`(?:\s*(a\.?m\.?|p\.?m\.?))?(?=\W|$)`,
	Flags:   pattern.IgnoreCase,
	Groups:  timeMeridiemGroup,
	Extract: extractTime,
})

func extractTime(ctx *parsing.Context, m *pattern.Match) results.Extraction {
	if !m.HasGroup(timeMinuteGroup) && !m.HasGroup(timeMeridiemGroup) {
		return nil
	}
	hour, _ := strconv.Atoi(m.Group(timeHourGroup))
	minute, second, millis := 0, 0, 0
	if m.HasGroup(timeMinuteGroup) {
		minute, _ = strconv.Atoi(m.Group(timeMinuteGroup))
	}
	if m.HasGroup(timeSecondGroup) {
		second, _ = strconv.Atoi(m.Group(timeSecondGroup))
	}
	if m.HasGroup(timeFractionGroup) {
		frac := (m.Group(timeFractionGroup) + "00")[:3]
		millis, _ = strconv.Atoi(frac)
	}
	if hour > 24 || minute >= 60 || second >= 60 {
		return nil
	}

	c := ctx.NewComponents()
	meridiem := -1
	if m.HasGroup(timeMeridiemGroup) {
		word := strings.ToLower(m.Group(timeMeridiemGroup))
		switch {
		case strings.Contains(word, "night"), strings.Contains(word, "afternoon"), strings.Contains(word, "evening"):
			meridiem = results.PM
		case strings.Contains(word, "morning"):
			meridiem = results.AM
		case strings.HasPrefix(word, "a"):
			meridiem = results.AM
		case strings.HasPrefix(word, "p"):
			meridiem = results.PM
		}
	}

	switch {
	case meridiem >= 0 && hour > 12:
		return nil
	case meridiem == results.AM && hour == 12:
		hour = 0
	case meridiem == results.PM && hour < 12:
		hour += 12
	}
	if hour == 24 {
		hour = 0
	}

	c.Assign(results.Hour, hour).Assign(results.Minute, minute)
	if m.HasGroup(timeSecondGroup) {
		c.Assign(results.Second, second)
	}
	if m.HasGroup(timeFractionGroup) {
		c.Assign(results.Millisecond, millis)
	}
	switch {
	case meridiem >= 0:
		c.Assign(results.Meridiem, meridiem)
	case hour >= 12:
		c.Assign(results.Meridiem, results.PM)
	default:
		c.Imply(results.Meridiem, results.AM)
	}
	return c.AddTag("parser/ENTimeExpressionParser")
}
