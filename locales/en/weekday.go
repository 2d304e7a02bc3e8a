package en

import (
	"strings"
	"time"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
	"go_chrono/timeunits"
)

const (
	weekdayPrefixGroup = iota + 1
	weekdayWordGroup
	weekdayPostfixGroup
)

// WeekdayParser reads "friday", "next friday", "last monday", "on tuesday",
// "friday next week", "this weekend" and "next weekday".
var WeekdayParser = parsing.MustPatternParser(parsing.Spec{
	Name: "en weekday",
	Expr: `(?:(?:,|\(|（)\s*)?(?:on\s*?)?(?:(this|last|past|next)\s*)?` +
		`(` + pattern.MatchAny(WeekdayDictionary) + `|weekend|weekday)` +
		`(?:\s*(?:,|\)|）))?(?:\s*(this|last|past|next)\s*week)?(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: weekdayPostfixGroup,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		modifier := strings.ToLower(m.Group(weekdayPrefixGroup))
		if modifier == "" {
			modifier = strings.ToLower(m.Group(weekdayPostfixGroup))
		}
		if modifier == "past" {
			modifier = "last"
		}

		ref := ctx.Reference.Instant()
		var weekday time.Weekday
		switch word := strings.ToLower(m.Group(weekdayWordGroup)); word {
		case "weekend":
			weekday = time.Saturday
			if modifier == "last" {
				weekday = time.Sunday
			}
		case "weekday":
			weekday = nextWorkday(ref.Weekday(), modifier == "last")
		default:
			var ok bool
			if weekday, ok = WeekdayDictionary[word]; !ok {
				return nil
			}
		}

		days := DaysToWeekday(ref.Weekday(), weekday, modifier)
		target := timeunits.AddTo(ref, timeunits.TimeUnits{timeunits.Day: days})
		return ctx.NewComponents().
			Assign(results.Weekday, int(weekday)).
			ImplyDate(target).
			AddTag("parser/ENWeekdayParser")
	},
})

func nextWorkday(from time.Weekday, backwards bool) time.Weekday {
	if from == time.Saturday || from == time.Sunday {
		if backwards {
			return time.Friday
		}
		return time.Monday
	}
	n := int(from) - 1
	if backwards {
		n--
	} else {
		n++
	}
	return time.Weekday((n+5)%5 + 1)
}

// DaysToWeekday counts days from ref to the weekday named with modifier
// ("this", "last", "next" or none). Without a modifier the closest
// occurrence wins, looking forward on ties.
func DaysToWeekday(ref, weekday time.Weekday, modifier string) int {
	switch modifier {
	case "this":
		return daysForward(ref, weekday)
	case "last":
		return daysBackward(ref, weekday)
	case "next":
		switch {
		case ref == time.Sunday:
			if weekday == time.Sunday {
				return 7
			}
			return int(weekday)
		case ref == time.Saturday:
			switch weekday {
			case time.Saturday:
				return 7
			case time.Sunday:
				return 8
			}
			return 1 + int(weekday)
		case weekday < ref && weekday != time.Sunday:
			return daysForward(ref, weekday)
		}
		return daysForward(ref, weekday) + 7
	}
	forward, backward := daysForward(ref, weekday), daysBackward(ref, weekday)
	if forward < -backward {
		return forward
	}
	return backward
}

func daysForward(ref, weekday time.Weekday) int {
	n := int(weekday) - int(ref)
	if n < 0 {
		n += 7
	}
	return n
}

func daysBackward(ref, weekday time.Weekday) int {
	n := int(weekday) - int(ref)
	if n >= 0 {
		n -= 7
	}
	return n
}
