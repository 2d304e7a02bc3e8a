package en

import (
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
	"go_chrono/timezone"
)

// CasualDateParser reads now, today, tonight, tomorrow, yesterday and last
// night.
var CasualDateParser = parsing.MustPatternParser(parsing.Spec{
	Name:  "en casual date",
	Expr:  `(now|today|tonight|tomorrow|tmr|tmrw|yesterday|last\s*night)(?=\W|$)`,
	Flags: pattern.IgnoreCase,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		ref := ctx.Reference.Instant()
		c := ctx.NewComponents()
		switch word := strings.ToLower(m.Text()); word {
		case "now":
			c.AssignDate(ref).AssignTime(ref)
			c.Assign(results.TimezoneOffset, timezone.OffsetOf(ref))
			c.AddTag(results.TagRelativeDateAndTime)
		case "today":
			c.AssignDate(ref).ImplyTime(ref)
		case "yesterday":
			c.AssignDate(ref.AddDate(0, 0, -1)).ImplyTime(ref)
		case "tomorrow", "tmr", "tmrw":
			c.AssignDate(ref.AddDate(0, 0, 1)).ImplyTime(ref)
		case "tonight":
			c.AssignDate(ref)
			c.Imply(results.Hour, 22).Imply(results.Meridiem, results.PM)
		default:
			day := ref
			if day.Hour() > 6 {
				day = day.AddDate(0, 0, -1)
			}
			c.AssignDate(day).Imply(results.Hour, 0)
		}
		return c.AddTag("parser/ENCasualDateParser")
	},
})

// CasualTimeParser reads parts of the day: morning, afternoon, evening,
// night, noon and midnight.
var CasualTimeParser = parsing.MustPatternParser(parsing.Spec{
	Name:   "en casual time",
	Expr:   `(?:this\s{0,3})?(morning|afternoon|evening|night|midnight|midday|noon)(?=\W|$)`,
	Flags:  pattern.IgnoreCase,
	Groups: 1,
	Extract: func(ctx *parsing.Context, m *pattern.Match) results.Extraction {
		ref := ctx.Reference.Instant()
		c := ctx.NewComponents()
		switch strings.ToLower(m.Group(1)) {
		case "morning":
			c.Imply(results.Meridiem, results.AM).Imply(results.Hour, 6)
		case "afternoon":
			c.Imply(results.Meridiem, results.PM).Imply(results.Hour, 15)
		case "evening", "night":
			c.Imply(results.Meridiem, results.PM).Imply(results.Hour, 20)
		case "midnight":
			day := ref
			if day.Hour() > 2 {
				day = day.AddDate(0, 0, 1)
			}
			c.ImplyDate(day)
			c.Assign(results.Hour, 0).Assign(results.Minute, 0).Assign(results.Second, 0)
			c.Assign(results.Meridiem, results.AM)
		default:
			c.Assign(results.Meridiem, results.PM).Assign(results.Hour, 12).Assign(results.Minute, 0).Assign(results.Second, 0)
		}
		return c.AddTag("parser/ENCasualTimeParser")
	},
})
