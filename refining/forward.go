package refining

import (
	"go_chrono/parsing"
	"go_chrono/results"
)

// ForwardDate moves implied fields forward so that a time, weekday or
// yearless date already past the reference points to its next occurrence.
// It does nothing unless the context asks for forward dates.
var ForwardDate Refiner = Mutate(func(ctx *parsing.Context, r *results.ParsingResult) {
	if !ctx.ForwardDate {
		return
	}
	ref := ctx.Reference.Instant()

	if r.Start.IsOnlyTime() && ref.After(r.Start.Date()) {
		next := ref.AddDate(0, 0, 1)
		reimplyDate(r.Start, next)
		if r.End != nil && r.End.IsOnlyTime() {
			reimplyDate(r.End, next)
			if r.Start.Date().After(r.End.Date()) {
				reimplyDate(r.End, next.AddDate(0, 0, 1))
			}
		}
	}

	if r.Start.IsOnlyWeekday() && ref.After(r.Start.Date()) {
		weekday, _ := r.Start.Get(results.Weekday)
		days := weekday - int(ref.Weekday())
		if days <= 0 {
			days += 7
		}
		reimplyDate(r.Start, ref.AddDate(0, 0, days))
	}

	if r.Start.IsDateWithUnknownYear() {
		for i := 0; i < 3 && ref.After(r.Start.Date()); i++ {
			year, ok := r.Start.Get(results.Year)
			if !ok {
				year = ref.Year()
			}
			r.Start.Reimply(results.Year, year+1)
			if r.End != nil && !r.End.IsCertain(results.Year) {
				endYear, ok := r.End.Get(results.Year)
				if !ok {
					endYear = ref.Year()
				}
				r.End.Reimply(results.Year, endYear+1)
			}
		}
	}
})

// NewDefaultHour places results that state no hour at hour:00, leaving
// results computed from the reference clock alone.
func NewDefaultHour(hour int) Refiner {
	return Mutate(func(_ *parsing.Context, r *results.ParsingResult) {
		for _, c := range []*results.ParsingComponents{r.Start, r.End} {
			if c == nil || c.IsCertain(results.Hour) || c.HasTag(results.TagRelativeDate) {
				continue
			}
			c.Reimply(results.Hour, hour).
				Reimply(results.Minute, 0).
				Reimply(results.Second, 0).
				Reimply(results.Millisecond, 0).
				Reimply(results.Meridiem, meridiem(hour))
		}
	})
}

func meridiem(hour int) int {
	if hour < 12 {
		return results.AM
	}
	return results.PM
}
