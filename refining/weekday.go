package refining

import (
	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

type weekdayMerger struct{}

// MergeWeekday folds a lone weekday into the date that follows it, so
// "Sunday, 7 Jan" is one result.
var MergeWeekday Refiner = &MergingRefiner{Name: "merge weekday", Merger: weekdayMerger{}}

var weekdayBetween = pattern.MustCompile(`^,?\s*$`, 0)

func (weekdayMerger) PatternBetween() pattern.Pattern { return weekdayBetween }

func (weekdayMerger) ShouldMerge(_ *parsing.Context, _ string, current, next *results.ParsingResult) bool {
	return current.Start.IsOnlyWeekday() && !current.Start.IsCertain(results.Hour) &&
		next.Start.IsCertain(results.Day)
}

func (weekdayMerger) Merge(_ *parsing.Context, between string, current, next *results.ParsingResult) *results.ParsingResult {
	out := next.Clone()
	out.Index = current.Index
	out.Text = current.Text + between + next.Text
	weekday, _ := current.Start.Get(results.Weekday)
	out.Start.Assign(results.Weekday, weekday)
	if out.End != nil {
		out.End.Assign(results.Weekday, weekday)
	}
	return out
}
