package refining

import (
	"time"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

type dateTimeMerger struct{ between pattern.Pattern }

// NewMergeDateTime joins a date-only result with an adjacent time-only
// result, in either order. between matches the allowed connector.
func NewMergeDateTime(between string) Refiner {
	return &MergingRefiner{
		Name:   "merge date time",
		Merger: dateTimeMerger{between: pattern.MustCompile(between, pattern.IgnoreCase)},
	}
}

func (m dateTimeMerger) PatternBetween() pattern.Pattern { return m.between }

func (dateTimeMerger) ShouldMerge(_ *parsing.Context, _ string, current, next *results.ParsingResult) bool {
	return (current.Start.IsOnlyDate() && next.Start.IsOnlyTime()) ||
		(next.Start.IsOnlyDate() && current.Start.IsOnlyTime())
}

func (dateTimeMerger) Merge(_ *parsing.Context, between string, current, next *results.ParsingResult) *results.ParsingResult {
	var merged *results.ParsingResult
	if current.Start.IsOnlyDate() {
		merged = mergeDateTimeResult(current, next)
	} else {
		merged = mergeDateTimeResult(next, current)
	}
	merged.Index = current.Index
	merged.Text = current.Text + between + next.Text
	return merged
}

func mergeDateTimeResult(date, clock *results.ParsingResult) *results.ParsingResult {
	out := date.Clone()
	out.Start = MergeDateTimeComponents(date.Start, clock.Start)
	if date.End == nil && clock.End == nil {
		return out
	}

	endDate, endTime := date.Start, clock.Start
	if date.End != nil {
		endDate = date.End
	}
	if clock.End != nil {
		endTime = clock.End
	}
	end := MergeDateTimeComponents(endDate, endTime)
	if date.End == nil && end.Date().Before(out.Start.Date()) {
		nextDay := end.Date().AddDate(0, 0, 1)
		if end.IsCertain(results.Day) {
			end.AssignDate(nextDay)
		} else {
			reimplyDate(end, nextDay)
		}
	}
	out.End = end
	return out
}

// MergeDateTimeComponents copies the clock fields of clock onto a copy of
// date.
func MergeDateTimeComponents(date, clock *results.ParsingComponents) *results.ParsingComponents {
	out := date.Clone()
	copyField := func(c results.Component, certain bool) {
		v, ok := clock.Get(c)
		if !ok {
			return
		}
		if certain {
			out.Assign(c, v)
		} else {
			out.Reimply(c, v)
		}
	}

	if clock.IsCertain(results.Hour) {
		copyField(results.Hour, true)
		copyField(results.Minute, true)
		copyField(results.Second, clock.IsCertain(results.Second))
		copyField(results.Millisecond, clock.IsCertain(results.Millisecond))
	} else {
		for _, c := range []results.Component{results.Hour, results.Minute, results.Second, results.Millisecond} {
			copyField(c, false)
		}
	}
	if clock.IsCertain(results.TimezoneOffset) {
		copyField(results.TimezoneOffset, true)
	}
	if clock.IsCertain(results.Meridiem) {
		copyField(results.Meridiem, true)
	} else if v, ok := clock.Get(results.Meridiem); ok && !out.IsCertain(results.Meridiem) {
		out.Reimply(results.Meridiem, v)
	}

	if m, _ := out.Get(results.Meridiem); m == results.PM {
		if hour, ok := out.Get(results.Hour); ok && hour < 12 {
			if clock.IsCertain(results.Hour) {
				out.Assign(results.Hour, hour+12)
			} else {
				out.Reimply(results.Hour, hour+12)
			}
		}
	}
	out.AddTags(date.Tags())
	out.AddTags(clock.Tags())
	return out
}

type dateRangeMerger struct{ between pattern.Pattern }

// NewMergeDateRange joins two instants separated by a range connector into
// one result with an end.
func NewMergeDateRange(between string) Refiner {
	return &MergingRefiner{
		Name:   "merge date range",
		Merger: dateRangeMerger{between: pattern.MustCompile(between, pattern.IgnoreCase)},
	}
}

func (m dateRangeMerger) PatternBetween() pattern.Pattern { return m.between }

func (dateRangeMerger) ShouldMerge(_ *parsing.Context, _ string, current, next *results.ParsingResult) bool {
	return current.End == nil && next.End == nil
}

func (dateRangeMerger) Merge(_ *parsing.Context, between string, from, to *results.ParsingResult) *results.ParsingResult {
	from, to = from.Clone(), to.Clone()
	if !from.Start.IsOnlyWeekday() && !to.Start.IsOnlyWeekday() {
		for _, c := range to.Start.CertainComponents() {
			if !from.Start.IsCertain(c) {
				v, _ := to.Start.Get(c)
				from.Start.Reimply(c, v)
			}
		}
		for _, c := range from.Start.CertainComponents() {
			if !to.Start.IsCertain(c) {
				v, _ := from.Start.Get(c)
				to.Start.Reimply(c, v)
			}
		}
	}

	if fromDate, toDate := from.Start.Date(), to.Start.Date(); fromDate.After(toDate) {
		switch {
		case to.Start.IsOnlyWeekday() && toDate.AddDate(0, 0, 7).After(fromDate):
			reimplyDate(to.Start, toDate.AddDate(0, 0, 7))
		case from.Start.IsOnlyWeekday() && fromDate.AddDate(0, 0, -7).Before(toDate):
			reimplyDate(from.Start, fromDate.AddDate(0, 0, -7))
		case to.Start.IsDateWithUnknownYear() && toDate.AddDate(1, 0, 0).After(fromDate):
			to.Start.Reimply(results.Year, toDate.Year()+1)
		case from.Start.IsDateWithUnknownYear() && fromDate.AddDate(-1, 0, 0).Before(toDate):
			from.Start.Reimply(results.Year, fromDate.Year()-1)
		default:
			from, to = to, from
		}
	}

	out := from.Clone()
	out.End = to.Start
	if from.Index < to.Index {
		out.Index = from.Index
		out.Text = from.Text + between + to.Text
	} else {
		out.Index = to.Index
		out.Text = to.Text + between + from.Text
	}
	return out
}

func reimplyDate(c *results.ParsingComponents, t time.Time) {
	c.Reimply(results.Year, t.Year()).
		Reimply(results.Month, int(t.Month())).
		Reimply(results.Day, t.Day())
}
