package en

import (
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/refining"
	"go_chrono/results"
	"go_chrono/timeunits"
)

var signedRelative = pattern.MustCompile(`^[+-]`, 0)

type relativeAfterDate struct{}

// MergeRelativeAfterDate anchors a signed delta on the date before it:
// "2020-02-13 +2 weeks", "tomorrow -3 hours".
var MergeRelativeAfterDate refining.Refiner = &refining.MergingRefiner{
	Name:   "en merge relative after date",
	Merger: relativeAfterDate{},
}

func (relativeAfterDate) PatternBetween() pattern.Pattern { return nil }

func (relativeAfterDate) ShouldMerge(_ *parsing.Context, _ string, current, next *results.ParsingResult) bool {
	return signedRelative.FindAt(next.Text, 0) != nil && next.Start.HasTag(results.TagRelativeDate)
}

func (relativeAfterDate) Merge(ctx *parsing.Context, between string, current, next *results.ParsingResult) *results.ParsingResult {
	units := parseUnits(ctx, next.Text[1:])
	if next.Text[0] == '-' {
		units = timeunits.Reverse(units)
	}
	c := results.CreateRelativeFrom(ctx.Reference, current.Date(), units).
		AddTag("refiner/ENMergeRelativeAfterDateRefiner")
	return ctx.NewResult(current.Index, current.Text+between+next.Text, c, nil)
}

var (
	backwardConnector = pattern.MustCompile(`\s+(?:before|from)$`, pattern.IgnoreCase)
	forwardConnector  = pattern.MustCompile(`\s+(?:after|since)$`, pattern.IgnoreCase)
)

type relativeFollowByDate struct{}

// MergeRelativeFollowByDate anchors "2 days before", "a week after" or
// "3 days since" on the full date that follows. Only the last connector
// word of the relative text counts.
var MergeRelativeFollowByDate refining.Refiner = &refining.MergingRefiner{
	Name:   "en merge relative follow by date",
	Merger: relativeFollowByDate{},
}

func (relativeFollowByDate) PatternBetween() pattern.Pattern { return nil }

func (relativeFollowByDate) ShouldMerge(_ *parsing.Context, _ string, current, next *results.ParsingResult) bool {
	if backwardConnector.FindAt(current.Text, 0) == nil && forwardConnector.FindAt(current.Text, 0) == nil {
		return false
	}
	return next.Start.HasFullDate()
}

func (relativeFollowByDate) Merge(ctx *parsing.Context, between string, current, next *results.ParsingResult) *results.ParsingResult {
	units := parseUnits(ctx, strings.TrimLeft(current.Text, "+-"))
	if backwardConnector.FindAt(current.Text, 0) != nil {
		units = timeunits.Reverse(units)
	}
	c := results.CreateRelativeFrom(ctx.Reference, next.Date(), units).
		AddTag("refiner/ENMergeRelativeFollowByDateRefiner")
	return ctx.NewResult(current.Index, current.Text+between+next.Text, c, nil)
}
