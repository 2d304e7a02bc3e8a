package refining

import (
	"strings"

	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

var bareNumber = pattern.MustCompile(`^\d*(?:\.\d*)?$`, 0)

// UnlikelyFormatFilter drops bare numbers and impossible dates. In strict
// mode it also drops lone weekdays and times without both hour and minute.
var UnlikelyFormatFilter Refiner = &Filter{
	Name: "unlikely format",
	Keep: func(ctx *parsing.Context, r *results.ParsingResult) bool {
		if bareNumber.FindAt(strings.ReplaceAll(r.Text, " ", ""), 0) != nil {
			return false
		}
		if !r.Start.IsValid() || (r.End != nil && !r.End.IsValid()) {
			return false
		}
		if !ctx.Strict {
			return true
		}
		if r.Start.IsOnlyWeekday() {
			return false
		}
		if r.Start.IsOnlyTime() && (!r.Start.IsCertain(results.Hour) || !r.Start.IsCertain(results.Minute)) {
			return false
		}
		return true
	},
}
