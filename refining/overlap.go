package refining

import (
	"sort"

	"go_chrono/parsing"
	"go_chrono/results"
)

// OverlapRemoval keeps the longer of two overlapping results, or the earlier
// one when both are the same length.
var OverlapRemoval Refiner = Func(func(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult {
	if len(rs) < 2 {
		return rs
	}
	SortByIndex(rs)
	out := make([]*results.ParsingResult, 0, len(rs))
	prev := rs[0]
	for _, r := range rs[1:] {
		if r.Index >= prev.EndIndex() {
			out = append(out, prev)
			prev = r
			continue
		}
		if len(r.Text) > len(prev.Text) {
			ctx.Debug("overlap removed", "kept", r.Text, "removed", prev.Text)
			prev = r
		} else {
			ctx.Debug("overlap removed", "kept", prev.Text, "removed", r.Text)
		}
	}
	return append(out, prev)
})

// SortByIndex orders results by position, keeping parser order on ties.
func SortByIndex(rs []*results.ParsingResult) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Index < rs[j].Index })
}
