// Package refining post-processes parser output: it merges adjacent
// mentions, attaches timezones and drops unlikely candidates.
package refining

import (
	"go_chrono/parsing"
	"go_chrono/pattern"
	"go_chrono/results"
)

// Refiner rewrites the ordered result list of one parse.
type Refiner interface {
	Refine(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult
}

// Merger decides whether and how two neighbouring results combine.
type Merger interface {
	// PatternBetween must match the whole text between the two results. A
	// nil pattern allows whitespace only.
	PatternBetween() pattern.Pattern
	ShouldMerge(ctx *parsing.Context, between string, current, next *results.ParsingResult) bool
	Merge(ctx *parsing.Context, between string, current, next *results.ParsingResult) *results.ParsingResult
}

var whitespaceOnly = pattern.MustCompile(`^\s*$`, 0)

// MergingRefiner repeatedly merges consecutive pairs until a pass merges
// nothing. A merged result is immediately considered against the result
// after it.
type MergingRefiner struct {
	Name   string
	Merger Merger
}

func (r *MergingRefiner) Refine(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult {
	between := r.Merger.PatternBetween()
	if between == nil {
		between = whitespaceOnly
	}
	for len(rs) >= 2 {
		merged := false
		out := make([]*results.ParsingResult, 0, len(rs))
		current := rs[0]
		for _, next := range rs[1:] {
			if text, ok := textBetween(ctx.Text, current, next); ok &&
				between.FindAt(text, 0) != nil &&
				r.Merger.ShouldMerge(ctx, text, current, next) {
				m := r.Merger.Merge(ctx, text, current, next)
				ctx.Debug("refiner merged", "refiner", r.Name, "text", m.Text)
				current = m
				merged = true
				continue
			}
			out = append(out, current)
			current = next
		}
		rs = append(out, current)
		if !merged {
			break
		}
	}
	return rs
}

func textBetween(text string, current, next *results.ParsingResult) (string, bool) {
	start, end := current.EndIndex(), next.Index
	if start > end || end > len(text) {
		return "", false
	}
	return text[start:end], true
}

// Filter keeps the results Keep accepts.
type Filter struct {
	Name string
	Keep func(ctx *parsing.Context, r *results.ParsingResult) bool
}

func (f *Filter) Refine(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult {
	out := make([]*results.ParsingResult, 0, len(rs))
	for _, r := range rs {
		if f.Keep(ctx, r) {
			out = append(out, r)
			continue
		}
		ctx.Debug("refiner dropped", "refiner", f.Name, "text", r.Text)
	}
	return out
}

// Func adapts a function to Refiner.
type Func func(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult

func (f Func) Refine(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult {
	return f(ctx, rs)
}

// Mutate applies fn to each result in place.
func Mutate(fn func(ctx *parsing.Context, r *results.ParsingResult)) Refiner {
	return Func(func(ctx *parsing.Context, rs []*results.ParsingResult) []*results.ParsingResult {
		for _, r := range rs {
			fn(ctx, r)
		}
		return rs
	})
}
