package results

import (
	"time"
)

// Extraction is what a parser hands back for a match: either bare
// components or a complete result.
type Extraction interface {
	extraction()
}

// ParsingResult is one date mention found in the text. End is nil for a
// single instant.
type ParsingResult struct {
	Reference *Reference
	Index     int
	Text      string
	Start     *ParsingComponents
	End       *ParsingComponents
}

// NewResult builds a result. A nil start gets an empty component set.
func NewResult(ref *Reference, index int, text string, start, end *ParsingComponents) *ParsingResult {
	if start == nil {
		start = NewComponents(ref)
	}
	return &ParsingResult{Reference: ref, Index: index, Text: text, Start: start, End: end}
}

func (r *ParsingResult) extraction() {}

// EndIndex is the byte offset just past the matched text.
func (r *ParsingResult) EndIndex() int { return r.Index + len(r.Text) }

// Date resolves the start instant.
func (r *ParsingResult) Date() time.Time { return r.Start.Date() }

// EndDate resolves the end instant of a range.
func (r *ParsingResult) EndDate() (time.Time, bool) {
	if r.End == nil {
		return time.Time{}, false
	}
	return r.End.Date(), true
}

// Tags merges the start and end tags.
func (r *ParsingResult) Tags() []string {
	if r.End == nil {
		return r.Start.Tags()
	}
	merged := r.Start.Clone().AddTags(r.End.Tags())
	return merged.Tags()
}

// Clone copies the result and its components.
func (r *ParsingResult) Clone() *ParsingResult {
	out := *r
	out.Start = r.Start.Clone()
	if r.End != nil {
		out.End = r.End.Clone()
	}
	return &out
}
