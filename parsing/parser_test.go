package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/pattern"
	"go_chrono/results"
)

func newContext(text string) *Context {
	ref := results.NewReference(time.Date(2022, time.June, 1, 10, 0, 0, 0, time.UTC), nil)
	return &Context{Text: text, Reference: ref}
}

var nineAM = MustPatternParser(Spec{
	Name:   "nine",
	Expr:   `(\d{1,2})am`,
	Groups: 1,
	Extract: func(ctx *Context, m *pattern.Match) results.Extraction {
		return ctx.NewComponents().Assign(results.Hour, atoi(m.Group(1))).Assign(results.Meridiem, results.AM)
	},
})

func TestExecuteRespectsWordBoundaries(t *testing.T) {
	assert.Empty(t, Execute(newContext("929amherst"), nineAM))
	assert.Empty(t, Execute(newContext("x9am"), nineAM))

	got := Execute(newContext("meet at 9am, leave 11am"), nineAM)
	require.Len(t, got, 2)
	assert.Equal(t, "9am", got[0].Text)
	assert.Equal(t, 8, got[0].Index)
	assert.Equal(t, "11am", got[1].Text)
}

func TestExecuteDiscardsEmptyExtractions(t *testing.T) {
	calls := 0
	empty := MustPatternParser(Spec{
		Name: "empty",
		Expr: `\d+`,
		Extract: func(ctx *Context, m *pattern.Match) results.Extraction {
			calls++
			if m.Text() == "2" {
				return ctx.NewComponents().Imply(results.Day, 2)
			}
			return ctx.NewComponents()
		},
	})
	got := Execute(newContext("1 2 3"), empty)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Text)
	assert.Equal(t, 3, calls)
}

func TestNewPatternParserValidates(t *testing.T) {
	extract := func(*Context, *pattern.Match) results.Extraction { return nil }

	_, err := NewPatternParser(Spec{Name: "groups", Expr: `(\d+)`, Groups: 2, Extract: extract})
	assert.ErrorIs(t, err, ErrParserConfig)

	_, err = NewPatternParser(Spec{Name: "broken", Expr: `(\d+`, Extract: extract})
	assert.ErrorIs(t, err, ErrParserConfig)
	assert.ErrorIs(t, err, pattern.ErrPattern)

	_, err = NewPatternParser(Spec{Name: "noop", Expr: `\d+`})
	assert.ErrorIs(t, err, ErrParserConfig)
}

func TestStrictPattern(t *testing.T) {
	p := MustPatternParser(Spec{
		Name:       "hours",
		Expr:       `(\d+)\s*(?:hours?|h)`,
		StrictExpr: `(\d+)\s*hours?`,
		Groups:     1,
		Extract: func(ctx *Context, m *pattern.Match) results.Extraction {
			return ctx.NewComponents().Assign(results.Hour, atoi(m.Group(1)))
		},
	})
	ctx := newContext("3h")
	assert.Len(t, Execute(ctx, p), 1)
	ctx.Strict = true
	assert.Empty(t, Execute(ctx, p))
}

func TestISOFormatParser(t *testing.T) {
	got := Execute(newContext("due 2020-02-13T23:00:05.12+09:00 sharp"), ISOFormatParser)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "2020-02-13T23:00:05.12+09:00", r.Text)
	offset, _ := r.Start.Get(results.TimezoneOffset)
	assert.Equal(t, 540, offset)
	ms, _ := r.Start.Get(results.Millisecond)
	assert.Equal(t, 120, ms)
	assert.True(t, r.Date().Equal(time.Date(2020, time.February, 13, 14, 0, 5, 120*int(time.Millisecond), time.UTC)))

	got = Execute(newContext("2020-02-13"), ISOFormatParser)
	require.Len(t, got, 1)
	assert.True(t, got[0].Start.IsOnlyDate())

	assert.Empty(t, Execute(newContext("2020-02-30"), ISOFormatParser))
}
