package parsing

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"go_chrono/pattern"
	"go_chrono/results"
)

// ErrParserConfig is returned when a parser cannot be built.
var ErrParserConfig = errors.New("invalid parser configuration")

// Parser finds one kind of date mention.
type Parser interface {
	Pattern(ctx *Context) pattern.Pattern
	// Extract turns a match into components or a full result. Returning nil
	// rejects the match.
	Extract(ctx *Context, m *pattern.Match) results.Extraction
}

// Spec describes a pattern-driven parser.
type Spec struct {
	Name string
	Expr string
	// StrictExpr replaces Expr in strict mode when set.
	StrictExpr string
	Flags      pattern.Flags
	// Groups is the number of capture groups Extract reads.
	Groups  int
	Extract func(ctx *Context, m *pattern.Match) results.Extraction
}

// PatternParser is a Parser built from a Spec.
type PatternParser struct {
	name    string
	lenient pattern.Pattern
	strict  pattern.Pattern
	extract func(ctx *Context, m *pattern.Match) results.Extraction
}

// NewPatternParser compiles the spec and checks its capture groups.
func NewPatternParser(spec Spec) (*PatternParser, error) {
	if spec.Extract == nil {
		return nil, fmt.Errorf("%w: %s: missing extraction", ErrParserConfig, spec.Name)
	}
	compile := func(expr string) (pattern.Pattern, error) {
		p, err := pattern.Compile(expr, spec.Flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParserConfig, spec.Name, err)
		}
		if p.NumGroups() < spec.Groups {
			return nil, fmt.Errorf("%w: %s: pattern has %d groups, need %d",
				ErrParserConfig, spec.Name, p.NumGroups(), spec.Groups)
		}
		return p, nil
	}

	pp := &PatternParser{name: spec.Name, extract: spec.Extract}
	var err error
	if pp.lenient, err = compile(spec.Expr); err != nil {
		return nil, err
	}
	pp.strict = pp.lenient
	if spec.StrictExpr != "" {
		if pp.strict, err = compile(spec.StrictExpr); err != nil {
			return nil, err
		}
	}
	return pp, nil
}

// MustPatternParser is like NewPatternParser but panics on error.
func MustPatternParser(spec Spec) *PatternParser {
	p, err := NewPatternParser(spec)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *PatternParser) Name() string { return p.name }

func (p *PatternParser) Pattern(ctx *Context) pattern.Pattern {
	if ctx.Strict {
		return p.strict
	}
	return p.lenient
}

func (p *PatternParser) Extract(ctx *Context, m *pattern.Match) results.Extraction {
	return p.extract(ctx, m)
}

type named interface{ Name() string }

// Execute runs one parser over the context text. Matches glued to a letter or
// digit on either side are skipped and the scan retries one character later.
// The returned results never overlap each other.
func Execute(ctx *Context, p Parser) []*results.ParsingResult {
	name := fmt.Sprintf("%T", p)
	if n, ok := p.(named); ok {
		name = n.Name()
	}

	text := ctx.Text
	pat := p.Pattern(ctx)
	var out []*results.ParsingResult
	cursor := 0
	for cursor <= len(text) {
		m := pat.FindAt(text, cursor)
		if m == nil {
			break
		}
		if m.Len() == 0 || !atWordBoundary(text, m.Index, m.End) {
			cursor = nextRune(text, m.Index)
			continue
		}
		r := wrap(ctx, m, p.Extract(ctx, m))
		if r == nil {
			cursor = nextRune(text, m.Index)
			continue
		}
		ctx.Debug("parser matched", "parser", name, "index", r.Index, "text", r.Text)
		out = append(out, r)
		cursor = max(r.EndIndex(), nextRune(text, m.Index))
	}
	return out
}

func wrap(ctx *Context, m *pattern.Match, ex results.Extraction) *results.ParsingResult {
	switch v := ex.(type) {
	case *results.ParsingComponents:
		if v == nil || v.IsEmpty() {
			return nil
		}
		return ctx.NewResult(m.Index, m.Text(), v, nil)
	case *results.ParsingResult:
		if v == nil || v.Start == nil || v.Start.IsEmpty() {
			return nil
		}
		return v
	}
	return nil
}

func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(first) && isWordRune(before) {
			return false
		}
	}
	if end < len(text) {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(last) && isWordRune(after) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func nextRune(text string, i int) int {
	if i >= len(text) {
		return len(text) + 1
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return i + size
}
