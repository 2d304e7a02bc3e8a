package timeunits

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"go_chrono/pattern"
)

// ErrVocabulary is returned for an unusable Vocabulary.
var ErrVocabulary = errors.New("invalid time unit vocabulary")

// Dictionary maps a unit word ("hours", "hr", "w") to its Unit.
type Dictionary map[string]Unit

// Vocabulary is what a locale supplies to build a Parser.
type Vocabulary struct {
	Units Dictionary
	// NumberExpr matches one quantity ("2", "two", "a few"). It must not
	// contain capture groups.
	NumberExpr string
	// ParseNumber converts text matched by NumberExpr.
	ParseNumber func(string) (float64, bool)
	// Separator matches the text allowed between repeated fragments.
	Separator string
	// Lead is an optional hedge allowed before the first fragment ("about").
	Lead string
}

// Parser scans text for repeated quantity+unit fragments.
type Parser struct {
	vocab    Vocabulary
	unitExpr string
	fragment pattern.Pattern
}

// NewParser validates the vocabulary and compiles the fragment pattern.
func NewParser(vocab Vocabulary) (*Parser, error) {
	if len(vocab.Units) == 0 {
		return nil, fmt.Errorf("%w: no unit words", ErrVocabulary)
	}
	if vocab.ParseNumber == nil {
		return nil, fmt.Errorf("%w: missing number parser", ErrVocabulary)
	}
	num, err := pattern.Compile(vocab.NumberExpr, pattern.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("%w: number expression: %v", ErrVocabulary, err)
	}
	if num.NumGroups() != 0 {
		return nil, fmt.Errorf("%w: number expression must not capture", ErrVocabulary)
	}
	if vocab.Separator == "" {
		vocab.Separator = `\s{0,5}`
	}

	p := &Parser{vocab: vocab, unitExpr: pattern.MatchAny(vocab.Units)}
	p.fragment, err = pattern.Compile(
		`([+-])?\s{0,2}(`+vocab.NumberExpr+`)\s{0,3}(`+p.unitExpr+`)(?![a-z])`,
		pattern.IgnoreCase,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabulary, err)
	}
	return p, nil
}

// MustParser is like NewParser but panics on error.
func MustParser(vocab Vocabulary) *Parser {
	p, err := NewParser(vocab)
	if err != nil {
		panic(err)
	}
	return p
}

// SingleExpr matches one fragment without capturing.
func (p *Parser) SingleExpr() string {
	return `(?:` + p.vocab.NumberExpr + `)\s{0,3}(?:` + p.unitExpr + `)(?![a-z])`
}

// RepeatedExpr matches a run of fragments without capturing.
func (p *Parser) RepeatedExpr() string {
	lead := ""
	if p.vocab.Lead != "" {
		lead = `(?:(?:` + p.vocab.Lead + `)\s{0,3})?`
	}
	single := p.SingleExpr()
	return lead + single + `(?:` + p.vocab.Separator + single + `){0,10}`
}

// Parse collects every fragment in text. Text between or after fragments
// that is not a fragment is ignored. A sign written before a quantity applies
// to that fragment only.
func (p *Parser) Parse(text string) TimeUnits {
	out := TimeUnits{}
	cursor := 0
	for cursor < len(text) {
		m := p.fragment.FindAt(text, cursor)
		if m == nil || m.End == m.Index {
			break
		}
		cursor = m.End
		if isSingleWord(m.Text()) {
			continue
		}
		q, ok := p.vocab.ParseNumber(strings.TrimSpace(m.Group(2)))
		if !ok {
			continue
		}
		if m.Group(1) == "-" {
			q = -q
		}
		unit, ok := p.vocab.Units[strings.ToLower(m.Group(3))]
		if !ok {
			continue
		}
		collect(out, unit, q)
	}
	return out
}

// isSingleWord catches fragments glued from letters only, like "an" read as
// "a" + "n".
func isSingleWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

var finer = map[Unit]struct {
	unit   Unit
	factor float64
}{
	Year:    {Month, 12},
	Quarter: {Month, 3},
	Month:   {Day, 30},
	Week:    {Day, 7},
	Day:     {Hour, 24},
	Hour:    {Minute, 60},
	Minute:  {Second, 60},
	Second:  {Millisecond, 1000},
}

const epsilon = 1e-9

// collect adds q of unit, cascading any fraction into the next finer unit.
func collect(out TimeUnits, unit Unit, q float64) {
	whole := math.Trunc(q)
	if r := math.Round(q); math.Abs(q-r) < epsilon {
		whole = r
	}
	if whole != 0 {
		out[unit] += int(whole)
	}
	frac := q - whole
	if math.Abs(frac) < epsilon {
		return
	}
	next, ok := finer[unit]
	if !ok {
		return
	}
	collect(out, next.unit, frac*next.factor)
}
