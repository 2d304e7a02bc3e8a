// Package pattern isolates the text-matching engine used by the parsers,
// refiners and the time-unit engine. Offsets reported by a Match are byte
// offsets into the searched string.
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// ErrPattern is returned when an expression cannot be compiled.
var ErrPattern = errors.New("invalid pattern")

// Flags alter how an expression is compiled.
type Flags int

const (
	IgnoreCase Flags = 1 << iota
	Multiline
)

// Pattern finds matches in text. Implementations must be safe for
// concurrent use.
type Pattern interface {
	// FindAt returns the leftmost match starting at or after the byte offset
	// start, or nil.
	FindAt(text string, start int) *Match
	// NumGroups is the number of capture groups, excluding the whole match.
	NumGroups() int
	String() string
}

// Group is a single capture.
type Group struct {
	Start, End int
	Matched    bool
}

// Match is one occurrence of a Pattern.
type Match struct {
	Index  int
	End    int
	text   string
	groups []Group
}

// Text returns the whole matched substring.
func (m *Match) Text() string { return m.text[m.Index:m.End] }

// Len is the byte length of the match.
func (m *Match) Len() int { return m.End - m.Index }

// Group returns capture i, or "" when it did not participate.
func (m *Match) Group(i int) string {
	if i <= 0 {
		return m.Text()
	}
	if i >= len(m.groups) || !m.groups[i].Matched {
		return ""
	}
	g := m.groups[i]
	return m.text[g.Start:g.End]
}

// HasGroup reports whether capture i participated in the match.
func (m *Match) HasGroup(i int) bool {
	if i == 0 {
		return true
	}
	return i < len(m.groups) && m.groups[i].Matched
}

// GroupStart returns the byte offset of capture i, or -1.
func (m *Match) GroupStart(i int) int {
	if !m.HasGroup(i) {
		return -1
	}
	if i == 0 {
		return m.Index
	}
	return m.groups[i].Start
}

type regexp2Pattern struct {
	re      *regexp2.Regexp
	ngroups int
}

// Compile builds a Pattern backed by regexp2, which supports the lookaround
// assertions the locale patterns rely on.
func Compile(expr string, flags Flags) (Pattern, error) {
	var opts regexp2.RegexOptions
	if flags&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPattern, expr, err)
	}
	return &regexp2Pattern{re: re, ngroups: len(re.GetGroupNumbers()) - 1}, nil
}

// MustCompile is like Compile but panics on error. Use it for package-level
// patterns known to be valid.
func MustCompile(expr string, flags Flags) Pattern {
	p, err := Compile(expr, flags)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *regexp2Pattern) NumGroups() int { return p.ngroups }

func (p *regexp2Pattern) String() string { return p.re.String() }

func (p *regexp2Pattern) FindAt(text string, start int) *Match {
	if start < 0 || start > len(text) {
		return nil
	}
	runes := []rune(text)
	offsets := runeOffsets(text, len(runes))
	m, err := p.re.FindRunesMatchStartingAt(runes, utf8.RuneCountInString(text[:start]))
	if err != nil || m == nil {
		return nil
	}

	out := &Match{
		Index: offsets[m.Index],
		End:   offsets[m.Index+m.Length],
		text:  text,
	}
	groups := m.Groups()
	out.groups = make([]Group, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			continue
		}
		out.groups[i] = Group{
			Start:   offsets[g.Index],
			End:     offsets[g.Index+g.Length],
			Matched: true,
		}
	}
	return out
}

// runeOffsets maps rune index to byte offset, with one extra entry for the
// end of text.
func runeOffsets(text string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// Escape quotes metacharacters in s.
func Escape(s string) string {
	return regexp2.Escape(s)
}

// MatchAny builds an alternation of the dictionary keys, longest first so the
// engine prefers "hours" over "h".
func MatchAny[V any](dict map[string]V) string {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for i, k := range keys {
		keys[i] = Escape(k)
	}
	return strings.Join(keys, "|")
}
