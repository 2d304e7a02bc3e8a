// Package parser finds reminders and date mentions in markdown files.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"go_chrono/datetime"
	"go_chrono/reminder"
)

// Pattern matches [remind_me <content>]
var remindPattern = regexp.MustCompile(`\[remind_me\s+([^\]]+)\]`)

// Pattern matches #tag tokens (word characters after #, must be preceded by start or whitespace)
var tagPattern = regexp.MustCompile(`(?:^|\s)#(\w+)`)

// Words a reminder may open with before its date ("at 5pm", "on friday").
var leadPattern = regexp.MustCompile(`^\s*(?:at|on|by)?\s*$`)

// Options controls how a file is read.
type Options struct {
	// Parse carries the reference time and zone settings. Reminder
	// defaults (forward dates, nine o'clock) are applied on top.
	Parse datetime.Options
	// Mentions also collects every date mentioned in prose, outside
	// [remind_me] tags.
	Mentions bool
	Logger   *slog.Logger
}

// ParseFile reads a markdown file and extracts all reminders.
// relativeTo is used as the base time for relative datetime parsing.
func ParseFile(filepath string, relativeTo time.Time) ([]*reminder.Reminder, error) {
	return ParseFileWith(filepath, Options{Parse: datetime.Options{Reference: relativeTo}})
}

// ParseFileWith is ParseFile with explicit options.
func ParseFileWith(filepath string, opts Options) ([]*reminder.Reminder, error) {
	source, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ParseSource(filepath, source, opts), nil
}

// ParseSource extracts reminders from markdown source. Fenced and indented
// code blocks and inline code spans are skipped.
func ParseSource(filepath string, source []byte, opts Options) []*reminder.Reminder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	parseOpts := reminderOptions(opts.Parse)
	skip := codeRanges(source)

	var reminders []*reminder.Reminder
	lineStart := 0
	for i, raw := range bytes.Split(source, []byte("\n")) {
		lineNumber := i + 1
		line := strings.TrimSuffix(string(raw), "\r")
		offset := lineStart
		lineStart += len(raw) + 1

		for _, loc := range remindPattern.FindAllStringSubmatchIndex(line, -1) {
			if skip.contains(offset + loc[0]) {
				continue
			}
			content := strings.TrimSpace(line[loc[2]:loc[3]])
			r, err := parseReminder(content, parseOpts)
			if err != nil {
				logger.Debug("skipping reminder", "file", filepath, "line", lineNumber, "err", err)
				continue
			}
			r.SourceFile = filepath
			r.LineNumber = lineNumber
			reminders = append(reminders, r)
		}

		if opts.Mentions {
			prose := remindPattern.ReplaceAllString(skip.mask(line, offset), "")
			for _, r := range mentions(prose, parseOpts, logger) {
				r.SourceFile = filepath
				r.LineNumber = lineNumber
				reminders = append(reminders, r)
			}
		}
	}
	return reminders
}

// ExtractTags extracts #tag tokens from text and returns the cleaned text and tags.
// Tags must be preceded by whitespace or be at the start of the string.
func ExtractTags(text string) (cleanText string, tags []string) {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	for _, match := range matches {
		if len(match) >= 2 {
			tags = append(tags, match[1])
		}
	}

	// Remove tag tokens from text (including the # prefix)
	cleanText = tagPattern.ReplaceAllString(text, "")
	// Clean up any double spaces left behind
	cleanText = strings.Join(strings.Fields(cleanText), " ")

	return cleanText, tags
}

// parseReminderContent parses the content inside [remind_me <content>].
// The leading date mention becomes the datetime and the remainder the
// description.
func parseReminderContent(content string, relativeTo time.Time) (*reminder.Reminder, error) {
	return parseReminder(content, reminderOptions(datetime.Options{Reference: relativeTo}))
}

// ParseReminder reads "<date> <description>", the content of a
// [remind_me] tag, with reminder defaults applied to opts.
func ParseReminder(content string, opts datetime.Options) (*reminder.Reminder, error) {
	return parseReminder(strings.TrimSpace(content), reminderOptions(opts))
}

func parseReminder(content string, opts datetime.Options) (*reminder.Reminder, error) {
	if len(strings.Fields(content)) < 2 {
		return nil, errors.New("reminder must have both datetime and description")
	}
	rs, err := datetime.ParseAll(content, opts)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 || !leadPattern.MatchString(content[:rs[0].Index]) {
		return nil, fmt.Errorf("could not parse datetime from: %s", content)
	}
	first := rs[0]
	desc, tags := ExtractTags(content[first.Index+len(first.Text):])
	if desc == "" {
		return nil, fmt.Errorf("reminder has no description: %s", content)
	}

	r := &reminder.Reminder{
		DateTime:    first.Date(),
		MatchedText: first.Text,
		Description: desc,
		Tags:        tags,
		Status:      reminder.Pending,
	}
	if end, ok := first.EndDate(); ok {
		r.EndTime = &end
	}
	return r, nil
}

// mentions turns every date in a prose line into a reminder described by
// the line itself.
func mentions(line string, opts datetime.Options, logger *slog.Logger) []*reminder.Reminder {
	rs, err := datetime.ParseAll(line, opts)
	if err != nil {
		logger.Warn("parse failed", "err", err)
		return nil
	}
	if len(rs) == 0 {
		return nil
	}
	desc, tags := ExtractTags(strings.TrimLeft(line, "#>-*+ \t"))
	out := make([]*reminder.Reminder, 0, len(rs))
	for _, res := range rs {
		r := &reminder.Reminder{
			DateTime:    res.Date(),
			MatchedText: res.Text,
			Description: desc,
			Tags:        tags,
			Status:      reminder.Pending,
		}
		if end, ok := res.EndDate(); ok {
			r.EndTime = &end
		}
		out = append(out, r)
	}
	return out
}

func reminderOptions(opts datetime.Options) datetime.Options {
	opts.ForwardDate = true
	if opts.DefaultHour == nil {
		hour := datetime.ReminderDefaultHour
		opts.DefaultHour = &hour
	}
	if opts.Reference.IsZero() {
		opts.Reference = time.Now()
	}
	return opts
}

type byteRanges [][2]int

func (r byteRanges) contains(offset int) bool {
	for _, rng := range r {
		if offset >= rng[0] && offset < rng[1] {
			return true
		}
	}
	return false
}

// mask blanks the bytes of line, found at offset in the source, that
// fall inside a range.
func (r byteRanges) mask(line string, offset int) string {
	b := []byte(line)
	for i := range b {
		if r.contains(offset + i) {
			b[i] = ' '
		}
	}
	return string(b)
}

// codeRanges returns the byte ranges of code in source.
func codeRanges(source []byte) byteRanges {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	var ranges byteRanges
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				ranges = append(ranges, [2]int{seg.Start, seg.Stop})
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan:
			// the backticks sit one byte either side of the text
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					ranges = append(ranges, [2]int{t.Segment.Start - 1, t.Segment.Stop + 1})
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return ranges
}
