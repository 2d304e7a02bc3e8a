// Package parsing locates date mentions in text. Each Parser supplies a
// pattern and an extraction; Execute scans the text with word-boundary
// checks and wraps extractions into results.
package parsing

import (
	"context"
	"log/slog"

	"go_chrono/results"
	"go_chrono/timezone"
)

// Context is the per-call state shared by parsers and refiners. It is never
// shared between parses.
type Context struct {
	Text      string
	Reference *results.Reference
	Strict    bool
	Timezones timezone.Overrides
	Logger    *slog.Logger
	// ForwardDate resolves mentions that would land before the reference
	// into the future instead ("monday" on a Tuesday is next Monday).
	ForwardDate bool
}

// NewComponents returns an empty component set bound to the reference.
func (c *Context) NewComponents() *results.ParsingComponents {
	return results.NewComponents(c.Reference)
}

// NewResult builds a result bound to the reference.
func (c *Context) NewResult(index int, text string, start, end *results.ParsingComponents) *results.ParsingResult {
	return results.NewResult(c.Reference, index, text, start, end)
}

// Debug logs at debug level when a logger is configured.
func (c *Context) Debug(msg string, args ...any) {
	if c.Logger == nil || !c.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	c.Logger.Debug(msg, args...)
}
