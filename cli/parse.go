package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go_chrono/datetime"
	"go_chrono/reminder"
	"go_chrono/results"
)

var (
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type parseFlags struct {
	reference   string
	forward     bool
	defaultHour int
}

func (a *app) newParseCmd() *cobra.Command {
	var f parseFlags
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Find every date mention in text (reads stdin when no text is given)",
		Example: `  go_chrono parse "lunch at 12:30 on friday then Jan 20 7pm EST"
  echo "2 weeks ago" | go_chrono parse --reference 2026-01-13T10:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "reading stdin")
				}
				text = string(data)
			}

			opts, err := a.parseOptions(cmd, f)
			if err != nil {
				return err
			}
			rs, err := datetime.ParseAll(text, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("parsed", "mentions", len(rs), "reference", opts.Reference)

			out := cmd.OutOrStdout()
			if a.jsonOutput || !isTerminal(out) {
				return writeResultsJSON(out, rs)
			}
			writeResultsText(out, text, rs)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.reference, "reference", "", "Reference instant in RFC 3339 (default now)")
	cmd.Flags().BoolVar(&f.forward, "forward", false, "Resolve past-looking dates to their next occurrence")
	cmd.Flags().IntVar(&f.defaultHour, "default-hour", -1, "Hour for dates that state no time (default keeps noon)")
	return cmd
}

func (a *app) parseOptions(cmd *cobra.Command, f parseFlags) (datetime.Options, error) {
	ref := time.Now()
	if f.reference != "" {
		var err error
		if ref, err = time.Parse(time.RFC3339, f.reference); err != nil {
			return datetime.Options{}, errors.Wrap(err, "invalid --reference")
		}
	}
	opts := a.cfg.Options(ref)
	opts.Logger = a.logger
	opts.ForwardDate = f.forward
	if cmd.Flags().Changed("default-hour") {
		if f.defaultHour < 0 || f.defaultHour > 23 {
			return datetime.Options{}, fmt.Errorf("--default-hour must be between 0 and 23, got %d", f.defaultHour)
		}
		opts.DefaultHour = &f.defaultHour
	}
	return opts, nil
}

type resultJSON struct {
	Index   int        `json:"index"`
	Text    string     `json:"text"`
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end,omitempty"`
	Certain []string   `json:"certain,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
}

func toJSON(r *results.ParsingResult) resultJSON {
	out := resultJSON{Index: r.Index, Text: r.Text, Start: r.Date(), Tags: r.Tags()}
	if end, ok := r.EndDate(); ok {
		out.End = &end
	}
	for _, c := range r.Start.CertainComponents() {
		out.Certain = append(out.Certain, c.String())
	}
	return out
}

func writeResultsJSON(w io.Writer, rs []*results.ParsingResult) error {
	out := make([]resultJSON, len(rs))
	for i, r := range rs {
		out[i] = toJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeResultsText(w io.Writer, text string, rs []*results.ParsingResult) {
	if len(rs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no dates found"))
		return
	}
	var b strings.Builder
	last := 0
	for _, r := range rs {
		b.WriteString(text[last:r.Index])
		b.WriteString(highlightStyle.Render(r.Text))
		last = r.EndIndex()
	}
	b.WriteString(text[last:])
	fmt.Fprintln(w, strings.TrimRight(b.String(), "\n"))
	fmt.Fprintln(w)
	for _, r := range rs {
		var end *time.Time
		if e, ok := r.EndDate(); ok {
			end = &e
		}
		fmt.Fprintf(w, "  %s  %s\n", highlightStyle.Render(r.Text), formatRange(r.Date(), end))
	}
}

func writeRemindersJSON(w io.Writer, rs []*reminder.Reminder) error {
	type reminderJSON struct {
		Start       time.Time  `json:"start"`
		End         *time.Time `json:"end,omitempty"`
		Text        string     `json:"text"`
		Description string     `json:"description"`
		Tags        []string   `json:"tags,omitempty"`
		File        string     `json:"file"`
		Line        int        `json:"line"`
		Status      string     `json:"status"`
	}
	out := make([]reminderJSON, len(rs))
	for i, r := range rs {
		out[i] = reminderJSON{
			Start:       r.DateTime,
			End:         r.EndTime,
			Text:        r.MatchedText,
			Description: r.Description,
			Tags:        r.Tags,
			File:        r.SourceFile,
			Line:        r.LineNumber,
			Status:      r.Status.String(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeRemindersText(w io.Writer, rs []*reminder.Reminder) {
	if len(rs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no reminders found"))
		return
	}
	for _, r := range rs {
		fmt.Fprintf(w, "%s  %s %s\n",
			formatRange(r.DateTime, r.EndTime),
			r.Description,
			dimStyle.Render(fmt.Sprintf("(%s, %s:%d)", r.MatchedText, r.SourceFile, r.LineNumber)))
	}
}

func formatRange(start time.Time, end *time.Time) string {
	const layout = "Mon Jan 2 2006 15:04 MST"
	if end == nil {
		return start.Format(layout)
	}
	return start.Format(layout) + " – " + end.Format(layout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
