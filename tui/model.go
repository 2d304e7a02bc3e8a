// Package tui is the terminal interface listing reminders as they come due.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go_chrono/datetime"
	"go_chrono/parser"
	"go_chrono/reminder"
	"go_chrono/state"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeAdd
)

// AddedSource is the SourceFile of reminders typed into the interface.
const AddedSource = "(added in TUI)"

// TickMsg is sent every second to check for triggered reminders
type TickMsg time.Time

// FileUpdateMsg is sent when a watched file is updated
type FileUpdateMsg struct {
	FilePath  string
	Reminders []*reminder.Reminder
}

// Options configures a Model.
type Options struct {
	// Parse holds the zone and strictness used for typed reminders.
	Parse  datetime.Options
	Store  *state.Store
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model for the reminder TUI
type Model struct {
	list          list.Model
	reminders     []*reminder.Reminder
	watcherEvents <-chan FileUpdateMsg
	opts          Options
	snoozed       map[string]bool

	mode        inputMode
	filterInput textinput.Model
	addInput    textinput.Model
	inputError  string
	preview     string

	help   help.Model
	width  int
	height int
}

// New creates a model over reminders that follows watcherEvents until the
// channel closes. watcherEvents may be nil.
func New(reminders []*reminder.Reminder, watcherEvents <-chan FileUpdateMsg, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	fi := textinput.New()
	fi.Placeholder = "type to filter..."
	fi.CharLimit = 100
	fi.Width = 40

	ai := textinput.New()
	ai.Placeholder = "tomorrow 3pm Call mom  or  Jan 15 2:30pm EST Meeting"
	ai.CharLimit = 200
	ai.Width = 60

	m := Model{
		list:          l,
		reminders:     reminders,
		watcherEvents: watcherEvents,
		opts:          opts,
		snoozed:       make(map[string]bool),
		filterInput:   fi,
		addInput:      ai,
		help:          help.New(),
	}
	reminder.Refresh(m.reminders, opts.Now())
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
	return m
}

// Init starts the tick timer and, when watching, the file update listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.watcherEvents != nil {
		cmds = append(cmds, m.waitForFileUpdate())
	}
	return tea.Batch(cmds...)
}

// Reminders returns the reminders in display order.
func (m Model) Reminders() []*reminder.Reminder {
	return m.visible()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) waitForFileUpdate() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.watcherEvents
		if !ok {
			return nil
		}
		return event
	}
}

func (m Model) parseOptions() datetime.Options {
	opts := m.opts.Parse
	opts.Reference = m.opts.Now()
	return opts
}

// visible returns the reminders passing the filter: triggered first, then
// pending, then acknowledged, each by time.
func (m Model) visible() []*reminder.Reminder {
	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	var out []*reminder.Reminder
	for _, status := range []reminder.Status{reminder.Triggered, reminder.Pending, reminder.Acknowledged} {
		for _, r := range m.reminders {
			if r.Status == status && matches(r, filter) {
				out = append(out, r)
			}
		}
	}
	return out
}

func matches(r *reminder.Reminder, filter string) bool {
	if filter == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), filter) ||
		strings.Contains(strings.ToLower(r.MatchedText), filter) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower("#"+tag), filter) {
			return true
		}
	}
	return false
}

func (m *Model) refreshList() {
	rs := m.visible()
	items := make([]list.Item, len(rs))
	for i, r := range rs {
		items[i] = reminderItem{reminder: r}
	}
	m.list.SetItems(items)
}

func (m *Model) selectedReminder() *reminder.Reminder {
	item, ok := m.list.SelectedItem().(reminderItem)
	if !ok {
		return nil
	}
	return item.reminder
}

func (m *Model) saveState() {
	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.Save(m.reminders, m.snoozed); err != nil {
		m.opts.Logger.Error("saving state", "err", err)
	}
}

func (m *Model) acknowledge() {
	r := m.selectedReminder()
	if r == nil || r.Status == reminder.Acknowledged {
		return
	}
	r.Status = reminder.Acknowledged
	m.refreshList()
	m.saveState()
}

func (m *Model) unacknowledge() {
	r := m.selectedReminder()
	if r == nil || r.Status != reminder.Acknowledged {
		return
	}
	r.Status = reminder.Pending
	reminder.Refresh([]*reminder.Reminder{r}, m.opts.Now())
	m.refreshList()
	m.saveState()
}

// snooze postpones the selected triggered reminder by d.
func (m *Model) snooze(d time.Duration) {
	r := m.selectedReminder()
	if r == nil || r.Status != reminder.Triggered {
		return
	}
	r.DateTime = m.opts.Now().Add(d)
	r.Status = reminder.Pending
	m.snoozed[r.Key()] = true
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
	m.saveState()
}

// addReminder parses "<date> <description>" and adds the reminder.
func (m *Model) addReminder(input string) error {
	r, err := parser.ParseReminder(input, m.parseOptions())
	if err != nil {
		return err
	}
	r.SourceFile = AddedSource
	reminder.Refresh([]*reminder.Reminder{r}, m.opts.Now())
	m.reminders = append(m.reminders, r)
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
	m.saveState()
	return nil
}

// previewFor describes how input would be read, or returns "".
func (m Model) previewFor(input string) string {
	r, err := parser.ParseReminder(input, m.parseOptions())
	if err != nil {
		return ""
	}
	return matchStyle.Render(r.MatchedText) + " → " + formatTime(r.DateTime, r.EndTime)
}

func (m *Model) applyFileUpdate(msg FileUpdateMsg) {
	if m.opts.Store != nil {
		if err := m.opts.Store.Apply(msg.Reminders); err != nil {
			m.opts.Logger.Warn("restoring state", "err", err)
		}
	}
	m.reminders = reminder.MergeFromFile(m.reminders, msg.FilePath, msg.Reminders)
	reminder.Refresh(m.reminders, m.opts.Now())
	reminder.SortByDateTime(m.reminders)
	m.refreshList()
}

func formatTime(start time.Time, end *time.Time) string {
	s := start.Format("Mon Jan 2 3:04pm")
	if end != nil {
		s += " – " + end.Format("Mon Jan 2 3:04pm")
	}
	return s
}
