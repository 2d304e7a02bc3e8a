package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/reminder"
	"go_chrono/state"
)

var testNow = time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, reminders []*reminder.Reminder, store *state.Store) Model {
	t.Helper()
	return New(reminders, nil, Options{
		Store: store,
		Now:   func() time.Time { return testNow },
	})
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func sampleReminders() []*reminder.Reminder {
	return []*reminder.Reminder{
		{DateTime: testNow.Add(time.Hour), MatchedText: "+1h", Description: "Later", SourceFile: "a.md", LineNumber: 1},
		{DateTime: testNow.Add(-time.Hour), MatchedText: "9am", Description: "Overdue", SourceFile: "a.md", LineNumber: 2},
		{DateTime: testNow.Add(2 * time.Hour), MatchedText: "noon", Description: "Lunch", Tags: []string{"food"}, SourceFile: "b.md", LineNumber: 1},
	}
}

func TestNewOrdersTriggeredFirst(t *testing.T) {
	m := newTestModel(t, sampleReminders(), nil)

	rs := m.Reminders()
	require.Len(t, rs, 3)
	assert.Equal(t, "Overdue", rs[0].Description)
	assert.Equal(t, reminder.Triggered, rs[0].Status)
	assert.Equal(t, "Later", rs[1].Description)
	assert.Equal(t, "Lunch", rs[2].Description)
}

func TestAddReminder(t *testing.T) {
	m := newTestModel(t, nil, nil)

	m = press(m, "n", "tomorrow 3pm Call mom #family")
	assert.Contains(t, m.preview, "tomorrow 3pm")
	assert.Contains(t, m.preview, "Wed Jan 14 3:00pm")

	m = press(m, "enter")
	assert.Equal(t, modeNormal, m.mode)
	require.Len(t, m.reminders, 1)

	r := m.reminders[0]
	assert.Equal(t, "Call mom", r.Description)
	assert.Equal(t, []string{"family"}, r.Tags)
	assert.Equal(t, AddedSource, r.SourceFile)
	assert.True(t, r.DateTime.Equal(time.Date(2026, 1, 14, 15, 0, 0, 0, time.UTC)))
}

func TestAddReminderErrors(t *testing.T) {
	tests := []string{"", "tomorrow", "Just a description"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			m := newTestModel(t, nil, nil)
			m = press(m, "n")
			if input != "" {
				m = press(m, input)
			}
			m = press(m, "enter")
			assert.Equal(t, modeAdd, m.mode)
			assert.NotEmpty(t, m.inputError)
			assert.Empty(t, m.reminders)

			m = press(m, "esc")
			assert.Equal(t, modeNormal, m.mode)
			assert.Empty(t, m.inputError)
		})
	}
}

func TestAcknowledgeAndUndo(t *testing.T) {
	m := newTestModel(t, sampleReminders(), nil)
	overdue := m.Reminders()[0]

	m = press(m, "enter")
	assert.Equal(t, reminder.Acknowledged, overdue.Status)
	assert.Equal(t, "Later", m.Reminders()[0].Description)

	// the acknowledged reminder now sits last
	m.list.Select(2)
	m = press(m, "u")
	assert.Equal(t, reminder.Triggered, overdue.Status)
}

func TestSnoozePersists(t *testing.T) {
	store, err := state.Open(t.TempDir())
	require.NoError(t, err)

	m := newTestModel(t, sampleReminders(), store)
	overdue := m.Reminders()[0]

	m = press(m, "2")
	assert.Equal(t, reminder.Pending, overdue.Status)
	assert.True(t, overdue.DateTime.Equal(testNow.Add(time.Hour)))

	fresh := sampleReminders()
	require.NoError(t, store.Apply(fresh))
	assert.True(t, fresh[1].DateTime.Equal(testNow.Add(time.Hour)))
}

func TestSnoozeIgnoresPending(t *testing.T) {
	m := newTestModel(t, sampleReminders(), nil)
	m.list.Select(1)
	later := m.Reminders()[1]
	before := later.DateTime

	press(m, "1")
	assert.True(t, later.DateTime.Equal(before))
}

func TestTickTriggersDueReminders(t *testing.T) {
	m := newTestModel(t, sampleReminders(), nil)

	next, cmd := m.Update(TickMsg(testNow.Add(90 * time.Minute)))
	m = next.(Model)
	assert.NotNil(t, cmd)

	due := 0
	for _, r := range m.reminders {
		if r.Status == reminder.Triggered {
			due++
		}
	}
	assert.Equal(t, 2, due)
}

func TestFileUpdateKeepsStatus(t *testing.T) {
	events := make(chan FileUpdateMsg)
	m := New(sampleReminders(), events, Options{Now: func() time.Time { return testNow }})
	m = press(m, "enter")

	update := FileUpdateMsg{
		FilePath: "a.md",
		Reminders: []*reminder.Reminder{
			{DateTime: testNow.Add(-time.Hour), MatchedText: "9am", Description: "Overdue", SourceFile: "a.md", LineNumber: 5},
			{DateTime: testNow.Add(3 * time.Hour), MatchedText: "1pm", Description: "New one", SourceFile: "a.md", LineNumber: 6},
		},
	}
	next, cmd := m.Update(update)
	m = next.(Model)
	assert.NotNil(t, cmd)

	require.Len(t, m.reminders, 3)
	for _, r := range m.reminders {
		switch r.Description {
		case "Overdue":
			assert.Equal(t, reminder.Acknowledged, r.Status)
			assert.Equal(t, 5, r.LineNumber)
		case "New one", "Lunch":
			assert.Equal(t, reminder.Pending, r.Status)
		default:
			t.Errorf("unexpected reminder %q", r.Description)
		}
	}
}

func TestFilter(t *testing.T) {
	m := newTestModel(t, sampleReminders(), nil)

	m = press(m, "/", "#food")
	require.Len(t, m.Reminders(), 1)
	assert.Equal(t, "Lunch", m.Reminders()[0].Description)

	m = press(m, "enter")
	assert.Equal(t, modeNormal, m.mode)
	assert.Len(t, m.Reminders(), 1)
	assert.Contains(t, m.View(), "filter: #food")

	m = press(m, "/", "esc")
	assert.Len(t, m.Reminders(), 3)
}

func TestViewEmpty(t *testing.T) {
	m := newTestModel(t, nil, nil)
	assert.Contains(t, m.View(), "No reminders")
}
