package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go_chrono/reminder"
)

var snoozes = []struct {
	binding key.Binding
	by      time.Duration
}{
	{keys.Snooze5m, 5 * time.Minute},
	{keys.Snooze1h, time.Hour},
	{keys.Snooze1d, 24 * time.Hour},
}

// Update routes key presses by mode; ticks, resizes and file updates apply
// in every mode.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilterMode(msg)
		case modeAdd:
			return m.updateAddMode(msg)
		default:
			return m.updateNormalMode(msg)
		}

	case TickMsg:
		if reminder.Refresh(m.reminders, time.Time(msg)) > 0 {
			m.refreshList()
			m.saveState()
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 8
		if listHeight < 5 {
			listHeight = 5
		}
		m.list.SetSize(msg.Width-4, listHeight)
		return m, nil

	case FileUpdateMsg:
		m.applyFileUpdate(msg)
		return m, m.waitForFileUpdate()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Filter):
		m.mode = modeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		m.addInput.Reset()
		m.addInput.Focus()
		m.inputError = ""
		m.preview = ""
		return m, textinput.Blink

	case key.Matches(msg, keys.Acknowledge):
		m.acknowledge()
		return m, nil

	case key.Matches(msg, keys.Unacknowledge):
		m.unacknowledge()
		return m, nil
	}

	for _, s := range snoozes {
		if key.Matches(msg, s.binding) {
			m.snooze(s.by)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.filterInput.Blur()
		m.filterInput.Reset()
		m.refreshList()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.refreshList()
	return m, cmd
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeAdd()
		return m, nil
	case tea.KeyEnter:
		if err := m.addReminder(m.addInput.Value()); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.closeAdd()
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.inputError = ""
	m.preview = m.previewFor(m.addInput.Value())
	return m, cmd
}

func (m *Model) closeAdd() {
	m.mode = modeNormal
	m.addInput.Blur()
	m.addInput.Reset()
	m.inputError = ""
	m.preview = ""
}
