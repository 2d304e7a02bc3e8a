package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go_chrono/reminder"
)

// reminderItem wraps a Reminder to implement list.Item
type reminderItem struct {
	reminder *reminder.Reminder
}

func (i reminderItem) FilterValue() string { return i.reminder.Description }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(reminderItem)
	if !ok {
		return
	}
	r := i.reminder

	var icon string
	var style lipgloss.Style
	switch r.Status {
	case reminder.Triggered:
		icon, style = "🔔", triggeredStyle
	case reminder.Acknowledged:
		icon, style = "✓", acknowledgedStyle
	default:
		icon, style = "○", normalStyle
	}
	if index == m.Index() {
		icon = "▸"
		if r.Status == reminder.Pending {
			style = selectedItemStyle
		}
	}

	desc := r.Description
	for _, tag := range r.Tags {
		desc += " #" + tag
	}
	line := fmt.Sprintf("%s %-18s %s", icon, r.DateTime.Format("Mon Jan 2 3:04pm"), desc)
	source := filepath.Base(r.SourceFile)
	if r.LineNumber > 0 {
		source = fmt.Sprintf("%s:%d", source, r.LineNumber)
	}
	fmt.Fprintf(w, "%s%s", style.Render(line), sourceStyle.Render("  "+source))
}

// View renders the list, the active input and the help bar.
func (m Model) View() string {
	var b strings.Builder

	triggered, pending := 0, 0
	for _, r := range m.reminders {
		switch r.Status {
		case reminder.Triggered:
			triggered++
		case reminder.Pending:
			pending++
		}
	}
	b.WriteString(titleStyle.Render("go_chrono"))
	b.WriteString(sourceStyle.Render(fmt.Sprintf("  %d due · %d upcoming", triggered, pending)))
	b.WriteString("\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(sectionStyle.Render("No reminders"))
		b.WriteString("\n")
		b.WriteString(inputHintStyle.Render("Add one with n, or write [remind_me friday 10am Team meeting] in a watched file."))
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")

	switch m.mode {
	case modeFilter:
		b.WriteString(inputBoxStyle.Render(m.filterInput.View()))
		b.WriteString("\n")
	case modeAdd:
		content := m.addInput.View()
		switch {
		case m.inputError != "":
			content += "\n" + errorStyle.Render(m.inputError)
		case m.preview != "":
			content += "\n" + m.preview
		default:
			content += "\n" + inputHintStyle.Render("date first, then what to remember")
		}
		b.WriteString(inputBoxStyle.Render(content))
		b.WriteString("\n")
	default:
		if f := m.filterInput.Value(); f != "" {
			b.WriteString(inputHintStyle.Render("filter: " + f))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.help.View(keys))
	return appStyle.Render(b.String())
}
