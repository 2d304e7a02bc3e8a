package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Acknowledge   key.Binding
	Unacknowledge key.Binding
	Snooze5m      key.Binding
	Snooze1h      key.Binding
	Snooze1d      key.Binding
	Filter        key.Binding
	Add           key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Acknowledge, k.Filter, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Acknowledge, k.Unacknowledge},
		{k.Snooze5m, k.Snooze1h, k.Snooze1d},
		{k.Filter, k.Add, k.Help, k.Quit},
	}
}

var _ help.KeyMap = keyMap{}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Acknowledge:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "done")),
	Unacknowledge: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Snooze5m:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "snooze 5m")),
	Snooze1h:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "snooze 1h")),
	Snooze1d:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "snooze 1d")),
	Filter:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Add:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
