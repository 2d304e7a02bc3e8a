// Package reminder holds the dated notes found in markdown files.
package reminder

import (
	"fmt"
	"sort"
	"time"
)

// Status represents the current state of a reminder
type Status int

const (
	Pending      Status = iota // Waiting for trigger time
	Triggered                  // Time reached, needs acknowledgment
	Acknowledged               // User dismissed, show crossed out
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Triggered:
		return "TRIGGERED"
	case Acknowledged:
		return "done"
	default:
		return "unknown"
	}
}

// Reminder is a date mention together with the note it belongs to.
type Reminder struct {
	DateTime time.Time
	// EndTime is set when the mention is a range ("Jan 20 - Jan 22").
	EndTime     *time.Time
	MatchedText string // the date expression as written
	Description string
	Tags        []string
	SourceFile  string
	LineNumber  int
	Status      Status
}

// IsDue reports whether the reminder's time has passed at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return now.After(r.DateTime)
}

// Key identifies a reminder across rescans of its file. The line number is
// left out so that edits above a reminder keep its acknowledgment.
func (r *Reminder) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.SourceFile, r.MatchedText, r.Description)
}

// SortByDateTime sorts a slice of reminders by their DateTime
func SortByDateTime(reminders []*Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DateTime.Before(reminders[j].DateTime)
	})
}

// Refresh moves pending reminders whose time has passed to Triggered and
// reports how many changed.
func Refresh(reminders []*Reminder, now time.Time) int {
	n := 0
	for _, r := range reminders {
		if r.Status == Pending && r.IsDue(now) {
			r.Status = Triggered
			n++
		}
	}
	return n
}

// MergeFromFile replaces the reminders of path with fresh ones. A fresh
// reminder that matches a previous one by Key keeps its status.
func MergeFromFile(existing []*Reminder, path string, fresh []*Reminder) []*Reminder {
	previous := make(map[string]Status)
	merged := make([]*Reminder, 0, len(existing)+len(fresh))
	for _, r := range existing {
		if r.SourceFile == path {
			previous[r.Key()] = r.Status
			continue
		}
		merged = append(merged, r)
	}
	for _, r := range fresh {
		if status, ok := previous[r.Key()]; ok {
			r.Status = status
		}
		merged = append(merged, r)
	}
	return merged
}
