// Package state remembers which reminders were acknowledged or snoozed
// between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"go_chrono/reminder"
)

const stateFileName = "reminders_state.json"

// savedReminder is the JSON-serializable form of a reminder
type savedReminder struct {
	Key         string    `json:"key"`
	DateTime    time.Time `json:"datetime"`
	Description string    `json:"description"`
	SourceFile  string    `json:"source_file"`
	Status      int       `json:"status"`
	Snoozed     bool      `json:"snoozed,omitempty"`
}

// Store persists reminder statuses in a JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultDir returns ~/.go_chrono.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating home directory")
	}
	return filepath.Join(homeDir, ".go_chrono"), nil
}

// Open returns a store kept in dir, creating the directory when needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating state directory %s", dir)
	}
	return &Store{path: filepath.Join(dir, stateFileName)}, nil
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]savedReminder, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No state file yet, that's OK
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	var saved []savedReminder
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", s.path)
	}
	return saved, nil
}

// Apply restores saved statuses onto freshly parsed reminders. A saved
// snooze also restores the postponed time.
func (s *Store) Apply(reminders []*reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return err
	}
	byKey := make(map[string]savedReminder, len(saved))
	for _, sr := range saved {
		byKey[sr.Key] = sr
	}
	for _, r := range reminders {
		sr, ok := byKey[r.Key()]
		if !ok {
			continue
		}
		r.Status = reminder.Status(sr.Status)
		if sr.Snoozed {
			r.DateTime = sr.DateTime
		}
	}
	return nil
}

// Save records the status of every reminder that is no longer plainly
// pending, plus snoozed ones.
func (s *Store) Save(reminders []*reminder.Reminder, snoozed map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]savedReminder, 0, len(reminders))
	for _, r := range reminders {
		key := r.Key()
		if r.Status == reminder.Pending && !snoozed[key] {
			continue
		}
		saved = append(saved, savedReminder{
			Key:         key,
			DateTime:    r.DateTime,
			Description: r.Description,
			SourceFile:  r.SourceFile,
			Status:      int(r.Status),
			Snoozed:     snoozed[key],
		})
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replacing state file")
}
