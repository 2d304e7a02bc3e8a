package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/reminder"
)

func sample() []*reminder.Reminder {
	at := time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)
	return []*reminder.Reminder{
		{DateTime: at, MatchedText: "+1h", Description: "Pay rent", SourceFile: "a.md", LineNumber: 3, Status: reminder.Acknowledged},
		{DateTime: at, MatchedText: "friday", Description: "Call mom", SourceFile: "a.md", LineNumber: 4, Status: reminder.Pending},
		{DateTime: at, MatchedText: "tomorrow", Description: "Ship it", SourceFile: "b.md", LineNumber: 1, Status: reminder.Triggered},
	}
}

func TestSaveAndApply(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	rs := sample()
	snoozedAt := time.Date(2026, 1, 13, 11, 0, 0, 0, time.UTC)
	rs[1].DateTime = snoozedAt
	require.NoError(t, store.Save(rs, map[string]bool{rs[1].Key(): true}))

	fresh := sample()
	// edits above a reminder move its line but keep its state
	fresh[0].LineNumber = 10
	require.NoError(t, store.Apply(fresh))

	assert.Equal(t, reminder.Acknowledged, fresh[0].Status)
	assert.Equal(t, reminder.Pending, fresh[1].Status)
	assert.True(t, fresh[1].DateTime.Equal(snoozedAt))
	assert.Equal(t, reminder.Triggered, fresh[2].Status)
}

func TestApplyWithoutStateFile(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	rs := sample()
	require.NoError(t, store.Apply(rs))
	assert.Equal(t, reminder.Acknowledged, rs[0].Status)
	assert.Equal(t, reminder.Pending, rs[1].Status)
}

func TestApplyCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0o644))

	assert.Error(t, store.Apply(sample()))
}

func TestDefaultDir(t *testing.T) {
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, ".go_chrono", filepath.Base(dir))
}
