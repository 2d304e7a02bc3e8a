package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with an empty config so the user's own
// config file never leaks into a test.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level = \"error\"\n"), 0o644))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeResults(t *testing.T, out string) []resultJSON {
	t.Helper()
	var rs []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rs), out)
	return rs
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "", "parse", "--reference", "2026-01-13T10:00:00Z",
		"lunch at 12:30pm on friday then Jan 20 - Jan 22 in Paris")
	require.NoError(t, err)

	rs := decodeResults(t, out)
	require.Len(t, rs, 2)

	assert.Equal(t, "12:30pm on friday", rs[0].Text)
	assert.True(t, rs[0].Start.Equal(time.Date(2026, 1, 16, 12, 30, 0, 0, time.UTC)))
	assert.Contains(t, rs[0].Certain, "hour")

	assert.Equal(t, "Jan 20 - Jan 22", rs[1].Text)
	require.NotNil(t, rs[1].End)
	assert.Equal(t, 22, rs[1].End.Day())
}

func TestParseCommandStdin(t *testing.T) {
	out, err := run(t, "shipped 2 weeks ago\n", "parse", "--reference", "2026-01-13T10:00:00Z")
	require.NoError(t, err)

	rs := decodeResults(t, out)
	require.Len(t, rs, 1)
	assert.Equal(t, "2 weeks ago", rs[0].Text)
	assert.True(t, rs[0].Start.Equal(time.Date(2025, 12, 30, 10, 0, 0, 0, time.UTC)))
}

func TestParseCommandOptions(t *testing.T) {
	out, err := run(t, "", "parse", "--reference", "2026-01-13T10:00:00Z",
		"--forward", "--default-hour", "8", "monday")
	require.NoError(t, err)
	rs := decodeResults(t, out)
	require.Len(t, rs, 1)
	assert.True(t, rs[0].Start.Equal(time.Date(2026, 1, 19, 8, 0, 0, 0, time.UTC)))

	out, err = run(t, "", "parse", "--reference", "2026-01-13T10:00:00Z",
		"--timezone", "JST", "tomorrow at 9am")
	require.NoError(t, err)
	rs = decodeResults(t, out)
	require.Len(t, rs, 1)
	assert.True(t, rs[0].Start.Equal(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)))

	out, err = run(t, "", "parse", "--strict", "tomorrow")
	require.NoError(t, err)
	assert.Empty(t, decodeResults(t, out))
}

func TestParseCommandErrors(t *testing.T) {
	_, err := run(t, "", "parse", "--reference", "yesterday-ish", "today")
	assert.Error(t, err)

	_, err = run(t, "", "parse", "--default-hour", "25", "today")
	assert.Error(t, err)

	_, err = run(t, "", "parse", "--timezone", "Nowhere/Invalid", "today")
	assert.Error(t, err)
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"),
		[]byte("# Notes\n[remind_me 2030-05-01 9:30 Renew passport #admin]\nTrip on Jun 3 2030\n"), 0o644))

	out, err := run(t, "", "scan", dir)
	require.NoError(t, err)

	var rs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rs), out)
	require.Len(t, rs, 1)
	assert.Equal(t, "Renew passport", rs[0]["description"])
	assert.Equal(t, "pending", rs[0]["status"])
	assert.EqualValues(t, 2, rs[0]["line"])

	out, err = run(t, "", "scan", "--mentions", dir)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rs), out)
	assert.Len(t, rs, 2)
}

func TestBadConfig(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "parse", "today"})
	assert.Error(t, cmd.Execute())
}
