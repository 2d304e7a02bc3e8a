package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/datetime"
	"go_chrono/parser"
	"go_chrono/reminder"
)

func startWatcher(t *testing.T, opts parser.Options) *Watcher {
	t.Helper()
	w, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	w.Start()
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// waitFor returns the next event for path, skipping events for other files.
func waitFor(t *testing.T, w *Watcher, path string, timeout time.Duration) FileEvent {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case event := <-w.Events:
			require.NoError(t, event.Err)
			if event.FilePath == path {
				return event
			}
		case <-deadline:
			t.Fatalf("timeout waiting for event on %s", path)
		}
	}
}

func TestWatcherFileUpdates(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"single reminder", "# Test\nThis has [remind_me +1h Test reminder] in it.", 1},
		{"same line", "Multiple [remind_me +1h First] and [remind_me +2h Second] reminders.", 2},
		{"mixed formats", "Relative: [remind_me +30m Relative time]\n" +
			"Natural: [remind_me tomorrow 9am Natural language]\n" +
			"Specific: [remind_me 2026-01-15T14:30 Specific datetime]\n" +
			"Zoned: [remind_me Jan 15 3pm EST Call mom]", 4},
		{"fenced code ignored", "[remind_me +5m Real]\n```\n[remind_me +5m Not real]\n```\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := startWatcher(t, parser.Options{})
			require.NoError(t, w.WatchDirectory(dir))

			file := filepath.Join(dir, "test.md")
			writeFile(t, file, tt.content)

			event := waitFor(t, w, file, 2*time.Second)
			assert.Len(t, event.Reminders, tt.expected)
		})
	}
}

func TestWatcherMentions(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, parser.Options{Mentions: true})
	require.NoError(t, w.WatchDirectory(dir))

	file := filepath.Join(dir, "journal.md")
	writeFile(t, file, "Dinner with Sam on Jan 20 at 7pm\nand the review 2 days after 2030-02-13\n")

	event := waitFor(t, w, file, 2*time.Second)
	require.Len(t, event.Reminders, 2)
	assert.Equal(t, "Jan 20 at 7pm", event.Reminders[0].MatchedText)
	assert.Equal(t, "2 days after 2030-02-13", event.Reminders[1].MatchedText)
	assert.Equal(t, "2030-02-15", event.Reminders[1].DateTime.Format("2006-01-02"))
}

func TestWatcherIgnoresNonMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, parser.Options{})
	require.NoError(t, w.WatchDirectory(dir))

	txtFile := filepath.Join(dir, "test.txt")
	writeFile(t, txtFile, "[remind_me +1h Should be ignored]")
	mdFile := filepath.Join(dir, "test.md")
	writeFile(t, mdFile, "[remind_me +1h Should be detected]")

	timeout := time.After(2 * time.Second)
	gotMd := false
	for {
		select {
		case event := <-w.Events:
			require.NoError(t, event.Err)
			assert.NotEqual(t, txtFile, event.FilePath)
			if event.FilePath == mdFile {
				gotMd = true
				assert.Len(t, event.Reminders, 1)
			}
		case <-time.After(300 * time.Millisecond):
			require.True(t, gotMd, "never got event for markdown file")
			return
		case <-timeout:
			t.Fatal("timeout waiting for events")
		}
	}
}

func TestWatchSingleFileMultipleUpdates(t *testing.T) {
	file := filepath.Join(t.TempDir(), "watch.md")
	writeFile(t, file, "")

	w, err := New(parser.Options{})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.WatchFile(file))
	w.Start()
	time.Sleep(100 * time.Millisecond)

	updates := []string{
		"[remind_me +1h One]",
		"[remind_me +1h One]\n[remind_me +2h Two]",
		"[remind_me +1h One]\n[remind_me +2h Two]\n[remind_me friday Three]",
	}
	for i, content := range updates {
		writeFile(t, file, content)
		event := waitFor(t, w, file, 3*time.Second)
		assert.Len(t, event.Reminders, i+1, "update %d", i)
		// drain the extra write events a truncating save can produce
		time.Sleep(100 * time.Millisecond)
		for len(w.Events) > 0 {
			<-w.Events
		}
	}
}

func TestWatcherRecursiveDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	w := startWatcher(t, parser.Options{})
	require.NoError(t, w.WatchDirectory(dir))

	files := []string{
		filepath.Join(dir, "root.md"),
		filepath.Join(dir, "sub", "sub.md"),
		filepath.Join(nested, "nested.md"),
	}
	for _, f := range files {
		writeFile(t, f, "[remind_me +1h Some level]")
	}
	for _, f := range files {
		event := waitFor(t, w, f, 3*time.Second)
		assert.Len(t, event.Reminders, 1)
	}
}

func TestParseInitialDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"file1.md":        "# File 1\nFirst [remind_me +1h File 1 reminder] here.",
		"file2.md":        "Second [remind_me +2h File 2 reminder]\nAnother [remind_me +3h Another file 2 reminder]",
		"file3.txt":       "[remind_me +1h not markdown]",
		"subdir/file4.md": "Nested [remind_me +4h Nested reminder] file.",
	}
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}

	reminders, isDir, err := ParseInitial(dir, parser.Options{})
	require.NoError(t, err)
	assert.True(t, isDir)
	require.Len(t, reminders, 4)

	perFile := map[string]int{}
	for _, r := range reminders {
		perFile[filepath.Base(r.SourceFile)]++
	}
	assert.Equal(t, map[string]int{"file1.md": 1, "file2.md": 2, "file4.md": 1}, perFile)
}

func TestParseInitialSingleFile(t *testing.T) {
	ref := time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC)
	file := filepath.Join(t.TempDir(), "single.md")
	writeFile(t, file, "This has [remind_me +1h Single] in it.\nAnd [remind_me monday Another] too.")

	reminders, isDir, err := ParseInitial(file, parser.Options{Parse: parserOptions(ref)})
	require.NoError(t, err)
	assert.False(t, isDir)
	require.Len(t, reminders, 2)

	for _, r := range reminders {
		assert.Equal(t, file, r.SourceFile)
		assert.Equal(t, reminder.Pending, r.Status)
	}
	assert.True(t, reminders[0].DateTime.Equal(ref.Add(time.Hour)))
	assert.True(t, reminders[1].DateTime.Equal(time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)))
}

func TestParseInitialMissingPath(t *testing.T) {
	_, _, err := ParseInitial(filepath.Join(t.TempDir(), "missing.md"), parser.Options{})
	assert.Error(t, err)
}

func parserOptions(ref time.Time) datetime.Options {
	return datetime.Options{Reference: ref}
}
