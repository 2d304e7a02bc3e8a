// Command generate_test_data writes markdown notes full of reminders written
// in the many ways people write dates, then reads them back to check every
// one is understood.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go_chrono/parser"
)

var tags = []string{"work", "personal", "urgent", "meeting", "followup"}

var descriptions = []string{
	"Team standup meeting",
	"Review pull request",
	"Submit expense report",
	"Call with client",
	"Sprint planning",
	"Deploy to production",
	"Security audit review",
	"1:1 with manager",
	"Update dependencies",
	"Release notes draft",
	"Quarterly planning",
	"Certificate renewal",
	"Incident postmortem",
	"Team retrospective",
	"Stakeholder update",
}

// dateFormats render a date the way a person might type it.
var dateFormats = []func(r *rand.Rand, at time.Time) string{
	func(r *rand.Rand, _ time.Time) string { return fmt.Sprintf("+%dh", 1+r.Intn(48)) },
	func(r *rand.Rand, _ time.Time) string { return fmt.Sprintf("in %d days", 1+r.Intn(30)) },
	func(r *rand.Rand, _ time.Time) string { return fmt.Sprintf("%d minutes later", 5+r.Intn(120)) },
	func(_ *rand.Rand, at time.Time) string { return "next " + strings.ToLower(at.Weekday().String()) },
	func(_ *rand.Rand, at time.Time) string { return at.Weekday().String() + " " + at.Format("3pm") },
	func(_ *rand.Rand, at time.Time) string { return at.Format("Jan 2 3:04pm") },
	func(_ *rand.Rand, at time.Time) string { return at.Format("2 January 2006") },
	func(_ *rand.Rand, at time.Time) string { return at.Format("01/02/2006 15:04") },
	func(_ *rand.Rand, at time.Time) string { return at.Format("2006-01-02T15:04") },
	func(_ *rand.Rand, at time.Time) string { return at.Format("Jan 2 3pm") + " EST" },
	func(_ *rand.Rand, _ time.Time) string { return "tomorrow 9:30am" },
	func(r *rand.Rand, at time.Time) string {
		return fmt.Sprintf("%d days after %s", 1+r.Intn(5), at.Format("2006-01-02"))
	},
}

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}

	testDir := filepath.Join(homeDir, ".go_chrono", "test")
	if err := os.MkdirAll(testDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating test dir: %v\n", err)
		os.Exit(1)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	const files, perFile = 10, 20

	written := 0
	for f := 0; f < files; f++ {
		var b strings.Builder
		fmt.Fprintf(&b, "# Notes %d\n\n", f+1)
		for i := 0; i < perFile; i++ {
			at := time.Date(now.Year(), now.Month(), now.Day()+1+r.Intn(300),
				8+r.Intn(11), r.Intn(4)*15, 0, 0, now.Location())
			date := dateFormats[r.Intn(len(dateFormats))](r, at)
			desc := fmt.Sprintf("%s (%d)", descriptions[r.Intn(len(descriptions))], written+1)
			for _, j := range r.Perm(len(tags))[:r.Intn(3)] {
				desc += " #" + tags[j]
			}
			fmt.Fprintf(&b, "- [remind_me %s %s]\n", date, desc)
			written++
		}

		path := filepath.Join(testDir, fmt.Sprintf("notes_%02d.md", f+1))
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}

		reminders, err := parser.ParseFile(path, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading back %s: %v\n", path, err)
			os.Exit(1)
		}
		if len(reminders) != perFile {
			fmt.Fprintf(os.Stderr, "%s: understood %d of %d reminders\n", path, len(reminders), perFile)
		}
	}

	fmt.Printf("Generated %d test reminders in %s\n", written, testDir)
}
