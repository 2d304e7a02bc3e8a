package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/results"
	"go_chrono/timezone"
)

var engineRef = time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC)

func parseOne(t *testing.T, text string, opts Options) *results.ParsingResult {
	t.Helper()
	if opts.Reference.IsZero() {
		opts.Reference = engineRef
	}
	rs, err := ParseAll(text, opts)
	require.NoError(t, err)
	require.Len(t, rs, 1, "results for %q", text)
	return rs[0]
}

func ymd(t time.Time) string { return t.Format("2006-01-02") }

func TestRelativeAfterDate(t *testing.T) {
	r := parseOne(t, "2020-02-13 +2 weeks", Options{})
	assert.Equal(t, "2020-02-13 +2 weeks", r.Text)
	assert.Equal(t, "2020-02-27", ymd(r.Date()))

	r = parseOne(t, "2020-02-13 -3 days", Options{})
	assert.Equal(t, "2020-02-10", ymd(r.Date()))
}

func TestRelativeFollowedByDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"2 days before 2020-02-13", "2020-02-11"},
		{"3 days after 2020-02-13", "2020-02-16"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parseOne(t, tt.text, Options{})
			assert.Equal(t, tt.text, r.Text)
			assert.Equal(t, tt.want, ymd(r.Date()))
		})
	}
}

func TestAmbiguousZoneFollowsParsedDate(t *testing.T) {
	tests := []struct {
		text   string
		offset int
	}{
		{"2022-03-12 23:00 ET", -300},
		{"2022-03-13 23:00 ET", -240},
		{"2022-03-26 23:00 CET", 60},
		{"2022-03-27 23:00 CET", 120},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parseOne(t, tt.text, Options{})
			assert.Equal(t, tt.text, r.Text)
			offset, ok := r.Start.Get(results.TimezoneOffset)
			require.True(t, ok)
			assert.Equal(t, tt.offset, offset)
			_, got := r.Date().Zone()
			assert.Equal(t, tt.offset*60, got)
		})
	}
}

func TestReferenceRelativeIgnoresZoneOptions(t *testing.T) {
	opts := Options{
		Timezone:  "JST",
		Timezones: timezone.Overrides{"JST": timezone.Fixed(600)},
	}

	r := parseOne(t, "now", opts)
	assert.True(t, r.Date().Equal(engineRef))

	r = parseOne(t, "2 hour later", opts)
	assert.True(t, r.Date().Equal(engineRef.Add(2*time.Hour)))

	r = parseOne(t, "in 2 hours PST", opts)
	assert.Equal(t, "in 2 hours", r.Text)
	assert.True(t, r.Date().Equal(engineRef.Add(2*time.Hour)))
}

func TestUnknownAbbreviation(t *testing.T) {
	r := parseOne(t, "Jan 1st 2023 at 10:00 XYZ", Options{})
	assert.Equal(t, "Jan 1st 2023 at 10:00", r.Text)
	assert.False(t, r.Start.Has(results.TimezoneOffset))

	r = parseOne(t, "Jan 1st 2023 at 10:00 XYZ", Options{
		Timezones: timezone.Overrides{"XYZ": timezone.Fixed(-180)},
	})
	assert.Equal(t, "Jan 1st 2023 at 10:00 XYZ", r.Text)
	offset, _ := r.Start.Get(results.TimezoneOffset)
	assert.Equal(t, -180, offset)
	assert.True(t, r.Date().Equal(time.Date(2023, 1, 1, 13, 0, 0, 0, time.UTC)))
}

func TestDayRelativeTakesUpperCaseAbbreviation(t *testing.T) {
	r := parseOne(t, "in 1 day GET", Options{})
	assert.Equal(t, "in 1 day GET", r.Text)
	offset, _ := r.Start.Get(results.TimezoneOffset)
	assert.Equal(t, 240, offset)

	rs, err := ParseAll("in 1 day get eggs", Options{Reference: engineRef})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "in 1 day", rs[0].Text)
}

func TestReferenceZone(t *testing.T) {
	minutes := -300
	r := parseOne(t, "tomorrow at 9am", Options{TimezoneMinutes: &minutes})
	assert.True(t, r.Date().Equal(time.Date(2026, 1, 14, 14, 0, 0, 0, time.UTC)))

	r = parseOne(t, "tomorrow at 9am", Options{Timezone: "JST"})
	assert.True(t, r.Date().Equal(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)))

	_, err := ParseAll("tomorrow", Options{Reference: engineRef, Timezone: "Nowhere/Invalid"})
	assert.Error(t, err)
}

func TestParseAllFindsEveryMention(t *testing.T) {
	rs, err := ParseAll("Lunch at 12:30pm on friday then dinner Jan 20 7pm EST.", Options{Reference: engineRef})
	require.NoError(t, err)
	require.Len(t, rs, 2)

	assert.Equal(t, "12:30pm on friday", rs[0].Text)
	assert.True(t, rs[0].Date().Equal(time.Date(2026, 1, 16, 12, 30, 0, 0, time.UTC)))

	assert.Equal(t, "Jan 20 7pm EST", rs[1].Text)
	assert.True(t, rs[1].Date().Equal(time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	r := parseOne(t, "Jan 20 - Jan 22", Options{})
	end, ok := r.EndDate()
	require.True(t, ok)
	assert.Equal(t, "2026-01-20", ymd(r.Date()))
	assert.Equal(t, "2026-01-22", ymd(end))

	r = parseOne(t, "Sep 12-13, 2012", Options{})
	end, ok = r.EndDate()
	require.True(t, ok)
	assert.Equal(t, "2012-09-12", ymd(r.Date()))
	assert.Equal(t, "2012-09-13", ymd(end))
}

func TestStrictMode(t *testing.T) {
	rs, err := ParseAll("tomorrow in 2 hrs", Options{Reference: engineRef, Strict: true})
	require.NoError(t, err)
	assert.Empty(t, rs)

	r := parseOne(t, "in 2 hours", Options{Strict: true})
	assert.True(t, r.Date().Equal(engineRef.Add(2*time.Hour)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("see you on 2026-02-01T08:15Z", Options{Reference: engineRef})
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 2, 1, 8, 15, 0, 0, time.UTC)))

	_, err = ParseDate("nothing to see", Options{Reference: engineRef})
	assert.ErrorIs(t, err, ErrNoDate)
}

func TestForwardDate(t *testing.T) {
	tests := []struct {
		text    string
		forward bool
		want    time.Time
	}{
		{"8am", false, time.Date(2026, 1, 13, 8, 0, 0, 0, time.UTC)},
		{"8am", true, time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC)},
		{"Jan 5", false, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"Jan 5", true, time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parseOne(t, tt.text, Options{ForwardDate: tt.forward})
			if tt.text == "Jan 5" {
				assert.Equal(t, ymd(tt.want), ymd(r.Date()))
				return
			}
			assert.True(t, r.Date().Equal(tt.want), "got %v", r.Date())
		})
	}
}

func TestDefaultHour(t *testing.T) {
	nine := 9

	r := parseOne(t, "Jan 20", Options{DefaultHour: &nine})
	assert.True(t, r.Date().Equal(time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)), "got %v", r.Date())

	r = parseOne(t, "Jan 20 7pm", Options{DefaultHour: &nine})
	assert.Equal(t, 19, r.Date().UTC().Hour())

	// relative to the reference, so the reference clock stays
	r = parseOne(t, "in 2 days", Options{DefaultHour: &nine})
	assert.True(t, r.Date().Equal(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)), "got %v", r.Date())
}
