package en_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_chrono/datetime"
	"go_chrono/locales/en"
	"go_chrono/results"
	"go_chrono/timeunits"
)

// Tuesday.
var ref = time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC)

func parse(t *testing.T, text string) []*results.ParsingResult {
	t.Helper()
	rs, err := datetime.ParseAll(text, datetime.Options{Reference: ref})
	require.NoError(t, err)
	return rs
}

func TestParsersResolve(t *testing.T) {
	tests := []struct {
		text     string
		wantText string
		want     time.Time
	}{
		{"now", "now", ref},
		{"tomorrow", "tomorrow", time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)},
		{"yesterday", "yesterday", time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)},
		{"tonight", "tonight", time.Date(2026, 1, 13, 22, 0, 0, 0, time.UTC)},
		{"this afternoon", "this afternoon", time.Date(2026, 1, 13, 15, 0, 0, 0, time.UTC)},
		{"at noon", "noon", time.Date(2026, 1, 13, 12, 0, 0, 0, time.UTC)},
		{"midnight", "midnight", time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)},
		{"11 am", "11 am", time.Date(2026, 1, 13, 11, 0, 0, 0, time.UTC)},
		{"10.30 p.m.", "10.30 p.m.", time.Date(2026, 1, 13, 22, 30, 0, 0, time.UTC)},
		{"7 o'clock", "7 o'clock", time.Date(2026, 1, 13, 7, 0, 0, 0, time.UTC)},
		{"8 in the evening", "8 in the evening", time.Date(2026, 1, 13, 20, 0, 0, 0, time.UTC)},
		{"23:15:30", "23:15:30", time.Date(2026, 1, 13, 23, 15, 30, 0, time.UTC)},
		{"September 16, 2020", "September 16, 2020", time.Date(2020, 9, 16, 12, 0, 0, 0, time.UTC)},
		{"16th of march", "16th of march", time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)},
		{"Dec 25", "Dec 25", time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)},
		{"2012/8/10", "2012/8/10", time.Date(2012, 8, 10, 12, 0, 0, 0, time.UTC)},
		{"12/25/2020", "12/25/2020", time.Date(2020, 12, 25, 12, 0, 0, 0, time.UTC)},
		{"25/12/2020", "25/12/2020", time.Date(2020, 12, 25, 12, 0, 0, 0, time.UTC)},
		{"06/2005", "06/2005", time.Date(2005, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"in 3 days", "in 3 days", time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)},
		{"within a few minutes", "within a few minutes", ref.Add(3 * time.Minute)},
		{"2 weeks ago", "2 weeks ago", time.Date(2025, 12, 30, 10, 0, 0, 0, time.UTC)},
		{"3 months later", "3 months later", time.Date(2026, 4, 13, 10, 0, 0, 0, time.UTC)},
		{"next 2 hours", "next 2 hours", ref.Add(2 * time.Hour)},
		{"last month", "last month", time.Date(2025, 12, 13, 10, 0, 0, 0, time.UTC)},
		{"this month", "this month", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"this week", "this week", time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)},
		{"friday next week", "friday next week", time.Date(2026, 1, 23, 12, 0, 0, 0, time.UTC)},
		{"last monday", "last monday", time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC)},
		{"2026-01-15T15:30:00.250+09:00", "2026-01-15T15:30:00.250+09:00", time.Date(2026, 1, 15, 6, 30, 0, 250*int(time.Millisecond), time.UTC)},
		{"10:00 +0530", "10:00 +0530", time.Date(2026, 1, 13, 4, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rs := parse(t, tt.text)
			require.Len(t, rs, 1)
			assert.Equal(t, tt.wantText, rs[0].Text)
			assert.True(t, rs[0].Date().Equal(tt.want), "got %v want %v", rs[0].Date(), tt.want)
		})
	}
}

func TestWordBoundaries(t *testing.T) {
	assert.Empty(t, parse(t, "929amherst street"))
	assert.Empty(t, parse(t, "the 42 bus"))
	assert.Empty(t, parse(t, "wedding plans"))
}

func TestWeekdayMergesWithDate(t *testing.T) {
	rs := parse(t, "Sunday, 7 June 2026")
	require.Len(t, rs, 1)
	assert.Equal(t, "Sunday, 7 June 2026", rs[0].Text)
	weekday, _ := rs[0].Start.Get(results.Weekday)
	assert.Equal(t, int(time.Sunday), weekday)
}

func TestTimeRange(t *testing.T) {
	rs := parse(t, "Jan 20 3pm to 5pm")
	require.Len(t, rs, 1)
	end, ok := rs[0].EndDate()
	require.True(t, ok)
	assert.True(t, rs[0].Date().Equal(time.Date(2026, 1, 20, 15, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC)))
}

func TestDaysToWeekday(t *testing.T) {
	tests := []struct {
		ref, target time.Weekday
		modifier    string
		want        int
	}{
		{time.Tuesday, time.Friday, "", 3},
		{time.Tuesday, time.Monday, "", -1},
		{time.Tuesday, time.Tuesday, "", 0},
		{time.Tuesday, time.Friday, "this", 3},
		{time.Tuesday, time.Monday, "this", 6},
		{time.Tuesday, time.Friday, "last", -4},
		{time.Tuesday, time.Tuesday, "last", -7},
		{time.Tuesday, time.Friday, "next", 10},
		{time.Tuesday, time.Monday, "next", 6},
		{time.Sunday, time.Sunday, "next", 7},
		{time.Sunday, time.Wednesday, "next", 3},
		{time.Saturday, time.Sunday, "next", 8},
		{time.Saturday, time.Monday, "next", 2},
	}
	for _, tt := range tests {
		got := en.DaysToWeekday(tt.ref, tt.target, tt.modifier)
		assert.Equal(t, tt.want, got, "%v -> %s %v", tt.ref, tt.modifier, tt.target)
	}
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{
		"2020":    2020,
		"99":      1999,
		"25":      2025,
		"2563 BE": 2020,
		"500 BC":  -500,
		"1066 AD": 1066,
	}
	for in, want := range tests {
		assert.Equal(t, want, en.ParseYear(in), in)
	}
}

func TestClosestYear(t *testing.T) {
	assert.Equal(t, 2025, en.ClosestYear(ref, time.December, 25))
	assert.Equal(t, 2026, en.ClosestYear(ref, time.March, 1))
	late := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2027, en.ClosestYear(late, time.January, 10))
}

func TestParseTimeUnits(t *testing.T) {
	assert.Equal(t, timeunits.TimeUnits{timeunits.Hour: 2, timeunits.Minute: 30}, en.ParseTimeUnits("2 hrs and 30 mins"))
	assert.Equal(t, timeunits.TimeUnits{timeunits.Day: 2}, en.ParseTimeUnits("a couple of days"))
	assert.Equal(t, timeunits.TimeUnits{timeunits.Week: 1}, en.ParseTimeUnits("one week"))
}

func TestStrictParsers(t *testing.T) {
	rs, err := datetime.ParseAll("see you tomorrow in 2 hrs at 4", datetime.Options{Reference: ref, Strict: true})
	require.NoError(t, err)
	assert.Empty(t, rs)

	rs, err = datetime.ParseAll("meet at 4:30 pm", datetime.Options{Reference: ref, Strict: true})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "4:30 pm", rs[0].Text)
}
