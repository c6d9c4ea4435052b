package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblecal/internal/calendar"
	"biblecal/internal/config"
	"biblecal/internal/model"
	"biblecal/internal/plan"
)

var stamp = time.Date(2024, time.February, 3, 4, 5, 6, 0, time.UTC)

func testRun(t *testing.T, mutate func(c *config.Config)) *calendar.Run {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StartYear, cfg.StartMonth, cfg.StartDay = 2024, 1, 1
	cfg.DaysToRest = []string{"sunday"}
	if mutate != nil {
		mutate(cfg)
	}
	run, err := calendar.NewRun(cfg)
	require.NoError(t, err)
	return run
}

func testCursor(n int) *plan.Cursor {
	entries := make([]plan.Entry, n)
	for i := range entries {
		entries[i] = plan.Entry{Reading: model.DailyReading{Units: []model.ReadingUnit{
			{FromBook: "Genesis", FromChapter: "1", ToBook: "Genesis", ToChapter: "2"},
			{FromBook: "Matthew", FromChapter: "1"},
		}}}
	}
	return plan.NewCursor(entries)
}

func TestWriteFeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRun(t, nil), testCursor(10), stamp))
	out := buf.String()

	assert.Contains(t, out, "PRODID:-//Bible Reading Calendar//biblereadingcalendar.com//EN")
	assert.Contains(t, out, "CALSCALE:GREGORIAN")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "X-WR-CALNAME:Bible Reading Calendar")
	assert.Contains(t, out, "X-WR-TIMEZONE:Etc/GMT")
	assert.Equal(t, 10, strings.Count(out, "BEGIN:VEVENT"))

	assert.Contains(t, out, "UID:20240101@biblereadingcalendar.com")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240101")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240102")
	assert.Contains(t, out, "DTSTAMP:20240203T040506Z")
	assert.Contains(t, out, `SUMMARY:Gen 1-2\, Matt 1`)
	assert.Contains(t, out, `DESCRIPTION:Genesis 1-2\nMatthew 1`)

	// 7 January 2024 is a Sunday.
	assert.NotContains(t, out, "UID:20240107@")
	assert.Contains(t, out, "UID:20240111@")
	assert.NotContains(t, out, "UID:20240112@")
}

func TestBuildStopsAtWindowEnd(t *testing.T) {
	cursor := testCursor(400)
	cal, err := Build(testRun(t, nil), cursor, stamp)
	require.NoError(t, err)

	assert.Len(t, cal.Events(), 314)
	assert.Equal(t, 86, cursor.Len())
}

func TestBuildSecondYearStartsLate(t *testing.T) {
	run := testRun(t, func(c *config.Config) {
		c.Duration = config.DurationTwoYearsSecond
		c.DaysToRest = nil
	})
	cal, err := Build(run, testCursor(3), stamp)
	require.NoError(t, err)
	require.Len(t, cal.Events(), 3)
	assert.Equal(t, "20250101@"+UIDDomain, cal.Events()[0].Id())
}

func TestKoreanNames(t *testing.T) {
	var buf bytes.Buffer
	run := testRun(t, func(c *config.Config) { c.Language = config.LanguageKorean })
	require.NoError(t, Write(&buf, run, testCursor(1), stamp))
	out := buf.String()

	assert.Contains(t, out, "PRODID:-//Bible Reading Calendar//biblereadingcalendar.com//KO")
	assert.Contains(t, out, "X-WR-CALNAME:성경 읽기 달력")
	assert.Contains(t, out, `SUMMARY:창 1-2\, 마 1`)
}

func TestParseFeedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRun(t, nil), testCursor(10), stamp))

	days, err := ParseFeed(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, days, 10)

	first := days[0]
	assert.Equal(t, "20240101@"+UIDDomain, first.UID)
	assert.Equal(t, calendar.Date(2024, time.January, 1), first.Date)
	assert.Equal(t, "Gen 1-2, Matt 1", first.Summary)
	assert.Equal(t, "Genesis 1-2\nMatthew 1", first.Description)
	assert.Equal(t, calendar.Date(2024, time.January, 11), days[9].Date)

	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Date.Before(days[i].Date))
	}
}

func TestParseFeedSkipsBrokenEvents(t *testing.T) {
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:b",
		"DTSTART;VALUE=DATE:20240305",
		"SUMMARY:Ps 2",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:a",
		"DTSTART:20240301T230000Z",
		"SUMMARY:Ps 1",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:no uid",
		"DTSTART;VALUE=DATE:20240302",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:c",
		"SUMMARY:no start",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	days, err := ParseFeed([]byte(body))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "a", days[0].UID)
	assert.Equal(t, calendar.Date(2024, time.March, 1), days[0].Date)
	assert.Equal(t, "Ps 2", days[1].Summary)
}

func TestParseFeedEmpty(t *testing.T) {
	_, err := ParseFeed(nil)
	assert.Error(t, err)
}

func TestParseICSTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"20240229", calendar.Date(2024, time.February, 29)},
		{"20240229T101500", calendar.Date(2024, time.February, 29)},
		{"20240229T235959Z", calendar.Date(2024, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseICSTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseICSTime("yesterday")
	assert.Error(t, err)
}
