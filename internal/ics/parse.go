package ics

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "biblecal/internal/log"
)

// ReadingDay is one VEVENT of a reading feed, normalized to a UTC date.
type ReadingDay struct {
	UID         string
	Date        time.Time
	Summary     string
	Description string
}

// ParseFeed reads a feed produced by Write (or any iCalendar with all-day
// events) and returns its days sorted by date. Events without a UID or a
// usable DTSTART are logged and skipped.
func ParseFeed(body []byte) ([]ReadingDay, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, err
	}

	days := make([]ReadingDay, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		d, perr := parseVEvent(ve)
		if perr != nil {
			appLog.Error("ics vevent parse failed", perr)
			continue
		}
		days = append(days, d)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	appLog.Debug("ics parse completed", "event_count", len(days))
	return days, nil
}

func parseVEvent(ve *ical.VEvent) (ReadingDay, error) {
	var out ReadingDay

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return out, fmt.Errorf("%s: missing DTSTART", out.UID)
	}
	t, err := parseICSTime(start.Value)
	if err != nil {
		return out, fmt.Errorf("%s: %w", out.UID, err)
	}
	out.Date = t

	// TEXT values come back unescaped from the parser.
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	return out, nil
}

// parseICSTime parses a DATE or DATE-TIME value and truncates it to its
// UTC calendar date. Floating times are read as UTC.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	var (
		t   time.Time
		err error
	)
	switch {
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		t, err = time.ParseInLocation("20060102T150405", v, time.UTC)
	default:
		t, err = time.ParseInLocation(dateLayout, v, time.UTC)
	}
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
