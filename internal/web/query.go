package web

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"biblecal/internal/calendar"
	"biblecal/internal/config"
)

// errUnknownCoverage is answered with 404, like a path that does not exist.
var errUnknownCoverage = errors.New("web: unknown coverage")

// buildConfig derives a per-request config from base and the builder UI's
// query parameters:
//
//	c      new-testament | old-testament | whole-bible | new-testament-and-psalms
//	r1, r2 rest days of a new testament plan
//	r      rest day of the other plans, or "everyday"
//	d, yi  one-year | two-years, and the year index 0|1 of a two-year plan
//	o      old-testament-first | new-testament-first | parallel
//	y, m   selected month; i is the legacy 0-based month offset from the start
//	l      "ko" for Korean on A4, anything else for English on US letter
//	s      start date, yyyymmdd
//
// base is never modified.
func buildConfig(base *config.Config, q url.Values) (*config.Config, error) {
	cfg := base.Clone()
	cfg.DaysToRest = []string{}
	cfg.Duration = config.DurationOneYear

	if s := q.Get("s"); s != "" {
		t, err := time.Parse("20060102", s)
		if err != nil {
			return nil, &config.ConfigurationError{Field: "s", Reason: fmt.Sprintf("invalid start date %q", s), Err: err}
		}
		cfg.StartYear, cfg.StartMonth, cfg.StartDay = t.Year(), int(t.Month()), t.Day()
	}

	switch c := q.Get("c"); c {
	case "new-testament":
		cfg.Coverage = config.CoverageNewTestament
		cfg.DaysToRest = appendRestDay(cfg.DaysToRest, q.Get("r1"))
		cfg.DaysToRest = appendRestDay(cfg.DaysToRest, q.Get("r2"))
	case "old-testament":
		cfg.Coverage = config.CoverageOldTestament
		cfg.Duration = durationFor(q.Get("d"), q.Get("yi"))
		cfg.DaysToRest = appendRestDay(cfg.DaysToRest, q.Get("r"))
	case "whole-bible":
		cfg.Duration = durationFor(q.Get("d"), q.Get("yi"))
		cfg.DaysToRest = appendRestDay(cfg.DaysToRest, q.Get("r"))
		switch q.Get("o") {
		case "old-testament-first":
			cfg.Coverage = config.CoverageWholeBible
		case "new-testament-first":
			cfg.Coverage = config.CoverageWholeBibleNewTestamentFirst
		default:
			cfg.Coverage = config.CoverageWholeBibleInParallel
		}
	case "new-testament-and-psalms":
		cfg.Coverage = config.CoverageNewTestamentAndPsalms
		cfg.DaysToRest = appendRestDay(cfg.DaysToRest, q.Get("r"))
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCoverage, c)
	}

	if q.Get("l") == "ko" {
		useKorean(cfg)
	} else {
		cfg.Language = config.LanguageEnglish
		cfg.Paper = config.PaperUSLetter
	}

	cfg.Year, cfg.Month = 0, 0
	if err := selectMonth(cfg, q); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func appendRestDay(days []string, d string) []string {
	if d == "" || d == "everyday" {
		return days
	}
	return append(days, d)
}

// durationFor maps d and yi. A two-year plan without a year index covers
// both years.
func durationFor(d, yi string) config.DurationType {
	switch {
	case d == "" || d == "one-year":
		return config.DurationOneYear
	case yi == "0":
		return config.DurationTwoYearsFirst
	case yi == "1":
		return config.DurationTwoYearsSecond
	}
	return config.DurationTwoYears
}

func useKorean(cfg *config.Config) {
	cfg.Language = config.LanguageKorean
	cfg.Paper = config.PaperA4
	cfg.MarginTop = 25

	f := &cfg.Fonts
	f.Default.Family = "Gothic A1"
	f.MonthLabel.Family, f.MonthLabel.Size = "Gothic A1 ExtraBold", 100
	f.WdayLabel.Family, f.WdayLabel.Size = "Gothic A1 Bold", 18
	f.DayNumber.Family, f.DayNumber.Size = "Mulish Bold", 28
	f.DayPlan.Family, f.DayPlan.Size = "", 20
}

// selectMonth reads y/m, or the month offset i counted from the start
// month.
func selectMonth(cfg *config.Config, q url.Values) error {
	if q.Get("y") != "" || q.Get("m") != "" {
		y, err := strconv.Atoi(q.Get("y"))
		if err != nil {
			return &config.ConfigurationError{Field: "y", Reason: fmt.Sprintf("invalid year %q", q.Get("y")), Err: err}
		}
		m, err := strconv.Atoi(q.Get("m"))
		if err != nil {
			return &config.ConfigurationError{Field: "m", Reason: fmt.Sprintf("invalid month %q", q.Get("m")), Err: err}
		}
		cfg.Year, cfg.Month = y, m
		return nil
	}

	if s := q.Get("i"); s != "" {
		i, err := strconv.Atoi(s)
		if err != nil || i < 0 {
			return &config.ConfigurationError{Field: "i", Reason: fmt.Sprintf("invalid month offset %q", s)}
		}
		y, m := cfg.StartYear, time.Month(cfg.StartMonth)
		if cfg.Duration == config.DurationTwoYearsSecond {
			y++
		}
		for ; i > 0; i-- {
			y, m = calendar.NextMonth(y, m)
		}
		cfg.Year, cfg.Month = y, int(m)
	}
	return nil
}
