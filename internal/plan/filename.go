package plan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"biblecal/internal/config"
)

// File describes one plan file a run needs.
type File struct {
	// Name is the base file name, e.g. whole-bible_1-year_313.csv.
	Name string
	// YearIndex is 0 for the first plan year, 1 for the second.
	YearIndex int
	// Start is the first day this file covers; it covers one year.
	Start time.Time
	// ActiveDays is the number of rows the file is expected to hold.
	ActiveDays int
}

// DurationToken is the duration part of a plan file name.
func DurationToken(d config.DurationType, yearIndex int) (string, error) {
	switch d {
	case config.DurationOneYear:
		return "1-year", nil
	case config.DurationTwoYears:
		if yearIndex == 0 {
			return "2-years-1st", nil
		}
		return "2-years-2nd", nil
	case config.DurationTwoYearsFirst:
		return "2-years-1st", nil
	case config.DurationTwoYearsSecond:
		return "2-years-2nd", nil
	}
	return "", &config.UnknownEnumError{Kind: "duration", Value: string(d)}
}

// FileName joins coverage, duration token and active-day count.
func FileName(coverage config.CoverageType, duration config.DurationType, yearIndex, activeDays int) (string, error) {
	if err := coverage.Validate(); err != nil {
		return "", err
	}
	token, err := DurationToken(duration, yearIndex)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{string(coverage), token, strconv.Itoa(activeDays)}, "_") + ".csv", nil
}

// Files lists the plan files the configuration needs, in load order. A
// two-year run needs both years; every other duration needs one file.
func Files(cfg *config.Config) ([]File, error) {
	rest, err := cfg.RestWeekdays()
	if err != nil {
		return nil, err
	}

	start := cfg.StartDate()
	var indexes []int
	switch cfg.Duration {
	case config.DurationTwoYears:
		indexes = []int{0, 1}
	case config.DurationTwoYearsSecond:
		indexes = []int{1}
	default:
		indexes = []int{0}
	}

	files := make([]File, 0, len(indexes))
	for _, yi := range indexes {
		yearStart := start.AddDate(yi, 0, 0)
		n, err := CountActiveDays(yearStart, yearStart.AddDate(1, 0, 0), rest)
		if err != nil {
			return nil, err
		}
		name, err := FileName(cfg.Coverage, cfg.Duration, yi, n)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: name, YearIndex: yi, Start: yearStart, ActiveDays: n})
	}
	return files, nil
}

func (f File) String() string {
	return fmt.Sprintf("%s (from %s, %d days)", f.Name, f.Start.Format("2006-01-02"), f.ActiveDays)
}
