package config

import (
	"strconv"
	"strings"
	"time"
)

// DurationType is the plan length.
type DurationType string

const (
	DurationOneYear DurationType = "one-year"
	// DurationTwoYears covers both plan years in one run.
	DurationTwoYears DurationType = "two-years"
	// DurationTwoYearsFirst/Second render one year of a two-year plan.
	DurationTwoYearsFirst  DurationType = "two-years-first"
	DurationTwoYearsSecond DurationType = "two-years-second"
)

func (d DurationType) Validate() error {
	switch d {
	case DurationOneYear, DurationTwoYears, DurationTwoYearsFirst, DurationTwoYearsSecond:
		return nil
	}
	return &UnknownEnumError{Kind: "duration", Value: string(d)}
}

// Years is the number of calendar years a single run spans.
func (d DurationType) Years() int {
	if d == DurationTwoYears {
		return 2
	}
	return 1
}

// YearOffset is how many years after the configured start the run begins.
// Only the second year of a two-year plan starts late.
func (d DurationType) YearOffset() int {
	if d == DurationTwoYearsSecond {
		return 1
	}
	return 0
}

// CoverageType selects which part of the Bible the plan spans. It only
// affects plan file selection.
type CoverageType string

const (
	CoverageNewTestament                CoverageType = "new-testament"
	CoverageOldTestament                CoverageType = "old-testament"
	CoverageNewTestamentAndPsalms       CoverageType = "new-testament-and-psalms"
	CoverageWholeBible                  CoverageType = "whole-bible"
	CoverageWholeBibleNewTestamentFirst CoverageType = "whole-bible-new-testament-first"
	CoverageWholeBibleInParallel        CoverageType = "whole-bible-in-parallel"
)

func (c CoverageType) Validate() error {
	switch c {
	case CoverageNewTestament, CoverageOldTestament, CoverageNewTestamentAndPsalms,
		CoverageWholeBible, CoverageWholeBibleNewTestamentFirst, CoverageWholeBibleInParallel:
		return nil
	}
	return &UnknownEnumError{Kind: "coverage", Value: string(c)}
}

// Language picks book names and labels.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageKorean  Language = "korean"
)

func (l Language) Validate() error {
	switch l {
	case LanguageEnglish, LanguageKorean:
		return nil
	}
	return &UnknownEnumError{Kind: "language", Value: string(l)}
}

// PaperType maps to a surface size in points.
type PaperType string

const (
	PaperUSLetter PaperType = "us-letter"
	PaperA4       PaperType = "a4"
)

func (p PaperType) Validate() error {
	switch p {
	case PaperUSLetter, PaperA4:
		return nil
	}
	return &UnknownEnumError{Kind: "paper", Value: string(p)}
}

// Size returns the landscape surface size.
func (p PaperType) Size() (width, height float64, err error) {
	switch p {
	case PaperUSLetter:
		return 1100, 850, nil
	case PaperA4:
		return 1175, 825, nil
	}
	return 0, 0, &UnknownEnumError{Kind: "paper", Value: string(p)}
}

// OutputType is the rendered file format.
type OutputType string

const (
	OutputPDF OutputType = "pdf"
	OutputPNG OutputType = "png"
	OutputSVG OutputType = "svg"
)

func (o OutputType) Validate() error {
	switch o {
	case OutputPDF, OutputPNG, OutputSVG:
		return nil
	}
	return &UnknownEnumError{Kind: "output", Value: string(o)}
}

// Ext is the file extension without the dot.
func (o OutputType) Ext() string { return string(o) }

// ContentType is the HTTP media type.
func (o OutputType) ContentType() string {
	switch o {
	case OutputPDF:
		return "application/pdf"
	case OutputPNG:
		return "image/png"
	default:
		return "image/svg+xml"
	}
}

// PNGBackend selects how PNG pages are rasterized.
type PNGBackend string

const (
	PNGBackendNative   PNGBackend = "native"
	PNGBackendChromium PNGBackend = "chromium"
)

func (b PNGBackend) Validate() error {
	switch b {
	case PNGBackendNative, PNGBackendChromium:
		return nil
	}
	return &UnknownEnumError{Kind: "png_backend", Value: string(b)}
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts english names, common abbreviations and 0..6
// (Sunday=0).
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[key]; ok {
		return wd, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	return 0, &UnknownEnumError{Kind: "weekday", Value: s}
}
