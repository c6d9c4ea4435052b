package calendar

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"biblecal/internal/config"
)

var weekdayLabelsKo = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// MonthLabel is the page title. Korean pages print the month number.
func MonthLabel(lang config.Language, month time.Month, uppercase bool) string {
	if lang == config.LanguageKorean {
		return strconv.Itoa(int(month))
	}
	name := month.String()
	if uppercase {
		return cases.Upper(language.English).String(name)
	}
	return name
}

// WeekdayLabels are the column headers, Sunday first.
func WeekdayLabels(lang config.Language) [7]string {
	if lang == config.LanguageKorean {
		return weekdayLabelsKo
	}
	var out [7]string
	for i := range out {
		out[i] = time.Weekday(i).String()
	}
	return out
}
