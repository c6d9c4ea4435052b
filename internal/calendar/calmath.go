package calendar

import "time"

// Day is the step of the date walk. Dates are kept in UTC so a step is
// always exactly 24 hours, whatever the host timezone does with DST.
const Day = 24 * time.Hour

// AdvanceOneDay returns t moved forward by exactly one day.
func AdvanceOneDay(t time.Time) time.Time {
	return t.Add(Day)
}

// FirstDayOfMonth returns midnight UTC on the 1st of the given month.
func FirstDayOfMonth(year int, month time.Month) time.Time {
	return Date(year, month, 1)
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex is the grid column of t: Sunday=0 .. Saturday=6.
func WeekdayIndex(t time.Time) int {
	return int(t.Weekday())
}

// DaysInMonth counts the days of the month, leap Februaries included.
func DaysInMonth(year int, month time.Month) int {
	return FirstDayOfMonth(year, month).AddDate(0, 1, -1).Day()
}

// WeeksInMonth is the number of grid rows the month needs: the partial
// first week, the full weeks after it and a trailing partial week if any.
// The result is always 4, 5 or 6.
func WeeksInMonth(year int, month time.Month) int {
	firstWeek := 7 - WeekdayIndex(FirstDayOfMonth(year, month))
	remaining := DaysInMonth(year, month) - firstWeek
	weeks := remaining/7 + 1
	if remaining%7 > 0 {
		weeks++
	}
	return weeks
}

// CellX is the left edge of grid column index.
func CellX(index int, cellWidth, margin float64) float64 {
	return float64(index)*cellWidth + margin
}

// CellY is the top edge of grid row index.
func CellY(index int, cellHeight, yOffset float64) float64 {
	return float64(index)*cellHeight + yOffset
}

// NextMonth steps one month forward, wrapping December into January of
// the following year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	month++
	if month > time.December {
		return year + 1, time.January
	}
	return year, month
}

// YearMonth identifies one calendar page.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Key formats the month as YYYY-MM.
func (ym YearMonth) Key() string {
	return FirstDayOfMonth(ym.Year, ym.Month).Format("2006-01")
}
