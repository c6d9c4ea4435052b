package calendar

import (
	"time"

	"biblecal/internal/config"
)

// RestDays is the set of weekdays that get no reading.
type RestDays [7]bool

// NewRestDays builds a set from weekdays.
func NewRestDays(days ...time.Weekday) RestDays {
	var r RestDays
	for _, d := range days {
		r[d] = true
	}
	return r
}

// ParseRestDays parses weekday names ("sunday", "sun", "0", ...).
func ParseRestDays(names []string) (RestDays, error) {
	var r RestDays
	for _, name := range names {
		wd, err := config.ParseWeekday(name)
		if err != nil {
			return RestDays{}, err
		}
		r[wd] = true
	}
	return r, nil
}

// IsActiveDay reports whether a day with this weekday gets a reading.
func (r RestDays) IsActiveDay(wd time.Weekday) bool {
	return !r[wd]
}

// Weekdays lists the rest days, Sunday first.
func (r RestDays) Weekdays() []time.Weekday {
	var out []time.Weekday
	for i, rest := range r {
		if rest {
			out = append(out, time.Weekday(i))
		}
	}
	return out
}

// CountActiveDays counts active days in [from, to).
func (r RestDays) CountActiveDays(from, to time.Time) int {
	n := 0
	for d := from; d.Before(to); d = AdvanceOneDay(d) {
		if r.IsActiveDay(d.Weekday()) {
			n++
		}
	}
	return n
}
