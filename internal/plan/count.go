package plan

import (
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func activeWeekdays(rest []time.Weekday) []rrule.Weekday {
	skip := make(map[time.Weekday]bool, len(rest))
	for _, wd := range rest {
		skip[wd] = true
	}
	byday := make([]rrule.Weekday, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !skip[wd] {
			byday = append(byday, rruleWeekdays[wd])
		}
	}
	return byday
}

// ActiveDayRule is the daily recurrence of reading days in [from, to).
// At least one weekday must remain active.
func ActiveDayRule(from, to time.Time, rest []time.Weekday) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   from.UTC(),
		Until:     to.UTC().Add(-time.Second),
		Byweekday: activeWeekdays(rest),
	})
}

// CountActiveDays counts the reading days in [from, to), which is also the
// number of rows the matching plan file must have.
func CountActiveDays(from, to time.Time, rest []time.Weekday) (int, error) {
	if !from.Before(to) || len(activeWeekdays(rest)) == 0 {
		return 0, nil
	}
	r, err := ActiveDayRule(from, to, rest)
	if err != nil {
		return 0, err
	}
	return len(r.All()), nil
}
