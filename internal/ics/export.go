package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"biblecal/internal/calendar"
	"biblecal/internal/config"
	appLog "biblecal/internal/log"
	"biblecal/internal/plan"
)

// UIDDomain suffixes every event UID.
const UIDDomain = "biblereadingcalendar.com"

const dateLayout = "20060102"

// ProductID identifies the generator, with the language code at the end.
func ProductID(lang config.Language) string {
	code := "EN"
	if lang == config.LanguageKorean {
		code = "KO"
	}
	return "-//Bible Reading Calendar//" + UIDDomain + "//" + code
}

// CalendarName is the localized X-WR-CALNAME.
func CalendarName(lang config.Language) string {
	if lang == config.LanguageKorean {
		return "성경 읽기 달력"
	}
	return "Bible Reading Calendar"
}

// Build turns the plan into a calendar: one all-day event per active day,
// from the start of the plan window until the plan runs out. SUMMARY is
// the single-line reading, DESCRIPTION lists the full book names one per
// line. stamp is written as DTSTAMP.
func Build(run *calendar.Run, cursor *plan.Cursor, stamp time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID(run.Language))
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(CalendarName(run.Language))
	cal.SetXWRTimezone("Etc/GMT")

	count := 0
	err := run.EachPlanDay(cursor, func(day time.Time, e plan.Entry) error {
		ev := cal.AddEvent(day.Format(dateLayout) + "@" + UIDDomain)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(calendar.AdvanceOneDay(day))
		ev.SetSummary(e.Reading.PrintSingleLine(run.Language))
		ev.SetDescription(e.Reading.Print(run.Language))
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if left := cursor.Len(); left > 0 {
		appLog.Info("ics: plan entries left after the reading window", "left", left)
	}
	appLog.Debug("ics: calendar built", "events", count)
	return cal, nil
}

// Write builds the calendar and serializes it to w.
func Write(w io.Writer, run *calendar.Run, cursor *plan.Cursor, stamp time.Time) error {
	cal, err := Build(run, cursor, stamp)
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}
