package calendar

import (
	"fmt"
	"time"

	"biblecal/internal/config"
	"biblecal/internal/plan"
)

// Run is the per-run view of a configuration: the plan window, the rest
// days and the page geometry. It holds no iteration state, so one Run can
// be reused for any number of cursors.
type Run struct {
	Language  config.Language
	Uppercase bool
	Rest      RestDays

	// Start and End bound the plan window [Start, End). For the second
	// year of a two-year plan Start is one year after the configured date.
	Start time.Time
	End   time.Time
	Years int

	// Selected is the single month to draw; zero means the full range.
	Selected YearMonth

	Width, Height float64
	CellMargin    float64
	MarginTop     float64
	LineWidth     float64
}

// NewRun validates cfg and derives a Run from it.
func NewRun(cfg *config.Config) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rest, err := ParseRestDays(cfg.DaysToRest)
	if err != nil {
		return nil, err
	}
	width, height, err := cfg.Paper.Size()
	if err != nil {
		return nil, err
	}

	start := cfg.StartDate().AddDate(cfg.Duration.YearOffset(), 0, 0)
	years := cfg.Duration.Years()
	r := &Run{
		Language:   cfg.Language,
		Uppercase:  cfg.MonthLabelUppercase,
		Rest:       rest,
		Start:      start,
		End:        start.AddDate(years, 0, 0),
		Years:      years,
		Width:      width,
		Height:     height,
		CellMargin: cfg.CellMargin,
		MarginTop:  cfg.MarginTop,
		LineWidth:  cfg.LineWidth,
	}

	if cfg.HasSelectedMonth() {
		sel := YearMonth{Year: cfg.Year, Month: time.Month(cfg.Month)}
		if !r.InRange(sel.Year, sel.Month) {
			return nil, &config.ConfigurationError{
				Field:  "month",
				Reason: fmt.Sprintf("%s is outside the reading range %s..%s", sel.Key(), r.first().Key(), r.End.AddDate(0, 0, -1).Format("2006-01-02")),
			}
		}
		r.Selected = sel
	}
	return r, nil
}

// WithoutSelection returns a copy drawing the full range.
func (r *Run) WithoutSelection() *Run {
	out := *r
	out.Selected = YearMonth{}
	return &out
}

// HasSelection reports whether a single month was selected.
func (r *Run) HasSelection() bool {
	return r.Selected != (YearMonth{})
}

func (r *Run) first() YearMonth {
	return YearMonth{Year: r.Start.Year(), Month: r.Start.Month()}
}

// IsReadingMonth reports whether (year, month) is still inside the range
// when iterating forward from the start month. The boundary month one (or
// two) years later counts only when the plan starts mid-month.
func (r *Run) IsReadingMonth(year int, month time.Month) bool {
	lastYear := r.Start.Year() + r.Years
	switch {
	case year < lastYear:
		return true
	case year == lastYear:
		if month < r.Start.Month() {
			return true
		}
		return month == r.Start.Month() && r.Start.Day() > 1
	}
	return false
}

// IsSelectedMonth reports whether (year, month) is the selected month.
func (r *Run) IsSelectedMonth(year int, month time.Month) bool {
	return r.Selected == YearMonth{Year: year, Month: month}
}

// InRange reports whether the month is on or after the start month and a
// reading month.
func (r *Run) InRange(year int, month time.Month) bool {
	ym := YearMonth{Year: year, Month: month}
	return !ym.Before(r.first()) && r.IsReadingMonth(year, month)
}

// ConsumesEntry reports whether day d takes a plan entry: it must be an
// active weekday inside the plan window.
func (r *Run) ConsumesEntry(d time.Time) bool {
	return r.Rest.IsActiveDay(d.Weekday()) && !d.Before(r.Start) && d.Before(r.End)
}

// Months lists the pages this run draws.
func (r *Run) Months() []YearMonth {
	if r.HasSelection() {
		return []YearMonth{r.Selected}
	}
	var out []YearMonth
	for y, m := r.Start.Year(), r.Start.Month(); r.IsReadingMonth(y, m); y, m = NextMonth(y, m) {
		out = append(out, YearMonth{Year: y, Month: m})
	}
	return out
}

// Draw drives the paginator: the selected month after fast-forwarding the
// cursor past the months before it, or every month of the range.
func (r *Run) Draw(cursor *plan.Cursor, sink Sink) error {
	p := NewPaginator(r, cursor)

	y, m := r.Start.Year(), r.Start.Month()
	if r.HasSelection() {
		for !r.IsSelectedMonth(y, m) {
			if !r.IsReadingMonth(y, m) {
				return &config.ConfigurationError{Field: "month", Reason: "selected month is outside the reading range"}
			}
			if err := p.SkipMonth(y, m); err != nil {
				return err
			}
			y, m = NextMonth(y, m)
		}
		return p.DrawMonth(sink, y, m)
	}

	for ; r.IsReadingMonth(y, m); y, m = NextMonth(y, m) {
		if err := p.DrawMonth(sink, y, m); err != nil {
			return err
		}
	}
	return nil
}

// EachPlanDay pairs plan entries with active days from the start of the
// window, in order, until the window ends or the cursor runs dry. It is
// the date walk used by the iCalendar export.
func (r *Run) EachPlanDay(cursor *plan.Cursor, fn func(day time.Time, e plan.Entry) error) error {
	for d := r.Start; d.Before(r.End) && !cursor.Empty(); d = AdvanceOneDay(d) {
		if !r.Rest.IsActiveDay(d.Weekday()) {
			continue
		}
		e, err := cursor.PopFront()
		if err != nil {
			return err
		}
		if err := fn(d, e); err != nil {
			return err
		}
	}
	return nil
}
