package calendar

import (
	"strconv"
	"time"

	"biblecal/internal/plan"
)

// Paginator lays out month pages and pairs active days with plan entries.
// It shares one cursor across all months of a run.
type Paginator struct {
	run    *Run
	cursor *plan.Cursor
}

// NewPaginator binds a run to the cursor it drains.
func NewPaginator(run *Run, cursor *plan.Cursor) *Paginator {
	return &Paginator{run: run, cursor: cursor}
}

// Layout draws the page furniture (month label, weekday labels, grid) and
// returns the resulting grid.
func (p *Paginator) Layout(sink Sink, year int, month time.Month) Grid {
	r := p.run
	g := Grid{
		Width:     r.Width,
		Height:    r.Height,
		Margin:    r.CellMargin,
		LineWidth: r.LineWidth,
		CellWidth: (r.Width - r.CellMargin*2) / 7,
		Rows:      WeeksInMonth(year, month),
	}

	labelHeight := sink.DrawMonthLabel(MonthLabel(r.Language, month, r.Uppercase), r.MarginTop)
	g.FrameTop = labelHeight + r.MarginTop + r.CellMargin

	wdayHeight := sink.DrawWeekdayLabels(WeekdayLabels(r.Language), g)
	g.Top = g.FrameTop + wdayHeight + r.CellMargin*2
	g.CellHeight = (r.Height - r.CellMargin - g.Top) / float64(g.Rows)

	sink.DrawGridLines(g)
	return g
}

// DrawMonth renders one page into sink.
func (p *Paginator) DrawMonth(sink Sink, year int, month time.Month) error {
	if err := sink.BeginPage(year, month); err != nil {
		return err
	}
	g := p.Layout(sink, year, month)
	if err := p.walk(year, month, sink, g); err != nil {
		return err
	}
	return sink.EndPage()
}

// SkipMonth consumes exactly the entries DrawMonth would, drawing nothing.
func (p *Paginator) SkipMonth(year int, month time.Month) error {
	return p.walk(year, month, nil, Grid{})
}

// walk visits every day of the month. A nil sink means skip mode.
func (p *Paginator) walk(year int, month time.Month, sink Sink, g Grid) error {
	d := FirstDayOfMonth(year, month)
	col, row := WeekdayIndex(d), 0

	for d.Month() == month {
		var cell Cell
		if sink != nil {
			cell = g.Cell(col, row)
			sink.DrawDayNumber(cell, strconv.Itoa(d.Day()))
		}

		if p.run.ConsumesEntry(d) {
			entry, err := p.cursor.PopFront()
			if err != nil {
				return &PlanUnderflowError{Date: d, Needed: p.cursor.Consumed() + 1, Err: err}
			}
			if sink != nil {
				sink.DrawDayPlan(cell, entry.Reading.PrintShort(p.run.Language))
			}
		}

		d = AdvanceOneDay(d)
		col++
		if col >= 7 {
			col = 0
			row++
		}
	}
	return nil
}
