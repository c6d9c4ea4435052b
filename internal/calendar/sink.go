package calendar

import "time"

// Grid is the geometry of one month page. All values are in surface
// units (points for PDF, pixels for PNG and SVG).
type Grid struct {
	Width, Height float64
	// Margin is the cell margin: page side inset and text inset in cells.
	Margin    float64
	LineWidth float64

	// FrameTop is where the frame starts, right under the month label.
	FrameTop float64
	// Top is the rule under the weekday labels; row 0 starts here.
	Top float64

	CellWidth  float64
	CellHeight float64
	Rows       int
}

// Cell returns the box of grid cell (col, row).
func (g Grid) Cell(col, row int) Cell {
	return Cell{
		Col:   col,
		Row:   row,
		X:     CellX(col, g.CellWidth, g.Margin),
		Y:     CellY(row, g.CellHeight, g.Top),
		W:     g.CellWidth,
		H:     g.CellHeight,
		Inset: g.Margin,
	}
}

// Cell is one day box. Day numbers go at the top-left corner inset by
// Inset; plan text is right aligned against the bottom-right corner, also
// inset by Inset.
type Cell struct {
	Col, Row   int
	X, Y, W, H float64
	Inset      float64
}

// Sink receives the draw instructions of a month page, in order:
// BeginPage, DrawMonthLabel, DrawWeekdayLabels, DrawGridLines, then the
// day numbers and plan texts in calendar order, then EndPage.
//
// Text measurement belongs to the sink: the label calls return the height
// of what they drew so the layout can flow below it.
type Sink interface {
	BeginPage(year int, month time.Month) error
	// DrawMonthLabel centers text horizontally with its top at top.
	DrawMonthLabel(text string, top float64) (height float64)
	// DrawWeekdayLabels centers each label in its column, starting at
	// g.FrameTop + g.Margin.
	DrawWeekdayLabels(labels [7]string, g Grid) (height float64)
	// DrawGridLines draws the frame, column separators, the rule under the
	// weekday labels and the row separators.
	DrawGridLines(g Grid)
	DrawDayNumber(c Cell, text string)
	DrawDayPlan(c Cell, text string)
	EndPage() error
}
