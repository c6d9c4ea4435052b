package render

import (
	"time"

	"biblecal/internal/calendar"
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// canvas is the drawing surface of one output format. Coordinates are in
// surface units with the origin at the top-left; text is positioned by the
// top of its line box.
type canvas interface {
	begin(page calendar.YearMonth) error
	text(f *Font, x, top float64, s string, align Align)
	line(x1, y1, x2, y2, width float64)
	rect(x, y, w, h, width float64)
	end() error
	pages() ([]Page, error)
	size() (w, h float64)
}

// Page is one finished output file. A combined PDF is a single Page with a
// zero Month.
type Page struct {
	Month calendar.YearMonth
	Data  []byte
}

// Renderer turns draw instructions into files.
type Renderer interface {
	calendar.Sink
	// Pages finishes and returns the output, in drawing order.
	Pages() ([]Page, error)
	// Close releases font faces and any browser.
	Close()
}

// painter implements calendar.Sink on top of a canvas: it owns text
// measurement and placement, the canvas only draws.
type painter struct {
	c     canvas
	fonts *Fonts
	close func()
}

func newPainter(c canvas, fonts *Fonts) *painter {
	return &painter{c: c, fonts: fonts}
}

func (p *painter) BeginPage(year int, month time.Month) error {
	return p.c.begin(calendar.YearMonth{Year: year, Month: month})
}

func (p *painter) DrawMonthLabel(text string, top float64) float64 {
	f := p.fonts.Get(RoleMonthLabel)
	_, h := f.Measure(text)
	w, _ := p.c.size()
	p.c.text(f, w/2, top, text, AlignCenter)
	return h
}

func (p *painter) DrawWeekdayLabels(labels [7]string, g calendar.Grid) float64 {
	f := p.fonts.Get(RoleWdayLabel)
	maxHeight := 0.0
	for i, label := range labels {
		_, h := f.Measure(label)
		center := calendar.CellX(i, g.CellWidth, g.Margin) + g.CellWidth/2
		p.c.text(f, center, g.FrameTop+g.Margin, label, AlignCenter)
		if h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight
}

func (p *painter) DrawGridLines(g calendar.Grid) {
	bottom := g.Height - g.Margin
	right := g.Width - g.Margin

	p.c.rect(g.Margin, g.FrameTop, g.Width-g.Margin*2, bottom-g.FrameTop, g.LineWidth)
	for col := 1; col < 7; col++ {
		x := calendar.CellX(col, g.CellWidth, g.Margin)
		p.c.line(x, g.FrameTop, x, bottom, g.LineWidth)
	}

	p.c.line(g.Margin, g.Top, right, g.Top, g.LineWidth)
	for row := 1; row < g.Rows; row++ {
		y := calendar.CellY(row, g.CellHeight, g.Top)
		p.c.line(g.Margin, y, right, y, g.LineWidth)
	}
}

func (p *painter) DrawDayNumber(c calendar.Cell, text string) {
	p.c.text(p.fonts.Get(RoleDayNumber), c.X+c.Inset, c.Y+c.Inset, text, AlignLeft)
}

func (p *painter) DrawDayPlan(c calendar.Cell, text string) {
	f := p.fonts.Get(RoleDayPlan)
	lines := Lines(text)
	right := c.X + c.W - c.Inset
	top := c.Y + c.H - c.Inset - float64(len(lines))*f.LineHeight()
	for i, l := range lines {
		p.c.text(f, right, top+float64(i)*f.LineHeight(), l, AlignRight)
	}
}

func (p *painter) EndPage() error { return p.c.end() }

func (p *painter) Pages() ([]Page, error) { return p.c.pages() }

func (p *painter) Close() {
	p.fonts.Close()
	if p.close != nil {
		p.close()
	}
}
