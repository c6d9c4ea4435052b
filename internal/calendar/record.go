package calendar

import "time"

// OpKind names a recorded draw instruction.
type OpKind string

const (
	OpBeginPage     OpKind = "begin_page"
	OpMonthLabel    OpKind = "month_label"
	OpWeekdayLabels OpKind = "weekday_labels"
	OpGridLines     OpKind = "grid_lines"
	OpDayNumber     OpKind = "day_number"
	OpDayPlan       OpKind = "day_plan"
	OpEndPage       OpKind = "end_page"
)

// Op is one recorded instruction.
type Op struct {
	Kind  OpKind
	Page  YearMonth
	Text  string
	Cell  Cell
	Grid  Grid
	Top   float64
	Wdays [7]string
}

// Recorder is a Sink that keeps every instruction instead of drawing. It
// answers measurements with fixed heights. The web service uses it to
// summarize plans without rendering; tests use it as a fake renderer.
type Recorder struct {
	LabelHeight   float64
	WeekdayHeight float64

	Ops  []Op
	page YearMonth
}

// NewRecorder returns a Recorder with nominal label heights.
func NewRecorder() *Recorder {
	return &Recorder{LabelHeight: 80, WeekdayHeight: 20}
}

func (r *Recorder) BeginPage(year int, month time.Month) error {
	r.page = YearMonth{Year: year, Month: month}
	r.Ops = append(r.Ops, Op{Kind: OpBeginPage, Page: r.page})
	return nil
}

func (r *Recorder) DrawMonthLabel(text string, top float64) float64 {
	r.Ops = append(r.Ops, Op{Kind: OpMonthLabel, Page: r.page, Text: text, Top: top})
	return r.LabelHeight
}

func (r *Recorder) DrawWeekdayLabels(labels [7]string, g Grid) float64 {
	r.Ops = append(r.Ops, Op{Kind: OpWeekdayLabels, Page: r.page, Wdays: labels, Grid: g})
	return r.WeekdayHeight
}

func (r *Recorder) DrawGridLines(g Grid) {
	r.Ops = append(r.Ops, Op{Kind: OpGridLines, Page: r.page, Grid: g})
}

func (r *Recorder) DrawDayNumber(c Cell, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpDayNumber, Page: r.page, Cell: c, Text: text})
}

func (r *Recorder) DrawDayPlan(c Cell, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpDayPlan, Page: r.page, Cell: c, Text: text})
}

func (r *Recorder) EndPage() error {
	r.Ops = append(r.Ops, Op{Kind: OpEndPage, Page: r.page})
	return nil
}

// Count returns how many ops of kind were recorded for page. A zero page
// counts across all pages.
func (r *Recorder) Count(kind OpKind, page YearMonth) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind != kind {
			continue
		}
		if page != (YearMonth{}) && op.Page != page {
			continue
		}
		n++
	}
	return n
}

// Filter returns the ops of kind in recording order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Pages lists the pages begun, in order.
func (r *Recorder) Pages() []YearMonth {
	var out []YearMonth
	for _, op := range r.Ops {
		if op.Kind == OpBeginPage {
			out = append(out, op.Page)
		}
	}
	return out
}
