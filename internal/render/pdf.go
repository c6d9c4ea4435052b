package render

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"biblecal/internal/calendar"
)

// pdfCanvas draws months as PDF pages in points. With split set every
// month becomes its own document; otherwise all months share one.
type pdfCanvas struct {
	width, height float64
	split         bool

	doc   *fpdf.Fpdf
	added map[string]bool
	page  calendar.YearMonth
	out   []Page
}

func newPDFCanvas(width, height float64, split bool) *pdfCanvas {
	return &pdfCanvas{width: width, height: height, split: split}
}

func (c *pdfCanvas) size() (float64, float64) { return c.width, c.height }

func (c *pdfCanvas) newDoc() {
	c.doc = fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: c.width, Ht: c.height},
	})
	c.doc.SetAutoPageBreak(false, 0)
	c.doc.SetMargins(0, 0, 0)
	c.doc.SetCreator("biblecal", true)
	c.added = map[string]bool{}
}

func (c *pdfCanvas) begin(page calendar.YearMonth) error {
	if c.doc == nil {
		c.newDoc()
	}
	c.page = page
	c.doc.AddPage()
	c.doc.SetDrawColor(0, 0, 0)
	c.doc.SetTextColor(0, 0, 0)
	return c.doc.Error()
}

func (c *pdfCanvas) useFont(f *Font) {
	if !c.added[f.Key] {
		c.doc.AddUTF8FontFromBytes(f.Key, "", f.TTF)
		c.added[f.Key] = true
	}
	c.doc.SetFont(f.Key, "", f.Size)
}

func (c *pdfCanvas) text(f *Font, x, top float64, s string, align Align) {
	c.useFont(f)
	w := c.doc.GetStringWidth(s)
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	c.doc.Text(x, top+f.Ascent(), s)
}

func (c *pdfCanvas) line(x1, y1, x2, y2, width float64) {
	c.doc.SetLineWidth(width)
	c.doc.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) rect(x, y, w, h, width float64) {
	c.doc.SetLineWidth(width)
	c.doc.Rect(x, y, w, h, "D")
}

func (c *pdfCanvas) end() error {
	if err := c.doc.Error(); err != nil {
		return err
	}
	if c.split {
		return c.flush(c.page)
	}
	return nil
}

func (c *pdfCanvas) flush(month calendar.YearMonth) error {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return err
	}
	c.out = append(c.out, Page{Month: month, Data: buf.Bytes()})
	c.doc = nil
	return nil
}

// pages closes the shared document on first call.
func (c *pdfCanvas) pages() ([]Page, error) {
	if !c.split && c.doc != nil {
		if err := c.flush(calendar.YearMonth{}); err != nil {
			return nil, err
		}
	}
	return c.out, nil
}
