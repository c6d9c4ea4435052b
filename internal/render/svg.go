package render

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"biblecal/internal/calendar"
)

// svgCanvas writes one SVG document per month. Text keeps its font family
// so the viewer picks the real font; placement is anchored, not measured.
type svgCanvas struct {
	width, height float64

	buf  *bytes.Buffer
	svg  *svg.SVG
	page calendar.YearMonth
	out  []Page
}

func newSVGCanvas(width, height float64) *svgCanvas {
	return &svgCanvas{width: width, height: height}
}

func px(v float64) int { return int(math.Round(v)) }

func (c *svgCanvas) size() (float64, float64) { return c.width, c.height }

func (c *svgCanvas) begin(page calendar.YearMonth) error {
	c.buf = &bytes.Buffer{}
	c.svg = svg.New(c.buf)
	c.page = page
	c.svg.Start(px(c.width), px(c.height))
	c.svg.Rect(0, 0, px(c.width), px(c.height), "fill:white")
	return nil
}

func (c *svgCanvas) text(f *Font, x, top float64, s string, align Align) {
	anchor := "start"
	switch align {
	case AlignCenter:
		anchor = "middle"
	case AlignRight:
		anchor = "end"
	}
	style := fmt.Sprintf("font-family:'%s',sans-serif;font-size:%gpx;text-anchor:%s;fill:black", f.Family, f.Size, anchor)
	c.svg.Text(px(x), px(top+f.Ascent()), s, style)
}

func (c *svgCanvas) line(x1, y1, x2, y2, width float64) {
	c.svg.Line(px(x1), px(y1), px(x2), px(y2), fmt.Sprintf("stroke:black;stroke-width:%g", width))
}

func (c *svgCanvas) rect(x, y, w, h, width float64) {
	c.svg.Rect(px(x), px(y), px(w), px(h), fmt.Sprintf("fill:none;stroke:black;stroke-width:%g", width))
}

func (c *svgCanvas) end() error {
	c.svg.End()
	c.out = append(c.out, Page{Month: c.page, Data: c.buf.Bytes()})
	c.buf, c.svg = nil, nil
	return nil
}

func (c *svgCanvas) pages() ([]Page, error) { return c.out, nil }
