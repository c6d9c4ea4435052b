package render

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"biblecal/internal/calendar"
)

// pngCanvas rasterizes months in-process, one pixel per surface unit.
type pngCanvas struct {
	width, height float64

	img  *image.RGBA
	page calendar.YearMonth
	out  []Page
}

func newPNGCanvas(width, height float64) *pngCanvas {
	return &pngCanvas{width: width, height: height}
}

func (c *pngCanvas) size() (float64, float64) { return c.width, c.height }

func (c *pngCanvas) begin(page calendar.YearMonth) error {
	c.page = page
	c.img = image.NewRGBA(image.Rect(0, 0, px(c.width), px(c.height)))
	draw.Draw(c.img, c.img.Bounds(), image.White, image.Point{}, draw.Src)
	return nil
}

func (c *pngCanvas) text(f *Font, x, top float64, s string, align Align) {
	switch align {
	case AlignCenter:
		x -= f.Width(s) / 2
	case AlignRight:
		x -= f.Width(s)
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.Black,
		Face: f.Face(),
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x * 64)),
			Y: fixed.Int26_6(math.Round((top + f.Ascent()) * 64)),
		},
	}
	d.DrawString(s)
}

// line draws an axis-aligned stroke centered on the segment.
func (c *pngCanvas) line(x1, y1, x2, y2, width float64) {
	half := math.Max(width, 1) / 2
	r := image.Rect(
		px(math.Min(x1, x2)-half), px(math.Min(y1, y2)-half),
		px(math.Max(x1, x2)+half), px(math.Max(y1, y2)+half),
	)
	draw.Draw(c.img, r, image.Black, image.Point{}, draw.Src)
}

func (c *pngCanvas) rect(x, y, w, h, width float64) {
	c.line(x, y, x+w, y, width)
	c.line(x, y+h, x+w, y+h, width)
	c.line(x, y, x, y+h, width)
	c.line(x+w, y, x+w, y+h, width)
}

func (c *pngCanvas) end() error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return err
	}
	c.out = append(c.out, Page{Month: c.page, Data: buf.Bytes()})
	c.img = nil
	return nil
}

func (c *pngCanvas) pages() ([]Page, error) { return c.out, nil }
