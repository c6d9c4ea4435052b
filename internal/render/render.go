package render

import (
	"context"

	"biblecal/internal/calendar"
	"biblecal/internal/capture"
	"biblecal/internal/config"
	"biblecal/internal/plan"
)

// Options tune New beyond what the configuration says.
type Options struct {
	// Output overrides cfg.Output when set.
	Output config.OutputType
	// SplitPDF writes one PDF per month instead of one multi-page PDF.
	SplitPDF bool
	// Browser is reused by the chromium PNG backend; if nil, one is started
	// for this renderer and closed with it.
	Browser *capture.Browser
}

// New returns a renderer for the configured output type and paper.
func New(ctx context.Context, cfg *config.Config, opts Options) (Renderer, error) {
	out := opts.Output
	if out == "" {
		out = cfg.Output
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	width, height, err := cfg.Paper.Size()
	if err != nil {
		return nil, err
	}
	fonts, err := LoadFonts(cfg.Fonts)
	if err != nil {
		return nil, err
	}

	switch out {
	case config.OutputPDF:
		return newPainter(newPDFCanvas(width, height, opts.SplitPDF), fonts), nil
	case config.OutputSVG:
		return newPainter(newSVGCanvas(width, height), fonts), nil
	}

	if cfg.PNGBackend != config.PNGBackendChromium {
		return newPainter(newPNGCanvas(width, height), fonts), nil
	}

	p := newPainter(nil, fonts)
	browser := opts.Browser
	if browser == nil {
		browser = capture.NewBrowser(ctx)
		p.close = browser.Close
	}
	p.c = &chromiumCanvas{svgCanvas: newSVGCanvas(width, height), browser: browser}
	return p, nil
}

// chromiumCanvas draws SVG and has headless Chromium rasterize each page,
// so configured font families render with the system's real fonts.
type chromiumCanvas struct {
	*svgCanvas
	browser *capture.Browser
}

func (c *chromiumCanvas) end() error {
	if err := c.svgCanvas.end(); err != nil {
		return err
	}
	last := &c.svgCanvas.out[len(c.svgCanvas.out)-1]
	data, err := c.browser.RasterizeSVG(last.Data, capture.Options{
		Width:  px(c.width),
		Height: px(c.height),
	})
	if err != nil {
		return err
	}
	last.Data = data
	return nil
}

// Draw renders run with a new renderer and returns the finished pages.
func Draw(ctx context.Context, cfg *config.Config, run *calendar.Run, cursor *plan.Cursor, opts Options) ([]Page, error) {
	r, err := New(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := run.Draw(cursor, r); err != nil {
		return nil, err
	}
	return r.Pages()
}
