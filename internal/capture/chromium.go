package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one page capture.
const DefaultTimeout = 30 * time.Second

// Options defines one SVG rasterization.
type Options struct {
	// Width and Height are the viewport in pixels; they should match the
	// SVG's own size.
	Width  int
	Height int

	// Timeout bounds the capture. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Browser is a headless Chromium shared by several captures. Each capture
// opens its own tab.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewBrowser allocates a browser context. Chromium starts lazily on the
// first capture.
func NewBrowser(parent context.Context) *Browser {
	ctx, cancel := chromedp.NewContext(parent)
	return &Browser{ctx: ctx, cancel: cancel}
}

// Close shuts the browser down.
func (b *Browser) Close() { b.cancel() }

// RasterizeSVG loads svg as a data URL and takes a PNG screenshot of the
// viewport.
func (b *Browser) RasterizeSVG(svg []byte, opts Options) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid viewport %dx%d", opts.Width, opts.Height)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	// The browser is started on b.ctx without a deadline; a timeout on the
	// first Run would kill the whole browser when it fires.
	b.startOnce.Do(func() { b.startErr = chromedp.Run(b.ctx) })
	if b.startErr != nil {
		return nil, fmt.Errorf("capture: start chromium: %w", b.startErr)
	}

	ctx, cancel := chromedp.NewContext(b.ctx)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	url := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(url),
		chromedp.WaitVisible("svg", chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: chromedp run failed: %w", err)
	}
	return png, nil
}
