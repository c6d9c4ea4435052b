package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"biblecal/internal/calendar"
	"biblecal/internal/capture"
	"biblecal/internal/config"
	"biblecal/internal/ics"
	appLog "biblecal/internal/log"
	"biblecal/internal/plan"
	"biblecal/internal/render"
)

// Entry names inside the archive.
const (
	PDFName = "calendar.pdf"
	ICSName = "calendar.ics"
	// MonthDir holds one PNG and one SVG per month, named YYYY-MM.
	MonthDir = "months/"
)

// Options tune Write.
type Options struct {
	// Browser is shared by the chromium PNG backend.
	Browser *capture.Browser
	// Stamp is written as the DTSTAMP of every event. Zero means now.
	Stamp time.Time
}

type file struct {
	name string
	data []byte
}

// Write renders the full reading range of cfg as a PDF, per-month PNG and
// SVG pages and an iCalendar feed, and writes them to w as a zip archive.
// A selected month in cfg is ignored. Every format drains its own copy of
// cursor; cursor itself is left untouched.
func Write(ctx context.Context, w io.Writer, cfg *config.Config, run *calendar.Run, cursor *plan.Cursor, opts Options) error {
	run = run.WithoutSelection()
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}

	var pdfFiles, pngFiles, svgFiles, icsFiles []file

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pdfFiles, err = renderFormat(gctx, cfg, run, cursor.Fresh(), config.OutputPDF, opts.Browser)
		return err
	})
	g.Go(func() error {
		var err error
		pngFiles, err = renderFormat(gctx, cfg, run, cursor.Fresh(), config.OutputPNG, opts.Browser)
		return err
	})
	g.Go(func() error {
		var err error
		svgFiles, err = renderFormat(gctx, cfg, run, cursor.Fresh(), config.OutputSVG, opts.Browser)
		return err
	})
	g.Go(func() error {
		var buf bytes.Buffer
		if err := ics.Write(&buf, run, cursor.Fresh(), stamp); err != nil {
			return fmt.Errorf("bundle: ics: %w", err)
		}
		icsFiles = []file{{name: ICSName, data: buf.Bytes()}}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, group := range [][]file{pdfFiles, pngFiles, svgFiles, icsFiles} {
		for _, f := range group {
			if err := writeEntry(zw, f, stamp); err != nil {
				return err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("bundle: close zip: %w", err)
	}

	appLog.Info("bundle written", "months", len(svgFiles), "start", run.Start.Format("2006-01-02"))
	return nil
}

func renderFormat(ctx context.Context, cfg *config.Config, run *calendar.Run, cursor *plan.Cursor, out config.OutputType, browser *capture.Browser) ([]file, error) {
	pages, err := render.Draw(ctx, cfg, run, cursor, render.Options{Output: out, Browser: browser})
	if err != nil {
		return nil, fmt.Errorf("bundle: %s: %w", out, err)
	}

	files := make([]file, 0, len(pages))
	for _, p := range pages {
		name := PDFName
		if out != config.OutputPDF {
			name = MonthDir + p.Month.Key() + "." + out.Ext()
		}
		files = append(files, file{name: name, data: p.Data})
	}
	return files, nil
}

func writeEntry(zw *zip.Writer, f file, stamp time.Time) error {
	method := zip.Deflate
	if strings.HasSuffix(f.name, ".png") {
		method = zip.Store
	}
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.name, Method: method, Modified: stamp})
	if err != nil {
		return fmt.Errorf("bundle: %s: %w", f.name, err)
	}
	if _, err := fw.Write(f.data); err != nil {
		return fmt.Errorf("bundle: %s: %w", f.name, err)
	}
	return nil
}
