package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblecal/internal/calendar"
	"biblecal/internal/config"
	"biblecal/internal/model"
	"biblecal/internal/plan"
)

func testSetup(t *testing.T, n int) (*config.Config, *calendar.Run, *plan.Cursor) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StartYear, cfg.StartMonth, cfg.StartDay = 2024, 1, 1
	cfg.DaysToRest = []string{"sunday"}
	cfg.Year, cfg.Month = 2024, 3

	run, err := calendar.NewRun(cfg)
	require.NoError(t, err)

	entries := make([]plan.Entry, n)
	for i := range entries {
		entries[i] = plan.Entry{Reading: model.DailyReading{Units: []model.ReadingUnit{
			{FromBook: "Proverbs", FromChapter: strconv.Itoa(i%31 + 1)},
		}}}
	}
	return cfg, run, plan.NewCursor(entries)
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = b
	}
	return out
}

func TestWriteBundle(t *testing.T) {
	cfg, run, cursor := testSetup(t, 400)
	stamp := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, cfg, run, cursor, Options{Stamp: stamp}))
	assert.Equal(t, 0, cursor.Consumed(), "caller's cursor stays untouched")

	files := readZip(t, buf.Bytes())
	assert.Len(t, files, 1+12+12+1)

	assert.True(t, bytes.HasPrefix(files[PDFName], []byte("%PDF-")))
	for m := 1; m <= 12; m++ {
		key := calendar.YearMonth{Year: 2024, Month: time.Month(m)}.Key()
		assert.True(t, bytes.HasPrefix(files[MonthDir+key+".png"], []byte("\x89PNG")), key)
		assert.Contains(t, string(files[MonthDir+key+".svg"]), "<svg", key)
	}

	feed := string(files[ICSName])
	assert.Equal(t, 314, strings.Count(feed, "BEGIN:VEVENT"))
	assert.Contains(t, feed, "DTSTAMP:20240501T000000Z")
}

func TestWriteBundleUnderflow(t *testing.T) {
	cfg, run, cursor := testSetup(t, 10)

	var buf bytes.Buffer
	err := Write(context.Background(), &buf, cfg, run, cursor, Options{})
	require.Error(t, err)

	var ue *calendar.PlanUnderflowError
	assert.True(t, errors.As(err, &ue), "got %v", err)
	assert.ErrorIs(t, err, plan.ErrEmptyCursor)
}
