package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"biblecal/internal/config"
	appLog "biblecal/internal/log"
)

// ErrPlanNotFound means no plan file exists for the requested coverage,
// duration and rest days.
var ErrPlanNotFound = errors.New("plan: reading plan file not found")

// Loader reads plan files from a local directory or an http(s) base URL.
type Loader struct {
	base    string
	fetcher *Fetcher
}

// NewLoader creates a loader for base; remote files are cached in cacheDir.
func NewLoader(base, cacheDir string) *Loader {
	l := &Loader{base: base}
	if isRemote(base) {
		l.fetcher = NewFetcher(cacheDir)
	}
	return l
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// Load reads every plan file the configuration needs and returns one
// cursor over all of them, first year first.
func (l *Loader) Load(ctx context.Context, cfg *config.Config) (*Cursor, []File, error) {
	files, err := Files(cfg)
	if err != nil {
		return nil, nil, err
	}

	var entries []Entry
	for _, f := range files {
		data, err := l.read(ctx, f.Name)
		if err != nil {
			return nil, files, err
		}
		rows, err := Parse(bytes.NewReader(data), f.Name)
		if err != nil {
			return nil, files, err
		}
		if len(rows) != f.ActiveDays {
			appLog.Info("plan row count differs from active days", "file", f.Name, "rows", len(rows), "active_days", f.ActiveDays)
		}
		appLog.Debug("plan loaded", "file", f.Name, "rows", len(rows))
		entries = append(entries, rows...)
	}
	return NewCursor(entries), files, nil
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	if l.fetcher != nil {
		body, _, err := l.fetcher.Fetch(ctx, strings.TrimRight(l.base, "/")+"/"+name)
		return body, err
	}

	data, err := os.ReadFile(filepath.Join(l.base, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return data, err
}
