package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	appLog "biblecal/internal/log"
)

// Watch reloads the config at path whenever it is written and hands the new
// value to onChange. Invalid edits are logged and ignored so a running
// server keeps its last good config. Watch returns once the watcher is set
// up; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: editors often replace the file via rename, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					appLog.Error("config reload failed; keeping previous config", err, "path", path)
					continue
				}
				appLog.Info("config reloaded", "path", path)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				appLog.Error("config watcher error", err, "path", path)
			}
		}
	}()

	return nil
}
