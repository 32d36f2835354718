package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor save bursts (truncate, write, rename).
var watchDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes on disk and passes the result to
// onChange. The parent directory is watched so atomic replaces are seen.
// Invalid or missing files are logged and skipped. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	if onChange == nil {
		return fmt.Errorf("watch config: onChange is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: resolve path: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("watch config: mkdir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config: add %s: %w", dir, err)
	}
	slog.Debug("[DEBUG-CONFIG] watching config file", "path", absPath)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("[WARN-CONFIG] config watcher error", "path", absPath, "error", err)
		case <-timer.C:
			// Load maps a missing file to defaults; a file moved away must not
			// reset the running config.
			if _, err := os.Stat(absPath); err != nil {
				slog.Warn("[WARN-CONFIG] config file unavailable, keeping current config", "path", absPath, "error", err)
				continue
			}
			cfg, err := Load(absPath)
			if err != nil {
				slog.Warn("[WARN-CONFIG] ignoring invalid config change", "path", absPath, "error", err)
				continue
			}
			slog.Info("[CONFIG] config file changed on disk", "path", absPath)
			onChange(cfg)
		}
	}
}
