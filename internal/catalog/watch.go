package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog override file when it changes on disk.
type Watcher struct {
	path     string
	onReload func(*Catalog)
	debounce time.Duration
	logger   *zap.SugaredLogger
}

// NewWatcher creates a Watcher for path. onReload receives every successfully
// validated reload; invalid files are logged and ignored.
func NewWatcher(path string, onReload func(*Catalog), logger *zap.SugaredLogger) *Watcher {
	return &Watcher{
		path:     path,
		onReload: onReload,
		debounce: 300 * time.Millisecond, // editors emit several writes per save
		logger:   logger,
	}
}

// Run watches until ctx is cancelled. The parent directory is watched so that
// editors replacing the file by rename are still observed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Infow("catalog watcher started", "path", w.path)

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Infow("catalog watcher stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.logger.Warnw("catalog reload rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Infow("catalog reloaded", "path", w.path)
	w.onReload(c)
}
