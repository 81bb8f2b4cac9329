// Package fsnotify triggers ingestion when a local manifest file changes.
package fsnotify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philschmid/gemdocs"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 200 * time.Millisecond

// ManifestWatcher starts an ingestion run whenever the manifest file is
// written, created or renamed into place.
type ManifestWatcher struct {
	Path     string
	Ingester gemdocs.Ingester
	Debounce time.Duration
	Logger   *slog.Logger

	watcher *fsnotify.Watcher
}

// NewManifestWatcher creates a watcher for the manifest at path.
func NewManifestWatcher(path string, ingester gemdocs.Ingester, logger *slog.Logger) *ManifestWatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ManifestWatcher{
		Path:     path,
		Ingester: ingester,
		Debounce: DefaultDebounce,
		Logger:   logger,
	}
}

// Open begins watching. The parent directory is watched rather than the
// file so editors that replace the file on save are still seen.
func (w *ManifestWatcher) Open() error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve manifest path: %w", err)
	}
	w.Path = abs

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.watcher = watcher
	return nil
}

// Close stops watching.
func (w *ManifestWatcher) Close() error {
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// Run dispatches manifest changes until ctx is done or the watcher closes.
func (w *ManifestWatcher) Run(ctx context.Context) error {
	if w.watcher == nil {
		return fmt.Errorf("manifest watcher not open")
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.Logger.Debug("manifest changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("manifest watcher error", "err", err)

		case <-timer.C:
			w.trigger(ctx)
		}
	}
}

func (w *ManifestWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *ManifestWatcher) trigger(ctx context.Context) {
	err := w.Ingester.Start(ctx)
	switch gemdocs.ErrorCode(err) {
	case "":
		w.Logger.Info("manifest changed, refresh started", "path", w.Path)
	case gemdocs.EINPROGRESS:
		w.Logger.Info("manifest changed during a refresh, skipping", "path", w.Path)
	default:
		w.Logger.Error("manifest refresh", "err", err)
	}
}
