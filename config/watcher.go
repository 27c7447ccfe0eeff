package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for further changes
// before reapplying the overlay.
const defaultDebounce = 500 * time.Millisecond

// Watcher reapplies an overlay file to a registry whenever the file
// changes. It watches the file's directory, since editors typically
// replace the file rather than write it in place, and debounces bursts
// of events into a single reapplication.
//
// The watcher is an external collaborator of the registry: it only calls
// Registry.Set through the loader, so every reloaded value passes the
// usual validation.
type Watcher struct {
	reg      *Registry
	loader   *Loader
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool

	applied chan struct{}
}

// NewWatcher creates a watcher for the overlay file at path. If logger
// is nil, slog.Default() is used.
func NewWatcher(reg *Registry, path string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		reg:      reg,
		loader:   NewLoader(logger),
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		watcher:  fsw,
		logger:   logger,
		applied:  make(chan struct{}, 1),
	}, nil
}

// Applied signals each time the overlay has been reapplied. The channel
// has a single-slot buffer; a slow receiver misses intermediate
// applications but always learns about the latest one.
func (w *Watcher) Applied() <-chan struct{} {
	return w.applied
}

// Start applies the overlay once and begins watching for changes until
// ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	if _, err := os.Stat(w.path); err == nil {
		if err := w.loader.Apply(w.reg, w.path); err != nil {
			w.logger.Warn("Failed to apply config overlay",
				slog.String("path", w.path), slog.String("error", err.Error()))
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Config overlay watcher started",
		slog.String("path", w.path),
		slog.Duration("debounce", w.debounce))
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.pendingMu.Lock()
				w.pending = true
				w.pendingMu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config overlay watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// flushPending reapplies the overlay if a change was seen since the last
// tick.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()
	if !pending {
		return
	}

	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		// Deleted overlays leave the registry as is; the previously
		// applied values stay until the process restarts.
		w.logger.Warn("Config overlay removed", slog.String("path", w.path))
		return
	}

	if err := w.loader.Apply(w.reg, w.path); err != nil {
		w.logger.Warn("Failed to reapply config overlay",
			slog.String("path", w.path), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("Config overlay reapplied", slog.String("path", w.path))

	select {
	case w.applied <- struct{}{}:
	default:
	}
}
