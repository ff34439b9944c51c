package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/thescoop/internal/content"
)

const DefaultDebounce = 500 * time.Millisecond

// BuildFunc regenerates output after a change.
type BuildFunc func(ctx context.Context) error

// Regenerator rebuilds once up front and again after every burst of
// changes to the post files in a directory.
type Regenerator struct {
	dir      string
	build    BuildFunc
	debounce time.Duration
	logger   *slog.Logger
}

// Option customises a Regenerator.
type Option func(*Regenerator)

// WithDebounce sets how long the directory must stay quiet before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(r *Regenerator) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// WithLogger sets the logger for change and build messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Regenerator) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Regenerator watching dir.
func New(dir string, build BuildFunc, opts ...Option) *Regenerator {
	r := &Regenerator{
		dir:      dir,
		build:    build,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until ctx is cancelled. Build failures are logged and do not
// stop the watcher.
func (r *Regenerator) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}
	r.logger.Info("watching content directory", "dir", r.dir, "debounce", r.debounce)

	r.rebuild(ctx)

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			r.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(r.debounce)
		case <-timer.C:
			r.rebuild(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "error", err)
		}
	}
}

func (r *Regenerator) rebuild(ctx context.Context) {
	start := time.Now()
	if err := r.build(ctx); err != nil {
		r.logger.Error("rebuild failed", "dir", r.dir, "error", err)
		return
	}
	r.logger.Info("rebuilt", "dir", r.dir, "duration", time.Since(start))
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), content.Extension) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
