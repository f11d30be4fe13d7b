// Package watch re-runs a rebuild whenever files under a source root
// change. Events inside excluded paths (the workspace, the lock file,
// ignored and dot directories) are dropped so a rebuild never triggers
// itself.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/uco-labs/uco/internal/logging"
	"github.com/uco-labs/uco/internal/walker"
)

// DefaultDebounce is the quiet period observed before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Root     string
	Filter   walker.Options
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher tracks every non-excluded directory under a root.
type Watcher struct {
	root     string
	filter   walker.Options
	debounce time.Duration
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// New registers watches on root and every directory the walker would
// enter. Call Close when done.
func New(ctx context.Context, opts Options) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", opts.Root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		filter:   opts.Filter,
		debounce: opts.Debounce,
		logger:   logging.OrNop(opts.Logger),
		fs:       fsw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	if err := w.addTree(ctx, root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls rebuild once per burst of changes until ctx is done. Rebuild
// errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ctx, event) {
				continue
			}
			w.logger.Debug("change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))

		case <-timer.C:
			if err := rebuild(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.logger.Warn("rebuild failed", logging.Error(err))
			}
		}
	}
}

// relevant filters an event and starts watching directories created
// under the root.
func (w *Watcher) relevant(ctx context.Context, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	path := filepath.Clean(event.Name)
	if walker.Excluded(w.root, w.filter, path) {
		return false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Lstat(path); err == nil && info.IsDir() {
			if err := w.addTree(ctx, path); err != nil {
				w.logger.Warn("watching new directory failed", slog.String("path", path), logging.Error(err))
			}
		}
	}
	return true
}

func (w *Watcher) addTree(ctx context.Context, dir string) error {
	return walker.WalkDirs(ctx, dir, w.filter, func(path string) error {
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
