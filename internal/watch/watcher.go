// Package watch re-runs a callback whenever structure description files
// change, with changes coalesced over a debounce window.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/fsutil"
)

// Config holds watcher configuration options.
type Config struct {
	Roots    []string
	Patterns []string
	Debounce time.Duration
}

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors description files below a set of roots.
type Watcher struct {
	cfg       Config
	fsWatcher *fsnotify.Watcher
}

// New creates a watcher and registers every directory below the roots. A
// root that is a file is watched through its parent directory.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = fsutil.DefaultPatterns
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	w := &Watcher{cfg: cfg, fsWatcher: fsw}

	for _, root := range cfg.Roots {
		if err := w.addRoot(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	if !info.IsDir() {
		dir := filepath.Dir(root)
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
		return nil
	}
	return w.addTree(root)
}

// addTree registers dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks until ctx is cancelled, calling onChange with the sorted paths of
// the description files that changed during each debounce window. Calls to
// onChange never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	logger := ctxlog.FromContext(ctx)
	defer w.fsWatcher.Close()

	batches := make(chan []string, 1)
	debouncer := NewDebouncer(w.cfg.Debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	logger.Info("Watching for changes.", "roots", w.cfg.Roots, "debounce", w.cfg.Debounce)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil

		case paths := <-batches:
			logger.Debug("Change batch ready.", "paths", paths)
			onChange(ctx, paths)

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.isRelevant(event) {
				continue
			}
			logger.Debug("File event.", "path", event.Name, "op", event.Op.String())
			debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)
		}
	}
}

// isRelevant reports whether the event touches a description file.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return fsutil.Match(w.cfg.Roots, w.cfg.Patterns, event.Name)
}
