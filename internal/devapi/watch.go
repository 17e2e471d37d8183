package devapi

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Zachkp/portfolio/internal/markdown"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a content directory into a Store when files change.
type Watcher struct {
	dir      string
	store    *Store
	md       *markdown.Renderer
	logger   *slog.Logger
	debounce time.Duration
}

func NewWatcher(dir string, store *Store, md *markdown.Renderer, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: dir, store: store, md: md, logger: logger, debounce: DefaultDebounce}
}

// Reload loads the directory once and swaps it into the store. A failed load
// leaves the previous snapshot in place.
func (w *Watcher) Reload() error {
	c, err := Load(os.DirFS(w.dir), w.md)
	if err != nil {
		return err
	}
	w.store.Replace(c)
	w.logger.Info("content loaded",
		slog.Int("projects", len(c.Projects)),
		slog.Int("posts", len(c.Posts)),
	)
	return nil
}

// Watch blocks until ctx is done, reloading after each quiet period that
// follows a change.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	err = filepath.WalkDir(w.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if hidden(p) && p != w.dir {
				return filepath.SkipDir
			}
			return fsw.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching content", slog.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if hidden(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fsw.Add(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
					}
				}
			}
			w.logger.Debug("content change", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			if err := w.Reload(); err != nil {
				w.logger.Error("content reload failed", slog.String("error", err.Error()))
			}
		}
	}
}

// hidden matches editor swap files and dot directories.
func hidden(p string) bool {
	base := filepath.Base(p)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
