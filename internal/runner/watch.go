package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changed files are reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed SQL files under a set of paths.
type Watcher struct {
	Paths    []string
	Exclude  []string
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watch blocks until ctx is done, calling onChange with the sorted set of
// SQL files written or created during each debounce window. onChange runs
// on the watch goroutine, so events arriving meanwhile are batched into the
// next call.
func (w *Watcher) Watch(ctx context.Context, onChange func(files []string)) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	files := make(map[string]bool)
	for _, p := range w.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			// Editors replace files on save; watch the directory.
			files[filepath.Clean(p)] = true
			if err := watcher.Add(filepath.Dir(p)); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			continue
		}
		if err := watchDir(watcher, p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
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
			if event.Op&fsnotify.Create != 0 && isDir(event.Name) && !hidden(event.Name) {
				if err := watchDir(watcher, event.Name); err != nil {
					logger.Warn("failed to watch new directory",
						slog.String("dir", event.Name),
						slog.Any("error", err))
				}
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !files[name] && (filepath.Ext(name) != SQLExt || excluded(name, "", w.Exclude)) {
				continue
			}
			if len(files) > 0 && !files[name] && !underAny(name, w.Paths) {
				continue
			}
			pending[name] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			slices.Sort(changed)
			logger.Debug("change detected", slog.Int("files", len(changed)))
			onChange(changed)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// underAny reports whether name lies inside one of the watched directories.
func underAny(name string, paths []string) bool {
	for _, p := range paths {
		rel, err := filepath.Rel(filepath.Clean(p), name)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			if isDir(p) {
				return true
			}
		}
	}
	return false
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
