package codebase

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for the file system to
// settle before updating the project.
const DefaultDebounce = 250 * time.Millisecond

// FileWatcher keeps a codebase's project in step with its source roots.
// Changes are collected until the file system has been quiet for the
// debounce interval and then applied in one batch.
type FileWatcher struct {
	codebase *Codebase
	debounce time.Duration
	onChange func([]string)
}

func NewFileWatcher(c *Codebase, debounce time.Duration) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{codebase: c, debounce: debounce}
}

// OnChange registers fn to be called with each applied batch of paths.
func (w *FileWatcher) OnChange(fn func([]string)) {
	w.onChange = fn
}

// Run watches every source root until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range w.codebase.Project().Roots() {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fired <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if skipPath(path) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := addRecursive(watcher, path); err != nil {
						log.Warningf("watch %s: %s", path, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[path] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fired = timer.C
		case <-fired:
			fired = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			w.apply(changed)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *FileWatcher) apply(paths []string) {
	if err := w.codebase.FilesChanged(paths); err != nil {
		log.Warningf("update project: %s", err)
	}
	if w.onChange != nil {
		w.onChange(paths)
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// skipPath reports editor scratch files that never hold source.
func skipPath(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#")
}
