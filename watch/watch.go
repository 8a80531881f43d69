// Package watch re-runs a callback when source files change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sulk.watch")

// DefaultDebounce is how long a path stays quiet after a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to files with one of the watched extensions
// below a set of roots.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	// files are roots named one by one; their directories are watched
	// but only these paths are reported from them.
	files map[string]bool
	// dirs are directories found below directory roots.
	dirs map[string]bool
	onChange   func(path string)
	debounce   time.Duration

	mu         sync.Mutex
	lastChange map[string]time.Time
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New watches roots, which may be files or directories. Directories are
// watched recursively, skipping hidden ones, and report files with a watched
// extension. A file root reports changes to that file alone.
func New(roots, extensions []string, onChange func(path string), opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:    fsWatcher,
		extensions: extensions,
		files:      make(map[string]bool),
		dirs:       make(map[string]bool),
		onChange:   onChange,
		debounce:   DefaultDebounce,
		lastChange: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, root := range roots {
		if err := w.add(root); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		// Editors replace files on save, so the directory is watched instead.
		w.files[filepath.Clean(root)] = true
		return w.watcher.Add(filepath.Dir(root))
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		w.dirs[filepath.Clean(path)] = true
		return w.watcher.Add(path)
	})
}

// Run delivers changes until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.wants(event.Name) || !w.settle(event.Name) {
				continue
			}
			log.Debugf("changed: %s", event.Name)
			w.onChange(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %v", err)
		}
	}
}

// wants reports whether a change to path is forwarded. A named file is
// always forwarded. Other files count only inside a watched directory root
// and only with a watched extension.
func (w *Watcher) wants(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && w.matches(path)
}

func (w *Watcher) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// settle reports whether enough time has passed since the last change to
// path for this one to count.
func (w *Watcher) settle(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.lastChange[path]; ok && now.Sub(last) < w.debounce {
		return false
	}
	w.lastChange[path] = now
	return true
}
