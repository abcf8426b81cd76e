// Package watch implements continuous organizing: an fsnotify watcher
// over the run's root directories that re-runs the organizer for a root
// after its contents settle.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ordnung/internal/log"
	"ordnung/internal/organize"
)

// Watcher monitors root directories for changes and triggers the engine.
type Watcher struct {
	engine    *organize.Engine
	roots     []string
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}

	mutex   sync.Mutex
	dirty   map[string]time.Time
	running bool
}

// New creates a watcher for the given roots. Each root must exist.
func New(engine *organize.Engine, roots []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		engine:    engine,
		debounce:  debounce,
		fsWatcher: fsWatcher,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		dirty:     make(map[string]time.Time),
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("error accessing directory: %w", err)
		}
		if !info.IsDir() {
			fsWatcher.Close()
			return nil, fmt.Errorf("%s is not a directory", root)
		}
		if err := fsWatcher.Add(root); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", root, err)
		}
		w.roots = append(w.roots, filepath.Clean(root))
	}
	// Root protection must hold for every OrganizeRoot call the loop makes,
	// so the engine learns the full root set before watching begins.
	engine.SetRoots(w.roots)
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	log.Info("Watching %d directories", len(w.roots))
	go w.loop()
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	w.mutex.Unlock()

	close(w.stopChan)
	<-w.doneChan
	w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if root, ok := w.rootFor(event.Name); ok {
				w.markDirty(root)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Error("Watcher error: %v", err)

		case <-ticker.C:
			for _, root := range w.settledRoots() {
				log.Info("Changes in %s settled, organizing", root)
				if _, err := w.engine.OrganizeRoot(root); err != nil {
					log.Error("Failed to organize %s: %v", root, err)
				}
			}

		case <-w.stopChan:
			return
		}
	}
}

// rootFor maps an event path onto the watched root that contains it.
func (w *Watcher) rootFor(path string) (string, bool) {
	dir := filepath.Clean(filepath.Dir(path))
	for _, root := range w.roots {
		if dir == root {
			return root, true
		}
	}
	return "", false
}

func (w *Watcher) markDirty(root string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.dirty[root] = time.Now()
}

// settledRoots returns roots whose last change is older than the debounce
// window, clearing their dirty mark.
func (w *Watcher) settledRoots() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	var settled []string
	now := time.Now()
	for root, last := range w.dirty {
		if now.Sub(last) >= w.debounce {
			settled = append(settled, root)
			delete(w.dirty, root)
		}
	}
	return settled
}
