// Package watch reports changed locale files, debouncing the bursts of
// events editors produce on save.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long a path must stay quiet before it is reported.
const DefaultDelay = 300 * time.Millisecond

// Handler is called with the path of a changed file.
type Handler func(path string)

// Watcher watches directories for created or written files whose names
// match its patterns.
type Watcher struct {
	fs       *fsnotify.Watcher
	patterns []string
	delay    time.Duration

	// OnError receives errors reported by the underlying watcher. When
	// nil they are dropped.
	OnError func(error)

	mu      sync.Mutex
	pending map[string]time.Time
}

// New creates a watcher for files matching patterns (filepath.Match
// syntax against the base name). A non-positive delay uses DefaultDelay.
func New(patterns []string, delay time.Duration) (*Watcher, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, err
		}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{
		fs:       fw,
		patterns: patterns,
		delay:    delay,
		pending:  make(map[string]time.Time),
	}, nil
}

// Add starts watching dir. Subdirectories are not watched.
func (w *Watcher) Add(dir string) error {
	return w.fs.Add(dir)
}

// Close stops the watcher. Run returns after Close.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers changed paths to handle until ctx is done or the watcher is
// closed. Handlers run on the Run goroutine, one at a time. Run closes the
// watcher before returning.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.fs.Close()

	tick := w.delay / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.record(event, time.Now())

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}

		case now := <-ticker.C:
			for _, path := range w.due(now) {
				handle(path)
			}
		}
	}
}

// record notes a relevant event. Each new event for a path restarts its
// quiet period.
func (w *Watcher) record(event fsnotify.Event, at time.Time) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if !w.matches(event.Name) {
		return false
	}
	w.mu.Lock()
	w.pending[event.Name] = at
	w.mu.Unlock()
	return true
}

// due removes and returns, sorted, the pending paths that have been quiet
// for the full delay.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var paths []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.delay {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (w *Watcher) matches(path string) bool {
	if len(w.patterns) == 0 {
		return true
	}
	name := filepath.Base(path)
	for _, p := range w.patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
