// Package watch re-runs a callback when any of a fixed set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/corpuslint/internal/logger"
)

// Defaults.
const (
	// DefaultDebounce is the quiet period after the last event before a run.
	DefaultDebounce = 200 * time.Millisecond

	// DefaultMinInterval is the minimum time between two runs.
	DefaultMinInterval = time.Second
)

// Handler is called with the changed paths of one debounced batch.
type Handler func(ctx context.Context, changed []string)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a batch is handed over.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithMinInterval limits how often the handler runs.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// Watcher watches individual files.
//
// Editors often replace a file instead of writing it, so the parent
// directories are watched and events are filtered by path.
type Watcher struct {
	files    map[string]bool
	handler  Handler
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	pending map[string]bool
}

// New creates a watcher for files. Empty paths are ignored.
func New(files []string, handler Handler, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		handler:  handler,
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
		pending:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[filepath.Clean(abs)] = true
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}

	return w, nil
}

// Files returns the watched paths.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Run blocks until ctx is cancelled, calling the handler after each
// debounced batch of changes.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		logger.Debug("watch: %s", dir)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.accept(event) {
				continue
			}
			w.mu.Lock()
			w.pending[filepath.Clean(event.Name)] = true
			w.mu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.handler(ctx, w.drain())
		}
	}
}

func (w *Watcher) accept(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	return out
}
