package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog file when it changes on disk. Rapid saves are
// collapsed into one reload after the debounce interval. Callbacks run on the
// watcher goroutine; hand the result to the game thread with Viewer.Post.
type Watcher struct {
	path     string
	onChange func(*Catalog)
	onError  func(error)
	logger   *zap.Logger
	debounce time.Duration
	loadOpts []Option

	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}

	mu        sync.Mutex
	running   bool
	pending   bool
	lastEvent time.Time
	reloads   int
	failures  int
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the logger. The default discards output.
func WithWatchLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) { w.logger = logger }
}

// WithDebounce sets how long the file must stay quiet before a reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler is called when a reload fails. The previous catalog stays
// in effect.
func WithErrorHandler(fn func(error)) WatchOption {
	return func(w *Watcher) { w.onError = fn }
}

// WithLoadOptions passes options to every reload.
func WithLoadOptions(opts ...Option) WatchOption {
	return func(w *Watcher) { w.loadOpts = opts }
}

// NewWatcher creates a watcher for the catalog file at path. Start begins
// watching.
func NewWatcher(path string, onChange func(*Catalog), opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   zap.NewNop(),
		debounce: 250 * time.Millisecond,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the catalog's directory, so editors that save by renaming
// over the file are seen too. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("watching catalog", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for the watcher goroutine to exit. It is safe
// to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("closing catalog watcher", zap.Error(err))
		}
	})
}

// Reloads returns how many reloads succeeded and failed.
func (w *Watcher) Reloads() (ok, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads, w.failures
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 4
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("catalog changed", zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	due := w.pending && time.Since(w.lastEvent) >= w.debounce
	if due {
		w.pending = false
	}
	w.mu.Unlock()
	if due {
		w.reload()
	}
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path, w.loadOpts...)

	w.mu.Lock()
	if err != nil {
		w.failures++
	} else {
		w.reloads++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("items", len(c.Items)))
	if w.onChange != nil {
		w.onChange(c)
	}
}
