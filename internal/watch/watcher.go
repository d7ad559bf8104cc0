// Package watch reloads a simulator whenever its input file changes on
// disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

// Loader accepts raw input text. *sim.Simulator implements it.
type Loader interface {
	Load(raw string) (bool, error)
}

// ReloadFunc is told the outcome of every reload attempt.
type ReloadFunc func(changed bool, err error)

type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
	OnReload ReloadFunc
}

// Watcher watches the directory holding one file so that editors which
// replace the file by rename are still seen. Bursts of events are collapsed
// into a single reload after the debounce window.
type Watcher struct {
	path     string
	loader   Loader
	debounce time.Duration
	logger   *slog.Logger
	onReload ReloadFunc

	watcher  *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	watching bool
}

func New(path string, loader Loader, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		loader:   loader,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		onReload: opts.OnReload,
		watcher:  fw,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start loads the file once and then reloads it on every change until ctx
// is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.watching = true
	w.mu.Unlock()

	w.reload()

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.changes:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("reading input file", "path", w.path, "error", err)
		w.report(false, err)
		return
	}

	changed, err := w.loader.Load(string(data))
	switch {
	case err != nil:
		w.logger.Warn("input file rejected", "path", w.path, "error", err)
	case changed:
		w.logger.Info("input file reloaded", "path", w.path)
	default:
		w.logger.Debug("input file unchanged", "path", w.path)
	}
	w.report(changed, err)
}

func (w *Watcher) report(changed bool, err error) {
	if w.onReload != nil {
		w.onReload(changed, err)
	}
}
