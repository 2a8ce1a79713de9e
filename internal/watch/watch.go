// Package watch re-runs a rebuild whenever files in a layouts directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/layoutrender/internal/loader"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc is invoked after changes settle. Errors are logged; watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher watches one directory.
type Watcher struct {
	dir      string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher. debounce <= 0 selects DefaultDebounce.
func New(dir string, rebuild RebuildFunc, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: dir, rebuild: rebuild, debounce: debounce, logger: logger}
}

// ErrWatcherClosed is returned by Run when fsnotify stops delivering events.
var ErrWatcherClosed = errors.New("layout watcher closed")

// Run blocks until ctx is done. Rebuilds never overlap; changes arriving
// during a rebuild queue exactly one follow-up rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("Watching layouts", logfields.Dir(w.dir))

	return w.serve(ctx, fsw.Events, fsw.Errors)
}

// serve dispatches events until ctx is done or either channel closes. The
// rebuild loop is cancelled and drained before serve returns.
func (w *Watcher) serve(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := debouncer(w.debounce, rebuildReq)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(ctx, rebuildReq)
	}()
	defer func() {
		stop()
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrWatcherClosed
			}
			if loader.Ignored(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("Layout change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-errs:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop serializes rebuilds. The request channel has capacity one, so
// requests made while a rebuild is running collapse into a single follow-up.
func (w *Watcher) rebuildLoop(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Rebuilt layouts", logfields.Duration(time.Since(start)))
		}
	}
}

func debouncer(d time.Duration, out chan<- struct{}) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case out <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}
