// Package loader discovers layout files in a layouts directory and constructs
// them through a layout.Factory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/layout"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
	"git.home.luguber.info/inful/layoutrender/internal/metrics"
)

// Constructor builds one layout; *layout.Factory satisfies it.
type Constructor interface {
	New(raw layout.Raw) (*layout.Layout, error)
}

// Loader reads a single layouts directory (non-recursive, like Jekyll's _layouts).
type Loader struct {
	dir         string
	site        any
	concurrency int
	logger      *slog.Logger
	recorder    metrics.Recorder
}

// Option configures a Loader.
type Option func(*Loader)

// WithSite sets the site context forwarded to every layout.
func WithSite(site any) Option {
	return func(l *Loader) { l.site = site }
}

// WithConcurrency bounds how many layouts are constructed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder used for load timings.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// New creates a Loader for dir.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:         dir,
		concurrency: 1,
		logger:      slog.Default(),
		recorder:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the layouts directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Discover reads every regular layout file in the directory, sorted by name.
// Ext is filepath.Ext of the file name, verbatim.
func (l *Loader) Discover() ([]layout.Raw, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read layouts directory").
			WithContext(logfields.KeyDir, l.dir).
			Build()
	}

	raws := make([]layout.Raw, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || Ignored(entry.Name()) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read layout").
				WithContext(logfields.KeyPath, path).
				Build()
		}
		ext := filepath.Ext(entry.Name())
		raws = append(raws, layout.Raw{
			Name:    strings.TrimSuffix(entry.Name(), ext),
			Path:    path,
			Ext:     ext,
			Content: string(data),
			Site:    l.site,
		})
	}

	sort.Slice(raws, func(i, j int) bool { return raws[i].Path < raws[j].Path })
	return raws, nil
}

// Load discovers and constructs every layout. Failures are file-scoped: the
// layouts that constructed are returned alongside a joined error naming each
// file that did not.
func (l *Loader) Load(ctx context.Context, c Constructor) ([]*layout.Layout, error) {
	start := time.Now()
	defer func() { l.recorder.ObserveLoadDuration(time.Since(start)) }()

	raws, err := l.Discover()
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		built  = make([]*layout.Layout, 0, len(raws))
		errs   []error
		sem    = semaphore.NewWeighted(int64(l.concurrency))
		ctxErr error
	)

	for _, raw := range raws {
		if err := sem.Acquire(ctx, 1); err != nil {
			ctxErr = err
			break
		}
		wg.Add(1)
		go func(raw layout.Raw) {
			defer wg.Done()
			defer sem.Release(1)

			lay, err := c.New(raw)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Error("Layout construction failed", logfields.Path(raw.Path), logfields.Error(err))
				errs = append(errs, err)
				return
			}
			built = append(built, lay)
		}(raw)
	}
	wg.Wait()

	sort.Slice(built, func(i, j int) bool { return built[i].Path < built[j].Path })
	l.logger.Info("Loaded layouts", logfields.Dir(l.dir), logfields.Count(len(built)))

	if ctxErr != nil {
		errs = append(errs, fmt.Errorf("load canceled: %w", ctxErr))
	}
	sortErrorsByPath(errs)
	return built, errors.Join(errs...)
}

// Ignored reports whether a file name is hidden or an editor artifact.
func Ignored(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

func sortErrorsByPath(errs []error) {
	pathOf := func(err error) string {
		if c, ok := foundationerrors.AsClassified(err); ok {
			p, _ := c.Context().GetString(logfields.KeyPath)
			return p
		}
		return "\xff"
	}
	sort.SliceStable(errs, func(i, j int) bool { return pathOf(errs[i]) < pathOf(errs[j]) })
}
