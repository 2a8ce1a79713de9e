package layout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
	"git.home.luguber.info/inful/layoutrender/internal/metrics"
)

// Renderer converts layout content by extension. Unknown extensions must
// pass content through unchanged without error.
type Renderer interface {
	Convert(ext, content string) (string, error)
	OutputExt(ext string) string
}

// registered is implemented by renderers that can report whether a lookup
// will hit; it only affects metrics labelling.
type registered interface {
	Has(ext string) bool
}

// Factory constructs layouts and renders them in the same call.
// It keeps no per-layout state, so New may be called concurrently as long as
// the Renderer supports concurrent reads.
type Factory struct {
	renderer Renderer
	base     BaseFunc
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Factory.
type Option func(*Factory)

// WithBase replaces DefaultBase.
func WithBase(base BaseFunc) Option {
	return func(f *Factory) {
		if base != nil {
			f.base = base
		}
	}
}

// WithLogger sets the logger used for per-layout debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(f *Factory) {
		if r != nil {
			f.recorder = r
		}
	}
}

// NewFactory returns a Factory rendering through r. A nil r renders nothing:
// every layout keeps its body.
func NewFactory(r Renderer, opts ...Option) *Factory {
	if r == nil {
		r = passthrough{}
	}
	f := &Factory{
		renderer: r,
		base:     DefaultBase,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New runs base construction for raw, then renders the layout content through
// the renderer selected by raw.Ext. On any failure it returns a nil Layout.
func (f *Factory) New(raw Raw) (*Layout, error) {
	ext := raw.Ext

	l, err := f.base(raw)
	if err != nil {
		f.recorder.IncLayoutResult(metrics.ResultFailed)
		return nil, foundationerrors.LayoutError(fmt.Sprintf("failed to construct layout %s", raw.Path)).
			WithCause(err).
			WithContext(logfields.KeyPath, raw.Path).
			WithContext(logfields.KeyExtension, ext).
			Build()
	}
	if l == nil {
		f.recorder.IncLayoutResult(metrics.ResultFailed)
		return nil, foundationerrors.InternalError(fmt.Sprintf("base construction returned no layout for %s", raw.Path)).
			WithContext(logfields.KeyPath, raw.Path).
			Build()
	}

	start := time.Now()
	rendered, err := f.renderer.Convert(ext, l.Content)
	elapsed := time.Since(start)
	if err != nil {
		f.recorder.ObserveRender(ext, elapsed, metrics.ResultFailed)
		f.recorder.IncLayoutResult(metrics.ResultFailed)
		return nil, foundationerrors.RenderError(fmt.Sprintf("failed to render layout %s", raw.Path)).
			WithCause(err).
			WithContext(logfields.KeyPath, raw.Path).
			WithContext(logfields.KeyExtension, ext).
			Build()
	}
	f.recorder.ObserveRender(ext, elapsed, f.resultFor(ext))
	f.recorder.IncLayoutResult(metrics.ResultSuccess)

	l.Content = rendered
	l.Ext = f.renderer.OutputExt(ext)
	l.extension = ext

	f.logger.LogAttrs(context.Background(), slog.LevelDebug, "Constructed layout",
		logfields.Layout(l.Name),
		logfields.Path(l.Path),
		logfields.Extension(ext),
		logfields.OutputExt(l.Ext),
		logfields.Duration(elapsed))
	return l, nil
}

func (f *Factory) resultFor(ext string) metrics.ResultLabel {
	if reg, ok := f.renderer.(registered); ok && !reg.Has(ext) {
		return metrics.ResultPassthrough
	}
	return metrics.ResultSuccess
}

// New constructs a single layout with DefaultBase.
func New(raw Raw, r Renderer) (*Layout, error) {
	return NewFactory(r).New(raw)
}

type passthrough struct{}

func (passthrough) Convert(_ string, content string) (string, error) { return content, nil }
func (passthrough) OutputExt(ext string) string                      { return ext }
func (passthrough) Has(string) bool                                  { return false }
