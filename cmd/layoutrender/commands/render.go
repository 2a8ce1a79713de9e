package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/layoutrender/internal/config"
	"git.home.luguber.info/inful/layoutrender/internal/layout"
	"git.home.luguber.info/inful/layoutrender/internal/loader"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
	"git.home.luguber.info/inful/layoutrender/internal/metrics"
	"git.home.luguber.info/inful/layoutrender/internal/output"
	"git.home.luguber.info/inful/layoutrender/internal/renderer"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Layouts     string `short:"l" help:"Layouts directory (overrides layouts_dir)"`
	Output      string `short:"o" help:"Output directory (overrides output_dir)"`
	Concurrency int    `help:"Layouts constructed in parallel (overrides concurrency)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	r.apply(cfg)

	manifest, err := RunRender(context.Background(), cfg, g.Logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %d layouts into %s\n", len(manifest.Layouts), cfg.OutputDir)
	return nil
}

func (r *RenderCmd) apply(cfg *config.Config) {
	if r.Layouts != "" {
		cfg.LayoutsDir = r.Layouts
	}
	if r.Output != "" {
		cfg.OutputDir = r.Output
	}
	if r.Concurrency > 0 {
		cfg.Concurrency = r.Concurrency
	}
}

// RunRender loads, constructs and writes every layout. Any construction
// failure halts the run before anything is written.
func RunRender(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (output.Manifest, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := renderer.NewFromConfig(cfg.Markdown)
	if err != nil {
		return output.Manifest{}, err
	}
	factory := layout.NewFactory(reg, layout.WithLogger(logger), layout.WithRecorder(recorder))

	ld := loader.New(cfg.LayoutsDir,
		loader.WithSite(cfg),
		loader.WithConcurrency(cfg.Concurrency),
		loader.WithLogger(logger),
		loader.WithRecorder(recorder),
	)
	layouts, err := ld.Load(ctx, factory)
	if err != nil {
		return output.Manifest{}, err
	}

	manifest, err := output.Write(cfg.OutputDir, layouts)
	if err != nil {
		return output.Manifest{}, err
	}
	logger.Info("Wrote layouts", logfields.Dir(cfg.OutputDir), logfields.Count(len(manifest.Layouts)))
	return manifest, nil
}
