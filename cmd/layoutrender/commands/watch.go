package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/layoutrender/internal/config"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
	"git.home.luguber.info/inful/layoutrender/internal/metrics"
	"git.home.luguber.info/inful/layoutrender/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	RenderCmd
	Debounce time.Duration `help:"Wait this long for changes to settle" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	w.apply(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return RunWatch(ctx, cfg, g.Logger, w.Debounce)
}

// RunWatch renders once, then re-renders on every settled change until ctx
// is done. A failed rebuild is logged and watching continues.
func RunWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, debounce time.Duration) error {
	if logger == nil {
		logger = slog.Default()
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := startMetricsServer(cfg.Metrics.Listen, reg, logger)
		defer shutdownServer(srv, logger)
	}

	rebuild := func(ctx context.Context) error {
		start := time.Now()
		manifest, err := RunRender(ctx, cfg, logger, recorder)
		if err != nil {
			return err
		}
		logger.Info("Rebuild complete",
			logfields.Count(len(manifest.Layouts)),
			logfields.Duration(time.Since(start)))
		return nil
	}

	if err := rebuild(ctx); err != nil {
		logger.Error("Initial render failed", logfields.Error(err))
	}

	return watch.New(cfg.LayoutsDir, rebuild, debounce, logger).Run(ctx)
}

func startMetricsServer(addr string, reg *prom.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Serving metrics", slog.String("listen", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return srv
}

func shutdownServer(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Metrics server shutdown", logfields.Error(err))
	}
}
