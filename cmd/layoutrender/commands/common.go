package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/layoutrender/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"layoutrender.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render    RenderCmd    `cmd:"" default:"1" help:"Render every layout in the layouts directory"`
	Watch     WatchCmd     `cmd:"" help:"Render layouts and re-render on change"`
	Renderers RenderersCmd `cmd:"" help:"List registered renderers by extension"`
	Init      InitCmd      `cmd:"" help:"Write a configuration file with defaults"`
}

// AfterApply installs a verbosity-based logger until the config is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the config and reconfigures logging from it. --verbose
// always wins over the configured level.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = newLogger(os.Stderr, cfg.Logging, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func newLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := config.NormalizeLogLevel(lc.Level).SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(lc.Format) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
