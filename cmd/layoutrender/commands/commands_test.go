package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/layoutrender/internal/config"
	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/metrics"
	"git.home.luguber.info/inful/layoutrender/internal/output"
	"git.home.luguber.info/inful/layoutrender/internal/renderer"
)

func writeLayout(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.LayoutsDir = filepath.Join(root, "_layouts")
	cfg.OutputDir = filepath.Join(root, "_site", "_layouts")
	require.NoError(t, os.MkdirAll(cfg.LayoutsDir, 0o750))
	return cfg
}

func TestRunRender_WritesLayoutsAndManifest(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "default.md", "---\ntitle: Home\n---\n# Title\n")
	writeLayout(t, cfg.LayoutsDir, "plain.html", "<div>{{ content }}</div>")

	manifest, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.NoError(t, err)
	require.Len(t, manifest.Layouts, 2)

	got, err := os.ReadFile(filepath.Join(cfg.OutputDir, "default.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Title</h1>\n", string(got))

	got, err = os.ReadFile(filepath.Join(cfg.OutputDir, "plain.html"))
	require.NoError(t, err)
	require.Equal(t, "<div>{{ content }}</div>", string(got))

	read, err := output.ReadManifest(cfg.OutputDir)
	require.NoError(t, err)
	require.Len(t, read.Layouts, 2)
	require.Equal(t, "default", read.Layouts[0].Name)
	require.Equal(t, ".md", read.Layouts[0].SourceExtension)
	require.Equal(t, ".html", read.Layouts[0].OutputExtension)
}

func TestRunRender_FailureWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "good.md", "# ok\n")
	writeLayout(t, cfg.LayoutsDir, "broken.md", "---\ntitle: [unclosed\n")

	_, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.md")

	_, statErr := os.Stat(cfg.OutputDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunRender_OutputCollision(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "page.md", "# md\n")
	writeLayout(t, cfg.LayoutsDir, "page.html", "<p>html</p>")

	_, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestRenderCmd_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cmd := RenderCmd{Layouts: "layouts", Output: "out", Concurrency: 8}
	cmd.apply(cfg)
	require.Equal(t, "layouts", cfg.LayoutsDir)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, 8, cfg.Concurrency)

	cfg = config.Default()
	(&RenderCmd{}).apply(cfg)
	require.Equal(t, config.Default(), cfg)
}

func TestRenderCmd_Run(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "default.markdown", "*hi*\n")

	cfgPath := filepath.Join(t.TempDir(), "layoutrender.yaml")
	yml := "layouts_dir: " + cfg.LayoutsDir + "\noutput_dir: " + cfg.OutputDir + "\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yml), 0o600))

	g := &Global{}
	err := (&RenderCmd{}).Run(g, &CLI{Config: cfgPath})
	require.NoError(t, err)
	require.NotNil(t, g.Logger)

	got, err := os.ReadFile(filepath.Join(cfg.OutputDir, "default.html"))
	require.NoError(t, err)
	require.Equal(t, "<p><em>hi</em></p>\n", string(got))
}

func TestRenderCmd_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "layoutrender.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: loud\n"), 0o600))

	err := (&RenderCmd{}).Run(&Global{}, &CLI{Config: cfgPath})
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestPrintRenderers(t *testing.T) {
	reg, err := renderer.NewFromConfig(config.Default().Markdown)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintRenderers(&buf, reg))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+len(config.DefaultMarkdownExtensions))
	require.True(t, strings.HasPrefix(lines[0], "EXTENSION"))
	require.Contains(t, buf.String(), ".md ")
	require.Contains(t, buf.String(), ".html")
	require.Contains(t, buf.String(), "*renderer.Markdown")
}

func TestInitCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "layoutrender.yaml")
	root := &CLI{Config: cfgPath}

	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, config.Default().LayoutsDir, cfg.LayoutsDir)

	require.Error(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{}, root))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"}, false)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(&buf, config.LoggingConfig{Level: "error", Format: "text"}, true)
	logger.Debug("debug line")
	require.Contains(t, buf.String(), "msg=\"debug line\"")
}

func TestRunWatch_RendersInitiallyAndStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "default.md", "# Title\n")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, RunWatch(ctx, cfg, nil, 10*time.Millisecond))

	got, err := os.ReadFile(filepath.Join(cfg.OutputDir, "default.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Title</h1>\n", string(got))
}

func TestRunRender_LayoutNamedLikeManifestIsRejected(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "manifest.yaml", "body: kept\n")

	_, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.Error(t, err)
	require.Equal(t, 2, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestRunRender_RerunDropsDeletedLayouts(t *testing.T) {
	cfg := testConfig(t)
	writeLayout(t, cfg.LayoutsDir, "default.md", "# Title\n")
	writeLayout(t, cfg.LayoutsDir, "old.md", "# Old\n")

	_, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(cfg.OutputDir, "old.html"))

	require.NoError(t, os.Remove(filepath.Join(cfg.LayoutsDir, "old.md")))
	manifest, err := RunRender(context.Background(), cfg, nil, metrics.NoopRecorder{})
	require.NoError(t, err)
	require.Len(t, manifest.Layouts, 1)
	require.NoFileExists(t, filepath.Join(cfg.OutputDir, "old.html"))
}

func TestRenderCmd_MalformedConfigExitsWithConfigCode(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "layoutrender.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("layouts_dir: [oops\n"), 0o600))

	err := (&RenderCmd{}).Run(&Global{}, &CLI{Config: cfgPath})
	require.Error(t, err)
	require.Equal(t, 7, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}
