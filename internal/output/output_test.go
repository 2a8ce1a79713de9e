package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/layout"
	"git.home.luguber.info/inful/layoutrender/internal/renderer"
)

func construct(t *testing.T, raw layout.Raw) *layout.Layout {
	t.Helper()
	reg := renderer.NewRegistry()
	reg.MustRegister(".md", renderer.NewMarkdown(renderer.MarkdownOptions{}))
	l, err := layout.New(raw, reg)
	require.NoError(t, err)
	return l
}

func TestWrite_WritesRenderedLayoutsAndManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	layouts := []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/default.html", Ext: ".html", Content: "<html>{{ content }}</html>"}),
		construct(t, layout.Raw{Path: "_layouts/post.md", Ext: ".md", Content: "---\nlayout: default\n---\n# Post\n"}),
	}

	m, err := Write(dir, layouts)
	require.NoError(t, err)
	require.Len(t, m.Layouts, 2)

	post, err := os.ReadFile(filepath.Join(dir, "post.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Post</h1>\n", string(post))

	read, err := ReadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, "post", read.Layouts[1].Name)
	require.Equal(t, ".md", read.Layouts[1].SourceExtension)
	require.Equal(t, ".html", read.Layouts[1].OutputExtension)
	require.Equal(t, "post.html", read.Layouts[1].File)
	require.Equal(t, "default", read.Layouts[1].Data["layout"])
	require.NotEmpty(t, read.Layouts[1].Fingerprint)
	require.Equal(t, ".html", read.Layouts[0].SourceExtension)
}

func TestWrite_RejectsOutputCollisions(t *testing.T) {
	layouts := []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/page.html", Ext: ".html", Content: "<p>a</p>"}),
		construct(t, layout.Raw{Path: "_layouts/page.md", Ext: ".md", Content: "b"}),
	}

	_, err := Write(t.TempDir(), layouts)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	require.ErrorContains(t, err, "page.html")
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryFileSystem))
}

func TestWrite_RejectsLayoutNamedLikeManifest(t *testing.T) {
	dir := t.TempDir()
	layouts := []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/manifest.yaml", Ext: ".yaml", Content: "site: layouts\n"}),
	}

	_, err := Write(dir, layouts)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	require.ErrorContains(t, err, "would overwrite manifest.yaml")

	_, statErr := os.Stat(filepath.Join(dir, ManifestFile))
	require.True(t, os.IsNotExist(statErr))
}

func TestWrite_CollisionWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	layouts := []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/a.html", Ext: ".html", Content: "a"}),
		construct(t, layout.Raw{Path: "_layouts/page.html", Ext: ".html", Content: "<p>a</p>"}),
		construct(t, layout.Raw{Path: "_layouts/page.md", Ext: ".md", Content: "b"}),
	}

	_, err := Write(dir, layouts)
	require.Error(t, err)
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestWrite_RemovesOutputsOfDroppedLayouts(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/keep.md", Ext: ".md", Content: "# keep\n"}),
		construct(t, layout.Raw{Path: "_layouts/gone.md", Ext: ".md", Content: "# gone\n"}),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))

	m, err := Write(dir, []*layout.Layout{
		construct(t, layout.Raw{Path: "_layouts/keep.md", Ext: ".md", Content: "# keep\n"}),
	})
	require.NoError(t, err)
	require.Len(t, m.Layouts, 1)

	_, statErr := os.Stat(filepath.Join(dir, "gone.html"))
	require.True(t, os.IsNotExist(statErr))
	require.FileExists(t, filepath.Join(dir, "keep.html"))
	require.FileExists(t, filepath.Join(dir, "unrelated.txt"))
}

func TestWrite_IgnoresManifestPathsOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	outside := filepath.Join(root, "precious.html")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile),
		[]byte("layouts:\n  - name: precious\n    file: ../precious.html\n"), 0o600))

	_, err := Write(dir, nil)
	require.NoError(t, err)
	require.FileExists(t, outside)
}
