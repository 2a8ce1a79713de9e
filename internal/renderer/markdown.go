package renderer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownOptions toggles goldmark features.
type MarkdownOptions struct {
	GFM         bool // tables, strikethrough, linkify, task lists
	Typographer bool
	Unsafe      bool // pass raw HTML through instead of omitting it
	HardWraps   bool
	HeadingIDs  bool
}

// Markdown converts CommonMark (plus optional extensions) to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds a goldmark-backed converter.
func NewMarkdown(opts MarkdownOptions) *Markdown {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var parserOpts []parser.Option
	if opts.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	var htmlOpts []gmrenderer.Option
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}

	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(htmlOpts...),
	)}
}

// Convert renders src to HTML. Empty input yields empty output.
func (m *Markdown) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputExt reports ".html".
func (m *Markdown) OutputExt() string {
	return ".html"
}
