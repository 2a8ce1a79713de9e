// Package layout constructs layout templates and renders their content as
// part of construction.
//
// A Layout returned by Factory.New has already been through the renderer:
// there is no later render step and no state in which a caller can see the
// raw body. Extension reports the extension the loader supplied, which stays
// stable even when base construction or rendering rewrites Ext.
package layout

import (
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/layoutrender/internal/frontmatter"
)

// Raw is what the loader hands to construction.
type Raw struct {
	Name    string
	Path    string
	Ext     string
	Content string
	Site    any
}

// Layout is one template-level wrapper document.
type Layout struct {
	Name string
	Path string
	Data map[string]any
	// Content holds the rendered body once construction has returned.
	Content string
	// Ext is construction bookkeeping: base logic may recompute it and the
	// factory replaces it with the renderer's output extension.
	Ext string
	// Site is forwarded from Raw untouched.
	Site any
	// Fingerprint identifies the unrendered source (front matter and body).
	Fingerprint string

	extension string
}

// Extension returns the extension supplied at construction.
func (l *Layout) Extension() string {
	return l.extension
}

// BaseFunc performs host base construction: it turns loader output into a
// Layout whose Content is still the raw body.
type BaseFunc func(raw Raw) (*Layout, error)

// DefaultBase splits YAML front matter into Data, keeps the remaining body as
// Content, and derives Name and Ext from Path when it has one.
func DefaultBase(raw Raw) (*Layout, error) {
	doc, err := frontmatter.Parse(raw.Content)
	if err != nil {
		return nil, err
	}

	ext := raw.Ext
	if pathExt := filepath.Ext(raw.Path); pathExt != "" {
		ext = pathExt
	}
	name := raw.Name
	if name == "" && raw.Path != "" {
		base := filepath.Base(raw.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &Layout{
		Name:        name,
		Path:        raw.Path,
		Data:        doc.Data,
		Content:     doc.Body,
		Ext:         ext,
		Site:        raw.Site,
		Fingerprint: mdfp.CalculateFingerprintFromParts(doc.FrontMatter, doc.Body),
	}, nil
}
