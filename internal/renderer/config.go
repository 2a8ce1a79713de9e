package renderer

import (
	"git.home.luguber.info/inful/layoutrender/internal/config"
)

// NewFromConfig builds the registry used by the CLI: one shared markdown
// converter registered under every configured markdown extension.
func NewFromConfig(cfg config.MarkdownConfig) (*Registry, error) {
	reg := NewRegistry()

	var md Converter = NewMarkdown(MarkdownOptions{
		GFM:         cfg.GFM,
		Typographer: cfg.Typographer,
		Unsafe:      cfg.Unsafe,
		HardWraps:   cfg.HardWraps,
		HeadingIDs:  cfg.HeadingIDs,
	})
	if cfg.Sanitize {
		md = Sanitize(md, nil)
	}

	for _, ext := range cfg.Extensions {
		if err := reg.Register(ext, md); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
