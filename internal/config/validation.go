package config

import (
	"strings"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
)

// NormalizeExtension trims ext and guarantees a single leading dot. Case is
// preserved: renderer lookups are exact.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	return "." + strings.TrimLeft(ext, ".")
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.LayoutsDir) == "" {
		return foundationerrors.ValidationError("layouts_dir must not be empty").Build()
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return foundationerrors.ValidationError("output_dir must not be empty").Build()
	}
	if c.Concurrency < 0 {
		return foundationerrors.ValidationError("concurrency must not be negative").
			WithContext("concurrency", c.Concurrency).
			Build()
	}
	if c.Concurrency == 0 {
		c.Concurrency = 1
	}

	seen := make(map[string]struct{}, len(c.Markdown.Extensions))
	exts := make([]string, 0, len(c.Markdown.Extensions))
	for _, raw := range c.Markdown.Extensions {
		ext := NormalizeExtension(raw)
		if ext == "" || ext == "." {
			return foundationerrors.ValidationError("markdown extension must not be empty").Build()
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	c.Markdown.Extensions = exts

	level, err := logLevelNormalizer.NormalizeWithError(c.Logging.Level)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid logging.level").Fatal().Build()
	}
	c.Logging.Level = string(level)

	format, err := logFormatNormalizer.NormalizeWithError(c.Logging.Format)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid logging.format").Fatal().Build()
	}
	c.Logging.Format = string(format)

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Listen) == "" {
		return foundationerrors.ValidationError("metrics.listen is required when metrics are enabled").Build()
	}
	return nil
}
