package config

// DefaultMarkdownExtensions mirrors Jekyll's markdown_ext setting.
var DefaultMarkdownExtensions = []string{".markdown", ".mkdown", ".mkdn", ".mkd", ".md"}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LayoutsDir:  "_layouts",
		OutputDir:   "_site/_layouts",
		Concurrency: 4,
		Markdown: MarkdownConfig{
			Extensions: append([]string(nil), DefaultMarkdownExtensions...),
			GFM:        true,
			Unsafe:     true,
		},
		Logging: LoggingConfig{
			Level:  string(LogLevelInfo),
			Format: string(LogFormatText),
		},
		Metrics: MetricsConfig{
			Listen: ":9464",
		},
	}
}
