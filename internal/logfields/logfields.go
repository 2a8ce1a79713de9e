package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLayout     = "layout"
	KeyPath       = "path"
	KeyExtension  = "extension"
	KeyOutputExt  = "output_ext"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyDir        = "dir"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Layout(name string) slog.Attr   { return slog.String(KeyLayout, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Extension(ext string) slog.Attr { return slog.String(KeyExtension, ext) }
func OutputExt(ext string) slog.Attr { return slog.String(KeyOutputExt, ext) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Dir(d string) slog.Attr         { return slog.String(KeyDir, d) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
