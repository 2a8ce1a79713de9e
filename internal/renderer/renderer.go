// Package renderer maps layout file extensions to content converters.
//
// A Registry is populated once by the host (see NewFromConfig) and then read
// concurrently while layouts are constructed. Lookups are exact: keys are
// compared byte for byte against the extension the loader supplies, so case
// and the leading dot must match what the loader produces.
package renderer

// Converter transforms raw layout content into rendered output.
// Implementations must be safe for concurrent use.
type Converter interface {
	Convert(src []byte) ([]byte, error)
}

// OutputExtensioner is implemented by converters whose output has a different
// file extension than their input (markdown produces ".html").
type OutputExtensioner interface {
	OutputExt() string
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(src []byte) ([]byte, error)

// Convert calls f(src).
func (f ConverterFunc) Convert(src []byte) ([]byte, error) {
	return f(src)
}

// outputExtOf returns c's declared output extension, or fallback.
func outputExtOf(c Converter, fallback string) string {
	if oe, ok := c.(OutputExtensioner); ok {
		if ext := oe.OutputExt(); ext != "" {
			return ext
		}
	}
	return fallback
}
