package renderer

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores converters by extension. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]Converter),
	}
}

// Register adds a converter for ext. Duplicate extensions return an error.
func (r *Registry) Register(ext string, c Converter) error {
	if c == nil {
		return fmt.Errorf("renderer: converter for %q is required", ext)
	}
	if ext == "" {
		return fmt.Errorf("renderer: extension is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.converters[ext]; exists {
		return fmt.Errorf("renderer: converter for %q already registered", ext)
	}
	r.converters[ext] = c
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(ext string, c Converter) {
	if err := r.Register(ext, c); err != nil {
		panic(err)
	}
}

// Lookup returns the converter registered for ext.
func (r *Registry) Lookup(ext string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.converters[ext]
	return c, ok
}

// Has reports whether a converter is registered for ext.
func (r *Registry) Has(ext string) bool {
	_, ok := r.Lookup(ext)
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Convert renders content with the converter registered for ext. Content for
// an extension without a converter is returned unchanged; that is not an error.
func (r *Registry) Convert(ext, content string) (string, error) {
	c, ok := r.Lookup(ext)
	if !ok {
		return content, nil
	}
	out, err := c.Convert([]byte(content))
	if err != nil {
		return "", fmt.Errorf("renderer: convert %s: %w", ext, err)
	}
	return string(out), nil
}

// OutputExt returns the extension rendered content for ext should carry.
// Extensions without a converter, or whose converter declares none, keep ext.
func (r *Registry) OutputExt(ext string) string {
	c, ok := r.Lookup(ext)
	if !ok {
		return ext
	}
	return outputExtOf(c, ext)
}
