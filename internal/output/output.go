// Package output writes constructed layouts and a manifest describing them.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/layout"
	"git.home.luguber.info/inful/layoutrender/internal/logfields"
)

// ManifestFile is the manifest name inside the output directory.
const ManifestFile = "manifest.yaml"

// Manifest lists what Write produced.
type Manifest struct {
	Layouts []Entry `yaml:"layouts"`
}

// Entry describes one written layout.
type Entry struct {
	Name            string         `yaml:"name"`
	Source          string         `yaml:"source"`
	SourceExtension string         `yaml:"source_extension"`
	OutputExtension string         `yaml:"output_extension"`
	File            string         `yaml:"file"`
	Fingerprint     string         `yaml:"fingerprint,omitempty"`
	Data            map[string]any `yaml:"data,omitempty"`
}

// Write stores each layout as <dir>/<name><Ext> and writes the manifest.
// Output names are checked before anything is written: two layouts sharing a
// name, or a layout named like the manifest, is a validation error. Files
// listed in a previous manifest that this run no longer produces are removed.
func Write(dir string, layouts []*layout.Layout) (Manifest, error) {
	manifest := Manifest{Layouts: make([]Entry, 0, len(layouts))}
	seen := map[string]string{ManifestFile: ""}
	for _, l := range layouts {
		file := l.Name + l.Ext
		if prev, dup := seen[file]; dup {
			msg := fmt.Sprintf("layouts %s and %s both render to %s", prev, l.Path, file)
			if file == ManifestFile {
				msg = fmt.Sprintf("layout %s would overwrite %s", l.Path, ManifestFile)
			}
			return Manifest{}, foundationerrors.ValidationError(msg).
				WithContext(logfields.KeyPath, l.Path).
				Build()
		}
		seen[file] = l.Path
		manifest.Layouts = append(manifest.Layouts, Entry{
			Name:            l.Name,
			Source:          l.Path,
			SourceExtension: l.Extension(),
			OutputExtension: l.Ext,
			File:            file,
			Fingerprint:     l.Fingerprint,
			Data:            l.Data,
		})
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fsError(err, "failed to create output directory", dir)
	}
	if err := prune(dir, seen); err != nil {
		return Manifest{}, err
	}

	for i, l := range layouts {
		target := filepath.Join(dir, manifest.Layouts[i].File)
		if err := os.WriteFile(target, []byte(l.Content), 0o644); err != nil {
			return Manifest{}, fsError(err, "failed to write layout", target)
		}
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return Manifest{}, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to encode manifest").Build()
	}
	target := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return Manifest{}, fsError(err, "failed to write manifest", target)
	}
	return manifest, nil
}

// prune removes outputs recorded by the previous manifest that are not in
// keep. Without a readable previous manifest nothing is removed.
func prune(dir string, keep map[string]string) error {
	prev, err := ReadManifest(dir)
	if err != nil {
		return nil
	}
	for _, e := range prev.Layouts {
		if _, ok := keep[e.File]; ok || e.File == "" || filepath.Base(e.File) != e.File {
			continue
		}
		target := filepath.Join(dir, e.File)
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return fsError(err, "failed to remove stale layout", target)
		}
	}
	return nil
}

// ReadManifest loads a manifest previously written to dir.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return m, fsError(err, "failed to read manifest", dir)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "failed to decode manifest").
			WithContext(logfields.KeyPath, dir).
			Build()
	}
	return m, nil
}

func fsError(err error, msg, path string) error {
	return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, msg).
		WithContext(logfields.KeyPath, path).
		Build()
}
