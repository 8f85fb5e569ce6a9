package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// RootManifestFile is one registry's root manifest in the working
// directory, together with enough state to write it back unchanged apart
// from deliberate edits.
type RootManifestFile struct {
	Loc      string
	Exists   bool
	Manifest domain.Manifest

	// raw keeps the original object so fields this tool does not model
	// survive a rewrite.
	raw map[string]json.RawMessage
}

// ReadJSON reads and decodes a JSON file into out.
func (c *Config) ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is rooted in cwd
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse json"), "path", path)
	}
	return nil
}

// ReadManifest reads a package manifest from a file.
func (c *Config) ReadManifest(path string) (*domain.Manifest, error) {
	var manifest domain.Manifest
	if err := c.ReadJSON(path, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// GetRootManifests reads every registry's root manifest slot in the
// working directory. Missing files come back with Exists=false.
func (c *Config) GetRootManifests() (map[string]*RootManifestFile, error) {
	manifests := make(map[string]*RootManifestFile, len(Registries))
	for _, registry := range Registries {
		loc := filepath.Join(c.Cwd, registry.Filename)
		file := &RootManifestFile{Loc: loc}

		data, err := os.ReadFile(loc) //nolint:gosec // manifest path is rooted in cwd
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, zerr.With(zerr.Wrap(err, "failed to read root manifest"), "path", loc)
			}
			manifests[registry.Name] = file
			continue
		}

		if err := json.Unmarshal(data, &file.Manifest); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse root manifest"), "path", loc)
		}
		if err := json.Unmarshal(data, &file.raw); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse root manifest"), "path", loc)
		}
		file.Exists = true
		manifests[registry.Name] = file
	}
	return manifests, nil
}

// SaveRootManifests writes back every manifest marked as existing,
// preserving unmodeled fields and writing the resolutions section the
// flattener may have extended.
func (c *Config) SaveRootManifests(manifests map[string]*RootManifestFile) error {
	for _, file := range manifests {
		if !file.Exists {
			continue
		}

		obj := file.raw
		if obj == nil {
			obj = make(map[string]json.RawMessage)
		}
		if len(file.Manifest.Resolutions) > 0 {
			res, err := json.Marshal(file.Manifest.Resolutions)
			if err != nil {
				return zerr.Wrap(err, "failed to encode resolutions")
			}
			obj["resolutions"] = res
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(obj); err != nil {
			return zerr.Wrap(err, "failed to encode root manifest")
		}

		if err := os.WriteFile(file.Loc, buf.Bytes(), 0o644); err != nil { //nolint:gosec // manifest is a project file
			return zerr.With(zerr.Wrap(err, "failed to write root manifest"), "path", file.Loc)
		}
	}
	return nil
}
