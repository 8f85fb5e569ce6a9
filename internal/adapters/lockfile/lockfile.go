// Package lockfile implements the pakt.lock codec.
package lockfile

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Lockfile = (*File)(nil)

// File is a parsed lockfile. An absent lockfile parses to an empty cache.
type File struct {
	cache  domain.LockfileImage
	exists bool
	crlf   bool
}

// FromDirectory loads the lockfile of a working directory. A legacy npm
// shrinkwrap file produces a warning but changes nothing.
func FromDirectory(dir string, reporter ports.Reporter) (*File, error) {
	if reporter != nil {
		if _, err := os.Stat(filepath.Join(dir, config.ShrinkwrapFilename)); err == nil {
			reporter.Warn(config.ShrinkwrapFilename + " found. This will not be respected; use " + config.LockfileFilename + " instead.")
		}
	}

	path := filepath.Join(dir, config.LockfileFilename)
	data, err := os.ReadFile(path) //nolint:gosec // lockfile path is rooted in dir
	if err != nil {
		if os.IsNotExist(err) {
			return &File{cache: domain.LockfileImage{}}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	f := &File{
		exists: true,
		crlf:   bytes.Contains(data, []byte("\r\n")),
	}
	if err := Parse(data, &f.cache); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return f, nil
}

// Locked returns the record for a pattern. With ignoreVersion, a bare name
// matches the first entry (in sorted key order) of that name.
func (f *File) Locked(pattern string, ignoreVersion bool) *domain.LockedRecord {
	if record, ok := f.cache[pattern]; ok {
		record.Name = domain.PatternName(pattern)
		return &record
	}
	if !ignoreVersion {
		return nil
	}

	keys := make([]string, 0, len(f.cache))
	for key := range f.cache {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if domain.PatternName(key) == pattern {
			record := f.cache[key]
			record.Name = pattern
			return &record
		}
	}
	return nil
}

// Image computes the candidate lockfile content from a resolver's pattern
// set.
func (f *File) Image(resolverPatterns map[string]*domain.Manifest) domain.LockfileImage {
	image := make(domain.LockfileImage, len(resolverPatterns))
	for pattern, manifest := range resolverPatterns {
		if manifest == nil {
			continue
		}
		resolved := manifest.Dist.Tarball
		if resolved != "" && manifest.Dist.Integrity != "" {
			resolved += "#" + manifest.Dist.Integrity
		}
		image[pattern] = domain.LockedRecord{
			Name:                 manifest.Name,
			Version:              manifest.Version,
			Resolved:             resolved,
			Integrity:            manifest.Dist.Integrity,
			Registry:             manifest.Registry,
			Dependencies:         manifest.Dependencies,
			OptionalDependencies: manifest.OptionalDependencies,
		}
	}
	return image
}

// Cache exposes the parsed entries.
func (f *File) Cache() domain.LockfileImage {
	return f.cache
}

// Exists reports whether a lockfile file was present on disk.
func (f *File) Exists() bool {
	return f.exists
}

// Write serializes an image to path, keeping the previous file's newline
// style.
func (f *File) Write(path string, image domain.LockfileImage) error {
	data, err := Serialize(image)
	if err != nil {
		return err
	}
	if f.crlf {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // lockfile is a project file
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	return nil
}
