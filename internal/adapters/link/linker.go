// Package link materializes the installation tree from the package cache.
package link

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/fetch"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Linker = (*Linker)(nil)

// Linker implements ports.Linker with a flat install folder. When two
// versions of a name survive resolution, the version reachable from a
// top-level pattern claims the plain slot and the others land at
// name-version.
type Linker struct {
	cfg           *config.Config
	resolver      ports.Resolver
	modulesFolder string
	logger        ports.Logger
}

// NewLinker creates a Linker installing into the given folder.
func NewLinker(cfg *config.Config, resolver ports.Resolver, modulesFolder string, logger ports.Logger) *Linker {
	return &Linker{cfg: cfg, resolver: resolver, modulesFolder: modulesFolder, logger: logger}
}

// Init copies every non-ignored package out of the cache.
func (l *Linker) Init(ctx context.Context, topLevelPatterns []string, linkDuplicates bool) error {
	if err := os.MkdirAll(l.modulesFolder, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create install folder"), "path", l.modulesFolder)
	}

	topLevel := make(map[int]bool, len(topLevelPatterns))
	for _, pattern := range topLevelPatterns {
		if manifest := l.resolver.ResolvedPattern(pattern); manifest != nil {
			topLevel[manifest.Ref] = true
		}
	}

	// First pass: decide who owns each plain name slot. Top-level
	// packages win; otherwise the first resolved version does.
	claimed := make(map[string]string)
	for _, manifest := range l.resolver.Manifests() {
		ref := l.resolver.Reference(manifest.Ref)
		if ref != nil && ref.Ignore {
			continue
		}
		if _, taken := claimed[manifest.Name]; !taken || topLevel[manifest.Ref] {
			claimed[manifest.Name] = manifest.Version
		}
	}

	// Second pass: copy everything out of the cache. Versions that lost
	// the slot land at name-version.
	for _, manifest := range l.resolver.Manifests() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ref := l.resolver.Reference(manifest.Ref)
		if ref != nil && ref.Ignore {
			continue
		}

		dest := filepath.Join(l.modulesFolder, filepath.FromSlash(manifest.Name))
		if claimed[manifest.Name] != manifest.Version {
			dest += "-" + manifest.Version
		}
		src := fetch.CachePath(l.cfg, manifest)
		if err := copyTree(src, dest, linkDuplicates); err != nil {
			return zerr.With(err, "package", manifest.Name)
		}
	}
	return nil
}

// copyTree copies src into dest, replacing what was there. With hardlink
// set, regular files become hardlinks into the cache.
func copyTree(src, dest string, hardlink bool) error {
	if err := os.RemoveAll(dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear install path"), "path", dest)
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk cache entry"), "path", path)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.Wrap(err, "failed to relativize path")
		}
		target := filepath.Join(dest, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if hardlink {
			if err := os.Link(path, target); err == nil {
				return nil
			}
			// Cross-device or unsupported: fall back to a copy.
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // src is a cache entry
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // best effort close

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm()) //nolint:gosec // dest is inside the install folder
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target"), "path", dest)
	}
	defer out.Close() //nolint:errcheck // best effort close

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dest)
	}
	return nil
}
