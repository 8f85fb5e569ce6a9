// Package fetch materializes resolved packages into the package cache.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// concurrency bounds parallel downloads.
const concurrency = 8

// Fetcher implements ports.Fetcher: it downloads and extracts every
// non-ignored resolved package into the cache, serving from the offline
// mirror when possible.
type Fetcher struct {
	cfg      *config.Config
	resolver ports.Resolver
	logger   ports.Logger
}

// NewFetcher creates a Fetcher for one install.
func NewFetcher(cfg *config.Config, resolver ports.Resolver, logger ports.Logger) *Fetcher {
	return &Fetcher{cfg: cfg, resolver: resolver, logger: logger}
}

// CachePath is the cache directory of a package version.
func CachePath(cfg *config.Config, manifest *domain.Manifest) string {
	name := strings.ReplaceAll(manifest.Name, "/", "-")
	return filepath.Join(cfg.CacheFolder(), name+"-"+manifest.Version)
}

// Init fetches all resolved packages concurrently.
func (f *Fetcher) Init(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, manifest := range f.resolver.Manifests() {
		ref := f.resolver.Reference(manifest.Ref)
		if ref != nil && ref.Ignore {
			continue
		}
		m := manifest
		g.Go(func() error {
			return f.fetchOne(ctx, m)
		})
	}
	return g.Wait()
}

func (f *Fetcher) fetchOne(ctx context.Context, manifest *domain.Manifest) error {
	dest := CachePath(f.cfg, manifest)
	if _, err := os.Stat(filepath.Join(dest, "package.json")); err == nil {
		return nil
	}

	if manifest.Dist.Tarball == "" {
		// Nothing to download: lay down the manifest so the linker has a
		// package directory to work with.
		return writeManifestOnly(dest, manifest)
	}

	data, err := f.tarballBytes(ctx, manifest)
	if err != nil {
		return err
	}

	if err := verifyIntegrity(manifest, data); err != nil {
		return err
	}

	if mirror := f.cfg.OfflineMirrorPath(); mirror != "" {
		if err := storeInMirror(mirror, manifest.Dist.Tarball, data); err != nil {
			return err
		}
	}

	if err := extractTarball(dest, data); err != nil {
		return zerr.With(err, "package", manifest.Name)
	}

	// Guarantee the marker file the cache-hit check looks for.
	if _, err := os.Stat(filepath.Join(dest, "package.json")); err != nil {
		return writeManifestOnly(dest, manifest)
	}
	return nil
}

// tarballBytes prefers the offline mirror over the network.
func (f *Fetcher) tarballBytes(ctx context.Context, manifest *domain.Manifest) ([]byte, error) {
	basename := tarballBasename(manifest.Dist.Tarball)
	if mirror := f.cfg.OfflineMirrorPath(); mirror != "" && basename != "" {
		data, err := os.ReadFile(filepath.Join(mirror, basename)) //nolint:gosec // mirror path is configured by the user
		if err == nil {
			return data, nil
		}
	}

	data, err := f.cfg.Requests.Request(ctx, manifest.Dist.Tarball)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to download tarball"), "package", manifest.Name)
	}
	return data, nil
}

func tarballBasename(tarball string) string {
	if i := strings.Index(tarball, "#"); i >= 0 {
		tarball = tarball[:i]
	}
	if tarball == "" {
		return ""
	}
	return filepath.Base(tarball)
}

// verifyIntegrity checks xxh64-prefixed integrity values against the
// tarball bytes. Other integrity formats pass through untouched.
func verifyIntegrity(manifest *domain.Manifest, data []byte) error {
	integrity := manifest.Dist.Integrity
	if !strings.HasPrefix(integrity, "xxh64:") {
		return nil
	}
	sum := fmt.Sprintf("%016x", xxhash.Sum64(data))
	if "xxh64:"+sum != integrity {
		err := zerr.With(zerr.New("tarball integrity mismatch"), "package", manifest.Name)
		err = zerr.With(err, "expected", integrity)
		err = zerr.With(err, "actual", "xxh64:"+sum)
		return err
	}
	return nil
}

func storeInMirror(mirror, tarball string, data []byte) error {
	basename := tarballBasename(tarball)
	if basename == "" {
		return nil
	}
	if err := os.MkdirAll(mirror, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create offline mirror"), "path", mirror)
	}
	path := filepath.Join(mirror, basename)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // mirror tarball is a project artifact
		return zerr.With(zerr.Wrap(err, "failed to write mirror tarball"), "path", path)
	}
	return nil
}

func writeManifestOnly(dest string, manifest *domain.Manifest) error {
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache entry"), "path", dest)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode manifest")
	}
	path := filepath.Join(dest, "package.json")
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // cache entry is a local artifact
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
	}
	return nil
}
