package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// PruneOfflineMirror deletes every tarball under the mirror directory that
// the lockfile no longer references. The required set is derived from each
// locked resolved field: any #hash suffix is stripped and the URL is
// reduced to its basename.
func (c *Config) PruneOfflineMirror(lockfile domain.LockfileImage) error {
	mirror := c.OfflineMirrorPath()
	if mirror == "" {
		return nil
	}

	required := make(map[string]bool, len(lockfile))
	for _, record := range lockfile {
		if record.Resolved == "" {
			continue
		}
		resolved := record.Resolved
		if i := strings.Index(resolved, "#"); i >= 0 {
			resolved = resolved[:i]
		}
		required[filepath.Base(resolved)] = true
	}

	entries, err := os.ReadDir(mirror)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read offline mirror"), "path", mirror)
	}

	for _, entry := range entries {
		if entry.IsDir() || required[entry.Name()] {
			continue
		}
		path := filepath.Join(mirror, entry.Name())
		if err := os.Remove(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to prune mirror tarball"), "path", path)
		}
		if c.logger != nil {
			c.logger.Info("pruned stale mirror tarball " + entry.Name())
		}
	}
	return nil
}
