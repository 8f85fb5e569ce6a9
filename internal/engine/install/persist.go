package install

import (
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
)

// saveLockfileAndIntegrity persists the witness and, when needed, the
// lockfile. The witness is always rewritten; the lockfile write is skipped
// when nothing changed.
func (i *Installer) saveLockfileAndIntegrity(patterns []string) error {
	if !i.flags.Lockfile || i.flags.PureLockfile {
		return nil
	}

	candidate := i.lockfile.Image(i.engines.Resolver.Patterns())

	if i.cfg.OfflineMirrorPath() != "" {
		if err := i.cfg.PruneOfflineMirror(candidate); err != nil {
			return err
		}
	}

	if err := i.engines.Integrity.Save(patterns, candidate, i.flags, i.engines.Resolver.UsedRegistries()); err != nil {
		return err
	}

	if i.lockfileUnchanged(patterns, candidate) {
		return nil
	}

	if err := i.lockfile.Write(filepath.Join(i.cfg.Cwd, config.LockfileFilename), candidate); err != nil {
		return err
	}
	i.reporter.Success("Saved lockfile.")
	return nil
}

// lockfileUnchanged implements the skip-write optimization: every pattern
// already has a lock entry, every candidate entry agrees with the existing
// lockfile on resolved, the pattern set is non-empty, and force is off.
func (i *Installer) lockfileUnchanged(patterns []string, candidate domain.LockfileImage) bool {
	if len(patterns) == 0 || i.flags.Force {
		return false
	}

	for _, pattern := range patterns {
		if i.lockfile.Locked(pattern, domain.PatternRange(pattern) == "") == nil {
			return false
		}
	}

	cache := i.lockfile.Cache()
	for pattern, record := range candidate {
		existing, ok := cache[pattern]
		if !ok || existing.Resolved != record.Resolved {
			return false
		}
	}
	return true
}
