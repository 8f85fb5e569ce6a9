package install

import (
	"os"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// bailout decides whether the on-disk state already satisfies the request.
// A true return short-circuits the rest of the pipeline.
func (i *Installer) bailout(usedPatterns []string) (bool, error) {
	if i.flags.SkipIntegrityCheck || i.flags.Force {
		return false, nil
	}
	if len(i.lockfile.Cache()) == 0 {
		return false, nil
	}

	status, err := i.engines.Integrity.Check(usedPatterns, i.lockfile.Cache(), i.flags)
	if err != nil {
		return false, err
	}

	if i.flags.FrozenLockfile && len(status.MissingPatterns) > 0 {
		return false, zerr.With(domain.ErrFrozenLockfile, "missing", strings.Join(status.MissingPatterns, ", "))
	}

	if status.IntegrityMatches && i.lockfile.Exists() {
		i.reporter.Success("Already up to date.")
		return true, nil
	}

	if len(usedPatterns) == 0 && !status.IntegrityFileMissing {
		if err := os.MkdirAll(i.cfg.ModulesFolder(i.registryName), 0o750); err != nil {
			return false, zerr.Wrap(err, "failed to create install folder")
		}
		if err := i.saveLockfileAndIntegrity(usedPatterns); err != nil {
			return false, err
		}
		i.reporter.Success("Nothing to install.")
		return true, nil
	}

	return false, nil
}
