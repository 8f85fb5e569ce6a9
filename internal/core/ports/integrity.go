package ports

import "go.trai.ch/pakt/internal/core/domain"

// IntegrityChecker maintains the integrity witness: the on-disk record
// summarizing the last successful install.
//
//go:generate mockgen -source=integrity.go -destination=mocks/mock_integrity.go -package=mocks
type IntegrityChecker interface {
	// Check compares the witness against the current request.
	Check(usedPatterns []string, lockfile domain.LockfileImage, flags domain.EffectiveFlags) (domain.IntegrityStatus, error)

	// Save rewrites the witness after a successful install.
	Save(patterns []string, lockfile domain.LockfileImage, flags domain.EffectiveFlags, usedRegistries []string) error

	// RemoveIntegrityFile deletes the witness. Called before the
	// installation tree is mutated so a crash leaves the install visibly
	// incomplete.
	RemoveIntegrityFile() error
}
