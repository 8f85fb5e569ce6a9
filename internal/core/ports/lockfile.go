package ports

import "go.trai.ch/pakt/internal/core/domain"

// Lockfile is the persisted, canonical mapping from pattern to resolved
// coordinates. The textual encoding is owned by the adapter.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type Lockfile interface {
	// Locked returns the locked record for a pattern, or nil. With
	// ignoreVersion set, a bare package name matches any entry of that
	// name regardless of range.
	Locked(pattern string, ignoreVersion bool) *domain.LockedRecord

	// Image computes the candidate lockfile content from the resolver's
	// current pattern set.
	Image(resolverPatterns map[string]*domain.Manifest) domain.LockfileImage

	// Cache exposes the parsed entries; empty when no lockfile was loaded.
	Cache() domain.LockfileImage

	// Exists reports whether a lockfile file was present on disk.
	Exists() bool

	// Write serializes an image to the given path, preserving the newline
	// style of the file it replaces.
	Write(path string, image domain.LockfileImage) error
}
