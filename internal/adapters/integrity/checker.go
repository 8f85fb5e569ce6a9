// Package integrity maintains the integrity witness: the on-disk record
// the bailout logic uses to decide whether an install is still current.
package integrity

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.IntegrityChecker = (*Checker)(nil)

// Filename is the witness file, kept inside the install folder.
const Filename = ".pakt-integrity"

// Checker implements ports.IntegrityChecker against a single install
// folder.
type Checker struct {
	modulesFolder string
	production    bool
}

// NewChecker creates a Checker for the given install folder.
func NewChecker(modulesFolder string, production bool) *Checker {
	return &Checker{modulesFolder: modulesFolder, production: production}
}

func (c *Checker) path() string {
	return filepath.Join(c.modulesFolder, Filename)
}

// witness is the persisted record shape.
type witness struct {
	SystemParams     string   `yaml:"systemParams"`
	ModulesFolder    string   `yaml:"modulesFolder"`
	Flags            []string `yaml:"flags"`
	TopLevelPatterns []string `yaml:"topLevelPatterns"`
	LockfileDigest   string   `yaml:"lockfileDigest"`
	Registries       []string `yaml:"registries"`
}

func (c *Checker) compute(patterns []string, lockfile domain.LockfileImage, flags domain.EffectiveFlags, registries []string) witness {
	sortedPatterns := append([]string(nil), patterns...)
	sort.Strings(sortedPatterns)

	sortedRegistries := append([]string(nil), registries...)
	sort.Strings(sortedRegistries)

	return witness{
		SystemParams:     runtime.GOOS + "-" + runtime.GOARCH,
		ModulesFolder:    c.modulesFolder,
		Flags:            c.relevantFlags(flags),
		TopLevelPatterns: sortedPatterns,
		LockfileDigest:   lockfileDigest(lockfile),
		Registries:       sortedRegistries,
	}
}

// relevantFlags lists the truthy flags that change the shape of the
// installed tree. Flags that only alter reporting or persistence are
// deliberately absent.
func (c *Checker) relevantFlags(flags domain.EffectiveFlags) []string {
	var out []string
	if flags.Flat {
		out = append(out, "flat")
	}
	if flags.IgnoreOptional {
		out = append(out, "ignoreOptional")
	}
	if flags.IgnoreScripts {
		out = append(out, "ignoreScripts")
	}
	if flags.LinkDuplicates {
		out = append(out, "linkDuplicates")
	}
	if c.production {
		out = append(out, "production")
	}
	sort.Strings(out)
	return out
}

// lockfileDigest hashes the image with a stable entry order.
func lockfileDigest(image domain.LockfileImage) string {
	patterns := make([]string, 0, len(image))
	for pattern := range image {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	hasher := xxhash.New()
	for _, pattern := range patterns {
		record := image[pattern]
		_, _ = hasher.WriteString(pattern)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(record.Version)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(record.Resolved)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// Check compares the on-disk witness against the current request.
func (c *Checker) Check(usedPatterns []string, lockfile domain.LockfileImage, flags domain.EffectiveFlags) (domain.IntegrityStatus, error) {
	status := domain.IntegrityStatus{}

	for _, pattern := range usedPatterns {
		if !imageCovers(lockfile, pattern) {
			status.MissingPatterns = append(status.MissingPatterns, pattern)
		}
	}

	data, err := os.ReadFile(c.path()) //nolint:gosec // witness path is rooted in the install folder
	if err != nil {
		if os.IsNotExist(err) {
			status.IntegrityFileMissing = true
			return status, nil
		}
		return status, zerr.With(zerr.Wrap(err, "failed to read integrity file"), "path", c.path())
	}

	var stored witness
	if err := yaml.Unmarshal(data, &stored); err != nil {
		// A corrupt witness means a full install, not a failure.
		status.IntegrityFileMissing = true
		return status, nil
	}

	if len(status.MissingPatterns) > 0 {
		return status, nil
	}

	expected := c.compute(usedPatterns, lockfile, flags, stored.Registries)
	status.IntegrityMatches = witnessEqual(stored, expected) && c.filesPresent(flags)
	return status, nil
}

// imageCovers reports whether the image has an entry for the pattern,
// treating a bare name as matching any entry of that name.
func imageCovers(image domain.LockfileImage, pattern string) bool {
	if _, ok := image[pattern]; ok {
		return true
	}
	if domain.PatternRange(pattern) != "" {
		return false
	}
	for key := range image {
		if domain.PatternName(key) == pattern {
			return true
		}
	}
	return false
}

func witnessEqual(a, b witness) bool {
	return a.SystemParams == b.SystemParams &&
		a.ModulesFolder == b.ModulesFolder &&
		a.LockfileDigest == b.LockfileDigest &&
		stringsEqual(a.Flags, b.Flags) &&
		stringsEqual(a.TopLevelPatterns, b.TopLevelPatterns)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// filesPresent verifies the install folder still exists; with checkFiles
// it must also be non-empty.
func (c *Checker) filesPresent(flags domain.EffectiveFlags) bool {
	entries, err := os.ReadDir(c.modulesFolder)
	if err != nil {
		return false
	}
	if flags.CheckFiles {
		for _, entry := range entries {
			if entry.Name() != Filename {
				return true
			}
		}
		return false
	}
	return true
}

// Save rewrites the witness after a successful install.
func (c *Checker) Save(patterns []string, lockfile domain.LockfileImage, flags domain.EffectiveFlags, usedRegistries []string) error {
	if err := os.MkdirAll(c.modulesFolder, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create install folder"), "path", c.modulesFolder)
	}

	data, err := yaml.Marshal(c.compute(patterns, lockfile, flags, usedRegistries))
	if err != nil {
		return zerr.Wrap(err, "failed to encode integrity file")
	}
	if err := os.WriteFile(c.path(), data, 0o644); err != nil { //nolint:gosec // witness is a project artifact
		return zerr.With(zerr.Wrap(err, "failed to write integrity file"), "path", c.path())
	}
	return nil
}

// RemoveIntegrityFile deletes the witness. A missing witness is fine.
func (c *Checker) RemoveIntegrityFile() error {
	if err := os.Remove(c.path()); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove integrity file"), "path", c.path())
	}
	return nil
}
