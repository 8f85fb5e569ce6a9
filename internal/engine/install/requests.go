package install

import (
	"sort"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
)

// CollectedRequests is the output of one request collection: the request
// list plus the pattern partition.
type CollectedRequests struct {
	Requests []domain.DependencyRequest

	// Patterns is every pattern that participates in resolution.
	Patterns []string
	// UsedPatterns is the live subset of Patterns for this invocation.
	UsedPatterns []string
	// IgnorePatterns is Patterns minus UsedPatterns.
	IgnorePatterns []string

	Manifest *domain.Manifest
}

// CollectRequests walks the registries' root manifest slots in enumeration
// order; the first manifest that exists wins and the rest are not
// consulted. With ignoreUnused set, entries that are not live in this
// invocation are dropped entirely instead of being partitioned.
func (i *Installer) CollectRequests(excludePatterns []string, ignoreUnused bool) (*CollectedRequests, error) {
	excludeNames := make(map[string]bool, len(excludePatterns))
	for _, pattern := range excludePatterns {
		// Exotic descriptors have no registry name to exclude by.
		if domain.IsExotic(pattern) {
			continue
		}
		excludeNames[domain.PatternName(pattern)] = true
	}

	rootManifests, err := i.cfg.GetRootManifests()
	if err != nil {
		return nil, err
	}
	i.rootManifests = rootManifests

	var winner *config.RootManifestFile
	for _, registry := range config.Registries {
		file := rootManifests[registry.Name]
		if file == nil || !file.Exists {
			continue
		}
		winner = file
		i.registryName = registry.Name
		break
	}
	if winner == nil {
		return nil, domain.ErrNoRootManifest
	}

	manifest := winner.Manifest
	i.rootManifest = &manifest
	for name, version := range manifest.Resolutions {
		i.resolutions[name] = version
	}

	collected := &CollectedRequests{Manifest: &manifest}

	categories := []struct {
		deps   map[string]string
		origin domain.DependencyOrigin
		hint   domain.RequestHint
		used   bool
	}{
		{manifest.Dependencies, domain.OriginDependencies, domain.HintNone, true},
		{manifest.DevDependencies, domain.OriginDevDependencies, domain.HintDev, !i.cfg.Production},
		{manifest.OptionalDependencies, domain.OriginOptionalDependencies, domain.HintOptional, !i.flags.IgnoreOptional},
	}

	for _, category := range categories {
		for _, name := range sortedKeys(category.deps) {
			if excludeNames[name] {
				continue
			}
			if ignoreUnused && !category.used {
				continue
			}

			// A bare name suffices when the lockfile already pins it.
			pattern := name
			if i.lockfile.Locked(name, true) == nil {
				pattern = domain.MakePattern(name, category.deps[name])
			}

			collected.Patterns = append(collected.Patterns, pattern)
			if category.used {
				collected.UsedPatterns = append(collected.UsedPatterns, pattern)
			} else {
				collected.IgnorePatterns = append(collected.IgnorePatterns, pattern)
			}

			collected.Requests = append(collected.Requests, domain.DependencyRequest{
				Pattern:  pattern,
				Registry: i.registryName,
				Hint:     category.hint,
				Optional: category.origin == domain.OriginOptionalDependencies,
			})
			i.rootPatternsToOrigin[pattern] = category.origin
		}
	}

	if manifest.Flat {
		i.flags.Flat = true
	}

	return collected, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
