package registry

import (
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// DependencyNamesByLevelOrder yields every package name reachable from the
// given patterns, breadth-first, each name once.
func (r *Resolver) DependencyNamesByLevelOrder(patterns []string) []string {
	var order []string
	seen := make(map[string]bool)
	queue := append([]string(nil), patterns...)

	for len(queue) > 0 {
		pattern := queue[0]
		queue = queue[1:]

		manifest, ok := r.patterns[pattern]
		if !ok {
			continue
		}
		if !seen[manifest.Name] {
			seen[manifest.Name] = true
			order = append(order, manifest.Name)
		}
		for name, rng := range manifest.Dependencies {
			queue = append(queue, domain.MakePattern(name, rng))
		}
		for name, rng := range manifest.OptionalDependencies {
			queue = append(queue, domain.MakePattern(name, rng))
		}
	}
	return order
}

// InfoForPackageName returns all resolved manifests for a name, one per
// distinct version.
func (r *Resolver) InfoForPackageName(name string) []*domain.Manifest {
	var out []*domain.Manifest
	for _, manifest := range r.manifests {
		if manifest.Name == name {
			out = append(out, manifest)
		}
	}
	return out
}

// PatternsByPackage returns every pattern that resolved to the name.
func (r *Resolver) PatternsByPackage(name string) []string {
	return r.patternsByName[name]
}

// CollapseAllVersionsOfPackage repoints every pattern of the name to the
// manifest of the given version and returns the surviving pattern.
func (r *Resolver) CollapseAllVersionsOfPackage(name, version string) (string, error) {
	idx, ok := r.byNameVersion[name+"@"+version]
	if !ok {
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrPatternNotResolved, "cannot collapse to unresolved version"), "package", name), "version", version)
	}
	chosen := r.manifests[idx]
	chosenRef := r.refs[chosen.Ref]

	for _, pattern := range r.patternsByName[name] {
		previous := r.patterns[pattern]
		if previous == chosen {
			continue
		}
		prevRef := r.refs[previous.Ref]
		prevRef.Ignore = true
		for _, requester := range prevRef.Requesters {
			chosenRef.AddRequester(requester)
		}
		chosenRef.AddPattern(pattern)
		r.patterns[pattern] = chosen
	}

	if len(r.patternsByName[name]) > 0 {
		return r.patternsByName[name][0], nil
	}
	return domain.MakePattern(name, version), nil
}

// ResolvedPattern returns the manifest a pattern resolved to, or nil.
func (r *Resolver) ResolvedPattern(pattern string) *domain.Manifest {
	return r.patterns[pattern]
}

// StrictResolvedPattern is ResolvedPattern but fails on unknown patterns.
func (r *Resolver) StrictResolvedPattern(pattern string) (*domain.Manifest, error) {
	manifest, ok := r.patterns[pattern]
	if !ok {
		return nil, zerr.With(domain.ErrPatternNotResolved, "pattern", pattern)
	}
	return manifest, nil
}

// Manifests returns every resolved manifest.
func (r *Resolver) Manifests() []*domain.Manifest {
	return r.manifests
}

// Reference returns the reference record at the stable index.
func (r *Resolver) Reference(ref int) *domain.PackageReference {
	if ref < 0 || ref >= len(r.refs) {
		return nil
	}
	return r.refs[ref]
}

// Patterns returns the full pattern → manifest mapping.
func (r *Resolver) Patterns() map[string]*domain.Manifest {
	return r.patterns
}

// UsedRegistries lists the registries that contributed packages.
func (r *Resolver) UsedRegistries() []string {
	return r.usedRegistries
}
