package install

import (
	"context"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
)

// Disambiguator resolves a flat-mode version conflict to one version. The
// default implementation prompts through the Reporter; a scripted one can
// consume a preset, and a non-interactive one can fail fast.
type Disambiguator interface {
	Choose(name string, options []ports.SelectOption) (string, error)
}

type reporterDisambiguator struct {
	reporter ports.Reporter
}

func (d *reporterDisambiguator) Choose(name string, options []ports.SelectOption) (string, error) {
	return d.reporter.Select("Unable to find a suitable version for "+name+", please choose one:", "Answer?", options)
}

// flatten collapses every package name to a single version. Outside flat
// mode it returns the patterns untouched.
func (i *Installer) flatten(_ context.Context, patterns []string) ([]string, error) {
	if !i.flags.Flat {
		return patterns, nil
	}

	var flattened []string
	addedResolutions := false

	for _, name := range i.engines.Resolver.DependencyNamesByLevelOrder(patterns) {
		var candidates []*domain.Manifest
		for _, manifest := range i.engines.Resolver.InfoForPackageName(name) {
			ref := i.engines.Resolver.Reference(manifest.Ref)
			if ref != nil && ref.Ignore {
				continue
			}
			candidates = append(candidates, manifest)
		}

		switch len(candidates) {
		case 0:
			continue
		case 1:
			// All patterns resolve to the same entity; any representative
			// will do.
			if reps := i.engines.Resolver.PatternsByPackage(name); len(reps) > 0 {
				flattened = append(flattened, reps[0])
			}
			continue
		}

		version, ok := i.presetResolution(name, candidates)
		if !ok {
			chosen, err := i.disambiguator.Choose(name, selectOptions(i.engines.Resolver, candidates))
			if err != nil {
				return nil, err
			}
			version = chosen
			i.resolutions[name] = version
			addedResolutions = true
		}

		pattern, err := i.engines.Resolver.CollapseAllVersionsOfPackage(name, version)
		if err != nil {
			return nil, err
		}
		flattened = append(flattened, pattern)
	}

	if addedResolutions && !i.dryRun {
		if err := i.persistResolutions(); err != nil {
			return nil, err
		}
	}

	return flattened, nil
}

// presetResolution honors an existing resolutions entry when it names one
// of the candidate versions.
func (i *Installer) presetResolution(name string, candidates []*domain.Manifest) (string, bool) {
	version, ok := i.resolutions[name]
	if !ok {
		return "", false
	}
	for _, candidate := range candidates {
		if candidate.Version == version {
			return version, true
		}
	}
	return "", false
}

func selectOptions(resolver ports.Resolver, candidates []*domain.Manifest) []ports.SelectOption {
	options := make([]ports.SelectOption, 0, len(candidates))
	for _, candidate := range candidates {
		parents := "the project"
		if ref := resolver.Reference(candidate.Ref); ref != nil && len(ref.Requesters) > 0 {
			parents = strings.Join(ref.Requesters, ", ")
		}
		options = append(options, ports.SelectOption{
			Label: "used by " + parents + ", version " + candidate.Version,
			Value: candidate.Version,
		})
	}
	return options
}

// persistResolutions merges the recorded resolutions back into the winning
// root manifest and saves it.
func (i *Installer) persistResolutions() error {
	file := i.rootManifests[i.registryName]
	if file == nil || !file.Exists {
		return nil
	}
	if file.Manifest.Resolutions == nil {
		file.Manifest.Resolutions = make(map[string]string, len(i.resolutions))
	}
	for name, version := range i.resolutions {
		file.Manifest.Resolutions[name] = version
	}
	return i.cfg.SaveRootManifests(i.rootManifests)
}
