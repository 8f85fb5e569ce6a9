// Package registry implements the dependency resolver over registry
// metadata and the lockfile.
package registry

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver resolves dependency requests transitively, preferring lockfile
// pins and falling back to registry metadata.
type Resolver struct {
	cfg      *config.Config
	lockfile ports.Lockfile
	logger   ports.Logger

	patterns       map[string]*domain.Manifest
	refs           []*domain.PackageReference
	manifests      []*domain.Manifest
	byNameVersion  map[string]int
	patternsByName map[string][]string
	usedRegistries []string
}

// NewResolver creates a Resolver bound to one install's config and
// lockfile.
func NewResolver(cfg *config.Config, lockfile ports.Lockfile, logger ports.Logger) *Resolver {
	return &Resolver{
		cfg:            cfg,
		lockfile:       lockfile,
		logger:         logger,
		patterns:       make(map[string]*domain.Manifest),
		byNameVersion:  make(map[string]int),
		patternsByName: make(map[string][]string),
	}
}

type queued struct {
	pattern   string
	registry  string
	optional  bool
	requester string
}

// Init resolves the given requests breadth-first. The flat flag changes
// nothing here; the per-name bookkeeping it needs is always kept.
func (r *Resolver) Init(ctx context.Context, requests []domain.DependencyRequest, _ bool) error {
	queue := make([]queued, 0, len(requests))
	for _, request := range requests {
		queue = append(queue, queued{
			pattern:   request.Pattern,
			registry:  request.Registry,
			optional:  request.Optional,
			requester: domain.RootRequester,
		})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if manifest, ok := r.patterns[item.pattern]; ok {
			ref := r.refs[manifest.Ref]
			ref.AddRequester(item.requester)
			continue
		}

		manifest, err := r.resolveOne(ctx, item)
		if err != nil {
			if item.optional {
				if r.logger != nil {
					r.logger.Warn("skipping optional dependency " + item.pattern + ": " + err.Error())
				}
				continue
			}
			return err
		}

		ref := r.record(item, manifest)

		// devDependencies are only consulted at the root, which the
		// request collector already expanded.
		for name, rng := range manifest.Dependencies {
			queue = append(queue, queued{
				pattern:   domain.MakePattern(name, rng),
				registry:  ref.Registry,
				requester: item.pattern,
			})
		}
		for name, rng := range manifest.OptionalDependencies {
			queue = append(queue, queued{
				pattern:   domain.MakePattern(name, rng),
				registry:  ref.Registry,
				optional:  true,
				requester: item.pattern,
			})
		}
	}

	return nil
}

// record registers a resolved manifest under its pattern, reusing the
// reference record when the same name@version was already seen.
func (r *Resolver) record(item queued, manifest *domain.Manifest) *domain.PackageReference {
	key := manifest.Name + "@" + manifest.Version
	if idx, ok := r.byNameVersion[key]; ok {
		existing := r.manifests[idx]
		ref := r.refs[existing.Ref]
		ref.AddPattern(item.pattern)
		ref.AddRequester(item.requester)
		// A non-optional requester keeps the package mandatory.
		ref.Optional = ref.Optional && item.optional
		r.patterns[item.pattern] = existing
		r.patternsByName[manifest.Name] = appendUnique(r.patternsByName[manifest.Name], item.pattern)
		return ref
	}

	ref := &domain.PackageReference{
		Name:     manifest.Name,
		Version:  manifest.Version,
		Registry: manifest.Registry,
		Optional: item.optional,
	}
	ref.AddPattern(item.pattern)
	ref.AddRequester(item.requester)

	manifest.Ref = len(r.refs)
	r.refs = append(r.refs, ref)
	r.byNameVersion[key] = len(r.manifests)
	r.manifests = append(r.manifests, manifest)
	r.patterns[item.pattern] = manifest
	r.patternsByName[manifest.Name] = appendUnique(r.patternsByName[manifest.Name], item.pattern)
	r.usedRegistries = appendUnique(r.usedRegistries, manifest.Registry)
	return ref
}

func (r *Resolver) resolveOne(ctx context.Context, item queued) (*domain.Manifest, error) {
	name := domain.PatternName(item.pattern)
	rng := domain.PatternRange(item.pattern)

	if locked := r.lockfile.Locked(item.pattern, rng == ""); locked != nil {
		return manifestFromLock(name, item.registry, locked), nil
	}

	if domain.IsExotic(item.pattern) {
		return r.resolveExotic(item.pattern, name, rng, item.registry)
	}

	return r.resolveFromRegistry(ctx, name, rng, item.registry)
}

// resolveExotic handles URL-shaped ranges without a lock entry. Tarball
// URLs carry enough information to fetch; everything else needs a lock.
func (r *Resolver) resolveExotic(pattern, name, rng, registry string) (*domain.Manifest, error) {
	if strings.HasPrefix(rng, "http://") || strings.HasPrefix(rng, "https://") {
		return &domain.Manifest{
			Name:     name,
			Version:  "0.0.0",
			Registry: registry,
			Dist:     domain.Dist{Tarball: rng},
		}, nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrPatternNotResolved, "exotic pattern requires a lockfile entry"), "pattern", pattern)
}

// packument is the registry metadata document for one package name.
type packument struct {
	Name     string                     `json:"name"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]domain.Manifest `json:"versions"`
}

func (r *Resolver) resolveFromRegistry(ctx context.Context, name, rng, registry string) (*domain.Manifest, error) {
	base := r.cfg.RegistryURL(registry)
	body, err := r.cfg.Requests.Request(ctx, base+"/"+url.PathEscape(name))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to fetch package metadata"), "package", name)
	}

	var doc packument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse package metadata"), "package", name)
	}

	version, err := pickVersion(&doc, rng)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "package", name), "range", rng)
	}

	manifest := doc.Versions[version]
	manifest.Name = name
	manifest.Version = version
	manifest.Registry = registry
	return &manifest, nil
}

// pickVersion selects the highest published version satisfying the range.
// An empty range and dist-tags resolve through the tag table.
func pickVersion(doc *packument, rng string) (string, error) {
	if rng == "" {
		rng = "latest"
	}
	if tagged, ok := doc.DistTags[rng]; ok {
		if _, exists := doc.Versions[tagged]; exists {
			return tagged, nil
		}
	}

	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return "", zerr.Wrap(err, "invalid version range")
	}

	var best *semver.Version
	for published := range doc.Versions {
		v, err := semver.NewVersion(published)
		if err != nil {
			continue
		}
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", domain.ErrNoVersionSatisfies
	}
	return best.Original(), nil
}

func manifestFromLock(name, registry string, locked *domain.LockedRecord) *domain.Manifest {
	tarball := locked.Resolved
	integrity := locked.Integrity
	if i := strings.Index(tarball, "#"); i >= 0 {
		if integrity == "" {
			integrity = tarball[i+1:]
		}
		tarball = tarball[:i]
	}
	if locked.Registry != "" {
		registry = locked.Registry
	}
	return &domain.Manifest{
		Name:                 name,
		Version:              locked.Version,
		Registry:             registry,
		Dependencies:         locked.Dependencies,
		OptionalDependencies: locked.OptionalDependencies,
		Dist:                 domain.Dist{Tarball: tarball, Integrity: integrity},
	}
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
