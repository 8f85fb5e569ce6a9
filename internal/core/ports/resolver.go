package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// Resolver turns dependency requests into a resolved package set. The
// orchestrator owns one resolver per install and sequences it; the
// resolution algorithm itself lives behind this contract.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Init resolves the given requests transitively. With flat set, the
	// resolver keeps per-name bookkeeping needed by the flattener.
	Init(ctx context.Context, requests []domain.DependencyRequest, flat bool) error

	// DependencyNamesByLevelOrder yields every package name reachable from
	// the given patterns, breadth-first, each name once.
	DependencyNamesByLevelOrder(patterns []string) []string

	// InfoForPackageName returns all resolved manifests for a name.
	InfoForPackageName(name string) []*domain.Manifest

	// PatternsByPackage returns every pattern that resolved to the name.
	PatternsByPackage(name string) []string

	// CollapseAllVersionsOfPackage collapses every pattern of the name to
	// the single given version and returns the surviving pattern.
	CollapseAllVersionsOfPackage(name, version string) (string, error)

	// ResolvedPattern returns the manifest a pattern resolved to, or nil.
	ResolvedPattern(pattern string) *domain.Manifest

	// StrictResolvedPattern is ResolvedPattern but fails on unknown
	// patterns.
	StrictResolvedPattern(pattern string) (*domain.Manifest, error)

	// Manifests returns every resolved manifest.
	Manifests() []*domain.Manifest

	// Reference returns the shared reference record behind a manifest,
	// addressed by the stable index carried on domain.Manifest.
	Reference(ref int) *domain.PackageReference

	// Patterns returns the full pattern → manifest mapping.
	Patterns() map[string]*domain.Manifest

	// UsedRegistries lists the registries that contributed packages.
	UsedRegistries() []string
}
