package domain

// Dist carries the distribution coordinates of a published package version.
type Dist struct {
	Tarball   string `json:"tarball" yaml:"tarball"`
	Integrity string `json:"integrity,omitempty" yaml:"integrity,omitempty"`
}

// Manifest is a parsed package manifest. The same shape serves root
// manifests in the working directory and resolved manifests coming back
// from a registry.
type Manifest struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	Dependencies         map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty" yaml:"devDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty" yaml:"optionalDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty" yaml:"peerDependencies,omitempty"`

	// Resolutions pins package names to exact versions for flat installs.
	Resolutions map[string]string `json:"resolutions,omitempty" yaml:"resolutions,omitempty"`

	// Flat forces the single-version-per-name install mode.
	Flat bool `json:"flat,omitempty" yaml:"flat,omitempty"`

	Scripts map[string]string `json:"scripts,omitempty" yaml:"scripts,omitempty"`

	OS      []string          `json:"os,omitempty" yaml:"os,omitempty"`
	CPU     []string          `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Engines map[string]string `json:"engines,omitempty" yaml:"engines,omitempty"`

	Dist Dist `json:"dist,omitempty" yaml:"dist,omitempty"`

	// Registry names the package source this manifest resolved from. It is
	// set by the resolver, never parsed from a file.
	Registry string `json:"-" yaml:"-"`

	// Ref is the index of this manifest's reference record inside the
	// owning resolver. Manifests carry the index rather than a pointer so
	// there is no cyclic ownership with the resolver.
	Ref int `json:"-" yaml:"-"`
}

// RootRequester is the requester recorded for patterns that come straight
// from a root manifest.
const RootRequester = "/"

// PackageReference is the shared mutable record behind every resolved
// manifest. The resolver owns a vector of these, addressed by the stable
// Ref index on Manifest.
type PackageReference struct {
	Name     string
	Version  string
	Registry string

	// Patterns are all patterns that resolved to this package version.
	Patterns []string

	// Requesters are the patterns (or RootRequester) that asked for it.
	Requesters []string

	// Ignore marks the reference as excluded from fetch, link and scripts.
	Ignore bool

	// Optional marks the reference as allowed to fail platform checks.
	Optional bool
}

// AddRequester records a requester once.
func (r *PackageReference) AddRequester(requester string) {
	for _, existing := range r.Requesters {
		if existing == requester {
			return
		}
	}
	r.Requesters = append(r.Requesters, requester)
}

// AddPattern records a pattern once.
func (r *PackageReference) AddPattern(pattern string) {
	for _, existing := range r.Patterns {
		if existing == pattern {
			return
		}
	}
	r.Patterns = append(r.Patterns, pattern)
}
