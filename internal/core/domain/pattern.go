package domain

import "strings"

// RequestHint classifies where a dependency request came from.
type RequestHint string

const (
	// HintNone marks a plain runtime dependency.
	HintNone RequestHint = ""
	// HintDev marks a development dependency.
	HintDev RequestHint = "dev"
	// HintOptional marks an optional dependency.
	HintOptional RequestHint = "optional"
)

// DependencyOrigin names the root manifest section a pattern came from.
type DependencyOrigin string

const (
	OriginDependencies         DependencyOrigin = "dependencies"
	OriginDevDependencies      DependencyOrigin = "devDependencies"
	OriginOptionalDependencies DependencyOrigin = "optionalDependencies"
)

// DependencyRequest represents one top-level dependency to resolve.
type DependencyRequest struct {
	// Pattern is the textual descriptor, either a bare name when the
	// lockfile already pins it, or name@range.
	Pattern string

	// Registry names the package source the request belongs to.
	Registry string

	// Hint classifies the request's origin.
	Hint RequestHint

	// Optional requests must not fail the install when they cannot be
	// resolved or are incompatible with the host.
	Optional bool
}

// MakePattern builds a pattern from a name and a range.
func MakePattern(name, rng string) string {
	return name + "@" + rng
}

// PatternName extracts the package name from a pattern. Scoped names keep
// their leading @: "@scope/pkg@^1.0.0" yields "@scope/pkg".
func PatternName(pattern string) string {
	if pattern == "" {
		return ""
	}
	search := pattern
	offset := 0
	if pattern[0] == '@' {
		search = pattern[1:]
		offset = 1
	}
	i := strings.Index(search, "@")
	if i < 0 {
		return pattern
	}
	return pattern[:offset+i]
}

// PatternRange extracts the range part of a pattern, or "" for a bare name.
func PatternRange(pattern string) string {
	name := PatternName(pattern)
	if len(pattern) <= len(name) {
		return ""
	}
	return pattern[len(name)+1:]
}

// ExoticPrefixes are the descriptor schemes that bypass registry
// resolution. Patterns using them never contribute exclude names and are
// resolved by dedicated logic inside the resolver.
var ExoticPrefixes = []string{
	"git+", "git://", "github:", "file:", "link:", "http://", "https://",
}

// IsExotic reports whether the range part of a pattern designates a
// non-registry source.
func IsExotic(pattern string) bool {
	rng := PatternRange(pattern)
	if rng == "" {
		return false
	}
	for _, prefix := range ExoticPrefixes {
		if strings.HasPrefix(rng, prefix) {
			return true
		}
	}
	return false
}
