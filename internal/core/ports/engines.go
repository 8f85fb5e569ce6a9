package ports

import "context"

// Fetcher materializes all resolved packages into the package cache.
//
//go:generate mockgen -source=engines.go -destination=mocks/mock_engines.go -package=mocks
type Fetcher interface {
	Init(ctx context.Context) error
}

// Compatibility enforces platform and engine checks over the resolved set.
type Compatibility interface {
	Init(ctx context.Context) error
}

// Linker materializes the on-disk installation tree from the cache.
type Linker interface {
	Init(ctx context.Context, topLevelPatterns []string, linkDuplicates bool) error
}

// ScriptRunner runs each package's install and build scripts.
type ScriptRunner interface {
	Init(ctx context.Context, topLevelPatterns []string) error
}
