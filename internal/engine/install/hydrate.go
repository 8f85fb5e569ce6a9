package install

import "context"

// Hydrate resolves the dependency graph without installing: request
// collection, resolution, flattening and ignore marking, plus fetch and
// compatibility when fetch is set. It never writes to the working
// directory.
func (i *Installer) Hydrate(ctx context.Context, fetch bool) ([]string, error) {
	i.dryRun = true

	defer i.telemetry.Close() //nolint:errcheck // best effort flush in defer

	collected, err := i.CollectRequests(nil, true)
	if err != nil {
		return nil, err
	}

	if err := i.engines.Resolver.Init(ctx, collected.Requests, i.flags.Flat); err != nil {
		return nil, err
	}

	patterns, err := i.flatten(ctx, collected.Patterns)
	if err != nil {
		return nil, err
	}

	i.markIgnored(collected.IgnorePatterns)

	if fetch {
		if err := i.engines.Fetcher.Init(ctx); err != nil {
			return nil, err
		}
		if err := i.engines.Compat.Init(ctx); err != nil {
			return nil, err
		}
	}

	return patterns, nil
}
