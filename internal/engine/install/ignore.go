package install

import "go.trai.ch/pakt/internal/core/domain"

// markIgnored flags top-level ignore patterns whose only requester is the
// root. Anything with a second requester stays live: ignoring it would
// break that requester.
func (i *Installer) markIgnored(patterns []string) {
	for _, pattern := range patterns {
		manifest := i.engines.Resolver.ResolvedPattern(pattern)
		if manifest == nil {
			continue
		}
		ref := i.engines.Resolver.Reference(manifest.Ref)
		if ref == nil {
			continue
		}
		if len(ref.Requesters) == 1 && ref.Requesters[0] == domain.RootRequester {
			ref.Ignore = true
		}
	}
}
