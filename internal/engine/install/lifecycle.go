package install

import "context"

// runWithLifecycle is the envelope around the install body: preinstall
// before, then install, postinstall, and outside production additionally
// prepublish and prepare. A failing script aborts the remaining scripts of
// its phase.
func (i *Installer) runWithLifecycle(ctx context.Context, body func(context.Context) ([]string, error)) ([]string, error) {
	if err := i.cfg.ExecuteLifecycleScript(ctx, i.rootManifest, "preinstall"); err != nil {
		return nil, err
	}

	patterns, err := body(ctx)
	if err != nil {
		return nil, err
	}

	after := []string{"install", "postinstall"}
	if !i.cfg.Production {
		after = append(after, "prepublish", "prepare")
	}
	for _, phase := range after {
		if err := i.cfg.ExecuteLifecycleScript(ctx, i.rootManifest, phase); err != nil {
			return nil, err
		}
	}

	return patterns, nil
}
