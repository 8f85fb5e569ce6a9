package config

import (
	"context"
	"os"
	"os/exec"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// ExecuteLifecycleScript runs the named script from the root manifest, if
// declared. The script runs through the shell in the working directory
// with PAKT_LIFECYCLE_EVENT set to the phase; PATH is inherited unchanged.
func (c *Config) ExecuteLifecycleScript(ctx context.Context, manifest *domain.Manifest, phase string) error {
	if manifest == nil {
		return nil
	}
	script, ok := manifest.Scripts[phase]
	if !ok || script == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", script) //nolint:gosec // scripts come from the user's own manifest
	cmd.Dir = c.Cwd
	cmd.Env = append(os.Environ(), "PAKT_LIFECYCLE_EVENT="+phase)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(domain.ErrLifecycleScriptFailed, phase), "exit_code", exitCode)
		return err
	}
	return nil
}
