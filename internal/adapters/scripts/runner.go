// Package scripts runs per-package install scripts.
package scripts

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptRunner = (*Runner)(nil)

// phases are the per-package script phases, in execution order.
var phases = []string{"preinstall", "install", "postinstall"}

// Runner implements ports.ScriptRunner over the installed tree.
type Runner struct {
	cfg           *config.Config
	resolver      ports.Resolver
	modulesFolder string
	logger        ports.Logger
}

// NewRunner creates a Runner for one install.
func NewRunner(cfg *config.Config, resolver ports.Resolver, modulesFolder string, logger ports.Logger) *Runner {
	return &Runner{cfg: cfg, resolver: resolver, modulesFolder: modulesFolder, logger: logger}
}

// Init runs the install script phases of every non-ignored package that
// declares them. A failing script aborts the run.
func (r *Runner) Init(ctx context.Context, _ []string) error {
	for _, manifest := range r.resolver.Manifests() {
		ref := r.resolver.Reference(manifest.Ref)
		if ref != nil && ref.Ignore {
			continue
		}
		if len(manifest.Scripts) == 0 {
			continue
		}
		for _, phase := range phases {
			script, ok := manifest.Scripts[phase]
			if !ok || script == "" {
				continue
			}
			if err := r.runScript(ctx, manifest, phase, script); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runScript(ctx context.Context, manifest *domain.Manifest, phase, script string) error {
	dir := filepath.Join(r.modulesFolder, filepath.FromSlash(manifest.Name))
	if _, err := os.Stat(dir); err != nil {
		dir = r.cfg.Cwd
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", script) //nolint:gosec // install scripts are declared by the package
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PAKT_LIFECYCLE_EVENT="+phase)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if r.logger != nil {
		r.logger.Info("running " + phase + " script of " + manifest.Name)
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		failure := zerr.With(zerr.Wrap(domain.ErrLifecycleScriptFailed, phase), "package", manifest.Name)
		return zerr.With(failure, "exit_code", exitCode)
	}
	return nil
}
