// Package app implements the application layer for pakt.
package app

import (
	"context"

	"go.trai.ch/pakt/internal/adapters/compat"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/fetch"
	"go.trai.ch/pakt/internal/adapters/integrity"
	"go.trai.ch/pakt/internal/adapters/link"
	"go.trai.ch/pakt/internal/adapters/lockfile"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/adapters/scripts"
	"go.trai.ch/pakt/internal/adapters/updater"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/pakt/internal/engine/install"
	"go.trai.ch/zerr"
)

// App wires one invocation's installs together.
type App struct {
	cfg       *config.Config
	reporter  ports.Reporter
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(cfg *config.Config, reporter ports.Reporter, logger ports.Logger, telemetry ports.Telemetry) *App {
	return &App{
		cfg:       cfg,
		reporter:  reporter,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Install runs a full install with the given raw flags and returns the
// flattened top-level patterns.
func (a *App) Install(ctx context.Context, raw domain.RawFlags) ([]string, error) {
	inst, err := a.newInstaller(raw)
	if err != nil {
		return nil, err
	}
	inst.SetUpdateNag(updater.NewNag(a.cfg, a.logger))

	patterns, err := inst.Init(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "install failed")
	}
	return patterns, nil
}

// Hydrate resolves the graph without installing.
func (a *App) Hydrate(ctx context.Context, raw domain.RawFlags, fetchPackages bool) ([]string, error) {
	inst, err := a.newInstaller(raw)
	if err != nil {
		return nil, err
	}

	patterns, err := inst.Hydrate(ctx, fetchPackages)
	if err != nil {
		return nil, zerr.Wrap(err, "hydrate failed")
	}
	return patterns, nil
}

// newInstaller builds an Installer with freshly constructed engines. Each
// engine is owned by this installer for the lifetime of one run.
func (a *App) newInstaller(raw domain.RawFlags) (*install.Installer, error) {
	flags := domain.NormalizeFlags(raw, a.cfg)

	lock, err := lockfile.FromDirectory(a.cfg.Cwd, a.reporter)
	if err != nil {
		return nil, err
	}

	resolver := registry.NewResolver(a.cfg, lock, a.logger)
	modulesFolder := a.cfg.ModulesFolder(a.cfg.ActiveRegistry())

	engines := install.Engines{
		Resolver:  resolver,
		Fetcher:   fetch.NewFetcher(a.cfg, resolver, a.logger),
		Compat:    compat.New(resolver, flags, a.reporter),
		Linker:    link.NewLinker(a.cfg, resolver, modulesFolder, a.logger),
		Scripts:   scripts.NewRunner(a.cfg, resolver, modulesFolder, a.logger),
		Integrity: integrity.NewChecker(modulesFolder, a.cfg.Production),
	}

	inst := install.New(a.cfg, a.reporter, lock, flags, engines)
	inst.SetTelemetry(a.telemetry)
	return inst, nil
}
