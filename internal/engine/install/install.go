// Package install implements the install orchestrator: the pipeline that
// turns root dependency requests into a materialized tree, a lockfile and
// an integrity witness.
package install

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/telemetry"
	"go.trai.ch/pakt/internal/adapters/updater"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
)

// Engines bundles the collaborator engines the orchestrator sequences.
// Each engine is exclusively owned by one Installer for one install.
type Engines struct {
	Resolver  ports.Resolver
	Fetcher   ports.Fetcher
	Compat    ports.Compatibility
	Linker    ports.Linker
	Scripts   ports.ScriptRunner
	Integrity ports.IntegrityChecker
}

// Installer orchestrates one install.
type Installer struct {
	cfg       *config.Config
	reporter  ports.Reporter
	lockfile  ports.Lockfile
	telemetry ports.Telemetry
	flags     domain.EffectiveFlags
	engines   Engines

	disambiguator Disambiguator
	nag           *updater.Nag

	// dryRun suppresses every write to the working directory. Hydrate
	// sets it.
	dryRun bool

	registryName         string
	rootManifest         *domain.Manifest
	rootManifests        map[string]*config.RootManifestFile
	resolutions          map[string]string
	rootPatternsToOrigin map[string]domain.DependencyOrigin

	hintCh chan *updater.Hint
}

// New creates an Installer. The engines must be freshly constructed for
// this install.
func New(cfg *config.Config, reporter ports.Reporter, lock ports.Lockfile, flags domain.EffectiveFlags, engines Engines) *Installer {
	return &Installer{
		cfg:                  cfg,
		reporter:             reporter,
		lockfile:             lock,
		telemetry:            telemetry.NewNoOp(),
		flags:                flags,
		engines:              engines,
		disambiguator:        &reporterDisambiguator{reporter: reporter},
		resolutions:          make(map[string]string),
		rootPatternsToOrigin: make(map[string]domain.DependencyOrigin),
		hintCh:               make(chan *updater.Hint, 1),
	}
}

// SetTelemetry replaces the progress recorder.
func (i *Installer) SetTelemetry(t ports.Telemetry) {
	if t != nil {
		i.telemetry = t
	}
}

// SetDisambiguator replaces the flat-mode conflict resolution strategy.
func (i *Installer) SetDisambiguator(d Disambiguator) {
	if d != nil {
		i.disambiguator = d
	}
}

// SetUpdateNag arms the opportunistic self-update check.
func (i *Installer) SetUpdateNag(n *updater.Nag) {
	i.nag = n
}

// stepKind tags the pipeline's step variants.
type stepKind int

const (
	stepResolve stepKind = iota
	stepFetchAndCompat
	stepLink
	stepScripts
	stepHar
	stepClean
)

type step struct {
	kind stepKind
	name string
}

// steps builds the pipeline for the current flags and working directory.
func (i *Installer) steps() []step {
	steps := []step{
		{kind: stepResolve, name: "Resolving packages"},
		{kind: stepFetchAndCompat, name: "Fetching packages"},
		{kind: stepLink, name: "Linking dependencies"},
		{kind: stepScripts, name: "Building fresh packages"},
	}
	if i.flags.Har {
		steps = append(steps, step{kind: stepHar, name: "Saving request log"})
	}
	if _, err := os.Stat(filepath.Join(i.cfg.Cwd, config.CleanFilename)); err == nil {
		steps = append(steps, step{kind: stepClean, name: "Cleaning modules"})
	}
	return steps
}

// Init runs the full install and returns the flattened top-level
// patterns.
func (i *Installer) Init(ctx context.Context) ([]string, error) {
	collected, err := i.CollectRequests(nil, false)
	if err != nil {
		return nil, err
	}

	if i.nag != nil {
		go func() {
			i.hintCh <- i.nag.Check(ctx)
		}()
	}

	defer i.telemetry.Close() //nolint:errcheck // best effort flush in defer

	return i.runWithLifecycle(ctx, func(ctx context.Context) ([]string, error) {
		return i.runPipeline(ctx, collected)
	})
}

// pipelineState is the data threaded through the steps.
type pipelineState struct {
	collected                 *CollectedRequests
	topLevelPatterns          []string
	flattenedTopLevelPatterns []string
}

func (i *Installer) runPipeline(ctx context.Context, collected *CollectedRequests) ([]string, error) {
	state := &pipelineState{collected: collected}
	steps := i.steps()

	for idx, st := range steps {
		i.reporter.Step(idx+1, len(steps), st.name)
		stepCtx, vertex := i.telemetry.Record(ctx, st.name)

		bail, err := i.runStep(stepCtx, st, state)
		vertex.Done(err)
		if err != nil {
			return nil, err
		}
		if bail {
			return state.flattenedTopLevelPatterns, nil
		}
	}

	if err := i.saveLockfileAndIntegrity(state.topLevelPatterns); err != nil {
		return nil, err
	}
	i.maybeOutputUpdate()
	i.cfg.Requests.ClearCache()
	return state.flattenedTopLevelPatterns, nil
}

// runStep executes one tagged step. A true return is the bailout signal.
func (i *Installer) runStep(ctx context.Context, st step, state *pipelineState) (bool, error) {
	switch st.kind {
	case stepResolve:
		if err := i.engines.Resolver.Init(ctx, state.collected.Requests, i.flags.Flat); err != nil {
			return false, err
		}
		state.topLevelPatterns = state.collected.Patterns

		flattened, err := i.flatten(ctx, state.topLevelPatterns)
		if err != nil {
			return false, err
		}
		state.flattenedTopLevelPatterns = flattened

		// Bailing out only after flattening makes sure flat-mode
		// disambiguation runs and its resolutions persist even when the
		// install itself is skipped.
		return i.bailout(state.collected.UsedPatterns)

	case stepFetchAndCompat:
		i.markIgnored(state.collected.IgnorePatterns)
		if err := i.engines.Fetcher.Init(ctx); err != nil {
			return false, err
		}
		return false, i.engines.Compat.Init(ctx)

	case stepLink:
		// The witness goes away before the tree is touched; a crash from
		// here on leaves the install visibly incomplete.
		if err := i.engines.Integrity.RemoveIntegrityFile(); err != nil {
			return false, err
		}
		return false, i.engines.Linker.Init(ctx, state.flattenedTopLevelPatterns, i.flags.LinkDuplicates)

	case stepScripts:
		if i.flags.IgnoreScripts {
			i.reporter.Warn("ignoring install scripts")
			return false, nil
		}
		return false, i.engines.Scripts.Init(ctx, state.flattenedTopLevelPatterns)

	case stepHar:
		return false, i.cfg.Requests.SaveHar(filepath.Join(i.cfg.Cwd, harFilename(time.Now())))

	case stepClean:
		return false, i.clean()
	}
	return false, nil
}

// harFilename derives the archive name from the timestamp, replacing the
// colons so the name stays filesystem-safe.
func harFilename(now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05Z"), ":", "-")
	return "pakt-install_" + stamp + ".har"
}

// maybeOutputUpdate prints the armed upgrade hint, if the nag produced
// one in time. It never waits.
func (i *Installer) maybeOutputUpdate() {
	select {
	case hint := <-i.hintCh:
		if hint != nil {
			hint.Print(i.reporter)
		}
	default:
	}
}
