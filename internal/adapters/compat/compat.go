// Package compat enforces platform and engine compatibility over the
// resolved package set.
package compat

import (
	"context"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/pakt/internal/build"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compatibility = (*Compatibility)(nil)

// Compatibility implements ports.Compatibility. Incompatible optional
// packages are marked ignored; incompatible mandatory packages fail the
// install.
type Compatibility struct {
	resolver ports.Resolver
	flags    domain.EffectiveFlags
	reporter ports.Reporter
}

// New creates a Compatibility check for one install.
func New(resolver ports.Resolver, flags domain.EffectiveFlags, reporter ports.Reporter) *Compatibility {
	return &Compatibility{resolver: resolver, flags: flags, reporter: reporter}
}

// Init checks every non-ignored resolved package.
func (c *Compatibility) Init(_ context.Context) error {
	for _, manifest := range c.resolver.Manifests() {
		ref := c.resolver.Reference(manifest.Ref)
		if ref != nil && ref.Ignore {
			continue
		}

		err := c.check(manifest)
		if err == nil {
			continue
		}
		if ref != nil && ref.Optional {
			ref.Ignore = true
			if c.reporter != nil {
				c.reporter.Warn("skipping optional " + manifest.Name + "@" + manifest.Version + ": " + err.Error())
			}
			continue
		}
		return err
	}
	return nil
}

func (c *Compatibility) check(manifest *domain.Manifest) error {
	if !c.flags.IgnorePlatform {
		if !listAllows(manifest.OS, hostOS()) {
			return zerr.With(zerr.With(domain.ErrIncompatiblePlatform, "package", manifest.Name), "os", hostOS())
		}
		if !listAllows(manifest.CPU, hostCPU()) {
			return zerr.With(zerr.With(domain.ErrIncompatiblePlatform, "package", manifest.Name), "cpu", hostCPU())
		}
	}

	if !c.flags.IgnoreEngines {
		if err := c.checkEngines(manifest); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compatibility) checkEngines(manifest *domain.Manifest) error {
	for engine, rng := range manifest.Engines {
		if engine != "pakt" {
			// Foreign engines cannot be validated here.
			if c.reporter != nil {
				c.reporter.Warn(manifest.Name + " declares unknown engine " + engine)
			}
			continue
		}
		constraint, err := semver.NewConstraint(rng)
		if err != nil {
			continue
		}
		running, err := semver.NewVersion(build.Version)
		if err != nil {
			// Dev builds have no comparable version.
			continue
		}
		if !constraint.Check(running) {
			failure := zerr.With(domain.ErrIncompatibleEngine, "package", manifest.Name)
			failure = zerr.With(failure, "required", rng)
			return zerr.With(failure, "running", build.Version)
		}
	}
	return nil
}

// listAllows applies the os/cpu allow-deny list convention: an empty list
// allows everything, "!value" denies, plain entries allow.
func listAllows(list []string, value string) bool {
	if len(list) == 0 {
		return true
	}
	hasAllow := false
	allowed := false
	for _, entry := range list {
		if strings.HasPrefix(entry, "!") {
			if entry[1:] == value {
				return false
			}
			continue
		}
		hasAllow = true
		if entry == value {
			allowed = true
		}
	}
	if !hasAllow {
		return true
	}
	return allowed
}

// hostOS maps the runtime os to the manifest vocabulary.
func hostOS() string {
	if runtime.GOOS == "windows" {
		return "win32"
	}
	return runtime.GOOS
}

// hostCPU maps the runtime arch to the manifest vocabulary.
func hostCPU() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "ia32"
	default:
		return runtime.GOARCH
	}
}
