// Package config provides the shared install configuration: working
// directory, registries, persisted options and root manifest access.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// RcFilename is the persisted configuration file, looked up in the working
// directory and in the user's home directory.
const RcFilename = ".paktrc"

// Config is the shared input of an install. It is read-mostly; the only
// mutation the orchestrator performs through it is saving root manifests
// after flat-mode disambiguation.
type Config struct {
	// Cwd is the working directory of the invocation.
	Cwd string

	// Production excludes devDependencies from the live pattern set.
	Production bool

	// Requests is the shared request manager for registry and update
	// traffic.
	Requests *RequestManager

	options map[string]any
	logger  ports.Logger

	// modulesFolder overrides the registry's install folder when the
	// modules-folder option is set.
	modulesFolder string
}

// Load builds a Config for the given working directory. Options come from
// the home .paktrc, overlaid by the cwd .paktrc. A missing rc file is not
// an error.
func Load(cwd string, logger ports.Logger) (*Config, error) {
	if cwd == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
	}

	options := make(map[string]any)
	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeRcFile(filepath.Join(home, RcFilename), options); err != nil {
			return nil, err
		}
	}
	if err := mergeRcFile(filepath.Join(cwd, RcFilename), options); err != nil {
		return nil, err
	}

	c := &Config{
		Cwd:      cwd,
		Requests: NewRequestManager(),
		options:  options,
		logger:   logger,
	}

	if prod, ok := options["production"]; ok {
		c.Production = domain.Truthy(prod)
	} else if os.Getenv("NODE_ENV") == "production" {
		c.Production = true
	}

	if folder, ok := options["modules-folder"].(string); ok && folder != "" {
		c.modulesFolder = folder
	}

	return c, nil
}

func mergeRcFile(path string, into map[string]any) error {
	data, err := os.ReadFile(path) //nolint:gosec // rc path is derived from cwd/home
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read rc file"), "path", path)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse rc file"), "path", path)
	}
	for k, v := range parsed {
		into[k] = v
	}
	return nil
}

// GetOption returns the persisted option value, or nil.
func (c *Config) GetOption(name string) any {
	return c.options[name]
}

// BoolOption reports whether the persisted option is truthy.
func (c *Config) BoolOption(name string) bool {
	return domain.Truthy(c.options[name])
}

// SetOption overrides an option for the lifetime of this config. Tests and
// the CLI layer use it to inject invocation-scoped settings.
func (c *Config) SetOption(name string, value any) {
	if c.options == nil {
		c.options = make(map[string]any)
	}
	c.options[name] = value
}

// ModulesFolder returns the absolute install folder for a registry,
// honoring the modules-folder option.
func (c *Config) ModulesFolder(registry string) string {
	if c.modulesFolder != "" {
		return c.absolute(c.modulesFolder)
	}
	if reg := RegistryByName(registry); reg != nil {
		return filepath.Join(c.Cwd, reg.Folder)
	}
	return filepath.Join(c.Cwd, Registries[0].Folder)
}

// ActiveRegistry returns the name of the first registry whose root
// manifest exists in the working directory, falling back to the first
// registry.
func (c *Config) ActiveRegistry() string {
	for _, registry := range Registries {
		if _, err := os.Stat(filepath.Join(c.Cwd, registry.Filename)); err == nil {
			return registry.Name
		}
	}
	return Registries[0].Name
}

// CacheFolder returns the package cache directory.
func (c *Config) CacheFolder() string {
	if dir, ok := c.options["cache-folder"].(string); ok && dir != "" {
		return c.absolute(dir)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(c.Cwd, ".pakt-cache")
	}
	return filepath.Join(cache, "pakt")
}

// OfflineMirrorPath returns the offline mirror directory, or "" when the
// option is unset.
func (c *Config) OfflineMirrorPath() string {
	mirror, ok := c.options["offline-mirror"].(string)
	if !ok || mirror == "" {
		return ""
	}
	return c.absolute(mirror)
}

// RegistryURL returns the metadata base URL for a registry.
func (c *Config) RegistryURL(registry string) string {
	if url, ok := c.options[registry+"-registry"].(string); ok && url != "" {
		return url
	}
	switch registry {
	case "npm":
		return "https://registry.npmjs.org"
	default:
		return "https://registry.pakt.trai.ch"
	}
}

func (c *Config) absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Cwd, path)
}
