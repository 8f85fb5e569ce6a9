package domain

// RawFlags is the flag record as parsed from an invocation, before the
// persisted configuration has been folded in.
type RawFlags struct {
	Har                bool
	IgnorePlatform     bool
	IgnoreEngines      bool
	IgnoreScripts      bool
	IgnoreOptional     bool
	Force              bool
	Flat               bool
	LinkDuplicates     bool
	CheckFiles         bool
	Lockfile           bool
	PureLockfile       bool
	FrozenLockfile     bool
	SkipIntegrityCheck bool

	// Save shape for the add command equivalents.
	Peer     bool
	Dev      bool
	Optional bool
	Exact    bool
	Tilde    bool
}

// EffectiveFlags is the canonical flag record the rest of the core reads.
// It is produced once by NormalizeFlags and never mutated, except for Flat
// which a root manifest's flat attribute may promote.
type EffectiveFlags struct {
	Har                bool
	IgnorePlatform     bool
	IgnoreEngines      bool
	IgnoreScripts      bool
	IgnoreOptional     bool
	Force              bool
	Flat               bool
	LinkDuplicates     bool
	CheckFiles         bool
	Lockfile           bool
	PureLockfile       bool
	FrozenLockfile     bool
	SkipIntegrityCheck bool

	Peer     bool
	Dev      bool
	Optional bool
	Exact    bool
	Tilde    bool
}

// OptionSource provides persisted configuration values by name. Values may
// be of any yaml scalar type; truthiness decides.
type OptionSource interface {
	GetOption(name string) any
}

// NormalizeFlags folds raw invocation flags with persisted configuration
// into the canonical effective record. Config options that are truthy force
// the corresponding flag on; flags never override config downward.
func NormalizeFlags(raw RawFlags, options OptionSource) EffectiveFlags {
	flags := EffectiveFlags{
		Har:                raw.Har,
		IgnorePlatform:     raw.IgnorePlatform,
		IgnoreEngines:      raw.IgnoreEngines,
		IgnoreScripts:      raw.IgnoreScripts,
		IgnoreOptional:     raw.IgnoreOptional,
		Force:              raw.Force,
		Flat:               raw.Flat,
		LinkDuplicates:     raw.LinkDuplicates,
		CheckFiles:         raw.CheckFiles,
		Lockfile:           raw.Lockfile,
		PureLockfile:       raw.PureLockfile,
		FrozenLockfile:     raw.FrozenLockfile,
		SkipIntegrityCheck: raw.SkipIntegrityCheck,
		Peer:               raw.Peer,
		Dev:                raw.Dev,
		Optional:           raw.Optional,
		Exact:              raw.Exact,
		Tilde:              raw.Tilde,
	}

	if options != nil {
		if Truthy(options.GetOption("ignore-scripts")) {
			flags.IgnoreScripts = true
		}
		if Truthy(options.GetOption("ignore-platform")) {
			flags.IgnorePlatform = true
		}
		if Truthy(options.GetOption("ignore-engines")) {
			flags.IgnoreEngines = true
		}
		if Truthy(options.GetOption("ignore-optional")) {
			flags.IgnoreOptional = true
		}
		if Truthy(options.GetOption("force")) {
			flags.Force = true
		}
	}

	return flags
}

// Truthy reports whether a configuration value counts as set. Yaml configs
// deliver bools, strings and numbers; anything non-zero and non-"false"
// counts.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
