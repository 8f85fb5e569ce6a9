package domain

import "go.trai.ch/zerr"

var (
	// ErrFrozenLockfile is returned when the lockfile is frozen but does not
	// cover every requested pattern.
	ErrFrozenLockfile = zerr.New("lockfile needs to be updated, but is frozen")

	// ErrInstallTakesNoArguments is returned when positional arguments are
	// passed to the install command.
	ErrInstallTakesNoArguments = zerr.New("install takes no arguments")

	// ErrNoRootManifest is returned when no recognized root manifest exists
	// in the working directory.
	ErrNoRootManifest = zerr.New("no root manifest found")

	// ErrNonInteractive is returned when a version conflict needs a prompt
	// but stdin is not a terminal.
	ErrNonInteractive = zerr.New("cannot prompt for version selection in a non-interactive session")

	// ErrIncompatiblePlatform is returned when a package does not support
	// the host os or cpu.
	ErrIncompatiblePlatform = zerr.New("incompatible platform")

	// ErrIncompatibleEngine is returned when a package's engine constraint
	// rejects the running version.
	ErrIncompatibleEngine = zerr.New("incompatible engine")

	// ErrNoVersionSatisfies is returned when no published version satisfies
	// the requested range.
	ErrNoVersionSatisfies = zerr.New("no version satisfies range")

	// ErrPatternNotResolved is returned when a pattern is looked up before
	// resolution or was never part of the request set.
	ErrPatternNotResolved = zerr.New("pattern has not been resolved")

	// ErrLifecycleScriptFailed is returned when a lifecycle script exits
	// non-zero.
	ErrLifecycleScriptFailed = zerr.New("lifecycle script failed")
)
