// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// InstallMethod records how this binary was distributed (tar, homebrew,
// deb, rpm, npm, chocolatey, apk, msi). It defaults to "unknown" and is
// overwritten by linker flags in release builds. The update nag uses it
// to pick the right upgrade command.
var InstallMethod = "unknown"
