package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install all dependencies of the project",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := rawFlagsFrom(cmd)
			if len(args) > 0 {
				suggestion := addSuggestion(cmd, args, raw)
				return zerr.With(domain.ErrInstallTakesNoArguments, "did_you_mean", suggestion)
			}
			_, err := c.app.Install(cmd.Context(), raw)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Bool("har", false, "Save a request-log archive of the install")
	flags.Bool("ignore-platform", false, "Ignore platform checks")
	flags.Bool("ignore-engines", false, "Ignore engine checks")
	flags.Bool("ignore-scripts", false, "Do not run install scripts")
	flags.Bool("ignore-optional", false, "Do not install optional dependencies")
	flags.Bool("force", false, "Reinstall everything, ignoring the integrity witness")
	flags.Bool("flat", false, "Only allow one version of each package")
	flags.Bool("link-duplicates", false, "Hardlink identical files instead of copying")
	flags.Bool("check-files", false, "Verify installed files before bailing out")
	flags.Bool("no-lockfile", false, "Do not read or write a lockfile")
	flags.Bool("pure-lockfile", false, "Do not write a lockfile")
	flags.Bool("frozen-lockfile", false, "Fail if the lockfile needs an update")
	flags.Bool("skip-integrity-check", false, "Skip the bailout integrity check")

	flags.Bool("peer", false, "Save added packages as peer dependencies")
	flags.Bool("dev", false, "Save added packages as dev dependencies")
	flags.Bool("optional", false, "Save added packages as optional dependencies")
	flags.Bool("exact", false, "Pin added packages to an exact version")
	flags.Bool("tilde", false, "Pin added packages to a tilde range")

	// Deprecated aliases kept for compatibility with older invocations.
	flags.BoolP("global", "g", false, "Install globally")
	flags.BoolP("save", "S", false, "Save added packages")
	flags.BoolP("save-dev", "D", false, "Save added packages as dev dependencies")
	flags.BoolP("save-peer", "P", false, "Save added packages as peer dependencies")
	flags.BoolP("save-optional", "O", false, "Save added packages as optional dependencies")
	flags.BoolP("save-exact", "E", false, "Pin added packages to an exact version")
	flags.BoolP("save-tilde", "T", false, "Pin added packages to a tilde range")
	_ = flags.MarkDeprecated("global", "use `pakt global add` instead")
	_ = flags.MarkDeprecated("save", "it is the default behavior of `pakt add`")
	_ = flags.MarkDeprecated("save-dev", "use --dev instead")
	_ = flags.MarkDeprecated("save-peer", "use --peer instead")
	_ = flags.MarkDeprecated("save-optional", "use --optional instead")
	_ = flags.MarkDeprecated("save-exact", "use --exact instead")
	_ = flags.MarkDeprecated("save-tilde", "use --tilde instead")

	return cmd
}

// rawFlagsFrom folds the cobra flag set, including the deprecated
// aliases, into the raw flag record.
func rawFlagsFrom(cmd *cobra.Command) domain.RawFlags {
	boolFlag := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return domain.RawFlags{
		Har:                boolFlag("har"),
		IgnorePlatform:     boolFlag("ignore-platform"),
		IgnoreEngines:      boolFlag("ignore-engines"),
		IgnoreScripts:      boolFlag("ignore-scripts"),
		IgnoreOptional:     boolFlag("ignore-optional"),
		Force:              boolFlag("force"),
		Flat:               boolFlag("flat"),
		LinkDuplicates:     boolFlag("link-duplicates"),
		CheckFiles:         boolFlag("check-files"),
		Lockfile:           !boolFlag("no-lockfile"),
		PureLockfile:       boolFlag("pure-lockfile"),
		FrozenLockfile:     boolFlag("frozen-lockfile"),
		SkipIntegrityCheck: boolFlag("skip-integrity-check"),

		Peer:     boolFlag("peer") || boolFlag("save-peer"),
		Dev:      boolFlag("dev") || boolFlag("save-dev"),
		Optional: boolFlag("optional") || boolFlag("save-optional"),
		Exact:    boolFlag("exact") || boolFlag("save-exact"),
		Tilde:    boolFlag("tilde") || boolFlag("save-tilde"),
	}
}

// addSuggestion synthesizes the add invocation equivalent to the
// rejected positional arguments, from the save-flag family.
func addSuggestion(cmd *cobra.Command, args []string, raw domain.RawFlags) string {
	parts := []string{"pakt"}
	if global, _ := cmd.Flags().GetBool("global"); global {
		parts = append(parts, "global")
	}
	parts = append(parts, "add")
	parts = append(parts, args...)

	if raw.Peer {
		parts = append(parts, "--peer")
	}
	if raw.Dev {
		parts = append(parts, "--dev")
	}
	if raw.Optional {
		parts = append(parts, "--optional")
	}
	if raw.Exact {
		parts = append(parts, "--exact")
	}
	if raw.Tilde {
		parts = append(parts, "--tilde")
	}
	return strings.Join(parts, " ")
}
