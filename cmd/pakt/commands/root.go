// Package commands implements the CLI commands for pakt.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/app"
	"go.trai.ch/pakt/internal/build"
)

// CLI represents the command line interface for pakt.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pakt",
		Short:         "A fast, reproducible package manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	installCmd := c.newInstallCmd()
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(c.newVersionCmd())

	// A bare `pakt` is an install.
	rootCmd.RunE = installCmd.RunE
	rootCmd.Flags().AddFlagSet(installCmd.Flags())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
