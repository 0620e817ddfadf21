package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fyntora/fyn/internal/config"
	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/runner"
	"github.com/fyntora/fyn/internal/vcs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// Options replaces parts of the process environment. Zero values select
// the real stdin, stdout, executables and environment.
type Options struct {
	In        io.Reader
	Out       io.Writer
	Runner    runner.Runner
	Syncer    vcs.Syncer
	LookupEnv config.LookupFunc
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(Options{})
}

// NewRootCmdWith creates the root command with opts
func NewRootCmdWith(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "fyn",
		Short: "Search and install packages from the Arch repositories and the AUR",
		Long: `Fyn searches the official Arch Linux repositories and the AUR with one
query and installs the package you pick.

Official packages are installed with pacman. AUR packages are cloned into
the fyn cache, their PKGBUILD is shown for review, and they are built and
installed with makepkg.`,
		Version:       Version,
		SilenceErrors: true,
		Args:          rootArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid from here on; errors are not usage errors
			cmd.SilenceUsage = true

			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			path, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return a.setup(cmd.Context(), path, noColor)
		},
	}

	rootCmd.SetIn(opts.In)
	rootCmd.SetOut(opts.Out)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return models.NewError(models.ErrUsage, "", err)
	})

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newInstallCmd(a))

	return rootCmd
}

// rootArgs rejects any positional argument that is not a subcommand
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return models.NewError(models.ErrUsage, "", fmt.Errorf("missing command"))
	}
	return models.NewError(models.ErrUsage, "", fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
}

// exactQuery accepts exactly one package query
func exactQuery(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return models.NewError(models.ErrUsage, "", err)
	}
	return nil
}
