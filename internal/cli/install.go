package cli

import (
	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/selector"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newInstallCmd creates the install command
func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "i <query>",
		Aliases: []string{"install"},
		Short:   "Install a package",
		Long: `Searches both sources and installs the package whose name equals the
query. Without an exact match the results are listed page by page to pick
from by number or name.`,
		Args: exactQuery,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := args[0]

			a.console.Printf("Searching for %s...\n\n", query)
			packages, err := a.search(ctx, query)
			if models.TypeOf(err) == models.ErrNotFound {
				a.console.Errorf("Error: Package '%s' not found.\n", query)
				return err
			}
			if err != nil {
				return err
			}

			outcome, err := selector.NewEngine(a.console).Select(query, packages)
			if err != nil {
				return err
			}
			if outcome.State == selector.StateCancelled {
				a.console.Printf("Installation cancelled.\n")
				return nil
			}
			logrus.Debugf("Selected %s (%s)", outcome.Package.Label(), outcome.State)

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			err = orch.Install(ctx, outcome.Package)
			if models.IsCancelled(err) {
				a.console.Printf("Installation cancelled.\n")
				return nil
			}
			return err
		},
	}
}
