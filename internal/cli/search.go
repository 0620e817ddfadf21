package cli

import (
	"github.com/fyntora/fyn/internal/models"
	"github.com/spf13/cobra"
)

// newSearchCmd creates the search command
func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "s <query>",
		Aliases: []string{"search"},
		Short:   "Search for a package",
		Long: `Searches the official repositories (pacman -Ss) and the AUR and prints
every match, official packages first.`,
		Args: exactQuery,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := a.search(cmd.Context(), args[0])
			if models.TypeOf(err) == models.ErrNotFound {
				a.printResults(nil)
				a.console.Printf("No packages found.\n")
				return err
			}
			if err != nil {
				return err
			}

			a.printResults(packages)
			return nil
		},
	}
}
