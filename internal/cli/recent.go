package cli

import (
	"github.com/spf13/cobra"
)

func newRecentCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			recent, err := backend.Session.RecentSearches(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return p.JSON(recent)
			}
			return p.Recent(recent)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print recent searches as JSON")
	return cmd
}
