package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPlacesCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "places TERM",
		Short:   "Autocomplete a city or airport",
		Example: `  yuvia places Каз`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			places, err := backend.Session.Suggest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return p.JSON(places)
			}
			return p.Places(places)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print suggestions as JSON")
	return cmd
}
