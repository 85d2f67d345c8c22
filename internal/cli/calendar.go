package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalendarCommand(a *app) *cobra.Command {
	f := &queryFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "calendar",
		Short:   "Print the price calendar around the departure date",
		Example: `  yuvia calendar --from MOW --to LED --depart 2030-06-01 --oneway`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := backend.Session.Search(cmd.Context(), f.query(backend.DefaultCurrency)); err != nil {
				return fmt.Errorf("search: %w", err)
			}
			days, err := backend.Session.AwaitCalendar(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return p.JSON(days)
			}
			return p.Calendar(days)
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the calendar as JSON")
	return cmd
}
