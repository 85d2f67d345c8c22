// Package cli implements the yuvia terminal client: search results as cards
// with the top-3 picks, the price calendar, the compare table, autocomplete,
// recent searches and the guided assistant.
package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yuvia/flight-results/internal/usecase"
)

// Backend is what the commands need from the application.
type Backend struct {
	// Session holds the working set, selections and recent searches
	Session *usecase.ResultsSession

	// DefaultCurrency applies when --currency is not given
	DefaultCurrency string
}

// Opener builds the backend. It is called at most once per execution.
type Opener func(ctx context.Context) (*Backend, error)

// app carries state shared by the commands of one root command.
type app struct {
	open      Opener
	colorFlag string

	once    sync.Once
	backend *Backend
	openErr error
}

func (a *app) load(ctx context.Context) (*Backend, error) {
	a.once.Do(func() {
		a.backend, a.openErr = a.open(ctx)
	})
	return a.backend, a.openErr
}

func (a *app) printer(cmd *cobra.Command) (*Printer, error) {
	mode, err := ParseColorMode(a.colorFlag)
	if err != nil {
		return nil, err
	}
	return NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(mode)), nil
}

// NewRootCommand builds the yuvia command tree over open.
func NewRootCommand(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "yuvia",
		Short: "Flight search results in the terminal",
		Long: `yuvia searches flights and renders the results the way the Yuvia
results page does: top-3 picks, flight cards, the price summary, the price
calendar and a compare table.

Example usage:
  yuvia search --from MOW --to LED --depart 2030-06-01 --oneway
  yuvia search --from Москва --to Казань --depart 2030-06-01 --return 2030-06-05 --style calm
  yuvia calendar --from MOW --to LED --depart 2030-06-01 --oneway
  yuvia places Каз
  yuvia chat`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ParseColorMode(a.colorFlag); err != nil {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.colorFlag, "color", "auto", "color output: auto, always or never")

	root.AddCommand(
		newSearchCommand(a),
		newCalendarCommand(a),
		newPlacesCommand(a),
		newChatCommand(a),
		newRecentCommand(a),
	)
	return root
}

// Execute runs the command tree and prints a failure to stderr.
func Execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		mode := ColorAuto
		if f := root.PersistentFlags().Lookup("color"); f != nil {
			mode, _ = ParseColorMode(f.Value.String())
		}
		NewPrinter(root.OutOrStdout(), root.ErrOrStderr(), ResolveColors(mode)).Error(err)
	}
	return err
}
