package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

type searchFlags struct {
	queryFlags

	style    string
	triggers []string
	stops    string
	sort     string
	maxPrice float64
	airlines []string
	limit    int
	asJSON   bool
	compare  bool
}

func (f *searchFlags) viewOptions() usecase.ViewOptions {
	opts := usecase.DefaultViewOptions()
	opts.Style = domain.ParseTripStyle(f.style)
	opts.Sort = domain.ParseSortKey(f.sort)
	opts.Limit = f.limit
	opts.Constraints = domain.FilterConstraints{
		Stops:    domain.ParseStopsOption(f.stops),
		Airlines: upperAll(f.airlines),
		Triggers: domain.ParseTripTriggers(f.triggers),
	}
	if f.maxPrice > 0 {
		maxPrice := f.maxPrice
		opts.Constraints.PriceMax = &maxPrice
	}
	return opts
}

func newSearchCommand(a *app) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search flights and print the top-3 picks, cards and the price summary",
		Example: `  yuvia search --from MOW --to LED --depart 2030-06-01 --oneway
  yuvia search --from MOW --to AER --depart 2030-06-01 --return 2030-06-08 --trigger direct_only --sort price_asc
  yuvia search --from MOW --to LED --depart 2030-06-01 --oneway --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			session := backend.Session

			if _, err := session.Search(cmd.Context(), f.query(backend.DefaultCurrency)); err != nil {
				return fmt.Errorf("search: %w", err)
			}
			view, err := session.View(f.viewOptions())
			if err != nil {
				return err
			}

			if f.compare {
				for i := range view.Top {
					if err := session.AddCompare(cmd.Context(), view.Top[i].ID); err != nil {
						return fmt.Errorf("compare: %w", err)
					}
				}
			}

			if f.asJSON {
				return p.JSON(view)
			}
			return printResults(p, session, view, f.compare)
		},
	}

	f.bind(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.style, "style", "", "trip style: calm, balanced or cheap")
	flags.StringSliceVar(&f.triggers, "trigger", nil, "trip trigger: no_night_dep, no_early_dep, no_overnight, direct_only (repeatable)")
	flags.StringVar(&f.stops, "stops", "any", "stops: any, 0 or 1")
	flags.StringVar(&f.sort, "sort", string(domain.SortByYuviaScore), "sort: yuvia_score, price_asc, price_desc, duration_asc, depart_asc")
	flags.Float64Var(&f.maxPrice, "max-price", 0, "maximum price")
	flags.StringSliceVar(&f.airlines, "airline", nil, "airline IATA code (repeatable)")
	flags.IntVar(&f.limit, "limit", 20, "maximum number of cards, 0 for all")
	flags.BoolVar(&f.asJSON, "json", false, "print the results view as JSON")
	flags.BoolVar(&f.compare, "compare", false, "add the top picks to the compare table and print it")
	return cmd
}

func printResults(p *Printer, session *usecase.ResultsSession, view usecase.ResultsView, compare bool) error {
	if view.Matched == 0 {
		p.Warning("No flights match the filters")
		p.Summary(view)
		return nil
	}

	p.Top(view.Top)
	if err := p.Cards(view.Flights); err != nil {
		return err
	}
	p.Summary(view)

	if !compare {
		return nil
	}
	p.Println("")
	outbound := session.CompareView(usecase.DirectionOutbound)
	if err := p.Compare(outbound); err != nil {
		return err
	}
	if outbound.HasReturn {
		return p.Compare(session.CompareView(usecase.DirectionReturn))
	}
	return nil
}

func upperAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
