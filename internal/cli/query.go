package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuvia/flight-results/internal/domain"
)

// queryFlags are the trip flags shared by search and calendar.
type queryFlags struct {
	from     string
	to       string
	depart   string
	ret      string
	oneWay   bool
	adults   int
	children int
	infants  int
	cabin    string
	currency string
}

func (f *queryFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.from, "from", "", "origin IATA code or city name (required)")
	flags.StringVar(&f.to, "to", "", "destination IATA code or city name (required)")
	flags.StringVar(&f.depart, "depart", "", "departure date, YYYY-MM-DD (required)")
	flags.StringVar(&f.ret, "return", "", "return date, YYYY-MM-DD")
	flags.BoolVar(&f.oneWay, "oneway", false, "one-way trip")
	flags.IntVar(&f.adults, "adults", 1, "number of adults")
	flags.IntVar(&f.children, "children", 0, "number of children")
	flags.IntVar(&f.infants, "infants", 0, "number of infants")
	flags.StringVar(&f.cabin, "cabin", "", "cabin class")
	flags.StringVar(&f.currency, "currency", "", "price currency (default from DEFAULT_CURRENCY)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("depart")
}

// query converts the flags into a search query. A 3-letter Latin value is
// taken as an IATA code, anything else as a city name to resolve.
func (f *queryFlags) query(defaultCurrency string) domain.SearchQuery {
	q := domain.SearchQuery{
		DepartDate: strings.TrimSpace(f.depart),
		ReturnDate: strings.TrimSpace(f.ret),
		OneWay:     f.oneWay,
		Adults:     f.adults,
		Children:   f.children,
		Infants:    f.infants,
		Cabin:      strings.ToLower(strings.TrimSpace(f.cabin)),
		Currency:   strings.ToUpper(strings.TrimSpace(f.currency)),
	}
	if q.Currency == "" {
		q.Currency = strings.ToUpper(defaultCurrency)
	}
	q.Origin, q.OriginCity = splitPlace(f.from)
	q.Destination, q.DestinationCity = splitPlace(f.to)
	return q
}

func splitPlace(value string) (code, city string) {
	value = strings.TrimSpace(value)
	if isIATACode(value) {
		return strings.ToUpper(value), ""
	}
	return "", value
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
