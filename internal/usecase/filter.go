package usecase

import (
	"sort"
	"strings"

	"github.com/yuvia/flight-results/internal/domain"
)

// ApplyFilters returns the flights that satisfy every constraint.
// It returns a new slice and never reorders or mutates the input.
//
// Behavior:
//   - Price bounds are inclusive and skipped when unset
//   - The direct-only trigger forces the stop restriction to direct
//   - Airline and airport sets match when ANY leg matches
//   - The duration cap applies to each leg separately; a flight without leg
//     summaries is checked against its aggregate duration
//   - Time windows only reject flights whose departure time is known
//   - Applying the same constraints twice yields the same result
func ApplyFilters(flights []domain.ScoredFlight, c domain.FilterConstraints) []domain.ScoredFlight {
	var (
		airlineSet = buildCodeSet(c.Airlines)
		originSet  = buildCodeSet(c.OriginAirports)
		destSet    = buildCodeSet(c.DestinationAirports)
		stops      = c.EffectiveStops()
	)

	result := make([]domain.ScoredFlight, 0, len(flights))
	for i := range flights {
		f := &flights[i]
		if passesConstraints(f, &c, stops, airlineSet, originSet, destSet) && passesTriggers(f, c.Triggers) {
			result = append(result, *f)
		}
	}
	return result
}

func passesConstraints(
	f *domain.ScoredFlight,
	c *domain.FilterConstraints,
	stops domain.StopsOption,
	airlineSet, originSet, destSet map[string]struct{},
) bool {
	if c.PriceMin != nil && f.Price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && f.Price > *c.PriceMax {
		return false
	}

	switch stops {
	case domain.StopsDirect:
		if f.Transfers != 0 {
			return false
		}
	case domain.StopsOneMax:
		if f.Transfers > 1 {
			return false
		}
	}

	if airlineSet != nil && !anyInSet(f.Carriers(), airlineSet) {
		return false
	}
	if originSet != nil && !anyInSet(f.OriginAirports(), originSet) {
		return false
	}
	if destSet != nil && !anyInSet(f.DestinationAirports(), destSet) {
		return false
	}

	if c.MaxDurationHours != nil && exceedsDuration(f, int(*c.MaxDurationHours*60)) {
		return false
	}

	if len(c.OutboundWindows) > 0 {
		if t := f.OutboundDepartAt(); t != nil && !containsWindow(c.OutboundWindows, domain.WindowOf(*t)) {
			return false
		}
	}
	if len(c.ReturnWindows) > 0 {
		if t := f.ReturnDepartAtTime(); t != nil && !containsWindow(c.ReturnWindows, domain.WindowOf(*t)) {
			return false
		}
	}

	return true
}

// passesTriggers applies the trip triggers except direct-only, which is folded
// into the stop restriction.
func passesTriggers(f *domain.ScoredFlight, t domain.TripTriggers) bool {
	if !t.NoNightDeparture && !t.NoEarlyDeparture && !t.NoOvernight {
		return true
	}

	var nightDeparture, earlyDeparture, nightArrival bool
	for _, d := range f.DepartureTimes() {
		nightDeparture = nightDeparture || domain.IsNightTime(d)
		earlyDeparture = earlyDeparture || domain.IsEarlyTime(d)
	}
	for _, a := range f.ArrivalTimes() {
		nightArrival = nightArrival || domain.IsNightTime(a)
	}

	if t.NoNightDeparture && nightDeparture {
		return false
	}
	if t.NoEarlyDeparture && earlyDeparture {
		return false
	}
	if t.NoOvernight && f.Transfers > 0 && (nightDeparture || nightArrival) {
		return false
	}
	return true
}

func exceedsDuration(f *domain.ScoredFlight, limit int) bool {
	if f.Outbound != nil && f.Outbound.DurationMinutes > limit {
		return true
	}
	if f.Return != nil && f.Return.DurationMinutes > limit {
		return true
	}
	if f.Outbound == nil && f.Return == nil {
		return f.DurationMinutes > limit
	}
	return false
}

// buildCodeSet creates a case-insensitive lookup set, nil for an empty selection.
func buildCodeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	return set
}

func anyInSet(codes []string, set map[string]struct{}) bool {
	for _, code := range codes {
		if _, ok := set[strings.ToUpper(code)]; ok {
			return true
		}
	}
	return false
}

func containsWindow(windows []domain.TimeWindow, w domain.TimeWindow) bool {
	for _, candidate := range windows {
		if candidate == w {
			return true
		}
	}
	return false
}

// CollectFilterOptions lists the carriers and airports present in the working
// set, for clients to offer as filter choices. Carriers keep the first
// resolved name seen and are sorted by name, airports by code.
func CollectFilterOptions(flights []domain.ScoredFlight) domain.FilterOptions {
	opts := domain.FilterOptions{
		Airlines:            []domain.AirlineMeta{},
		OriginAirports:      []string{},
		DestinationAirports: []string{},
	}

	airlines := make(map[string]int)
	origins := make(map[string]struct{})
	dests := make(map[string]struct{})

	for i := range flights {
		f := &flights[i]
		if f.HasReturn() {
			opts.HasReturn = true
		}

		metas := f.AirlinesMetaAll
		if len(metas) == 0 && f.AirlineCode != "" {
			metas = []domain.AirlineMeta{{Code: f.AirlineCode, Name: f.AirlineName}}
		}
		for _, m := range metas {
			if m.Code == "" {
				continue
			}
			if idx, ok := airlines[m.Code]; ok {
				if opts.Airlines[idx].Name == "" {
					opts.Airlines[idx].Name = m.Name
				}
				continue
			}
			airlines[m.Code] = len(opts.Airlines)
			opts.Airlines = append(opts.Airlines, m)
		}

		for _, code := range f.OriginAirports() {
			if _, ok := origins[code]; !ok {
				origins[code] = struct{}{}
				opts.OriginAirports = append(opts.OriginAirports, code)
			}
		}
		for _, code := range f.DestinationAirports() {
			if _, ok := dests[code]; !ok {
				dests[code] = struct{}{}
				opts.DestinationAirports = append(opts.DestinationAirports, code)
			}
		}
	}

	sort.SliceStable(opts.Airlines, func(i, j int) bool {
		return airlineSortName(opts.Airlines[i]) < airlineSortName(opts.Airlines[j])
	})
	sort.Strings(opts.OriginAirports)
	sort.Strings(opts.DestinationAirports)
	return opts
}

func airlineSortName(m domain.AirlineMeta) string {
	if m.Name != "" {
		return strings.ToLower(m.Name)
	}
	return strings.ToLower(m.Code)
}
