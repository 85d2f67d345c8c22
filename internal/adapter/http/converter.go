package http

import (
	"strings"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

// ToSearchQuery converts a validated SearchRequest to domain.SearchQuery.
// defaultCurrency applies when the request names none.
func ToSearchQuery(req *SearchRequest, defaultCurrency string) domain.SearchQuery {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = strings.ToUpper(defaultCurrency)
	}

	return domain.SearchQuery{
		Origin:          strings.ToUpper(strings.TrimSpace(req.Origin)),
		OriginCity:      strings.TrimSpace(req.OriginCity),
		Destination:     strings.ToUpper(strings.TrimSpace(req.Destination)),
		DestinationCity: strings.TrimSpace(req.DestinationCity),
		DepartDate:      req.DepartDate,
		ReturnDate:      req.ReturnDate,
		OneWay:          req.OneWay,
		Adults:          req.Adults,
		Children:        req.Children,
		Infants:         req.Infants,
		Cabin:           strings.ToLower(req.Cabin),
		Currency:        currency,
	}
}

// ToViewOptions converts a ViewRequest to usecase.ViewOptions.
// A nil request yields the default view.
func ToViewOptions(req *ViewRequest) usecase.ViewOptions {
	opts := usecase.DefaultViewOptions()
	if req == nil {
		return opts
	}

	opts.Constraints = ToFilterConstraints(req)
	opts.Style = domain.ParseTripStyle(req.Style)
	opts.Sort = domain.ParseSortKey(req.Sort)
	opts.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	opts.Limit = req.Limit
	return opts
}

// ToFilterConstraints converts the filter part of a ViewRequest.
func ToFilterConstraints(req *ViewRequest) domain.FilterConstraints {
	return domain.FilterConstraints{
		PriceMin:            req.PriceMin,
		PriceMax:            req.PriceMax,
		Stops:               domain.ParseStopsOption(req.Stops),
		Airlines:            upperAll(req.Airlines),
		OriginAirports:      upperAll(req.OriginAirports),
		DestinationAirports: upperAll(req.DestinationAirports),
		MaxDurationHours:    req.MaxDurationHours,
		OutboundWindows:     toWindows(req.OutboundWindows),
		ReturnWindows:       toWindows(req.ReturnWindows),
		Triggers:            domain.ParseTripTriggers(req.Triggers),
	}
}

// toWindows keeps the known windows in request order.
func toWindows(names []string) []domain.TimeWindow {
	if len(names) == 0 {
		return nil
	}
	out := make([]domain.TimeWindow, 0, len(names))
	for _, name := range names {
		w := domain.TimeWindow(strings.ToLower(strings.TrimSpace(name)))
		if w.IsValid() {
			out = append(out, w)
		}
	}
	return out
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
