// Package upstream talks to the remote search API and converts its offer
// payloads into canonical domain flights.
package upstream

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
)

// Offer shapes reported to metrics.
const (
	ShapeCompact   = "compact"
	ShapeSegmented = "segmented"
)

// NormalizeContext supplies query-level defaults for offers that omit them.
type NormalizeContext struct {
	Origin      string
	Destination string
	OriginCity  string
	DestCity    string
	DepartDate  string
	ReturnDate  string
	OneWay      bool
	Adults      int
	Currency    string

	// FallbackID is used when an offer carries no id of its own
	FallbackID string
}

// ContextFromQuery builds a NormalizeContext from a normalized search query.
func ContextFromQuery(q domain.SearchQuery) NormalizeContext {
	return NormalizeContext{
		Origin:      strings.ToUpper(q.Origin),
		Destination: strings.ToUpper(q.Destination),
		OriginCity:  q.OriginCity,
		DestCity:    q.DestinationCity,
		DepartDate:  q.DepartDate,
		ReturnDate:  q.ReturnDate,
		OneWay:      q.OneWay,
		Adults:      q.Adults,
		Currency:    q.Currency,
	}
}

// Normalizer converts raw offers into domain flights.
type Normalizer struct {
	resolver domain.NameResolver
	links    LinkPolicy
	loc      *time.Location
	newID    func() string
}

// NewNormalizer creates a Normalizer. A nil resolver resolves nothing and a
// nil location reads zone-less timestamps as UTC.
func NewNormalizer(resolver domain.NameResolver, links LinkPolicy, loc *time.Location) *Normalizer {
	if resolver == nil {
		resolver = domain.NopResolver{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{
		resolver: resolver,
		links:    links,
		loc:      loc,
		newID:    uuid.NewString,
	}
}

// WithResolver returns a copy of the normalizer using another name resolver.
func (n *Normalizer) WithResolver(resolver domain.NameResolver) *Normalizer {
	cp := *n
	if resolver == nil {
		resolver = domain.NopResolver{}
	}
	cp.resolver = resolver
	return &cp
}

// NormalizeBatch normalizes a search payload. Offers without a positive price
// are dropped. Each offer gets the fallback id ORIGIN-DEST-index.
func (n *Normalizer) NormalizeBatch(raws []Raw, ctx NormalizeContext) []domain.Flight {
	flights := make([]domain.Flight, 0, len(raws))
	for i, raw := range raws {
		itemCtx := ctx
		itemCtx.FallbackID = fmt.Sprintf("%s-%s-%d", ctx.Origin, ctx.Destination, i)
		if f, ok := n.Normalize(raw, itemCtx); ok {
			flights = append(flights, f)
		}
	}
	return flights
}

// Normalize converts one raw offer. The bool result is false when the offer
// has no usable price.
func (n *Normalizer) Normalize(raw Raw, ctx NormalizeContext) (domain.Flight, bool) {
	if raw == nil {
		return domain.Flight{}, false
	}

	shape := ShapeSegmented
	var f domain.Flight
	if isCompact(raw) {
		shape = ShapeCompact
		f = n.normalizeCompact(raw, ctx)
	} else {
		f = n.normalizeSegmented(raw, ctx)
	}

	kept := f.Price > 0
	metrics.RecordOffer(shape, kept)
	return f, kept
}

// isCompact detects the flattened shape: a top-level departure or return
// timestamp together with any duration field.
func isCompact(raw Raw) bool {
	_, hasDate := FirstPresent(raw, "departure_at", "return_at")
	if !hasDate {
		return false
	}
	_, hasDuration := FirstPresent(raw, "duration_to", "duration_back", "duration")
	return hasDuration
}

func (n *Normalizer) normalizeCompact(raw Raw, ctx NormalizeContext) domain.Flight {
	t := CompactAliases

	originAirport := firstNonEmpty(OfferAliases.Code(raw, FieldOriginAirport), ctx.Origin)
	destAirport := firstNonEmpty(OfferAliases.Code(raw, FieldDestAirport), ctx.Destination)
	legOrigin := firstNonEmpty(t.Code(raw, FieldLegOriginAirport), ctx.Origin, originAirport)
	legDest := firstNonEmpty(t.Code(raw, FieldLegDestAirport), ctx.Destination, destAirport)

	originCity := n.cityName(originAirport, "", ctx.OriginCity, OfferAliases.String(raw, FieldOriginCity))
	destCity := n.cityName(destAirport, "", ctx.DestCity, OfferAliases.String(raw, FieldDestCity))

	depart := t.Time(raw, FieldDepartAt, n.loc)
	var returnDepart *time.Time
	if !ctx.OneWay {
		returnDepart = t.Time(raw, FieldReturnDepartAt, n.loc)
	}

	durTo := positiveMinutes(t, raw, FieldDuration)
	durBack := positiveMinutes(t, raw, FieldReturnDuration)
	total := positiveMinutes(t, raw, FieldTotalDuration)
	switch {
	case returnDepart != nil && total > 0 && (durTo == 0 || durBack == 0):
		if durTo == 0 {
			durTo = total / 2
		}
		if durBack == 0 {
			durBack = max(0, total-durTo)
		}
	case returnDepart == nil && durTo == 0:
		durTo = total
	}

	airline := t.Code(raw, FieldAirlineCode)
	airlineName := n.airlineName(airline, t.String(raw, FieldAirlineName))
	number := t.String(raw, FieldFlightNumber)

	outSeg := domain.Segment{
		DepartAt:        depart,
		ArriveAt:        addMinutes(depart, durTo),
		OriginCity:      originCity,
		DestCity:        destCity,
		OriginAirport:   legOrigin,
		DestAirport:     legDest,
		AirlineCode:     airline,
		AirlineName:     airlineName,
		FlightNumber:    number,
		DurationMinutes: durTo,
	}
	outbound := summarize([]domain.Segment{outSeg})
	outbound.DurationMinutes = durTo
	outbound.Transfers = wholeNumber(t, raw, FieldTransfers)

	var inbound *domain.SegmentSummary
	if returnDepart != nil {
		retSeg := domain.Segment{
			DepartAt:        returnDepart,
			ArriveAt:        addMinutes(returnDepart, durBack),
			OriginCity:      destCity,
			DestCity:        originCity,
			OriginAirport:   legDest,
			DestAirport:     legOrigin,
			AirlineCode:     airline,
			AirlineName:     airlineName,
			FlightNumber:    number,
			DurationMinutes: durBack,
		}
		inbound = summarize([]domain.Segment{retSeg})
		inbound.DurationMinutes = durBack
		inbound.Transfers = wholeNumber(t, raw, FieldReturnTransfers)
	}

	numbers := domain.FlightNumbers{Outbound: []string{}, Inbound: []string{}}
	if number != "" {
		numbers.Outbound = append(numbers.Outbound, formatFlightNumber(airline, number))
		if inbound != nil {
			numbers.Inbound = append(numbers.Inbound, formatFlightNumber(airline, number))
		}
	}

	price, _ := t.Number(raw, FieldPrice)

	f := domain.Flight{
		ID:              n.pickID(raw, ctx),
		OriginCity:      originCity,
		DestCity:        destCity,
		OriginAirport:   originAirport,
		DestAirport:     destAirport,
		Outbound:        outbound,
		Return:          inbound,
		Price:           price,
		Currency:        n.currency(t.String(raw, FieldCurrency), ctx),
		AirlineCode:     airline,
		AirlineName:     airlineName,
		AirlinesMetaAll: n.collectAirlines(domain.AirlineMeta{Code: airline, Name: airlineName}),
		FlightNumbers:   numbers,
	}
	f.AirlinesAll = metaCodes(f.AirlinesMetaAll)
	n.finish(&f, raw, ctx)
	return f
}

func (n *Normalizer) normalizeSegmented(raw Raw, ctx NormalizeContext) domain.Flight {
	t := OfferAliases

	airline := t.Code(raw, FieldAirlineCode)
	def := legDefaults{
		OriginAirport: firstNonEmpty(t.Code(raw, FieldOriginAirport), ctx.Origin),
		DestAirport:   firstNonEmpty(t.Code(raw, FieldDestAirport), ctx.Destination),
		OriginCity:    firstNonEmpty(t.String(raw, FieldOriginCity), ctx.OriginCity),
		DestCity:      firstNonEmpty(t.String(raw, FieldDestCity), ctx.DestCity),
		AirlineCode:   airline,
		AirlineName:   t.String(raw, FieldAirlineName),
	}

	rawOut, rawBack := splitSegments(raw)
	implicitOut, implicitBack := false, false
	if !hasAnySegments(raw) {
		if seg, ok := n.implicitOutbound(raw); ok {
			rawOut = []Raw{seg}
			implicitOut = true
		}
		if seg, ok := n.implicitReturn(raw); ok {
			rawBack = []Raw{seg}
			implicitBack = true
		}
	}
	if ctx.OneWay {
		rawBack = nil
	}

	outSegs := make([]domain.Segment, 0, len(rawOut))
	for _, s := range rawOut {
		outSegs = append(outSegs, n.mapSegment(s, def))
	}
	backSegs := make([]domain.Segment, 0, len(rawBack))
	for _, s := range rawBack {
		backSegs = append(backSegs, n.mapSegment(s, def.reversed()))
	}

	outbound := summarize(outSegs)
	if outbound != nil {
		if implicitOut {
			outbound.Transfers = wholeNumber(t, raw, FieldTransfers)
		}
		if outbound.DurationMinutes == 0 {
			outbound.DurationMinutes = positiveMinutes(t, raw, FieldDuration)
		}
	}
	inbound := summarize(backSegs)
	if inbound != nil {
		if implicitBack {
			inbound.Transfers = wholeNumber(t, raw, FieldReturnTransfers)
		}
		if inbound.DurationMinutes == 0 {
			inbound.DurationMinutes = positiveMinutes(t, raw, FieldReturnDuration)
		}
	}

	primary := airline
	for _, segs := range [][]domain.Segment{outSegs, backSegs} {
		for _, s := range segs {
			if primary == "" && s.AirlineCode != "" {
				primary = s.AirlineCode
			}
		}
	}
	primaryName := n.airlineName(primary, def.AirlineName)

	f := domain.Flight{
		ID:              n.pickID(raw, ctx),
		OriginAirport:   def.OriginAirport,
		DestAirport:     def.DestAirport,
		OriginCity:      n.cityName(def.OriginAirport, "", def.OriginCity),
		DestCity:        n.cityName(def.DestAirport, "", def.DestCity),
		Outbound:        outbound,
		Return:          inbound,
		Currency:        n.currency(t.String(raw, FieldCurrency), ctx),
		AirlineCode:     primary,
		AirlineName:     primaryName,
		AirlinesMetaAll: n.collectAirlines(domain.AirlineMeta{Code: primary, Name: primaryName}, outSegs, backSegs),
		FlightNumbers: domain.FlightNumbers{
			Outbound: flightNumbers(outSegs),
			Inbound:  flightNumbers(backSegs),
		},
	}
	if outbound != nil {
		f.OriginAirport = firstNonEmpty(outbound.Start.OriginAirport, f.OriginAirport)
		f.DestAirport = firstNonEmpty(outbound.End.DestAirport, f.DestAirport)
		f.OriginCity = firstNonEmpty(outbound.Start.OriginCity, f.OriginCity)
		f.DestCity = firstNonEmpty(outbound.End.DestCity, f.DestCity)
	}
	f.AirlinesAll = metaCodes(f.AirlinesMetaAll)
	f.Price, _ = t.Number(raw, FieldPrice)

	n.finish(&f, raw, ctx)
	return f
}

// implicitOutbound builds a single outbound segment from top-level fields.
func (n *Normalizer) implicitOutbound(raw Raw) (Raw, bool) {
	t := OfferAliases
	depart, hasDepart := t.Value(raw, FieldDepartAt)
	arrive, hasArrive := t.Value(raw, FieldArriveAt)
	duration, hasDuration := t.Positive(raw, FieldDuration)
	if !hasDepart && !hasArrive && !hasDuration {
		return nil, false
	}
	seg := Raw{
		"departAt":      depart,
		"arriveAt":      arrive,
		"airlineCode":   t.String(raw, FieldAirlineCode),
		"flight_number": SegmentAliases.String(raw, FieldFlightNumber),
	}
	if hasDuration {
		seg["durationMinutes"] = duration
	}
	return seg, true
}

// implicitReturn builds a single return segment from top-level return fields.
func (n *Normalizer) implicitReturn(raw Raw) (Raw, bool) {
	t := OfferAliases
	depart, hasDepart := t.Value(raw, FieldReturnDepartAt)
	arrive, hasArrive := t.Value(raw, FieldReturnArriveAt)
	duration, hasDuration := t.Positive(raw, FieldReturnDuration)
	if !hasDepart && !hasArrive && !hasDuration {
		return nil, false
	}
	seg := Raw{
		"departAt":    depart,
		"arriveAt":    arrive,
		"airlineCode": t.String(raw, FieldAirlineCode),
	}
	if hasDuration {
		seg["durationMinutes"] = duration
	}
	return seg, true
}

// finish derives the flat timestamps, totals and booking links shared by both shapes.
func (n *Normalizer) finish(f *domain.Flight, raw Raw, ctx NormalizeContext) {
	if f.Outbound != nil {
		f.DepartAt = f.Outbound.Start.DepartAt
		f.ArriveAt = f.Outbound.End.ArriveAt
		f.DurationMinutes += f.Outbound.DurationMinutes
		f.Transfers += f.Outbound.Transfers
	}
	if f.Return != nil {
		f.ReturnDepartAt = f.Return.Start.DepartAt
		f.ReturnArriveAt = f.Return.End.ArriveAt
		f.DurationMinutes += f.Return.DurationMinutes
		f.Transfers += f.Return.Transfers
	}
	if f.FlightNumbers.Outbound == nil {
		f.FlightNumbers.Outbound = []string{}
	}
	if f.FlightNumbers.Inbound == nil {
		f.FlightNumbers.Inbound = []string{}
	}

	req := LinkRequest{
		Origin:      firstNonEmpty(f.OriginAirport, ctx.Origin),
		Destination: firstNonEmpty(f.DestAirport, ctx.Destination),
		Adults:      ctx.Adults,
		Currency:    f.Currency,
		RoundTrip:   f.Return != nil || (!ctx.OneWay && ctx.ReturnDate != ""),
	}
	if f.DepartAt != nil {
		req.Depart = *f.DepartAt
	} else if d, err := time.Parse(domain.DateLayout, ctx.DepartDate); err == nil {
		req.Depart = d
	}
	if f.ReturnDepartAt != nil {
		req.Return = *f.ReturnDepartAt
	} else if d, err := time.Parse(domain.DateLayout, ctx.ReturnDate); err == nil {
		req.Return = d
	}

	// The partner link is preferred everywhere; only the card link falls back
	// to a synthesized search, the Aviasales link falls back to the ticket.
	candidate := n.links.Pick(raw)
	f.AviasalesTicketURL = n.links.TicketURL(OfferAliases.String(raw, FieldTicketLink))
	f.AviasalesSearchURL = firstNonEmpty(candidate, f.AviasalesTicketURL)
	f.Deeplink = firstNonEmpty(candidate, n.links.SearchURL(req))
}

func (n *Normalizer) pickID(raw Raw, ctx NormalizeContext) string {
	if id := OfferAliases.String(raw, FieldID); id != "" {
		return id
	}
	if ctx.FallbackID != "" {
		return ctx.FallbackID
	}
	return n.newID()
}

func (n *Normalizer) currency(raw string, ctx NormalizeContext) string {
	return strings.ToUpper(firstNonEmpty(raw, ctx.Currency, domain.DefaultCurrency))
}

// cityName resolves a display name: dictionary by city code, then by airport
// code, then the first non-empty fallback name, then the code itself.
func (n *Normalizer) cityName(cityCode, airportCode string, names ...string) string {
	for _, code := range []string{cityCode, airportCode} {
		if code == "" {
			continue
		}
		if name, ok := n.resolver.CityName(code); ok && name != "" {
			return name
		}
	}
	if name := firstNonEmpty(names...); name != "" {
		return name
	}
	return firstNonEmpty(cityCode, airportCode)
}

// airlineName resolves a carrier name: dictionary, then raw names, then the code.
func (n *Normalizer) airlineName(code string, names ...string) string {
	if code != "" {
		if name, ok := n.resolver.AirlineName(code); ok && name != "" {
			return name
		}
	}
	if name := firstNonEmpty(names...); name != "" {
		return name
	}
	return code
}

func metaCodes(meta []domain.AirlineMeta) []string {
	codes := make([]string, 0, len(meta))
	for _, m := range meta {
		codes = append(codes, m.Code)
	}
	return codes
}

func positiveMinutes(t AliasTable, raw Raw, f Field) int {
	v, ok := t.Positive(raw, f)
	if !ok {
		return 0
	}
	return toMinutes(v)
}

func wholeNumber(t AliasTable, raw Raw, f Field) int {
	v, ok := t.Number(raw, f)
	if !ok || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
