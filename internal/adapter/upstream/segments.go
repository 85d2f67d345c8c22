package upstream

import (
	"strings"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
)

// legDefaults are the values a segment inherits when its own fields are missing.
type legDefaults struct {
	OriginAirport string
	DestAirport   string
	OriginCity    string
	DestCity      string
	AirlineCode   string
	AirlineName   string
}

// reversed swaps origin and destination for the return direction.
func (d legDefaults) reversed() legDefaults {
	d.OriginAirport, d.DestAirport = d.DestAirport, d.OriginAirport
	d.OriginCity, d.DestCity = d.DestCity, d.OriginCity
	return d
}

// mapSegment resolves one raw segment through SegmentAliases.
func (n *Normalizer) mapSegment(raw Raw, def legDefaults) domain.Segment {
	t := SegmentAliases

	depart := t.Time(raw, FieldDepartAt, n.loc)
	arrive := t.Time(raw, FieldArriveAt, n.loc)

	originAirport := firstNonEmpty(t.Code(raw, FieldOriginAirport), def.OriginAirport)
	destAirport := firstNonEmpty(t.Code(raw, FieldDestAirport), def.DestAirport)
	originCityCode := firstNonEmpty(t.Code(raw, FieldOriginCityCode), originAirport)
	destCityCode := firstNonEmpty(t.Code(raw, FieldDestCityCode), destAirport)

	airline := firstNonEmpty(t.Code(raw, FieldAirlineCode), def.AirlineCode)

	// Query-level city names only describe the trip endpoints, not transfer points.
	originFallback, destFallback := "", ""
	if originAirport == def.OriginAirport {
		originFallback = def.OriginCity
	}
	if destAirport == def.DestAirport {
		destFallback = def.DestCity
	}

	duration := 0
	if v, ok := t.Positive(raw, FieldDuration); ok {
		duration = toMinutes(v)
	} else if m, ok := timeutil.MinutesBetween(depart, arrive); ok {
		duration = m
	}

	return domain.Segment{
		DepartAt:        depart,
		ArriveAt:        arrive,
		OriginAirport:   originAirport,
		DestAirport:     destAirport,
		OriginCity:      n.cityName(originCityCode, originAirport, t.String(raw, FieldOriginCity), originFallback),
		DestCity:        n.cityName(destCityCode, destAirport, t.String(raw, FieldDestCity), destFallback),
		AirlineCode:     airline,
		AirlineName:     n.airlineName(airline, t.String(raw, FieldAirlineName), def.AirlineName),
		FlightNumber:    t.String(raw, FieldFlightNumber),
		DurationMinutes: duration,
	}
}

// splitSegments returns the raw outbound and return segment lists of an offer.
// Explicit direction lists win over a generic list tagged by ClassifyDirection.
func splitSegments(raw Raw) (outbound, inbound []Raw) {
	outbound = OfferAliases.Objects(raw, FieldOutboundSegments)
	inbound = OfferAliases.Objects(raw, FieldReturnSegments)
	if len(outbound) > 0 || len(inbound) > 0 {
		return outbound, inbound
	}

	for _, seg := range OfferAliases.Objects(raw, FieldGenericSegments) {
		if ClassifyDirection(seg) == Return {
			inbound = append(inbound, seg)
		} else {
			outbound = append(outbound, seg)
		}
	}
	return outbound, inbound
}

// hasAnySegments reports whether the offer carries any segment list at all.
func hasAnySegments(raw Raw) bool {
	for _, f := range []Field{FieldOutboundSegments, FieldReturnSegments, FieldGenericSegments} {
		if len(OfferAliases.Objects(raw, f)) > 0 {
			return true
		}
	}
	return false
}

// summarize aggregates one direction. Returns nil for an empty list.
func summarize(segments []domain.Segment) *domain.SegmentSummary {
	if len(segments) == 0 {
		return nil
	}
	first := segments[0]
	last := segments[len(segments)-1]

	duration, ok := timeutil.MinutesBetween(first.DepartAt, last.ArriveAt)
	if !ok {
		duration = 0
		for _, s := range segments {
			duration += s.DurationMinutes
		}
	}

	return &domain.SegmentSummary{
		Start: domain.LegStart{
			DepartAt:      first.DepartAt,
			OriginCity:    first.OriginCity,
			OriginAirport: first.OriginAirport,
		},
		End: domain.LegEnd{
			ArriveAt:    last.ArriveAt,
			DestCity:    last.DestCity,
			DestAirport: last.DestAirport,
		},
		DurationMinutes: duration,
		Transfers:       len(segments) - 1,
		Segments:        segments,
	}
}

// collectAirlines returns the distinct carriers of all segments in first-seen
// order, followed by the primary carrier when no segment names it.
func (n *Normalizer) collectAirlines(primary domain.AirlineMeta, groups ...[]domain.Segment) []domain.AirlineMeta {
	seen := make(map[string]bool)
	var out []domain.AirlineMeta
	add := func(code, name string) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		out = append(out, domain.AirlineMeta{Code: code, Name: n.airlineName(code, name)})
	}
	for _, segs := range groups {
		for _, s := range segs {
			add(s.AirlineCode, s.AirlineName)
		}
	}
	add(primary.Code, primary.Name)
	return out
}

// flightNumbers formats "<carrier> <number>" for segments that carry a number.
func flightNumbers(segments []domain.Segment) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.FlightNumber == "" {
			continue
		}
		out = append(out, formatFlightNumber(s.AirlineCode, s.FlightNumber))
	}
	return out
}

func formatFlightNumber(code, number string) string {
	if code == "" || strings.HasPrefix(strings.ToUpper(number), code) {
		return number
	}
	return code + " " + number
}

func addMinutes(t *time.Time, minutes int) *time.Time {
	if t == nil || minutes <= 0 {
		return nil
	}
	v := t.Add(time.Duration(minutes) * time.Minute)
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
