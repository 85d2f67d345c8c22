package upstream

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
)

// Raw is one decoded upstream JSON object.
type Raw = map[string]any

// Field names a canonical attribute resolved through an AliasTable.
type Field string

// Canonical fields shared by the offer, segment and compact tables.
const (
	FieldID                Field = "id"
	FieldDepartAt          Field = "departAt"
	FieldArriveAt          Field = "arriveAt"
	FieldReturnDepartAt    Field = "returnDepartAt"
	FieldReturnArriveAt    Field = "returnArriveAt"
	FieldOriginAirport     Field = "originAirport"
	FieldDestAirport       Field = "destAirport"
	FieldLegOriginAirport  Field = "legOriginAirport"
	FieldLegDestAirport    Field = "legDestAirport"
	FieldOriginCityCode    Field = "originCityCode"
	FieldDestCityCode      Field = "destCityCode"
	FieldOriginCity        Field = "originCity"
	FieldDestCity          Field = "destCity"
	FieldAirlineCode       Field = "airlineCode"
	FieldAirlineName       Field = "airlineName"
	FieldFlightNumber      Field = "flightNumber"
	FieldDuration          Field = "duration"
	FieldReturnDuration    Field = "returnDuration"
	FieldTotalDuration     Field = "totalDuration"
	FieldTransfers         Field = "transfers"
	FieldReturnTransfers   Field = "returnTransfers"
	FieldPrice             Field = "price"
	FieldCurrency          Field = "currency"
	FieldOutboundSegments  Field = "outboundSegments"
	FieldReturnSegments    Field = "returnSegments"
	FieldGenericSegments   Field = "segments"
	FieldTicketLink        Field = "ticketLink"
	FieldDeeplinkCandidate Field = "deeplink"
)

// AliasTable maps a canonical field to the ordered upstream keys that may carry it.
// Dotted keys address nested objects ("price.value").
type AliasTable map[Field][]string

// OfferAliases resolves top-level fields of a segmented offer.
var OfferAliases = AliasTable{
	FieldID:               {"id", "flight_id", "search_id", "token"},
	FieldDepartAt:         {"departAt", "depart_at", "departure_at", "departure", "start_time", "depart_date", "date_from"},
	FieldArriveAt:         {"arriveAt", "arrive_at", "arrival_at", "arrival", "end_time", "arrival_date", "date_to"},
	FieldReturnDepartAt:   {"returnDepartAt", "return_departure", "return_at", "return_date", "inbound.depart_at", "inbound.departure_at"},
	FieldReturnArriveAt:   {"returnArriveAt", "return_arrival", "inbound.arrive_at", "inbound.arrival_at"},
	FieldOriginAirport:    {"originAirport", "origin_airport", "origin"},
	FieldDestAirport:      {"destAirport", "destination_airport", "destination"},
	FieldOriginCity:       {"origin_name", "originCity", "origin_city"},
	FieldDestCity:         {"destination_name", "destCity", "dest_city"},
	FieldAirlineCode:      {"airlineCode", "airline", "carrier"},
	FieldAirlineName:      {"airlineName", "airline_name", "carrier_name"},
	FieldDuration:         {"durationMinutes", "duration_min", "duration_to"},
	FieldReturnDuration:   {"returnDurationMinutes", "duration_back"},
	FieldTransfers:        {"transfers", "number_of_changes", "stops"},
	FieldReturnTransfers:  {"return_transfers", "transfers_back", "returnStops"},
	FieldPrice:            {"price.value", "price.amount", "price.total", "price", "cost", "total_price"},
	FieldCurrency:         {"currency", "price.currency"},
	FieldOutboundSegments: {"outboundSegments", "outbound_segments", "go_segments"},
	FieldReturnSegments:   {"returnSegments", "return_segments", "inbound_segments", "back_segments"},
	FieldGenericSegments:  {"segments", "route"},
	FieldTicketLink:       {"link"},
	FieldDeeplinkCandidate: {
		"deeplink", "deep_link", "aviasales_deeplink", "ticket_link", "offer_link", "link",
	},
}

// SegmentAliases resolves fields of one raw flown leg.
var SegmentAliases = AliasTable{
	FieldDepartAt:       {"departAt", "depart_at", "departure_at", "departure", "date_from", "depart_date", "time_from", "begin_time"},
	FieldArriveAt:       {"arriveAt", "arrive_at", "arrival_at", "arrival", "date_to", "arrival_date", "time_to", "end_time"},
	FieldOriginAirport:  {"originAirport", "origin_airport", "flyFrom", "from", "origin", "origin_code", "origin.code"},
	FieldDestAirport:    {"destAirport", "dest_airport", "flyTo", "to", "destination", "destination_code", "destination.code"},
	FieldOriginCityCode: {"originCityCode", "origin_city_code", "cityFromCode", "city_from_code"},
	FieldDestCityCode:   {"destCityCode", "dest_city_code", "cityToCode", "city_to_code"},
	FieldOriginCity:     {"originCity", "origin_city", "cityFrom", "city_from", "from_city", "origin.city"},
	FieldDestCity:       {"destCity", "dest_city", "cityTo", "city_to", "to_city", "destination.city"},
	FieldAirlineCode:    {"airlineCode", "airline", "carrier", "marketing_carrier"},
	FieldAirlineName:    {"airlineName", "airline_name", "carrier_name", "marketing_carrier_name"},
	FieldFlightNumber:   {"flight_number", "flight_no", "flightNum", "flight"},
	FieldDuration:       {"durationMinutes", "duration", "duration_min"},
}

// CompactAliases resolves fields of the flattened price-calendar style offer.
var CompactAliases = AliasTable{
	FieldDepartAt:         {"departure_at", "departAt"},
	FieldReturnDepartAt:   {"return_at", "returnDepartAt"},
	FieldLegOriginAirport: {"origin_airport"},
	FieldLegDestAirport:   {"destination_airport"},
	FieldDuration:         {"duration_to", "durationTo", "duration_to_min"},
	FieldReturnDuration:   {"duration_back", "durationBack", "duration_back_min"},
	FieldTotalDuration:    {"duration"},
	FieldTransfers:        {"transfers", "number_of_changes", "stops"},
	FieldReturnTransfers:  {"return_transfers", "returnStops"},
	FieldPrice:            {"price", "value", "total_price"},
	FieldCurrency:         {"currency"},
	FieldAirlineCode:      {"airline", "airlineCode"},
	FieldAirlineName:      {"airline_name", "airlineName", "carrier_name"},
	FieldFlightNumber:     {"flight_number", "flightNumber"},
}

// FirstPresent returns the value of the first key that is present and non-empty.
// Nil values and blank strings count as absent.
func FirstPresent(raw Raw, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := lookupPath(raw, key); ok && !isBlank(v) {
			return v, true
		}
	}
	return nil, false
}

func lookupPath(raw Raw, key string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	if !strings.Contains(key, ".") {
		v, ok := raw[key]
		return v, ok
	}

	var current any = raw
	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// Has reports whether any alias of f is present, even with a zero value.
func (t AliasTable) Has(raw Raw, f Field) bool {
	_, ok := FirstPresent(raw, t[f]...)
	return ok
}

// Value returns the first present value for f.
func (t AliasTable) Value(raw Raw, f Field) (any, bool) {
	return FirstPresent(raw, t[f]...)
}

// String returns the first scalar value for f as a trimmed string.
// Objects and arrays are skipped so that "origin": {...} does not shadow later aliases.
func (t AliasTable) String(raw Raw, f Field) string {
	for _, key := range t[f] {
		v, ok := lookupPath(raw, key)
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok {
			return s
		}
	}
	return ""
}

// Code returns String upper-cased, for airport, city and carrier codes.
func (t AliasTable) Code(raw Raw, f Field) string {
	return strings.ToUpper(t.String(raw, f))
}

// Number returns the first numeric value for f, zero included.
// Numeric strings are accepted.
func (t AliasTable) Number(raw Raw, f Field) (float64, bool) {
	for _, key := range t[f] {
		v, ok := lookupPath(raw, key)
		if !ok {
			continue
		}
		if n, ok := toNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Positive returns the first strictly positive numeric value for f.
func (t AliasTable) Positive(raw Raw, f Field) (float64, bool) {
	for _, key := range t[f] {
		v, ok := lookupPath(raw, key)
		if !ok {
			continue
		}
		if n, ok := toNumber(v); ok && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// Time returns the first parseable timestamp for f.
func (t AliasTable) Time(raw Raw, f Field, loc *time.Location) *time.Time {
	for _, key := range t[f] {
		v, ok := lookupPath(raw, key)
		if !ok || isBlank(v) {
			continue
		}
		if ts := timeutil.ParseFlexible(v, loc); ts != nil {
			return ts
		}
	}
	return nil
}

// Objects returns the first array of objects found for f.
func (t AliasTable) Objects(raw Raw, f Field) []Raw {
	for _, key := range t[f] {
		v, ok := lookupPath(raw, key)
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok {
			return objectsOf(list)
		}
		if list, ok := v.([]Raw); ok {
			return list
		}
	}
	return nil
}

func objectsOf(list []any) []Raw {
	out := make([]Raw, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return "", false
	default:
		return "", false
	}
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// toMinutes converts a numeric duration to whole minutes, never negative.
func toMinutes(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}
