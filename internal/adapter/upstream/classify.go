package upstream

import "strings"

// SegmentDirection tags a raw segment from a generic segment list.
type SegmentDirection int

const (
	Outbound SegmentDirection = iota
	Return
)

func (d SegmentDirection) String() string {
	if d == Return {
		return "return"
	}
	return "outbound"
}

// returnMarkers are the string-valued fields that mark a return segment.
var returnMarkers = []struct {
	key   string
	value string
}{
	{"direction", "return"},
	{"leg", "return"},
	{"segment_type", "back"},
	{"trip", "back"},
}

// ClassifyDirection tags a raw segment using the explicit flags upstream
// payloads are known to carry. Any one flag marking the segment as a return
// leg is enough; a flag that is present but false does not override the
// others. Segments without any flag are outbound.
func ClassifyDirection(raw Raw) SegmentDirection {
	if truthy(raw["isReturn"]) || truthy(raw["is_return"]) {
		return Return
	}
	for _, m := range returnMarkers {
		if s, ok := raw[m.key].(string); ok && strings.EqualFold(strings.TrimSpace(s), m.value) {
			return Return
		}
	}
	if b, ok := raw["return"].(bool); ok && b {
		return Return
	}
	return Outbound
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "yes"
	default:
		return false
	}
}
