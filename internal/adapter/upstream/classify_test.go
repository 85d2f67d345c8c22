package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want SegmentDirection
	}{
		{"isReturn true", Raw{"isReturn": true}, Return},
		{"isReturn false does not hide direction", Raw{"isReturn": false, "direction": "return"}, Return},
		{"is_return false does not hide segment type", Raw{"is_return": false, "segment_type": "back"}, Return},
		{"isReturn zero does not hide return flag", Raw{"isReturn": float64(0), "return": true}, Return},
		{"is_return string false does not hide trip", Raw{"is_return": "false", "trip": "back"}, Return},
		{"all flags false", Raw{"isReturn": false, "is_return": "0", "direction": "outbound", "return": false}, Outbound},
		{"is_return nil", Raw{"is_return": nil}, Outbound},
		{"is_return numeric", Raw{"is_return": float64(1)}, Return},
		{"direction return any case", Raw{"direction": "RETURN"}, Return},
		{"direction outbound", Raw{"direction": "outbound"}, Outbound},
		{"leg return", Raw{"leg": "return"}, Return},
		{"segment_type back", Raw{"segment_type": "back"}, Return},
		{"trip back", Raw{"trip": "back"}, Return},
		{"return flag", Raw{"return": true}, Return},
		{"return string is not a flag", Raw{"return": "yes"}, Outbound},
		{"no flags", Raw{"origin": "SVO"}, Outbound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDirection(tt.raw))
		})
	}
}

func TestSegmentDirection_String(t *testing.T) {
	assert.Equal(t, "outbound", Outbound.String())
	assert.Equal(t, "return", Return.String())
}
