package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPenaltyFromAverage(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want float64
	}{
		{"perfect rating", 5, 0},
		{"worst rating", 1, 100},
		{"middle rating", 3, 50},
		{"mixed average", 3.5, 37.5},
		{"clamped above out-of-range average", 0.5, 100},
		{"clamped below out-of-range average", 5.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PenaltyFromAverage(tt.avg))
		})
	}
}
