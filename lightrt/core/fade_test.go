package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearDistanceFade(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		fade     float32
		expected float32
	}{
		{"at viewer", 0, 100, 1},
		{"halfway", 50, 100, 0.5},
		{"at fade distance", 100, 100, 0},
		{"beyond fade distance", 250, 100, 0},
		{"zero fade distance", 0, 0, 0},
		{"negative fade distance", 10, -5, 0},
		{"negative distance clamps", -10, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LinearDistanceFade(tt.distance, tt.fade), 1e-6)
		})
	}
}

func TestIsBakedShadowMask(t *testing.T) {
	assert.True(t, IsBakedShadowMask(BakingOutput{BakeMixed, MixedShadowmask, 0}))
	assert.True(t, IsBakedShadowMask(BakingOutput{BakeMixed, MixedShadowmask, 3}))
	assert.False(t, IsBakedShadowMask(BakingOutput{BakeMixed, MixedShadowmask, -1}))
	assert.False(t, IsBakedShadowMask(BakingOutput{BakeMixed, MixedSubtractive, 0}))
	assert.False(t, IsBakedShadowMask(BakingOutput{BakeBaked, MixedShadowmask, 0}))
	assert.False(t, IsBakedShadowMask(RealtimeBaking()))
}
