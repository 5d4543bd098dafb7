package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDebugLightFilter(t *testing.T) {
	mode, err := ParseDebugLightFilter([]string{"directional", " Point "})
	require.NoError(t, err)
	assert.Equal(t, DebugFilterDirectional|DebugFilterPoint, mode)

	mode, err = ParseDebugLightFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, DebugFilterNone, mode)

	_, err = ParseDebugLightFilter([]string{"probe"})
	assert.Error(t, err)
}

func TestDebugLightFilterModeIsEnabledFor(t *testing.T) {
	tests := []struct {
		name    string
		mode    DebugLightFilterMode
		gpuType GPULightType
		shape   SpotShape
		want    bool
	}{
		{"directional on", DebugFilterDirectional, GPULightDirectional, SpotShapeCone, true},
		{"directional off", DebugFilterPoint, GPULightDirectional, SpotShapeCone, false},
		{"spot cone", DebugFilterSpotCone, GPULightSpot, SpotShapeCone, true},
		{"spot pyramid via spot type", DebugFilterSpotPyramid, GPULightSpot, SpotShapePyramid, true},
		{"spot pyramid rejected by cone filter", DebugFilterSpotCone, GPULightSpot, SpotShapePyramid, false},
		{"projector box", DebugFilterSpotBox, GPULightProjectorBox, SpotShapeBox, true},
		{"projector pyramid", DebugFilterSpotPyramid, GPULightProjectorPyramid, SpotShapeCone, true},
		{"area group", DebugFilterArea, GPULightTube, SpotShapeCone, true},
		{"disc not in punctual", DebugFilterPunctual, GPULightDisc, SpotShapeCone, false},
		{"all", DebugFilterAll, GPULightRectangle, SpotShapeCone, true},
		{"none", DebugFilterNone, GPULightPoint, SpotShapeCone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.IsEnabledFor(tt.gpuType, tt.shape))
		})
	}
}
