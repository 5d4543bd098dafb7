package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateGPULightType(t *testing.T) {
	tests := []struct {
		name      string
		lightType LightType
		spot      SpotShape
		area      AreaShape
		expected  Classification
	}{
		{"spot cone", LightTypeSpot, SpotShapeCone, AreaShapeRectangle, Classification{CategoryPunctual, GPULightSpot, VolumeCone}},
		{"spot pyramid", LightTypeSpot, SpotShapePyramid, AreaShapeRectangle, Classification{CategoryPunctual, GPULightProjectorPyramid, VolumeCone}},
		{"spot box", LightTypeSpot, SpotShapeBox, AreaShapeRectangle, Classification{CategoryPunctual, GPULightProjectorBox, VolumeBox}},
		{"directional", LightTypeDirectional, SpotShapeBox, AreaShapeDisc, Classification{CategoryPunctual, GPULightDirectional, VolumeNone}},
		{"point", LightTypePoint, SpotShapePyramid, AreaShapeTube, Classification{CategoryPunctual, GPULightPoint, VolumeSphere}},
		{"area rectangle", LightTypeArea, SpotShapeCone, AreaShapeRectangle, Classification{CategoryArea, GPULightRectangle, VolumeBox}},
		{"area tube", LightTypeArea, SpotShapeCone, AreaShapeTube, Classification{CategoryArea, GPULightTube, VolumeBox}},
		{"area disc", LightTypeArea, SpotShapeCone, AreaShapeDisc, Classification{CategoryArea, GPULightDisc, VolumeSphere}},
		{"spot shape out of range", LightTypeSpot, SpotShape(9), AreaShapeRectangle, Classification{CategoryPunctual, GPULightSpot, VolumeCone}},
		{"area shape out of range", LightTypeArea, SpotShapeCone, AreaShape(9), Classification{CategoryArea, GPULightRectangle, VolumeBox}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateGPULightType(tt.lightType, tt.spot, tt.area))
		})
	}
}

func TestEvaluateGPULightTypeIgnoresUnrelatedShape(t *testing.T) {
	for spot := SpotShapeCone; spot < SpotShapeCount; spot++ {
		for area := AreaShapeRectangle; area < AreaShapeCount; area++ {
			assert.Equal(t, EvaluateGPULightType(LightTypeSpot, spot, AreaShapeRectangle), EvaluateGPULightType(LightTypeSpot, spot, area))
			assert.Equal(t, EvaluateGPULightType(LightTypeArea, SpotShapeCone, area), EvaluateGPULightType(LightTypeArea, spot, area))
			assert.Equal(t, pointClassification, EvaluateGPULightType(LightTypePoint, spot, area))
			assert.Equal(t, directionalClassification, EvaluateGPULightType(LightTypeDirectional, spot, area))
		}
	}
}

func TestTranslateLightType(t *testing.T) {
	tests := []struct {
		kind      LightKind
		pointType PointLightHDType
		expected  LightType
	}{
		{LightKindSpot, PointLightPunctual, LightTypeSpot},
		{LightKindSpot, PointLightArea, LightTypeSpot},
		{LightKindDirectional, PointLightPunctual, LightTypeDirectional},
		{LightKindDirectional, PointLightArea, LightTypeDirectional},
		{LightKindPoint, PointLightPunctual, LightTypePoint},
		{LightKindPoint, PointLightArea, LightTypeArea},
		{LightKindRectangle, PointLightPunctual, LightTypeArea},
		{LightKindDisc, PointLightPunctual, LightTypeArea},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslateLightType(tt.kind, tt.pointType))
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "ProjectorPyramid", GPULightProjectorPyramid.String())
	assert.Equal(t, "Area", CategoryArea.String())
	assert.Equal(t, "None", VolumeNone.String())
	assert.Equal(t, "Tube", AreaShapeTube.String())
	assert.Equal(t, "Box", SpotShapeBox.String())
	assert.Equal(t, "GPULightType(42)", GPULightType(42).String())
}
