package core

// Classification is the GPU-facing description derived from a light type and its shape.
type Classification struct {
	Category LightCategory
	GPUType  GPULightType
	Volume   VolumeType
}

var spotClassifications = [SpotShapeCount]Classification{
	SpotShapeCone:    {CategoryPunctual, GPULightSpot, VolumeCone},
	SpotShapePyramid: {CategoryPunctual, GPULightProjectorPyramid, VolumeCone},
	SpotShapeBox:     {CategoryPunctual, GPULightProjectorBox, VolumeBox},
}

var areaClassifications = [AreaShapeCount]Classification{
	AreaShapeRectangle: {CategoryArea, GPULightRectangle, VolumeBox},
	AreaShapeTube:      {CategoryArea, GPULightTube, VolumeBox},
	AreaShapeDisc:      {CategoryArea, GPULightDisc, VolumeSphere},
}

var (
	directionalClassification = Classification{CategoryPunctual, GPULightDirectional, VolumeNone}
	pointClassification       = Classification{CategoryPunctual, GPULightPoint, VolumeSphere}
)

// TranslateLightType resolves the engine light kind into a pipeline light type.
// Point lights authored as area lights become area lights.
func TranslateLightType(kind LightKind, pointType PointLightHDType) LightType {
	switch kind {
	case LightKindSpot:
		return LightTypeSpot
	case LightKindDirectional:
		return LightTypeDirectional
	case LightKindPoint:
		if pointType == PointLightArea {
			return LightTypeArea
		}
		return LightTypePoint
	default:
		return LightTypeArea
	}
}

// EvaluateGPULightType maps a light type and its shape to category, GPU type and volume.
// Out of range shapes fall back to the first entry of the corresponding table.
func EvaluateGPULightType(lightType LightType, spotShape SpotShape, areaShape AreaShape) Classification {
	switch lightType {
	case LightTypeSpot:
		if spotShape >= SpotShapeCount {
			spotShape = SpotShapeCone
		}
		return spotClassifications[spotShape]
	case LightTypeDirectional:
		return directionalClassification
	case LightTypePoint:
		return pointClassification
	default:
		if areaShape >= AreaShapeCount {
			areaShape = AreaShapeRectangle
		}
		return areaClassifications[areaShape]
	}
}
