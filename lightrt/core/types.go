package core

import "fmt"

// LightKind is the light type reported by the engine for a visible light.
type LightKind uint8

const (
	LightKindSpot LightKind = iota
	LightKindDirectional
	LightKindPoint
	LightKindRectangle
	LightKindDisc
)

func (k LightKind) String() string {
	switch k {
	case LightKindSpot:
		return "Spot"
	case LightKindDirectional:
		return "Directional"
	case LightKindPoint:
		return "Point"
	case LightKindRectangle:
		return "Rectangle"
	case LightKindDisc:
		return "Disc"
	}
	return fmt.Sprintf("LightKind(%d)", uint8(k))
}

// PointLightHDType lets a point light be authored as an area light.
type PointLightHDType uint8

const (
	PointLightPunctual PointLightHDType = iota
	PointLightArea
)

// LightType is the resolved pipeline light type.
type LightType uint8

const (
	LightTypeSpot LightType = iota
	LightTypeDirectional
	LightTypePoint
	LightTypeArea
)

func (t LightType) String() string {
	switch t {
	case LightTypeSpot:
		return "Spot"
	case LightTypeDirectional:
		return "Directional"
	case LightTypePoint:
		return "Point"
	case LightTypeArea:
		return "Area"
	}
	return fmt.Sprintf("LightType(%d)", uint8(t))
}

type SpotShape uint8

const (
	SpotShapeCone SpotShape = iota
	SpotShapePyramid
	SpotShapeBox
	SpotShapeCount
)

func (s SpotShape) String() string {
	switch s {
	case SpotShapeCone:
		return "Cone"
	case SpotShapePyramid:
		return "Pyramid"
	case SpotShapeBox:
		return "Box"
	}
	return fmt.Sprintf("SpotShape(%d)", uint8(s))
}

type AreaShape uint8

const (
	AreaShapeRectangle AreaShape = iota
	AreaShapeTube
	AreaShapeDisc
	AreaShapeCount
)

func (s AreaShape) String() string {
	switch s {
	case AreaShapeRectangle:
		return "Rectangle"
	case AreaShapeTube:
		return "Tube"
	case AreaShapeDisc:
		return "Disc"
	}
	return fmt.Sprintf("AreaShape(%d)", uint8(s))
}

// LightCategory groups lights for budgeting and GPU dispatch.
// Values occupy the top bits of the sort key, so their order is the dispatch order.
type LightCategory uint32

const (
	CategoryPunctual LightCategory = iota
	CategoryArea
	CategoryCount
)

func (c LightCategory) String() string {
	switch c {
	case CategoryPunctual:
		return "Punctual"
	case CategoryArea:
		return "Area"
	}
	return fmt.Sprintf("LightCategory(%d)", uint32(c))
}

// GPULightType matches the light type enumeration consumed by the shaders.
type GPULightType uint32

const (
	GPULightDirectional GPULightType = iota
	GPULightPoint
	GPULightSpot
	GPULightProjectorPyramid
	GPULightProjectorBox
	GPULightTube
	GPULightRectangle
	GPULightDisc
	GPULightTypeCount
)

func (t GPULightType) String() string {
	switch t {
	case GPULightDirectional:
		return "Directional"
	case GPULightPoint:
		return "Point"
	case GPULightSpot:
		return "Spot"
	case GPULightProjectorPyramid:
		return "ProjectorPyramid"
	case GPULightProjectorBox:
		return "ProjectorBox"
	case GPULightTube:
		return "Tube"
	case GPULightRectangle:
		return "Rectangle"
	case GPULightDisc:
		return "Disc"
	}
	return fmt.Sprintf("GPULightType(%d)", uint32(t))
}

// VolumeType is the bounding volume used by GPU light culling.
type VolumeType uint32

const (
	VolumeCone VolumeType = iota
	VolumeSphere
	VolumeBox
	// VolumeNone is used by directional lights, which are not volume culled.
	VolumeNone
)

func (v VolumeType) String() string {
	switch v {
	case VolumeCone:
		return "Cone"
	case VolumeSphere:
		return "Sphere"
	case VolumeBox:
		return "Box"
	case VolumeNone:
		return "None"
	}
	return fmt.Sprintf("VolumeType(%d)", uint32(v))
}

// ShadowMode is the engine-side shadow casting toggle of a light.
type ShadowMode uint8

const (
	ShadowsNone ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

type ShadowMapFlags uint8

const (
	ShadowMapNone               ShadowMapFlags = 0
	WillRenderShadowMap         ShadowMapFlags = 1 << 0
	WillRenderScreenSpaceShadow ShadowMapFlags = 1 << 1
	WillRenderRayTracedShadow   ShadowMapFlags = 1 << 2
)

func (f ShadowMapFlags) Has(flag ShadowMapFlags) bool {
	return f&flag == flag
}

type BakeType uint8

const (
	BakeRealtime BakeType = iota
	BakeBaked
	BakeMixed
)

type MixedLightingMode uint8

const (
	MixedIndirectOnly MixedLightingMode = iota
	MixedShadowmask
	MixedSubtractive
)
