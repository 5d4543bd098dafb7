package visible

import "github.com/gekko3d/lightloop/lightrt/core"

// ShadowInputs are the values that decide which shadows a light renders.
type ShadowInputs struct {
	Shadows               core.ShadowMode
	LightType             core.LightType
	GPUType               core.GPULightType
	Volume                core.VolumeType
	AreaShape             core.AreaShape
	UseScreenSpaceShadows bool
	UseRayTracedShadows   bool
	ShadowDimmer          float32
	ShadowFadeDistance    float32
	DistanceToCamera      float32

	ShadowMapsEnabled         bool
	ScreenSpaceShadowsEnabled bool
	RayTracingEnabled         bool
}

func EvaluateShadowState(in ShadowInputs) core.ShadowMapFlags {
	if in.Shadows == core.ShadowsNone || !in.ShadowMapsEnabled {
		return core.ShadowMapNone
	}
	if in.ShadowDimmer <= 0 {
		return core.ShadowMapNone
	}
	if in.LightType != core.LightTypeDirectional && in.DistanceToCamera >= in.ShadowFadeDistance {
		return core.ShadowMapNone
	}
	if in.LightType == core.LightTypeArea && in.AreaShape != core.AreaShapeRectangle {
		return core.ShadowMapNone
	}

	flags := core.WillRenderShadowMap
	if !in.ScreenSpaceShadowsEnabled {
		return flags
	}

	rayTraced := in.RayTracingEnabled && in.UseRayTracedShadows
	switch in.GPUType {
	case core.GPULightPoint, core.GPULightRectangle:
		if rayTraced {
			flags |= core.WillRenderScreenSpaceShadow | core.WillRenderRayTracedShadow
		}
	case core.GPULightSpot:
		if rayTraced && in.Volume == core.VolumeCone {
			flags |= core.WillRenderScreenSpaceShadow | core.WillRenderRayTracedShadow
		}
	case core.GPULightDirectional:
		if in.UseScreenSpaceShadows {
			flags |= core.WillRenderScreenSpaceShadow
			if rayTraced {
				flags |= core.WillRenderRayTracedShadow
			}
		}
	}
	return flags
}
