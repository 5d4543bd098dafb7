package registry

import "github.com/gekko3d/lightloop/lightrt/core"

// LightParams holds the per-light attributes stored by the registry.
type LightParams struct {
	PointType              core.PointLightHDType
	SpotShape              core.SpotShape
	AreaShape              core.AreaShape
	FadeDistance           float32
	VolumetricFadeDistance float32
	IncludeForRayTracing   bool
	UseScreenSpaceShadows  bool
	UseRayTracedShadows    bool
	LightDimmer            float32
	VolumetricDimmer       float32
	ShadowDimmer           float32
	ShadowFadeDistance     float32
	AffectDiffuse          bool
	AffectSpecular         bool
	// AdditionalData is handed to the shadow manager when the light reserves shadow space.
	AdditionalData any
	// AOVObject is tested by the AOV filter. Nil means the light is never filtered.
	AOVObject any
}

const (
	DefaultFadeDistance       = 10000
	DefaultShadowFadeDistance = 10000
)

func DefaultLightParams() LightParams {
	return LightParams{
		PointType:              core.PointLightPunctual,
		SpotShape:              core.SpotShapeCone,
		AreaShape:              core.AreaShapeRectangle,
		FadeDistance:           DefaultFadeDistance,
		VolumetricFadeDistance: DefaultFadeDistance,
		IncludeForRayTracing:   true,
		LightDimmer:            1,
		VolumetricDimmer:       1,
		ShadowDimmer:           1,
		ShadowFadeDistance:     DefaultShadowFadeDistance,
		AffectDiffuse:          true,
		AffectSpecular:         true,
	}
}

// LightOption configures the initial attributes of a new entity.
type LightOption func(*LightParams)

// WithParams replaces every attribute with p.
func WithParams(p LightParams) LightOption {
	return func(lp *LightParams) { *lp = p }
}

func WithPointType(t core.PointLightHDType) LightOption {
	return func(lp *LightParams) { lp.PointType = t }
}

func WithSpotShape(s core.SpotShape) LightOption {
	return func(lp *LightParams) { lp.SpotShape = s }
}

func WithAreaShape(s core.AreaShape) LightOption {
	return func(lp *LightParams) { lp.AreaShape = s }
}

// WithFadeDistances sets the standard and volumetric fade distances.
func WithFadeDistances(fade, volumetric float32) LightOption {
	return func(lp *LightParams) {
		lp.FadeDistance = fade
		lp.VolumetricFadeDistance = volumetric
	}
}

func WithRayTracing(include bool) LightOption {
	return func(lp *LightParams) { lp.IncludeForRayTracing = include }
}

// WithShadowToggles sets the screen-space and ray-traced shadow toggles.
func WithShadowToggles(screenSpace, rayTraced bool) LightOption {
	return func(lp *LightParams) {
		lp.UseScreenSpaceShadows = screenSpace
		lp.UseRayTracedShadows = rayTraced
	}
}

// WithDimmers sets the light, volumetric and shadow dimmers.
func WithDimmers(light, volumetric, shadow float32) LightOption {
	return func(lp *LightParams) {
		lp.LightDimmer = light
		lp.VolumetricDimmer = volumetric
		lp.ShadowDimmer = shadow
	}
}

func WithShadowFadeDistance(d float32) LightOption {
	return func(lp *LightParams) { lp.ShadowFadeDistance = d }
}

func WithAffect(diffuse, specular bool) LightOption {
	return func(lp *LightParams) {
		lp.AffectDiffuse = diffuse
		lp.AffectSpecular = specular
	}
}

func WithAdditionalData(data any) LightOption {
	return func(lp *LightParams) { lp.AdditionalData = data }
}

func WithAOVObject(obj any) LightOption {
	return func(lp *LightParams) { lp.AOVObject = obj }
}
