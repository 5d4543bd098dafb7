package registry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightloop/lightrt/core"
)

// lightColumns is the structure-of-arrays storage. Every column always has the
// same length, which is the registry capacity.
type lightColumns struct {
	positions               []mgl32.Vec3
	pointTypes              []core.PointLightHDType
	spotShapes              []core.SpotShape
	areaShapes              []core.AreaShape
	fadeDistances           []float32
	volumetricFadeDistances []float32
	includeForRayTracing    []bool
	useScreenSpaceShadows   []bool
	useRayTracedShadows     []bool
	lightDimmers            []float32
	volumetricDimmers       []float32
	shadowDimmers           []float32
	shadowFadeDistances     []float32
	affectDiffuse           []bool
	affectSpecular          []bool
	owners                  []Handle
	transforms              []core.TransformSource
	additionalData          []any
	aovObjects              []any
}

func resized[T any](s []T, n int) []T {
	out := make([]T, n)
	copy(out, s)
	return out
}

func (c *lightColumns) resize(n int) {
	c.positions = resized(c.positions, n)
	c.pointTypes = resized(c.pointTypes, n)
	c.spotShapes = resized(c.spotShapes, n)
	c.areaShapes = resized(c.areaShapes, n)
	c.fadeDistances = resized(c.fadeDistances, n)
	c.volumetricFadeDistances = resized(c.volumetricFadeDistances, n)
	c.includeForRayTracing = resized(c.includeForRayTracing, n)
	c.useScreenSpaceShadows = resized(c.useScreenSpaceShadows, n)
	c.useRayTracedShadows = resized(c.useRayTracedShadows, n)
	c.lightDimmers = resized(c.lightDimmers, n)
	c.volumetricDimmers = resized(c.volumetricDimmers, n)
	c.shadowDimmers = resized(c.shadowDimmers, n)
	c.shadowFadeDistances = resized(c.shadowFadeDistances, n)
	c.affectDiffuse = resized(c.affectDiffuse, n)
	c.affectSpecular = resized(c.affectSpecular, n)
	c.owners = resized(c.owners, n)
	c.transforms = resized(c.transforms, n)
	c.additionalData = resized(c.additionalData, n)
	c.aovObjects = resized(c.aovObjects, n)
}

func (c *lightColumns) lengths() []int {
	return []int{
		len(c.positions), len(c.pointTypes), len(c.spotShapes), len(c.areaShapes),
		len(c.fadeDistances), len(c.volumetricFadeDistances), len(c.includeForRayTracing),
		len(c.useScreenSpaceShadows), len(c.useRayTracedShadows), len(c.lightDimmers),
		len(c.volumetricDimmers), len(c.shadowDimmers), len(c.shadowFadeDistances),
		len(c.affectDiffuse), len(c.affectSpecular), len(c.owners), len(c.transforms),
		len(c.additionalData), len(c.aovObjects),
	}
}

func (c *lightColumns) write(i int, p LightParams, owner Handle, transform core.TransformSource) {
	if transform != nil {
		c.positions[i] = transform.WorldPosition()
	} else {
		c.positions[i] = mgl32.Vec3{}
	}
	c.pointTypes[i] = p.PointType
	c.spotShapes[i] = p.SpotShape
	c.areaShapes[i] = p.AreaShape
	c.fadeDistances[i] = p.FadeDistance
	c.volumetricFadeDistances[i] = p.VolumetricFadeDistance
	c.includeForRayTracing[i] = p.IncludeForRayTracing
	c.useScreenSpaceShadows[i] = p.UseScreenSpaceShadows
	c.useRayTracedShadows[i] = p.UseRayTracedShadows
	c.lightDimmers[i] = p.LightDimmer
	c.volumetricDimmers[i] = p.VolumetricDimmer
	c.shadowDimmers[i] = p.ShadowDimmer
	c.shadowFadeDistances[i] = p.ShadowFadeDistance
	c.affectDiffuse[i] = p.AffectDiffuse
	c.affectSpecular[i] = p.AffectSpecular
	c.owners[i] = owner
	c.transforms[i] = transform
	c.additionalData[i] = p.AdditionalData
	c.aovObjects[i] = p.AOVObject
}

func (c *lightColumns) params(i int) LightParams {
	return LightParams{
		PointType:              c.pointTypes[i],
		SpotShape:              c.spotShapes[i],
		AreaShape:              c.areaShapes[i],
		FadeDistance:           c.fadeDistances[i],
		VolumetricFadeDistance: c.volumetricFadeDistances[i],
		IncludeForRayTracing:   c.includeForRayTracing[i],
		UseScreenSpaceShadows:  c.useScreenSpaceShadows[i],
		UseRayTracedShadows:    c.useRayTracedShadows[i],
		LightDimmer:            c.lightDimmers[i],
		VolumetricDimmer:       c.volumetricDimmers[i],
		ShadowDimmer:           c.shadowDimmers[i],
		ShadowFadeDistance:     c.shadowFadeDistances[i],
		AffectDiffuse:          c.affectDiffuse[i],
		AffectSpecular:         c.affectSpecular[i],
		AdditionalData:         c.additionalData[i],
		AOVObject:              c.aovObjects[i],
	}
}

// move copies slot src into slot dst.
func (c *lightColumns) move(dst, src int) {
	c.write(dst, c.params(src), c.owners[src], nil)
	c.positions[dst] = c.positions[src]
	c.transforms[dst] = c.transforms[src]
}

// clear drops the references held by slot i.
func (c *lightColumns) clear(i int) {
	c.write(i, LightParams{}, InvalidHandle, nil)
}

// view returns the first n slots of every column.
func (c *lightColumns) view(n int) LightData {
	return LightData{
		Positions:               c.positions[:n],
		PointTypes:              c.pointTypes[:n],
		SpotShapes:              c.spotShapes[:n],
		AreaShapes:              c.areaShapes[:n],
		FadeDistances:           c.fadeDistances[:n],
		VolumetricFadeDistances: c.volumetricFadeDistances[:n],
		IncludeForRayTracing:    c.includeForRayTracing[:n],
		UseScreenSpaceShadows:   c.useScreenSpaceShadows[:n],
		UseRayTracedShadows:     c.useRayTracedShadows[:n],
		LightDimmers:            c.lightDimmers[:n],
		VolumetricDimmers:       c.volumetricDimmers[:n],
		ShadowDimmers:           c.shadowDimmers[:n],
		ShadowFadeDistances:     c.shadowFadeDistances[:n],
		AffectDiffuse:           c.affectDiffuse[:n],
		AffectSpecular:          c.affectSpecular[:n],
		Owners:                  c.owners[:n],
		AdditionalData:          c.additionalData[:n],
		AOVObjects:              c.aovObjects[:n],
	}
}

// LightData exposes the live slots of every column, indexed by Record.DataIndex.
// The slices alias registry storage and must be treated as read-only.
type LightData struct {
	Positions               []mgl32.Vec3
	PointTypes              []core.PointLightHDType
	SpotShapes              []core.SpotShape
	AreaShapes              []core.AreaShape
	FadeDistances           []float32
	VolumetricFadeDistances []float32
	IncludeForRayTracing    []bool
	UseScreenSpaceShadows   []bool
	UseRayTracedShadows     []bool
	LightDimmers            []float32
	VolumetricDimmers       []float32
	ShadowDimmers           []float32
	ShadowFadeDistances     []float32
	AffectDiffuse           []bool
	AffectSpecular          []bool
	Owners                  []Handle
	AdditionalData          []any
	AOVObjects              []any
}

// Len is the number of live slots.
func (d LightData) Len() int { return len(d.Positions) }
