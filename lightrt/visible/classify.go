package visible

import (
	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

// classifyContext is the read-only input shared by every classification task of a frame.
type classifyContext struct {
	data       registry.LightData
	camera     core.Camera
	pixelCount int
	loop       config.LightLoopSettings
	features   config.FrameSettings
	debug      config.DebugSettings
}

func newClassifyContext(frame Frame, data registry.LightData) classifyContext {
	return classifyContext{
		data:       data,
		camera:     frame.Camera,
		pixelCount: frame.Camera.PixelCount(),
		loop:       frame.LightLoop,
		features:   frame.Features,
		debug:      frame.Debug,
	}
}

// classify processes visible light i. It only writes the output slot it claims
// and the processor's atomic counters, so tasks may run in any order.
func (p *Processor) classify(ctx *classifyContext, i int) {
	rec := p.visibleEntities[i]
	if !rec.Valid() {
		p.reject(RejectUnresolved)
		return
	}
	vl := p.visibleLights[i]
	if vl.ScreenRect.PixelArea(ctx.pixelCount) < minScreenArea {
		p.reject(RejectScreenArea)
		return
	}

	d := ctx.data
	slot := rec.DataIndex
	if ctx.features.RayTracing && !d.IncludeForRayTracing[slot] {
		p.reject(RejectRayTracing)
		return
	}

	lightType := core.TranslateLightType(vl.Kind, d.PointTypes[slot])
	spotShape, areaShape := d.SpotShapes[slot], d.AreaShapes[slot]
	c := core.EvaluateGPULightType(lightType, spotShape, areaShape)
	if !ctx.loop.AreaLightsEnabled && (c.GPUType == core.GPULightRectangle || c.GPUType == core.GPULightTube) {
		p.reject(RejectAreaLightsDisabled)
		return
	}

	pos := d.Positions[slot]
	distance := ctx.camera.DistanceTo(pos)
	fade, volumetricFade := float32(1), float32(1)
	if lightType != core.LightTypeDirectional {
		fade = core.LinearDistanceFade(distance, d.FadeDistances[slot])
		volumetricFade = core.LinearDistanceFade(distance, d.VolumetricFadeDistances[slot])
	}

	contributes := (d.LightDimmers[slot] > 0 && (d.AffectDiffuse[slot] || d.AffectSpecular[slot])) ||
		d.VolumetricDimmers[slot] > 0
	if !contributes || fade <= 0 {
		p.reject(RejectNoContribution)
		return
	}

	shadowFlags := EvaluateShadowState(ShadowInputs{
		Shadows:                   p.visibleShadows[i],
		LightType:                 lightType,
		GPUType:                   c.GPUType,
		Volume:                    c.Volume,
		AreaShape:                 areaShape,
		UseScreenSpaceShadows:     d.UseScreenSpaceShadows[slot],
		UseRayTracedShadows:       d.UseRayTracedShadows[slot],
		ShadowDimmer:              d.ShadowDimmers[slot],
		ShadowFadeDistance:        d.ShadowFadeDistances[slot],
		DistanceToCamera:          distance,
		ShadowMapsEnabled:         ctx.features.ShadowMaps,
		ScreenSpaceShadowsEnabled: ctx.features.ScreenSpaceShadows,
		RayTracingEnabled:         ctx.features.RayTracing,
	})

	if reason, ok := p.consumeBudget(ctx, lightType, c.Category); !ok {
		p.reject(reason)
		return
	}

	out := p.counts[slotProcessed].Add(1) - 1
	p.processed[out] = ProcessedLight{
		VisibleIndex:           i,
		Entity:                 rec,
		LightType:              lightType,
		Category:               c.Category,
		GPUType:                c.GPUType,
		Volume:                 c.Volume,
		SpotShape:              spotShape,
		AreaShape:              areaShape,
		Position:               pos,
		DistanceToCamera:       distance,
		DistanceFade:           fade,
		VolumetricDistanceFade: volumetricFade,
		IsBakedShadowMask:      core.IsBakedShadowMask(p.visibleBaking[i]),
		ShadowFlags:            shadowFlags,
		SortKey:                core.PackSortKey(c, i),
	}
}

// consumeBudget claims one slot of the light's budget. The counter is
// incremented first and decremented back on rejection, so concurrent tasks
// never keep more lights than the budget allows.
func (p *Processor) consumeBudget(ctx *classifyContext, lightType core.LightType, category core.LightCategory) (RejectReason, bool) {
	var (
		slot  countSlot
		show  bool
		limit int
	)
	switch {
	case lightType == core.LightTypeDirectional:
		slot, show, limit = slotDirectional, ctx.debug.ShowDirectionalLights, ctx.loop.MaxDirectionalLightsOnScreen
	case category == core.CategoryPunctual:
		slot, show, limit = slotPunctual, ctx.debug.ShowPunctualLights, ctx.loop.MaxPunctualLightsOnScreen
	default:
		slot, show, limit = slotArea, ctx.debug.ShowAreaLights, ctx.loop.MaxAreaLightsOnScreen
	}

	n := p.counts[slot].Add(1) - 1
	if !show || int(n) >= limit {
		p.counts[slot].Add(-1)
		if !show {
			return RejectCategoryHidden, false
		}
		return RejectBudget, false
	}
	return 0, true
}

func (p *Processor) reject(reason RejectReason) {
	p.rejections[reason].Add(1)
}
