package registry

import (
	"fmt"

	"github.com/gekko3d/lightloop/lightrt/core"
)

func update[T any](r *Registry, h Handle, field string, column func() []T, v T) error {
	slot, err := r.slot(h)
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	column()[slot] = v
	return nil
}

func (r *Registry) UpdatePointType(h Handle, v core.PointLightHDType) error {
	return update(r, h, "point type", func() []core.PointLightHDType { return r.cols.pointTypes }, v)
}

func (r *Registry) UpdateSpotShape(h Handle, v core.SpotShape) error {
	return update(r, h, "spot shape", func() []core.SpotShape { return r.cols.spotShapes }, v)
}

func (r *Registry) UpdateAreaShape(h Handle, v core.AreaShape) error {
	return update(r, h, "area shape", func() []core.AreaShape { return r.cols.areaShapes }, v)
}

func (r *Registry) UpdateFadeDistance(h Handle, v float32) error {
	return update(r, h, "fade distance", func() []float32 { return r.cols.fadeDistances }, v)
}

func (r *Registry) UpdateVolumetricFadeDistance(h Handle, v float32) error {
	return update(r, h, "volumetric fade distance", func() []float32 { return r.cols.volumetricFadeDistances }, v)
}

func (r *Registry) UpdateIncludeForRayTracing(h Handle, v bool) error {
	return update(r, h, "include for ray tracing", func() []bool { return r.cols.includeForRayTracing }, v)
}

func (r *Registry) UpdateUseScreenSpaceShadows(h Handle, v bool) error {
	return update(r, h, "screen-space shadows", func() []bool { return r.cols.useScreenSpaceShadows }, v)
}

func (r *Registry) UpdateUseRayTracedShadows(h Handle, v bool) error {
	return update(r, h, "ray-traced shadows", func() []bool { return r.cols.useRayTracedShadows }, v)
}

func (r *Registry) UpdateLightDimmer(h Handle, v float32) error {
	return update(r, h, "light dimmer", func() []float32 { return r.cols.lightDimmers }, v)
}

func (r *Registry) UpdateVolumetricDimmer(h Handle, v float32) error {
	return update(r, h, "volumetric dimmer", func() []float32 { return r.cols.volumetricDimmers }, v)
}

func (r *Registry) UpdateShadowDimmer(h Handle, v float32) error {
	return update(r, h, "shadow dimmer", func() []float32 { return r.cols.shadowDimmers }, v)
}

func (r *Registry) UpdateShadowFadeDistance(h Handle, v float32) error {
	return update(r, h, "shadow fade distance", func() []float32 { return r.cols.shadowFadeDistances }, v)
}

func (r *Registry) UpdateAffectDiffuse(h Handle, v bool) error {
	return update(r, h, "affect diffuse", func() []bool { return r.cols.affectDiffuse }, v)
}

func (r *Registry) UpdateAffectSpecular(h Handle, v bool) error {
	return update(r, h, "affect specular", func() []bool { return r.cols.affectSpecular }, v)
}

func (r *Registry) UpdateAdditionalData(h Handle, v any) error {
	return update(r, h, "additional data", func() []any { return r.cols.additionalData }, v)
}

func (r *Registry) UpdateAOVObject(h Handle, v any) error {
	return update(r, h, "aov object", func() []any { return r.cols.aovObjects }, v)
}

// UpdateTransform replaces the transform the light's position is copied from.
// The position column is refreshed immediately.
func (r *Registry) UpdateTransform(h Handle, t core.TransformSource) error {
	r.completePendingJob()
	if err := update(r, h, "transform", func() []core.TransformSource { return r.cols.transforms }, t); err != nil {
		return err
	}
	if t != nil {
		r.cols.positions[r.records[h.index].DataIndex] = t.WorldPosition()
	}
	return nil
}
