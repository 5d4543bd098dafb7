package core

import (
	"fmt"
	"strings"
)

// DebugLightFilterMode selects which light types stay visible in debug views.
type DebugLightFilterMode uint32

const DebugFilterNone DebugLightFilterMode = 0

const (
	DebugFilterDirectional DebugLightFilterMode = 1 << iota
	DebugFilterSpotCone
	DebugFilterSpotPyramid
	DebugFilterSpotBox
	DebugFilterPoint
	DebugFilterAreaRectangle
	DebugFilterAreaTube
	DebugFilterAreaDisc

	DebugFilterPunctual = DebugFilterSpotCone | DebugFilterSpotPyramid | DebugFilterSpotBox | DebugFilterPoint
	DebugFilterArea     = DebugFilterAreaRectangle | DebugFilterAreaTube | DebugFilterAreaDisc
	DebugFilterAll      = DebugFilterDirectional | DebugFilterPunctual | DebugFilterArea
)

var debugFilterNames = map[string]DebugLightFilterMode{
	"directional":  DebugFilterDirectional,
	"spot_cone":    DebugFilterSpotCone,
	"spot_pyramid": DebugFilterSpotPyramid,
	"spot_box":     DebugFilterSpotBox,
	"point":        DebugFilterPoint,
	"rectangle":    DebugFilterAreaRectangle,
	"tube":         DebugFilterAreaTube,
	"disc":         DebugFilterAreaDisc,
	"punctual":     DebugFilterPunctual,
	"area":         DebugFilterArea,
	"all":          DebugFilterAll,
}

// ParseDebugLightFilter combines the named filters. An empty list yields DebugFilterNone.
func ParseDebugLightFilter(names []string) (DebugLightFilterMode, error) {
	mode := DebugFilterNone
	for _, name := range names {
		m, ok := debugFilterNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return DebugFilterNone, fmt.Errorf("unknown debug light filter %q", name)
		}
		mode |= m
	}
	return mode, nil
}

// IsEnabledFor reports whether lights of the given GPU type and spot shape pass the filter.
func (m DebugLightFilterMode) IsEnabledFor(gpuType GPULightType, spotShape SpotShape) bool {
	switch gpuType {
	case GPULightDirectional:
		return m&DebugFilterDirectional != 0
	case GPULightPoint:
		return m&DebugFilterPoint != 0
	case GPULightSpot:
		switch spotShape {
		case SpotShapePyramid:
			return m&DebugFilterSpotPyramid != 0
		case SpotShapeBox:
			return m&DebugFilterSpotBox != 0
		default:
			return m&DebugFilterSpotCone != 0
		}
	case GPULightProjectorPyramid:
		return m&DebugFilterSpotPyramid != 0
	case GPULightProjectorBox:
		return m&DebugFilterSpotBox != 0
	case GPULightRectangle:
		return m&DebugFilterAreaRectangle != 0
	case GPULightTube:
		return m&DebugFilterAreaTube != 0
	case GPULightDisc:
		return m&DebugFilterAreaDisc != 0
	}
	return false
}
