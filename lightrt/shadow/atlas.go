// Package shadow is a reference shadow-atlas manager. It hands out texel
// budget to shadow-casting lights in request order and refuses a request once
// the atlas or the request cap is exhausted.
package shadow

import (
	"fmt"

	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

// minTileResolution is the smallest tile edge handed out after distance scaling.
const minTileResolution = 64

const cubeFaces = 6

// Reservation is one granted request.
type Reservation struct {
	VisibleIndex int
	SourceID     int
	GPUType      core.GPULightType
	Flags        core.ShadowMapFlags
	Faces        int
	Resolution   int
}

func (r Reservation) Texels() int64 {
	return int64(r.Faces) * int64(r.Resolution) * int64(r.Resolution)
}

// Atlas implements visible.ShadowManager. Call Reset once per frame before
// the processor runs.
type Atlas struct {
	settings     config.ShadowSettings
	logger       core.Logger
	capacity     int64
	used         int64
	reservations []Reservation
	denied       int
}

var _ visible.ShadowManager = (*Atlas)(nil)

func NewAtlas(settings config.ShadowSettings, logger core.Logger) *Atlas {
	size := int64(settings.AtlasSize)
	return &Atlas{
		settings: settings,
		logger:   core.OrNop(logger),
		capacity: size * size,
	}
}

func (a *Atlas) Reset() {
	a.used = 0
	a.denied = 0
	a.reservations = a.reservations[:0]
}

func (a *Atlas) TryReserve(req visible.ShadowRequest) bool {
	if len(a.reservations) >= a.settings.MaxShadowRequests {
		a.denied++
		return false
	}
	r := Reservation{
		VisibleIndex: req.VisibleIndex,
		SourceID:     req.Entity.SourceID,
		GPUType:      req.GPUType,
		Flags:        req.Flags,
		Faces:        a.faces(req.GPUType),
		Resolution:   a.resolution(req),
	}
	if a.used+r.Texels() > a.capacity {
		a.denied++
		if a.logger.DebugEnabled() {
			a.logger.Debugf("shadow atlas full: %s source %d needs %d texels, %d free",
				r.GPUType, r.SourceID, r.Texels(), a.capacity-a.used)
		}
		return false
	}
	a.used += r.Texels()
	a.reservations = append(a.reservations, r)
	return true
}

func (a *Atlas) faces(t core.GPULightType) int {
	switch t {
	case core.GPULightDirectional:
		return a.settings.DirectionalCascades
	case core.GPULightPoint:
		return cubeFaces
	default:
		return 1
	}
}

// resolution halves the base tile edge once the light is past half of its
// shadow fade distance. Directional cascades are never scaled.
func (a *Atlas) resolution(req visible.ShadowRequest) int {
	switch req.GPUType {
	case core.GPULightDirectional:
		return a.settings.CascadeResolution
	case core.GPULightRectangle:
		return scaled(a.settings.AreaResolution, req)
	default:
		return scaled(a.settings.PunctualResolution, req)
	}
}

func scaled(base int, req visible.ShadowRequest) int {
	if req.ShadowFadeDistance > 0 && req.DistanceToCamera > req.ShadowFadeDistance/2 {
		base /= 2
	}
	return max(base, minTileResolution)
}

func (a *Atlas) Reservations() []Reservation { return a.reservations }

// Used is the number of texels reserved this frame.
func (a *Atlas) Used() int64 { return a.used }

func (a *Atlas) Capacity() int64 { return a.capacity }

func (a *Atlas) Denied() int { return a.denied }

// Occupancy is the reserved fraction of the atlas.
func (a *Atlas) Occupancy() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.used) / float64(a.capacity)
}

func (a *Atlas) String() string {
	return fmt.Sprintf("ShadowAtlas(%d reserved, %d denied, %.1f%% used)",
		len(a.reservations), a.denied, 100*a.Occupancy())
}
