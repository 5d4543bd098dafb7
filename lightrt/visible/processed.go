package visible

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/lightsort"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

// ProcessedLight is one light that survived classification.
// Entity is InvalidRecord when the debug filter removed the light.
type ProcessedLight struct {
	VisibleIndex           int
	Entity                 registry.Record
	LightType              core.LightType
	Category               core.LightCategory
	GPUType                core.GPULightType
	Volume                 core.VolumeType
	SpotShape              core.SpotShape
	AreaShape              core.AreaShape
	Position               mgl32.Vec3
	DistanceToCamera       float32
	DistanceFade           float32
	VolumetricDistanceFade float32
	IsBakedShadowMask      bool
	ShadowFlags            core.ShadowMapFlags
	SortKey                uint32
}

type LightCounts struct {
	Directional int
	Punctual    int
	Area        int
}

func (c LightCounts) Total() int { return c.Directional + c.Punctual + c.Area }

type RejectReason uint8

const (
	RejectUnresolved RejectReason = iota
	RejectScreenArea
	RejectRayTracing
	RejectAreaLightsDisabled
	RejectNoContribution
	RejectCategoryHidden
	RejectBudget
	rejectReasonCount
)

func (r RejectReason) String() string {
	switch r {
	case RejectUnresolved:
		return "unresolved"
	case RejectScreenArea:
		return "screen_area"
	case RejectRayTracing:
		return "ray_tracing"
	case RejectAreaLightsDisabled:
		return "area_disabled"
	case RejectNoContribution:
		return "no_contribution"
	case RejectCategoryHidden:
		return "hidden"
	case RejectBudget:
		return "budget"
	}
	return fmt.Sprintf("RejectReason(%d)", uint8(r))
}

// Stats summarizes the last PrepareLightsForGPU call.
type Stats struct {
	Visible        int
	Truncated      int
	Resolved       int
	AOVFiltered    int
	Processed      int
	Rejected       [rejectReasonCount]int
	ShadowRequests int
	ShadowReserved int
	ShadowDenied   int
	DebugFiltered  int
	SortStrategy   lightsort.Strategy
	Elapsed        time.Duration
}

func (s Stats) RejectedBy(reason RejectReason) int { return s.Rejected[reason] }

func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "visible=%d resolved=%d processed=%d", s.Visible, s.Resolved, s.Processed)
	for r := RejectReason(0); r < rejectReasonCount; r++ {
		if s.Rejected[r] > 0 {
			fmt.Fprintf(&sb, " rejected.%s=%d", r, s.Rejected[r])
		}
	}
	if s.Truncated > 0 {
		fmt.Fprintf(&sb, " truncated=%d", s.Truncated)
	}
	if s.AOVFiltered > 0 {
		fmt.Fprintf(&sb, " aov_filtered=%d", s.AOVFiltered)
	}
	fmt.Fprintf(&sb, " shadows=%d/%d", s.ShadowReserved, s.ShadowRequests)
	if s.DebugFiltered > 0 {
		fmt.Fprintf(&sb, " debug_filtered=%d", s.DebugFiltered)
	}
	fmt.Fprintf(&sb, " sort=%s elapsed=%s", s.SortStrategy, s.Elapsed)
	return sb.String()
}
