// Package gpu packs the sorted visible-light list into the storage buffer
// layout read by the lighting shaders and uploads it through WebGPU.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

// Buffer layout, little-endian:
//
//	struct LightHeader {      // 16 bytes
//	  count: u32;
//	  directional: u32;
//	  punctual: u32;
//	  area: u32;
//	}
//	struct Light {            // 48 bytes
//	  position: vec3<f32>;
//	  distance_fade: f32;
//	  gpu_type: u32;
//	  volume: u32;
//	  shadow_flags: u32;
//	  flags: u32;
//	  volumetric_fade: f32;
//	  distance: f32;
//	  source_id: u32;
//	  sort_key: u32;
//	}
const (
	HeaderSize = 16
	RecordSize = 48
)

// Light flags.
const (
	FlagBakedShadowMask uint32 = 1 << 0
	FlagArea            uint32 = 1 << 1
)

// Header mirrors LightHeader.
type Header struct {
	Count       uint32
	Directional uint32
	Punctual    uint32
	Area        uint32
}

// PackLights appends the header and one record per light to dst[:0] and
// returns the result. Lights removed by the debug filter are skipped.
func PackLights(dst []byte, lights []visible.ProcessedLight) ([]byte, Header) {
	var h Header
	for i := range lights {
		if !lights[i].Entity.Valid() {
			continue
		}
		h.Count++
		switch {
		case lights[i].LightType == core.LightTypeDirectional:
			h.Directional++
		case lights[i].Category == core.CategoryArea:
			h.Area++
		default:
			h.Punctual++
		}
	}

	le := binary.LittleEndian
	dst = dst[:0]
	dst = le.AppendUint32(dst, h.Count)
	dst = le.AppendUint32(dst, h.Directional)
	dst = le.AppendUint32(dst, h.Punctual)
	dst = le.AppendUint32(dst, h.Area)

	for i := range lights {
		l := &lights[i]
		if !l.Entity.Valid() {
			continue
		}
		var flags uint32
		if l.IsBakedShadowMask {
			flags |= FlagBakedShadowMask
		}
		if l.Category == core.CategoryArea {
			flags |= FlagArea
		}
		dst = appendFloat32(dst, l.Position.X())
		dst = appendFloat32(dst, l.Position.Y())
		dst = appendFloat32(dst, l.Position.Z())
		dst = appendFloat32(dst, l.DistanceFade)
		dst = le.AppendUint32(dst, uint32(l.GPUType))
		dst = le.AppendUint32(dst, uint32(l.Volume))
		dst = le.AppendUint32(dst, uint32(l.ShadowFlags))
		dst = le.AppendUint32(dst, flags)
		dst = appendFloat32(dst, l.VolumetricDistanceFade)
		dst = appendFloat32(dst, l.DistanceToCamera)
		dst = le.AppendUint32(dst, uint32(l.Entity.SourceID))
		dst = le.AppendUint32(dst, l.SortKey)
	}
	return dst, h
}

// ReadHeader decodes the header at the start of a packed buffer.
func ReadHeader(data []byte) (Header, bool) {
	if len(data) < HeaderSize {
		return Header{}, false
	}
	le := binary.LittleEndian
	return Header{
		Count:       le.Uint32(data[0:]),
		Directional: le.Uint32(data[4:]),
		Punctual:    le.Uint32(data[8:]),
		Area:        le.Uint32(data[12:]),
	}, true
}

func appendFloat32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}
