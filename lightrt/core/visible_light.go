package core

// ScreenRect is a screen-space bounding rectangle in viewport-normalized units.
type ScreenRect struct {
	X, Y          float32
	Width, Height float32
}

// PixelArea returns the covered area in pixels for a viewport of pixelCount pixels.
func (r ScreenRect) PixelArea(pixelCount int) float32 {
	return r.Width * r.Height * float32(pixelCount)
}

// BakingOutput describes how a light was baked.
type BakingOutput struct {
	BakeType             BakeType
	MixedMode            MixedLightingMode
	OcclusionMaskChannel int // -1 when no channel was assigned
}

// RealtimeBaking is the baking output of a light that was never baked.
func RealtimeBaking() BakingOutput {
	return BakingOutput{BakeType: BakeRealtime, OcclusionMaskChannel: -1}
}

// VisibleLight is one entry of the culled visible-light list for a frame.
type VisibleLight struct {
	SourceID   int
	Kind       LightKind
	ScreenRect ScreenRect
	Shadows    ShadowMode
	Baking     BakingOutput
}
