package core

// LinearDistanceFade returns 1 at the viewer and falls linearly to 0 at fadeDistance.
// A non-positive fade distance always fades to 0.
func LinearDistanceFade(distance, fadeDistance float32) float32 {
	if fadeDistance <= 0 {
		return 0
	}
	return clamp01(1 - distance/fadeDistance)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsBakedShadowMask reports whether the light's shadows come from a baked shadowmask.
// A mixed shadowmask light without an occlusion channel has no mask to sample.
func IsBakedShadowMask(b BakingOutput) bool {
	return b.BakeType == BakeMixed &&
		b.MixedMode == MixedShadowmask &&
		b.OcclusionMaskChannel != -1
}
