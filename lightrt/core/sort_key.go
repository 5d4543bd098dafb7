package core

// Sort key layout, most significant first:
//
//	bits 27..31  light category
//	bits 22..26  GPU light type
//	bits 17..21  volume type
//	bits  0..16  visible light index
const (
	sortKeyCategoryShift = 27
	sortKeyGPUTypeShift  = 22
	sortKeyVolumeShift   = 17

	sortKeyFieldMask = 0x1F
	sortKeyIndexMask = 1<<sortKeyVolumeShift - 1

	// MaxVisibleLights is the number of visible lights addressable by the sort key.
	MaxVisibleLights = sortKeyIndexMask + 1
)

func PackSortKey(c Classification, visibleIndex int) uint32 {
	return uint32(c.Category)<<sortKeyCategoryShift |
		uint32(c.GPUType)<<sortKeyGPUTypeShift |
		uint32(c.Volume)<<sortKeyVolumeShift |
		uint32(visibleIndex)&sortKeyIndexMask
}

func UnpackSortKey(key uint32) (Classification, int) {
	c := Classification{
		Category: LightCategory(key >> sortKeyCategoryShift & sortKeyFieldMask),
		GPUType:  GPULightType(key >> sortKeyGPUTypeShift & sortKeyFieldMask),
		Volume:   VolumeType(key >> sortKeyVolumeShift & sortKeyFieldMask),
	}
	return c, int(key & sortKeyIndexMask)
}
