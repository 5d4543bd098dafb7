package lightsort

func InsertionSort(keys []uint32, perm []int32) {
	for i := 1; i < len(keys); i++ {
		k, p := keys[i], perm[i]
		j := i - 1
		for j >= 0 && keys[j] > k {
			keys[j+1] = keys[j]
			perm[j+1] = perm[j]
			j--
		}
		keys[j+1] = k
		perm[j+1] = p
	}
}

// MergeSort is a bottom-up merge sort. tmpKeys and tmpPerm must hold at least len(keys) entries.
func MergeSort(keys []uint32, perm []int32, tmpKeys []uint32, tmpPerm []int32) {
	n := len(keys)
	srcK, srcP := keys, perm
	dstK, dstP := tmpKeys[:n], tmpPerm[:n]

	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(srcK, srcP, dstK, dstP, lo, mid, hi)
		}
		srcK, dstK = dstK, srcK
		srcP, dstP = dstP, srcP
	}

	if n > 1 && &srcK[0] != &keys[0] {
		copy(keys, srcK)
		copy(perm, srcP)
	}
}

func merge(srcK []uint32, srcP []int32, dstK []uint32, dstP []int32, lo, mid, hi int) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		if i < mid && (j >= hi || srcK[i] <= srcK[j]) {
			dstK[k], dstP[k] = srcK[i], srcP[i]
			i++
		} else {
			dstK[k], dstP[k] = srcK[j], srcP[j]
			j++
		}
	}
}

const (
	radixBits    = 8
	radixBuckets = 1 << radixBits
	radixPasses  = 32 / radixBits
)

// RadixSort is an LSD radix sort over 8-bit digits. Passes where every key
// shares the same digit are skipped. It returns the number of passes performed.
// tmpKeys and tmpPerm must hold at least len(keys) entries.
func RadixSort(keys []uint32, perm []int32, tmpKeys []uint32, tmpPerm []int32) int {
	n := len(keys)
	srcK, srcP := keys, perm
	dstK, dstP := tmpKeys[:n], tmpPerm[:n]

	var counts [radixBuckets]int
	passes := 0
	for pass := 0; pass < radixPasses; pass++ {
		shift := uint(pass * radixBits)

		counts = [radixBuckets]int{}
		for _, k := range srcK {
			counts[(k>>shift)&(radixBuckets-1)]++
		}
		if n == 0 || counts[(srcK[0]>>shift)&(radixBuckets-1)] == n {
			continue
		}

		offset := 0
		for b := range counts {
			c := counts[b]
			counts[b] = offset
			offset += c
		}
		for i, k := range srcK {
			b := (k >> shift) & (radixBuckets - 1)
			dstK[counts[b]] = k
			dstP[counts[b]] = srcP[i]
			counts[b]++
		}

		srcK, dstK = dstK, srcK
		srcP, dstP = dstP, srcP
		passes++
	}

	if passes%2 == 1 {
		copy(keys, srcK)
		copy(perm, srcP)
	}
	return passes
}
