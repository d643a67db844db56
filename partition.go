package kdtree

// partition rearranges idx[lo..hi] in place so that, comparing coordinate j
// of the points it addresses, data[j, idx[k]] is the value that a full sort
// would place at rank k: every idx[m] with m < k addresses a point with
// coordinate <= it, every idx[m] with m > k addresses a point with
// coordinate >= it. Hoare-style quickselect with a mid-range pivot; the
// scans use strict < / > so duplicate coordinates never stall the loop.
func partition[T Float](idx []int, k, lo, hi, dim, j int, data []T) {
	coord := func(i int) T { return data[idx[i]*dim+j] }

	for lo < hi {
		pivot := coord((lo + hi) / 2)
		i, h := lo, hi
		for i <= h {
			for coord(i) < pivot {
				i++
			}
			for coord(h) > pivot {
				h--
			}
			if i <= h {
				idx[i], idx[h] = idx[h], idx[i]
				i++
				h--
			}
		}
		switch {
		case k <= h:
			hi = h
		case k >= i:
			lo = i
		default:
			return
		}
	}
}
