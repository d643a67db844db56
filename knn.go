package kdtree

import (
	"math"

	"github.com/pkg/errors"
)

// Knn returns the k points nearest to query in ascending order of distance,
// along with their (non-squared) distances. Ties are broken by insertion
// order: a new candidate is inserted after any existing entries at the same
// squared distance, not before them.
func (t *Tree[T]) Knn(query []T, k int) ([]int, []T, error) {
	if len(query) != t.dim {
		return nil, nil, errors.Wrapf(ErrDimensionMismatch, "query has %d coordinates, tree has dim %d", len(query), t.dim)
	}
	if k < 1 || k > t.n {
		return nil, nil, errors.Wrapf(ErrInvalidK, "k=%d out of range [1, %d]", k, t.n)
	}

	bestIdx := make([]int, k)
	bestSqDist := make([]T, k)
	filled := 0

	insert := func(id int, d T) {
		pos := filled
		if pos == k {
			if d >= bestSqDist[k-1] {
				return
			}
			pos = k - 1
		} else {
			filled++
		}
		for pos > 0 && bestSqDist[pos-1] > d {
			bestSqDist[pos] = bestSqDist[pos-1]
			bestIdx[pos] = bestIdx[pos-1]
			pos--
		}
		bestSqDist[pos] = d
		bestIdx[pos] = id
	}

	var visit func(node int)
	visit = func(node int) {
		if t.shape.isLeaf(node) {
			start, length := t.leafStart[node], t.leafLen[node]
			for i := 0; i < length; i++ {
				id := t.idx[start+i]
				insert(id, sqDist(pointAt(t.points, t.dim, id), query))
			}
			return
		}

		axis := t.splitDim[node]
		diff := query[axis] - t.splitValue[node]
		near, far := 2*node, 2*node+1
		if diff > 0 {
			near, far = far, near
		}
		visit(near)

		delta := diff * diff
		if filled < k || delta < bestSqDist[k-1] {
			visit(far)
		}
	}
	visit(1)

	dists := make([]T, k)
	for i, d := range bestSqDist {
		dists[i] = sqrtT(d)
	}
	return bestIdx, dists, nil
}

func sqrtT[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}
