package kdtree

import (
	"sort"

	"github.com/pkg/errors"
)

// Ball returns the ids of every point strictly within radius of query, in
// ascending order. A point exactly at distance radius is excluded.
func (t *Tree[T]) Ball(query []T, radius T) ([]int, error) {
	if len(query) != t.dim {
		return nil, errors.Wrapf(ErrDimensionMismatch, "query has %d coordinates, tree has dim %d", len(query), t.dim)
	}
	if radius < 0 {
		return nil, errors.Wrapf(ErrInvalidRadius, "radius must be non-negative, got %v", radius)
	}

	r2 := radius * radius
	var hits []int

	var dump func(node int)
	dump = func(node int) {
		if t.shape.isLeaf(node) {
			start, length := t.leafStart[node], t.leafLen[node]
			hits = append(hits, t.idx[start:start+length]...)
			return
		}
		dump(2 * node)
		dump(2*node + 1)
	}

	var visit func(node int, rec HyperRect[T])
	visit = func(node int, rec HyperRect[T]) {
		lo, hi := rec.minMaxSqDist(query)
		if lo > r2 {
			return
		}
		if hi < r2 {
			dump(node)
			return
		}
		if t.shape.isLeaf(node) {
			start, length := t.leafStart[node], t.leafLen[node]
			for i := 0; i < length; i++ {
				id := t.idx[start+i]
				if sqDist(pointAt(t.points, t.dim, id), query) < r2 {
					hits = append(hits, id)
				}
			}
			return
		}
		left, right := t.childRects(node, rec)
		visit(2*node, left)
		visit(2*node+1, right)
	}

	visit(1, t.rectAt(1))
	sort.Ints(hits)
	return hits, nil
}

// childRects returns the bounding boxes of node's two children, either from
// the stored per-node rectangles or by splitting rec on the fly.
func (t *Tree[T]) childRects(node int, rec HyperRect[T]) (HyperRect[T], HyperRect[T]) {
	if t.storesRects {
		return t.rects[2*node], t.rects[2*node+1]
	}
	return rec.split(t.splitDim[node], t.splitValue[node])
}
