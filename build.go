// Package kdtree implements a static, balanced k-d tree over a fixed set of
// points, with k-nearest-neighbour and radius (ball) queries.
package kdtree

import "github.com/pkg/errors"

// Tree is a static, balanced k-d tree over a fixed set of points in R^dim.
// Nodes are not pointers: the tree is an implicit heap-indexed array where
// node i's children are 2i and 2i+1 (1-indexed; index 0 is unused). Leaves
// hold a contiguous run of the index permutation directly, so Build never
// allocates a single node struct.
type Tree[T Float] struct {
	dim      int
	leafSize int
	n        int

	points []T   // point-major, length n*dim; owned copy of the input
	idx    []int // permutation of point ids, length n

	shape treeShape

	splitDim   []int          // 1-indexed by node; meaningless on leaves
	splitValue []T            // 1-indexed by node; meaningless on leaves
	rects      []HyperRect[T] // 1-indexed by node; nil unless storesRects

	leafStart []int // 1-indexed by node; start offset into idx for leaves
	leafLen   []int // 1-indexed by node; run length into idx for leaves

	storesRects bool
}

type buildConfig struct {
	storeRects bool
}

// BuildOption configures Build.
type BuildOption[T Float] func(*buildConfig)

// WithoutHyperRectangles disables storage of a per-node axis-aligned
// bounding box. Ball still works without them: it reconstructs the box for
// a node by folding split(dim, value) down from the root as it descends,
// trading a little recursion-local work for the O(numNodes*dim) storage.
func WithoutHyperRectangles[T Float]() BuildOption[T] {
	return func(c *buildConfig) { c.storeRects = false }
}

// Build constructs a Tree over points, a flat point-major buffer of n*dim
// coordinates (point p's coordinates at points[p*dim:(p+1)*dim]). leafSize
// bounds how many points a leaf may hold before the tree stops splitting.
func Build[T Float](points []T, dim, leafSize int, opts ...BuildOption[T]) (*Tree[T], error) {
	if dim <= 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "dim must be positive, got %d", dim)
	}
	if len(points)%dim != 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "buffer length %d is not a multiple of dim %d", len(points), dim)
	}
	n := len(points) / dim
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if leafSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidLeafSize, "leaf size must be positive, got %d", leafSize)
	}

	cfg := buildConfig{storeRects: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	shape := newTreeShape(n, leafSize)
	numNodes := shape.numNodes()

	t := &Tree[T]{
		dim:         dim,
		leafSize:    leafSize,
		n:           n,
		points:      append([]T(nil), points...),
		idx:         make([]int, n),
		shape:       shape,
		splitDim:    make([]int, numNodes+1),
		splitValue:  make([]T, numNodes+1),
		leafStart:   make([]int, numNodes+1),
		leafLen:     make([]int, numNodes+1),
		storesRects: cfg.storeRects,
	}
	for i := range t.idx {
		t.idx[i] = i
	}
	if cfg.storeRects {
		t.rects = make([]HyperRect[T], numNodes+1)
	}

	mins, maxes := boundingBox(t.points, dim, t.idx)
	t.buildNode(1, 0, n-1, HyperRect[T]{Min: mins, Max: maxes})
	return t, nil
}

// buildNode recursively partitions idx[lo:hi+1] into the subtree rooted at
// node, following the split-rank formula of splitRank, and records each
// leaf's range in leafStart/leafLen at the point the leaf is reached.
func (t *Tree[T]) buildNode(node, lo, hi int, rec HyperRect[T]) {
	if t.storesRects {
		t.rects[node] = rec
	}

	m := hi - lo + 1
	if m <= t.leafSize {
		t.leafStart[node] = lo
		t.leafLen[node] = m
		return
	}

	axis := maxSpreadAxis(t.points, t.dim, t.idx[lo:hi+1])
	mid := splitRank(lo, hi, t.leafSize)
	partition(t.idx, mid, lo, hi, t.dim, axis, t.points)

	splitVal := t.points[t.idx[mid]*t.dim+axis]
	t.splitDim[node] = axis
	t.splitValue[node] = splitVal

	left, right := rec.split(axis, splitVal)
	t.buildNode(2*node, lo, mid, left)
	t.buildNode(2*node+1, mid+1, hi, right)
}

// maxSpreadAxis returns the dimension along which the points addressed by
// ids have the greatest coordinate range, the lowest-numbered dimension
// winning ties.
func maxSpreadAxis[T Float](data []T, dim int, ids []int) int {
	mins, maxes := boundingBox(data, dim, ids)
	best := 0
	bestSpread := maxes[0] - mins[0]
	for d := 1; d < dim; d++ {
		spread := maxes[d] - mins[d]
		if spread > bestSpread {
			bestSpread = spread
			best = d
		}
	}
	return best
}

// rectAt returns the bounding box of node, reconstructing it from the root
// down when the tree was built with WithoutHyperRectangles.
func (t *Tree[T]) rectAt(node int) HyperRect[T] {
	if t.storesRects {
		return t.rects[node]
	}
	var path []int
	for n := node; n > 1; n /= 2 {
		path = append(path, n)
	}
	mins, maxes := boundingBox(t.points, t.dim, t.idx)
	rec := HyperRect[T]{Min: mins, Max: maxes}
	for i := len(path) - 1; i >= 0; i-- {
		child := path[i]
		parent := child / 2
		left, right := rec.split(t.splitDim[parent], t.splitValue[parent])
		if child == 2*parent {
			rec = left
		} else {
			rec = right
		}
	}
	return rec
}

// Len reports the number of points the tree was built over.
func (t *Tree[T]) Len() int { return t.n }

// Dim reports the dimension of the space the tree indexes.
func (t *Tree[T]) Dim() int { return t.dim }

// LeafSize reports the leaf capacity the tree was built with.
func (t *Tree[T]) LeafSize() int { return t.leafSize }

// HighDimensional reports whether the tree's dimension is high enough
// (> 20) that nearest-neighbor pruning degrades toward brute force; kept as
// a diagnostic, not a behavior switch.
func (t *Tree[T]) HighDimensional() bool { return t.dim > 20 }
