package kdtree

import "github.com/pkg/errors"

// Sentinel errors identifying the error kinds of the public API. Use
// errors.Is to test for a particular kind; the wrapped error carries the
// offending values.
var (
	// ErrEmptyInput is returned by Build when the point set has zero points.
	ErrEmptyInput = errors.New("kdtree: empty input")

	// ErrInvalidLeafSize is returned by Build when leafSize is not positive.
	ErrInvalidLeafSize = errors.New("kdtree: invalid leaf size")

	// ErrDimensionMismatch is returned when a query vector's length does not
	// match the tree's dimension, and by Build when dim is not positive or
	// the buffer length is not a multiple of dim.
	ErrDimensionMismatch = errors.New("kdtree: dimension mismatch")

	// ErrInvalidK is returned by Knn when k is not in [1, n].
	ErrInvalidK = errors.New("kdtree: invalid k")

	// ErrInvalidRadius is returned by Ball when radius is negative.
	ErrInvalidRadius = errors.New("kdtree: invalid radius")
)
