package kdtree

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBallValidation(t *testing.T) {
	tree, err := Build([]float64{0, 0, 1, 1}, 2, 2)
	require.NoError(t, err)

	_, err = tree.Ball([]float64{0, 0, 0}, 1)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = tree.Ball([]float64{0, 0}, -1)
	require.ErrorIs(t, err, ErrInvalidRadius)
}

func bruteBall(points []float64, dim int, query []float64, radius float64) []int {
	n := len(points) / dim
	r2 := radius * radius
	var hits []int
	for i := 0; i < n; i++ {
		if sqDist(pointAt(points, dim, i), query) < r2 {
			hits = append(hits, i)
		}
	}
	return hits
}

func TestBallMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(33, 44))
	const dim = 2
	for _, n := range []int{5, 50, 400} {
		points := make([]float64, n*dim)
		for i := range points {
			points[i] = rng.Float64() * 10
		}
		for _, leafSize := range []int{1, 4, 16} {
			for _, storeRects := range []bool{true, false} {
				var opts []BuildOption[float64]
				if !storeRects {
					opts = append(opts, WithoutHyperRectangles[float64]())
				}
				tree, err := Build(points, dim, leafSize, opts...)
				require.NoError(t, err)

				for trial := 0; trial < 20; trial++ {
					query := []float64{rng.Float64() * 10, rng.Float64() * 10}
					radius := rng.Float64() * 5

					got, err := tree.Ball(query, radius)
					require.NoError(t, err)
					want := bruteBall(points, dim, query, radius)
					sort.Ints(want)

					require.Equal(t, want, got, "n=%d leafSize=%d rects=%v radius=%v", n, leafSize, storeRects, radius)
				}
			}
		}
	}
}

func TestBallOnGrid(t *testing.T) {
	const side = 5
	points := make([]float64, 0, side*side*2)
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			points = append(points, float64(x), float64(y))
		}
	}
	tree, err := Build(points, 2, 2)
	require.NoError(t, err)

	// Ball of radius 1.2 around (2,2) reaches past the 4 axis neighbors
	// (distance 1) but stops short of the diagonals (distance sqrt(2)).
	got, err := tree.Ball([]float64{2, 2}, 1.2)
	require.NoError(t, err)
	want := bruteBall(points, 2, []float64{2, 2}, 1.2)
	sort.Ints(want)
	require.Equal(t, want, got)
	require.Len(t, got, 5) // center + 4 neighbors
}

func TestBallRadiusZero(t *testing.T) {
	points := []float64{1, 1, 2, 2, 3, 3}
	tree, err := Build(points, 2, 2)
	require.NoError(t, err)

	got, err := tree.Ball([]float64{2, 2}, 0)
	require.NoError(t, err)
	require.Empty(t, got, "radius zero must exclude the coincident point, strict < not <=")
}
