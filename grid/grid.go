// Package grid generates tensor-product grids of orthogonal polynomial nodes on [-1, 1]^n.
package grid

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Options are the optional parameters of New.
type Options struct {
	// Strict refuses the float64 fallback of the Legendre nodes
	// beyond MaxTabulatedLegendre nodes.
	Strict bool
}

// Grid is an immutable tensor-product grid. The points enumerate the
// per-dimension node indices in row-major order, the last dimension
// varying fastest.
type Grid[T any] struct {
	family     bignum.Basis
	prec       precision.Precision
	resolution []int
	nodes      [][]T
	points     [][]T
	index      [][]int
}

// Uniform returns a resolution vector of length dim with all entries equal to res.
func Uniform(dim, res int) (resolution []int) {
	resolution = make([]int, dim)
	for i := range resolution {
		resolution[i] = res
	}
	return
}

// New generates the grid whose d-th dimension carries resolution[d]+1 nodes
// of the given family.
// Identical resolutions share the same node set.
func New[T any](ar precision.Arithmetic[T], family bignum.Basis, resolution []int, opts Options) (g *Grid[T], err error) {

	if len(resolution) == 0 {
		return nil, polyerr.Configurationf("grid dimension must be at least 1")
	}

	if !family.IsOrthogonal() {
		return nil, polyerr.BasisUnsupportedf("no node generator for basis %s", family)
	}

	shape := make([]int, len(resolution))
	nodes := make([][]T, len(resolution))
	memo := map[int][]T{}

	for d, res := range resolution {

		if res < 0 {
			return nil, polyerr.Configurationf("negative resolution %d in dimension %d", res, d)
		}

		if _, err = safecast.Conv[int32](res + 1); err != nil {
			return nil, polyerr.Configurationf("resolution %d in dimension %d: %s", res, d, err)
		}

		if nodes[d] = memo[res]; nodes[d] == nil {
			if nodes[d], err = Nodes(ar, family, res, opts); err != nil {
				return nil, fmt.Errorf("cannot New: %w", err)
			}
			memo[res] = nodes[d]
		}

		shape[d] = res + 1
	}

	samples, err := utils.Product(shape)
	if err != nil {
		return nil, polyerr.Configurationf("grid of shape %v: %s", shape, err)
	}

	g = &Grid[T]{
		family:     family,
		prec:       ar.Precision(),
		resolution: append([]int(nil), resolution...),
		nodes:      nodes,
		points:     make([][]T, samples),
		index:      make([][]int, samples),
	}

	for i := range g.points {
		idx := make([]int, len(shape))
		utils.Unravel(i, shape, idx)
		pt := make([]T, len(shape))
		for d := range pt {
			pt[d] = nodes[d][idx[d]]
		}
		g.points[i] = pt
		g.index[i] = idx
	}

	return
}

// Dim returns the number of dimensions of the grid.
func (g Grid[T]) Dim() int {
	return len(g.resolution)
}

// Len returns the number of points of the grid.
func (g Grid[T]) Len() int {
	return len(g.points)
}

// Family returns the basis family of the nodes.
func (g Grid[T]) Family() bignum.Basis {
	return g.family
}

// Precision returns the precision tag of the grid.
func (g Grid[T]) Precision() precision.Precision {
	return g.prec
}

// Resolution returns a copy of the per-dimension resolution.
func (g Grid[T]) Resolution() []int {
	return append([]int(nil), g.resolution...)
}

// Shape returns the number of nodes per dimension.
func (g Grid[T]) Shape() (shape []int) {
	shape = make([]int, len(g.nodes))
	for d := range shape {
		shape[d] = len(g.nodes[d])
	}
	return
}

// Nodes returns a copy of the node set of the d-th dimension.
func (g Grid[T]) Nodes(d int) []T {
	return append([]T(nil), g.nodes[d]...)
}

// Point returns a copy of the i-th point.
func (g Grid[T]) Point(i int) []T {
	return append([]T(nil), g.points[i]...)
}

// Points returns a copy of the samples x dimensions point matrix.
func (g Grid[T]) Points() [][]T {
	return utils.Clone2D(g.points)
}

// NodeIndex returns the index, in Nodes(d), of the d-th coordinate of the i-th point.
func (g Grid[T]) NodeIndex(i, d int) int {
	return g.index[i][d]
}

// Float64Points returns the points rounded to float64.
func (g Grid[T]) Float64Points(ar precision.Arithmetic[T]) (points [][]float64) {
	points = make([][]float64, len(g.points))
	for i := range points {
		points[i] = make([]float64, len(g.points[i]))
		for d := range points[i] {
			points[i][d] = ar.Float64(g.points[i][d])
		}
	}
	return
}
