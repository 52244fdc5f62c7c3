package basis

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/polyopt/polyopt/grid"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
)

// Vandermonde is the design matrix of a support set over a grid:
// entry (i, j) is the j-th multivariate basis polynomial at the i-th point.
type Vandermonde[T any] struct {
	values [][]T
}

// Rows returns the number of rows (grid points).
func (v Vandermonde[T]) Rows() int {
	return len(v.values)
}

// Cols returns the number of columns (multi-indices).
func (v Vandermonde[T]) Cols() int {
	if len(v.values) == 0 {
		return 0
	}
	return len(v.values[0])
}

// At returns the entry (i, j). The returned value is shared and must not be mutated.
func (v Vandermonde[T]) At(i, j int) T {
	return v.values[i][j]
}

// Matrix returns a copy of the rows of the matrix.
func (v Vandermonde[T]) Matrix() [][]T {
	return utils.Clone2D(v.values)
}

// Float64 returns the matrix rounded to float64, in row-major order.
func (v Vandermonde[T]) Float64(ar precision.Arithmetic[T]) (data []float64) {
	rows, cols := v.Rows(), v.Cols()
	data = make([]float64, rows*cols)
	for i := range v.values {
		for j := range v.values[i] {
			data[i*cols+j] = ar.Float64(v.values[i][j])
		}
	}
	return
}

// Build returns the Vandermonde matrix of the support set over the grid.
//
// The per-dimension tables are looked up in, or added to, the cache before
// the columns are filled concurrently by at most workers goroutines.
// A non-positive workers selects runtime.GOMAXPROCS(0).
// Entries are products taken in dimension order, so that repeated builds are
// bit-identical.
func Build[T any](ar precision.Arithmetic[T], g *grid.Grid[T], support *SupportSet, cache *Cache[T], workers int) (*Vandermonde[T], error) {

	if g.Dim() != support.Dim() {
		return nil, polyerr.Configurationf("grid dimension %d does not match support dimension %d", g.Dim(), support.Dim())
	}

	if g.Precision() != ar.Precision() {
		return nil, polyerr.Configurationf("grid precision %s does not match arithmetic precision %s", g.Precision(), ar.Precision())
	}

	rows, cols := g.Len(), support.Len()

	if rows < cols {
		return nil, polyerr.Underdetermined(rows, cols)
	}

	dim := g.Dim()

	tables := make([]*Table[T], dim)
	for d := range tables {
		var err error
		if tables[d], err = cache.Table(ar, g.Family(), g.Nodes(d), support.MaxDegree(d)); err != nil {
			return nil, fmt.Errorf("cannot Build: %w", err)
		}
	}

	index := make([][]int, rows)
	for i := range index {
		index[i] = make([]int, dim)
		for d := range index[i] {
			index[i][d] = g.NodeIndex(i, d)
		}
	}

	values := make([][]T, rows)
	for i := range values {
		values[i] = make([]T, cols)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(utils.Min(workers, cols))

	for j := 0; j < cols; j++ {
		alpha := support.Index(j)
		eg.Go(func() error {
			for i := 0; i < rows; i++ {
				acc, err := tables[0].At(alpha[0], index[i][0])
				if err != nil {
					return err
				}
				for d := 1; d < dim; d++ {
					v, err := tables[d].At(alpha[d], index[i][d])
					if err != nil {
						return err
					}
					acc = ar.Mul(acc, v)
				}
				values[i][j] = acc
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("cannot Build: %w", err)
	}

	return &Vandermonde[T]{values: values}, nil
}
