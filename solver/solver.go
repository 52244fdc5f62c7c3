// Package solver fits the coefficients of an orthogonal expansion to sampled
// objective values by least squares.
package solver

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/grid"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
)

// DefaultConditionThreshold is the condition number above which an
// IllConditionedWarning is recorded.
const DefaultConditionThreshold = 1e12

// Options are the optional parameters of Solve.
type Options struct {
	// ConditionThreshold is the advisory condition number bound.
	// Zero selects DefaultConditionThreshold.
	ConditionThreshold float64
	// Domain is recorded as is in the approximation.
	Domain approx.Domain
}

// Solve computes the coefficients c minimizing ||Vc - f|| and returns the
// resulting approximation record. f holds the objective values in grid order.
//
// The squared residual norm is computed in the carrier type. The condition
// number of V is estimated in float64; exceeding the threshold is not an error
// but is recorded as a warning in the diagnostics.
func Solve[T any](ar precision.Arithmetic[T], g *grid.Grid[T], support *basis.SupportSet, V *basis.Vandermonde[T], f []T, opts Options) (*approx.ApproxPoly[T], error) {

	rows, cols := g.Len(), support.Len()

	if rows < cols {
		return nil, polyerr.Underdetermined(rows, cols)
	}

	if V.Rows() != rows || V.Cols() != cols {
		return nil, polyerr.Configurationf("design matrix is %d x %d, expected %d x %d", V.Rows(), V.Cols(), rows, cols)
	}

	if len(f) != rows {
		return nil, polyerr.Configurationf("%d values for %d grid points", len(f), rows)
	}

	c, err := ar.Solve(V.Matrix(), f)
	if err != nil {
		return nil, fmt.Errorf("cannot Solve: %w", err)
	}

	residual := ar.Zero()
	abs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		r := ar.Neg(f[i])
		for j := 0; j < cols; j++ {
			r = ar.Add(r, ar.Mul(V.At(i, j), c[j]))
		}
		residual = ar.Add(residual, ar.Mul(r, r))
		abs[i] = math.Abs(ar.Float64(r))
	}

	diag := approx.Diagnostics{
		ResidualNorm: math.Sqrt(ar.Float64(residual)),
		Condition:    conditionNumber(mat.NewDense(rows, cols, V.Float64(ar))),
	}

	if diag.MaxResidual, err = stats.Max(abs); err != nil {
		return nil, fmt.Errorf("cannot Solve: %w", err)
	}

	if diag.MeanResidual, err = stats.Mean(abs); err != nil {
		return nil, fmt.Errorf("cannot Solve: %w", err)
	}

	if diag.StdResidual, err = stats.StandardDeviation(abs); err != nil {
		return nil, fmt.Errorf("cannot Solve: %w", err)
	}

	threshold := opts.ConditionThreshold
	if threshold == 0 {
		threshold = DefaultConditionThreshold
	}

	if diag.Condition > threshold {
		diag.Warnings = append(diag.Warnings, polyerr.IllConditionedWarning{Condition: diag.Condition, Threshold: threshold})
	}

	return approx.New(approx.Literal[T]{
		Grid:         g,
		Support:      support,
		Coefficients: c,
		Values:       f,
		Residual:     residual,
		Diagnostics:  diag,
		Domain:       opts.Domain,
	}), nil
}

// conditionNumber returns the ratio of the largest to the smallest singular
// value of A, or +Inf if A is rank-deficient or the factorization fails.
func conditionNumber(A *mat.Dense) float64 {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return math.Inf(1)
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[len(values)-1] <= 0 {
		return math.Inf(1)
	}
	return values[0] / values[len(values)-1]
}
