package precision

import (
	"math/big"

	"github.com/polyopt/polyopt/polyerr"
)

// pivotGuardBits is the number of low-order mantissa bits of an inexact
// carrier that are treated as rounding noise when testing pivots.
const pivotGuardBits = 32

// normalEquations returns A = V^T V and b = V^T f.
func normalEquations[T any](ar Arithmetic[T], V [][]T, f []T) (A [][]T, b []T) {

	rows, cols := len(V), len(V[0])

	A = make([][]T, cols)
	for i := range A {
		A[i] = make([]T, cols)
	}

	// A is symmetric: only the upper triangle is accumulated.
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			acc := ar.Zero()
			for k := 0; k < rows; k++ {
				acc = ar.Add(acc, ar.Mul(V[k][i], V[k][j]))
			}
			A[i][j] = acc
			A[j][i] = acc
		}
	}

	b = make([]T, cols)
	for i := 0; i < cols; i++ {
		acc := ar.Zero()
		for k := 0; k < rows; k++ {
			acc = ar.Add(acc, ar.Mul(V[k][i], f[k]))
		}
		b[i] = acc
	}

	return
}

// pivotTolerance returns the magnitude at or below which a pivot of A is
// zero: 0 for exact carriers, max|A_ij| * 2^-(Bits()-pivotGuardBits) otherwise.
func pivotTolerance[T any](ar Arithmetic[T], A [][]T) (T, error) {

	bits := ar.Bits()
	if bits == 0 {
		return ar.Zero(), nil
	}

	largest := ar.Zero()
	for i := range A {
		for j := range A[i] {
			if v := ar.Abs(A[i][j]); ar.Cmp(v, largest) > 0 {
				largest = v
			}
		}
	}

	exp := 1
	if bits > pivotGuardBits+1 {
		exp = int(bits - pivotGuardBits)
	}

	eps, err := ar.Cast(new(big.Float).SetMantExp(big.NewFloat(1), -exp))
	if err != nil {
		return ar.Zero(), err
	}

	return ar.Mul(largest, eps), nil
}

// gaussJordan solves the square system A x = b with partial pivoting on the
// largest absolute value. A and b are overwritten with intermediate values;
// entries are replaced, never mutated, so shared values are left untouched.
// A pivot not larger than pivotTolerance makes the system rank-deficient.
func gaussJordan[T any](ar Arithmetic[T], A [][]T, b []T) ([]T, error) {

	n := len(A)

	tol, err := pivotTolerance(ar, A)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {

		// Pivot search
		p := i
		best := ar.Abs(A[i][i])
		for k := i + 1; k < n; k++ {
			if v := ar.Abs(A[k][i]); ar.Cmp(v, best) > 0 {
				p, best = k, v
			}
		}

		if ar.Cmp(best, tol) <= 0 {
			return nil, polyerr.Configurationf("rank-deficient design matrix: zero pivot at column %d of %d", i, n)
		}

		A[i], A[p] = A[p], A[i]
		b[i], b[p] = b[p], b[i]

		pivot := A[i][i]

		for j := i; j < n; j++ {
			A[i][j] = ar.Quo(A[i][j], pivot)
		}
		b[i] = ar.Quo(b[i], pivot)

		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			c := A[k][i]
			if ar.Sign(c) == 0 {
				continue
			}
			for j := i; j < n; j++ {
				A[k][j] = ar.Sub(A[k][j], ar.Mul(c, A[i][j]))
			}
			b[k] = ar.Sub(b[k], ar.Mul(c, b[i]))
		}
	}

	return b, nil
}
