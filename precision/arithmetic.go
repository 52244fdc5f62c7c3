package precision

import (
	"github.com/polyopt/polyopt/utils/bignum"
)

// Arithmetic is the strategy serving one Precision tag over the carrier type T.
//
// Implementations never mutate their arguments: every operation returns a
// freshly allocated value when T is a pointer type, so values can be shared
// freely between goroutines once created.
type Arithmetic[T any] interface {
	// Precision returns the tag served by the strategy.
	Precision() Precision
	// Bits returns the mantissa size of the carrier, or 0 for exact carriers.
	Bits() uint

	Zero() T
	One() T

	// Cast converts a numeric literal into the carrier type.
	// Accepted types are int, int64, uint64, float64, string, *big.Int,
	// *big.Rat and *big.Float. Values that cannot be represented fail
	// with a polyerr.RangeError.
	Cast(x interface{}) (T, error)

	// Float64 returns the nearest float64 to x.
	Float64(x T) float64
	// String returns a lossless textual representation of x.
	String(x T) string

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Quo(a, b T) T
	Neg(a T) T
	Abs(a T) T
	Cmp(a, b T) int
	Sign(a T) int

	// EvaluateBasis returns the values at x of the basis polynomials of degree 0 to maxDegree.
	EvaluateBasis(basis bignum.Basis, maxDegree int, x T) ([]T, error)

	// Solve returns the coefficients c minimizing ||Vc - f||_2, where V is given
	// row by row. V must have at least as many rows as columns.
	Solve(V [][]T, f []T) ([]T, error)
}
