package precision

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils/bignum"
	"gonum.org/v1/gonum/mat"
)

// Native is the float64 strategy serving NativeFloat and Adaptive.
type Native struct {
	tag Precision
}

// NewNative returns the NativeFloat strategy.
func NewNative() Native {
	return Native{tag: NativeFloat}
}

// NewAdaptive returns the Adaptive strategy. It samples and solves in float64;
// the widening to ArbitraryFloat happens in the basis converter.
func NewAdaptive() Native {
	return Native{tag: Adaptive}
}

func (n Native) Precision() Precision { return n.tag }

func (n Native) Bits() uint { return 53 }

func (n Native) Zero() float64 { return 0 }

func (n Native) One() float64 { return 1 }

func (n Native) Cast(x interface{}) (y float64, err error) {

	target := n.tag.String()

	switch x := x.(type) {
	case int:
		y = float64(x)
	case int64:
		y = float64(x)
	case uint64:
		y = float64(x)
	case float64:
		y = x
	case string:
		r, ok := new(big.Rat).SetString(x)
		if !ok {
			return 0, polyerr.RangeErrorf(strconv.Quote(x), target)
		}
		y, _ = r.Float64()
	case *big.Int:
		y, _ = new(big.Float).SetInt(x).Float64()
	case *big.Rat:
		y, _ = x.Float64()
	case *big.Float:
		if x.IsInf() {
			return 0, polyerr.RangeErrorf(x, target)
		}
		y, _ = x.Float64()
	default:
		return 0, polyerr.RangeErrorf(x, target)
	}

	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, polyerr.RangeErrorf(x, target)
	}

	return
}

func (n Native) Float64(x float64) float64 { return x }

func (n Native) String(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func (n Native) Add(a, b float64) float64 { return a + b }

func (n Native) Sub(a, b float64) float64 { return a - b }

func (n Native) Mul(a, b float64) float64 { return a * b }

func (n Native) Quo(a, b float64) float64 { return a / b }

func (n Native) Neg(a float64) float64 { return -a }

func (n Native) Abs(a float64) float64 { return math.Abs(a) }

func (n Native) Cmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (n Native) Sign(a float64) int { return n.Cmp(a, 0) }

// EvaluateBasis uses cos(k*arccos(x)) for Chebyshev and Bonnet's recurrence for Legendre.
func (n Native) EvaluateBasis(basis bignum.Basis, maxDegree int, x float64) ([]float64, error) {
	if maxDegree < 0 {
		return nil, polyerr.Argumentf("negative degree %d", maxDegree)
	}
	switch basis {
	case bignum.Chebyshev:
		return bignum.ChebyshevBasisFloat64(maxDegree, x), nil
	case bignum.Legendre:
		return bignum.LegendreBasisFloat64(maxDegree, x), nil
	}
	return nil, polyerr.BasisUnsupportedf("no evaluator for basis %s", basis)
}

// Solve computes the least-squares solution with a Householder QR factorization.
func (n Native) Solve(V [][]float64, f []float64) ([]float64, error) {

	rows, cols, err := checkSystem(V, f)
	if err != nil {
		return nil, err
	}

	a := mat.NewDense(rows, cols, nil)
	for i := range V {
		a.SetRow(i, V[i])
	}

	b := mat.NewVecDense(rows, append([]float64(nil), f...))

	var qr mat.QR
	qr.Factorize(a)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		// gonum reports a mat.Condition error once the condition number
		// exceeds mat.ConditionTolerance: the system is numerically singular.
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, polyerr.Configurationf("rank-deficient design matrix (%d x %d, condition %.3e)", rows, cols, float64(cond))
		}
		return nil, fmt.Errorf("cannot Solve: %w", err)
	}

	c := make([]float64, cols)
	for i := range c {
		if c[i] = x.AtVec(i); math.IsNaN(c[i]) || math.IsInf(c[i], 0) {
			return nil, polyerr.Configurationf("rank-deficient design matrix (%d x %d)", rows, cols)
		}
	}

	return c, nil
}

// checkSystem validates the shape of a least-squares system.
func checkSystem[T any](V [][]T, f []T) (rows, cols int, err error) {
	rows = len(V)
	if rows == 0 || len(V[0]) == 0 {
		return 0, 0, polyerr.Configurationf("empty design matrix")
	}
	cols = len(V[0])
	if len(f) != rows {
		return 0, 0, polyerr.Configurationf("design matrix has %d rows but %d values were sampled", rows, len(f))
	}
	for i := range V {
		if len(V[i]) != cols {
			return 0, 0, polyerr.Configurationf("ragged design matrix: row %d has %d columns, expected %d", i, len(V[i]), cols)
		}
	}
	if rows < cols {
		return 0, 0, polyerr.Underdetermined(rows, cols)
	}
	return
}
