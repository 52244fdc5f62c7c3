package precision

import (
	"math"
	"math/big"
	"strconv"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Float is the *big.Float strategy serving ArbitraryFloat.
type Float struct {
	bits uint
}

// NewFloat returns the ArbitraryFloat strategy with the given mantissa size in bits.
// A zero value selects DefaultFloatBits.
func NewFloat(bits uint) Float {
	if bits == 0 {
		bits = DefaultFloatBits
	}
	return Float{bits: bits}
}

func (p Float) Precision() Precision { return ArbitraryFloat }

func (p Float) Bits() uint { return p.bits }

func (p Float) Zero() *big.Float { return new(big.Float).SetPrec(p.bits) }

func (p Float) One() *big.Float { return bignum.NewFloat(1, p.bits) }

func (p Float) Cast(x interface{}) (y *big.Float, err error) {

	target := ArbitraryFloat.String()

	switch x := x.(type) {
	case int, int64, uint64, *big.Int, *big.Rat:
		return bignum.NewFloat(x, p.bits), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, polyerr.RangeErrorf(x, target)
		}
		return bignum.NewFloat(x, p.bits), nil
	case string:
		r, ok := new(big.Rat).SetString(x)
		if !ok {
			return nil, polyerr.RangeErrorf(strconv.Quote(x), target)
		}
		return bignum.NewFloat(r, p.bits), nil
	case *big.Float:
		if x.IsInf() {
			return nil, polyerr.RangeErrorf(x, target)
		}
		return bignum.NewFloat(x, p.bits), nil
	}

	return nil, polyerr.RangeErrorf(x, target)
}

func (p Float) Float64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

func (p Float) String(x *big.Float) string {
	// Enough decimal digits to round-trip the mantissa.
	return x.Text('g', int(float64(p.bits)*math.Log10(2))+2)
}

func (p Float) Add(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Add(a, b) }

func (p Float) Sub(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Sub(a, b) }

func (p Float) Mul(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Mul(a, b) }

func (p Float) Quo(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Quo(a, b) }

func (p Float) Neg(a *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Neg(a) }

func (p Float) Abs(a *big.Float) *big.Float { return new(big.Float).SetPrec(p.bits).Abs(a) }

func (p Float) Cmp(a, b *big.Float) int { return a.Cmp(b) }

func (p Float) Sign(a *big.Float) int { return a.Sign() }

// EvaluateBasis uses cos(k*arccos(x)) for Chebyshev and Bonnet's recurrence for Legendre.
func (p Float) EvaluateBasis(basis bignum.Basis, maxDegree int, x *big.Float) ([]*big.Float, error) {
	if maxDegree < 0 {
		return nil, polyerr.Argumentf("negative degree %d", maxDegree)
	}
	xp := bignum.NewFloat(x, p.bits)
	switch basis {
	case bignum.Chebyshev:
		return bignum.ChebyshevBasisBigFloat(maxDegree, xp), nil
	case bignum.Legendre:
		return bignum.LegendreBasisBigFloat(maxDegree, xp), nil
	}
	return nil, polyerr.BasisUnsupportedf("no evaluator for basis %s", basis)
}

// Solve solves the normal equations V^T V c = V^T f by Gaussian elimination
// with partial pivoting at the precision of the strategy.
func (p Float) Solve(V [][]*big.Float, f []*big.Float) ([]*big.Float, error) {
	if _, _, err := checkSystem(V, f); err != nil {
		return nil, err
	}
	A, b := normalEquations[*big.Float](p, V, f)
	return gaussJordan[*big.Float](p, A, b)
}
