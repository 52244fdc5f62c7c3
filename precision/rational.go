package precision

import (
	"math"
	"math/big"
	"strconv"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils/bignum"
)

// DefaultMaxDenominator bounds the denominators of rationalized floating point literals.
const DefaultMaxDenominator = uint64(1) << 32

// Rational is the exact *big.Rat strategy serving ExactRational and ArbitraryInteger.
//
// ArbitraryInteger works over the field of fractions of the integers, exactly as
// ExactRational does; it only differs in the basis converter, which emits integer
// monomial coefficients sharing a single denominator.
type Rational struct {
	tag    Precision
	maxDen *big.Int
}

// NewRational returns the ExactRational strategy. Floating point literals are
// rationalized to the closest fraction whose denominator does not exceed maxDen.
// A zero maxDen selects DefaultMaxDenominator.
func NewRational(maxDen uint64) Rational {
	return newRational(ExactRational, maxDen)
}

// NewInteger returns the ArbitraryInteger strategy. See NewRational.
func NewInteger(maxDen uint64) Rational {
	return newRational(ArbitraryInteger, maxDen)
}

func newRational(tag Precision, maxDen uint64) Rational {
	if maxDen == 0 {
		maxDen = DefaultMaxDenominator
	}
	return Rational{tag: tag, maxDen: new(big.Int).SetUint64(maxDen)}
}

func (r Rational) Precision() Precision { return r.tag }

func (r Rational) Bits() uint { return 0 }

func (r Rational) bound() *big.Int {
	if r.maxDen == nil {
		return new(big.Int).SetUint64(DefaultMaxDenominator)
	}
	return r.maxDen
}

func (r Rational) Zero() *big.Rat { return new(big.Rat) }

func (r Rational) One() *big.Rat { return new(big.Rat).SetInt64(1) }

func (r Rational) Cast(x interface{}) (y *big.Rat, err error) {

	target := r.tag.String()

	switch x := x.(type) {
	case int, int64, uint64, *big.Int, *big.Rat:
		return bignum.NewRat(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, polyerr.RangeErrorf(x, target)
		}
		return bignum.Rationalize(new(big.Rat).SetFloat64(x), r.bound()), nil
	case string:
		y, ok := new(big.Rat).SetString(x)
		if !ok {
			return nil, polyerr.RangeErrorf(strconv.Quote(x), target)
		}
		return y, nil
	case *big.Float:
		if x.IsInf() {
			return nil, polyerr.RangeErrorf(x, target)
		}
		return bignum.RationalizeFloat(x, r.bound()), nil
	}

	return nil, polyerr.RangeErrorf(x, target)
}

func (r Rational) Float64(x *big.Rat) float64 {
	f, _ := x.Float64()
	return f
}

func (r Rational) String(x *big.Rat) string { return x.RatString() }

func (r Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

func (r Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

func (r Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (r Rational) Quo(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }

func (r Rational) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

func (r Rational) Abs(a *big.Rat) *big.Rat { return new(big.Rat).Abs(a) }

func (r Rational) Cmp(a, b *big.Rat) int { return a.Cmp(b) }

func (r Rational) Sign(a *big.Rat) int { return a.Sign() }

// EvaluateBasis uses the three-term recurrences, so that no irrational
// intermediate is ever formed.
func (r Rational) EvaluateBasis(basis bignum.Basis, maxDegree int, x *big.Rat) ([]*big.Rat, error) {
	if maxDegree < 0 {
		return nil, polyerr.Argumentf("negative degree %d", maxDegree)
	}
	switch basis {
	case bignum.Chebyshev:
		return bignum.ChebyshevBasisRat(maxDegree, x), nil
	case bignum.Legendre:
		return bignum.LegendreBasisRat(maxDegree, x), nil
	}
	return nil, polyerr.BasisUnsupportedf("no evaluator for basis %s", basis)
}

// Solve computes the exact least-squares solution. Square systems are
// eliminated directly, overdetermined ones through the normal equations.
// The cost grows quickly with the size of the rationals: this is not meant
// for more than a few thousand basis functions.
func (r Rational) Solve(V [][]*big.Rat, f []*big.Rat) ([]*big.Rat, error) {

	rows, cols, err := checkSystem(V, f)
	if err != nil {
		return nil, err
	}

	if rows == cols {
		A := make([][]*big.Rat, rows)
		for i := range V {
			A[i] = make([]*big.Rat, cols)
			for j := range V[i] {
				A[i][j] = new(big.Rat).Set(V[i][j])
			}
		}
		b := make([]*big.Rat, rows)
		for i := range f {
			b[i] = new(big.Rat).Set(f[i])
		}
		return gaussJordan[*big.Rat](r, A, b)
	}

	A, b := normalEquations[*big.Rat](r, V, f)
	return gaussJordan[*big.Rat](r, A, b)
}
