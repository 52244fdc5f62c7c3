package bignum

import (
	"fmt"
	"math/big"
)

// NewRat allocates a new *big.Rat.
// Accepted types are: int, int64, uint64, *big.Int and *big.Rat.
// Floating point values are handled by Rationalize.
func NewRat(x interface{}) (y *big.Rat) {

	y = new(big.Rat)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint64:
		y.SetUint64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewRat: accepted types are int, int64, uint64, *big.Int, *big.Rat, but is %T", x))
	}

	return
}

// Rationalize returns the rational number closest to x among those whose
// denominator does not exceed maxDen. If x is already such a rational it is
// returned exactly. The result is odd-symmetric: Rationalize(-x) = -Rationalize(x).
// maxDen must be positive.
func Rationalize(x *big.Rat, maxDen *big.Int) (r *big.Rat) {

	if maxDen.Sign() <= 0 {
		panic("cannot Rationalize: maxDen must be positive")
	}

	if x.Denom().Cmp(maxDen) <= 0 {
		return new(big.Rat).Set(x)
	}

	neg := x.Sign() < 0

	n := new(big.Int).Abs(x.Num())
	d := new(big.Int).Set(x.Denom())

	// Convergents p0/q0, p1/q1 of the continued fraction of |x|.
	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)

	a, rem := new(big.Int), new(big.Int)
	q2, tmp := new(big.Int), new(big.Int)

	for d.Sign() != 0 {

		a.QuoRem(n, d, rem)

		q2.Mul(a, q1)
		q2.Add(q2, q0)

		if q2.Cmp(maxDen) > 0 {
			break
		}

		tmp.Mul(a, p1)
		tmp.Add(tmp, p0)
		p0, p1 = p1, new(big.Int).Set(tmp)
		q0, q1 = q1, new(big.Int).Set(q2)

		n, d = d, new(big.Int).Set(rem)
	}

	// Semi-convergent with the largest admissible denominator.
	k := new(big.Int).Sub(maxDen, q0)
	k.Quo(k, q1)

	bound1 := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)))

	bound2 := new(big.Rat).SetFrac(p1, q1)

	xa := new(big.Rat).Abs(x)

	e1 := new(big.Rat).Sub(bound1, xa)
	e1.Abs(e1)
	e2 := new(big.Rat).Sub(bound2, xa)
	e2.Abs(e2)

	if e2.Cmp(e1) <= 0 {
		r = bound2
	} else {
		r = bound1
	}

	if neg {
		r.Neg(r)
	}

	return
}

// RationalizeFloat returns Rationalize of the exact value of x.
// It panics if x is infinite.
func RationalizeFloat(x *big.Float, maxDen *big.Int) *big.Rat {
	xr, _ := x.Rat(nil)
	if xr == nil {
		panic("cannot RationalizeFloat: x is infinite")
	}
	return Rationalize(xr, maxDen)
}
