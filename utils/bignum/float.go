// Package bignum implements arbitrary precision arithmetic helpers over
// math/big: constants, trigonometric functions, bounded-denominator
// rationalization and the evaluation of orthogonal polynomial bases.
package bignum

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

const pi = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679821480865132823066470938446095505822317253594081284811174502841027019385211055596446229489549303819644288109756659334461284756482337867831652712019091456485669234603486104543266482133936072602491412737245870066063155881748815209209628292540917153643678925903600113305305488204665213841469519415116094330572703657595919530921861173819326117931051185480744623799627495673518857527248912279381830119491298336733624406566430860213949463952247371907021798609437027705392171762931767523846748184676694051320005681271452635608277857713427577896091736371787214684409012249534301465495853710507922796892589235420199561121290219608640344181598136297747713099605187072113499999983729780499510597317328160963185950244594553469083026425223082533446850352619311881710100031378387528865875332083814206171776691473035982534904287554687311595628638823537875937519577818577805321712268066130019278766111959092164201989"

// guardBits is the number of extra bits carried by iterative routines.
const guardBits = 64

// Pi returns Pi with prec bits of precision.
func Pi(prec uint) *big.Float {
	pi, _ := new(big.Float).SetPrec(prec).SetString(pi)
	return pi
}

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valid types for x are: int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.SetRat(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valid types are int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float but is %T", x))
	}

	return
}

// Round returns round(x), rounding half away from zero.
func Round(x *big.Float) (r *big.Float) {
	r = new(big.Float).Set(x)
	if r.Sign() >= 0 {
		r.Add(r, new(big.Float).SetFloat64(0.5))
	} else {
		r.Sub(r, new(big.Float).SetFloat64(0.5))
	}

	tmp := new(big.Int)
	r.Int(tmp)
	r.SetInt(tmp)
	return
}

// Cos is an iterative arbitrary precision computation of Cos(x).
// The argument is first reduced to [-pi, pi].
// Iterative process with an error of ~10^{-0.60206*k} = (1/4)^k after k iterations.
// ref : Johansson, B. Tomas, An elementary algorithm to evaluate trigonometric functions to high precision, 2018
func Cos(x *big.Float) (cosx *big.Float) {

	outPrec := x.Prec()
	prec := outPrec + guardBits

	xr := reduce(x, prec)

	tmp := new(big.Float).SetPrec(prec)

	t := NewFloat(0.5, prec)
	half := new(big.Float).Copy(t)

	for i := uint(1); i < (prec>>1)-1; i++ {
		t.Mul(t, half)
	}

	s := new(big.Float).SetPrec(prec).Mul(xr, t)
	s.Mul(s, xr)
	s.Mul(s, t)

	four := NewFloat(4.0, prec)

	for i := uint(1); i < prec>>1; i++ { // (1/4)^k = (1/2)^(2*k)
		tmp.Sub(four, s)
		s.Mul(s, tmp)
	}

	cosx = new(big.Float).SetPrec(prec).Quo(s, NewFloat(2.0, prec))
	cosx.Sub(NewFloat(1.0, prec), cosx)
	return cosx.SetPrec(outPrec)
}

// Sin returns Sin(x) = Cos(x - pi/2).
func Sin(x *big.Float) (sinx *big.Float) {
	halfPi := Pi(x.Prec() + guardBits)
	halfPi.Quo(halfPi, new(big.Float).SetInt64(2))
	arg := new(big.Float).SetPrec(x.Prec() + guardBits).Sub(x, halfPi)
	return Cos(arg).SetPrec(x.Prec())
}

// reduce returns x - 2*pi*round(x/(2*pi)) with prec bits of precision.
func reduce(x *big.Float, prec uint) (xr *big.Float) {
	twoPi := Pi(prec)
	twoPi.Mul(twoPi, NewFloat(2, prec))
	k := new(big.Float).SetPrec(prec).Quo(x, twoPi)
	k = Round(k)
	xr = new(big.Float).SetPrec(prec).Mul(k, twoPi)
	return xr.Sub(new(big.Float).SetPrec(prec).Set(x), xr)
}

// Sqrt returns the square root of x with the precision of x.
func Sqrt(x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(x.Prec())
	}
	return bigfloat.Sqrt(x)
}

// Acos returns arccos(x) in [0, pi] for x in [-1, 1], computed by Newton
// iteration on cos(theta) - x. Close to the endpoints, where the float64
// estimate cannot resolve x, the iteration starts from theta ~ sqrt(2(1-x))
// (resp. pi - sqrt(2(1+x))) evaluated in full precision.
// It panics if |x| > 1.
func Acos(x *big.Float) (theta *big.Float) {

	outPrec := x.Prec()
	prec := outPrec + guardBits

	one := NewFloat(1, prec)

	switch new(big.Float).Abs(x).Cmp(one) {
	case 1:
		panic(fmt.Errorf("cannot Acos: |x| > 1"))
	case 0:
		if x.Sign() > 0 {
			return new(big.Float).SetPrec(outPrec)
		}
		return Pi(outPrec)
	}

	if x.Sign() == 0 {
		theta = Pi(outPrec)
		return theta.Quo(theta, NewFloat(2, outPrec))
	}

	xp := NewFloat(x, prec)

	xf, _ := x.Float64()
	theta = NewFloat(math.Acos(xf), prec)

	if math.Abs(xf) > 1-1e-4 {
		// 1 - |x|, exact at prec bits.
		d := new(big.Float).SetPrec(prec).Abs(xp)
		d.Sub(one, d)
		theta = Sqrt(d.Mul(d, NewFloat(2, prec)))
		if x.Sign() < 0 {
			theta.Sub(Pi(prec), theta)
		}
	}

	// Quadratic convergence from a start accurate to at least 25 bits.
	iters := int(math.Ceil(math.Log2(float64(prec)/25))) + 2

	for i := 0; i < iters; i++ {
		s := Sin(theta)
		if s.Sign() <= 0 {
			break
		}
		c := Cos(theta)
		c.Sub(c, xp)
		c.Quo(c, s)
		theta.Add(theta, c)
	}

	return theta.SetPrec(outPrec)
}
