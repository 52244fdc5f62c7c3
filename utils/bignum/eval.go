package bignum

import (
	"math"
	"math/big"
)

// ChebyshevBasisFloat64 returns [T_0(x), ..., T_deg(x)] evaluated as cos(k*arccos(x)).
// Outside of [-1, 1] the three-term recurrence is used instead.
func ChebyshevBasisFloat64(deg int, x float64) (poly []float64) {

	poly = make([]float64, deg+1)

	if math.Abs(x) > 1 {
		poly[0] = 1
		if deg > 0 {
			poly[1] = x
		}
		for k := 2; k <= deg; k++ {
			poly[k] = 2*x*poly[k-1] - poly[k-2]
		}
		return
	}

	theta := math.Acos(x)
	for k := range poly {
		poly[k] = math.Cos(float64(k) * theta)
	}

	return
}

// ChebyshevBasisBigFloat returns [T_0(x), ..., T_deg(x)] evaluated as cos(k*arccos(x))
// with the precision of x. The endpoints and zero are evaluated exactly.
// Outside of [-1, 1] the three-term recurrence is used instead.
func ChebyshevBasisBigFloat(deg int, x *big.Float) (poly []*big.Float) {

	prec := x.Prec()

	one := NewFloat(1, prec)

	poly = make([]*big.Float, deg+1)

	abs := new(big.Float).Abs(x)

	switch {
	case abs.Cmp(one) >= 0:
		poly[0] = NewFloat(1, prec)
		if deg > 0 {
			poly[1] = NewFloat(x, prec)
		}
		two := NewFloat(2, prec)
		for k := 2; k <= deg; k++ {
			poly[k] = new(big.Float).SetPrec(prec).Mul(two, x)
			poly[k].Mul(poly[k], poly[k-1])
			poly[k].Sub(poly[k], poly[k-2])
		}
		return

	case x.Sign() == 0:
		// T_k(0) = cos(k*pi/2)
		for k := range poly {
			switch k & 3 {
			case 0:
				poly[k] = NewFloat(1, prec)
			case 2:
				poly[k] = NewFloat(-1, prec)
			default:
				poly[k] = NewFloat(0, prec)
			}
		}
		return
	}

	theta := Acos(x)
	arg := new(big.Float).SetPrec(prec)
	for k := range poly {
		arg.Mul(theta, NewFloat(k, prec))
		poly[k] = Cos(arg)
	}

	return
}

// ChebyshevBasisRat returns [T_0(x), ..., T_deg(x)] computed exactly with the
// three-term recurrence T_(k+1) = 2x T_k - T_(k-1).
func ChebyshevBasisRat(deg int, x *big.Rat) (poly []*big.Rat) {

	poly = make([]*big.Rat, deg+1)
	poly[0] = new(big.Rat).SetInt64(1)
	if deg > 0 {
		poly[1] = new(big.Rat).Set(x)
	}

	twoX := new(big.Rat).Add(x, x)

	for k := 2; k <= deg; k++ {
		poly[k] = new(big.Rat).Mul(twoX, poly[k-1])
		poly[k].Sub(poly[k], poly[k-2])
	}

	return
}

// LegendreBasisFloat64 returns [P_0(x), ..., P_deg(x)] using Bonnet's recurrence.
func LegendreBasisFloat64(deg int, x float64) (poly []float64) {
	poly = make([]float64, deg+1)
	poly[0] = 1
	if deg > 0 {
		poly[1] = x
	}
	for k := 1; k < deg; k++ {
		fk := float64(k)
		poly[k+1] = ((2*fk+1)*x*poly[k] - fk*poly[k-1]) / (fk + 1)
	}
	return
}

// LegendreBasisBigFloat returns [P_0(x), ..., P_deg(x)] using Bonnet's recurrence
// with the precision of x.
func LegendreBasisBigFloat(deg int, x *big.Float) (poly []*big.Float) {

	prec := x.Prec()

	poly = make([]*big.Float, deg+1)
	poly[0] = NewFloat(1, prec)
	if deg > 0 {
		poly[1] = NewFloat(x, prec)
	}

	tmp := new(big.Float).SetPrec(prec)

	for k := 1; k < deg; k++ {
		next := new(big.Float).SetPrec(prec).Mul(NewFloat(2*k+1, prec), x)
		next.Mul(next, poly[k])
		tmp.Mul(NewFloat(k, prec), poly[k-1])
		next.Sub(next, tmp)
		poly[k+1] = next.Quo(next, NewFloat(k+1, prec))
	}

	return
}

// LegendreBasisRat returns [P_0(x), ..., P_deg(x)] computed exactly with Bonnet's recurrence.
func LegendreBasisRat(deg int, x *big.Rat) (poly []*big.Rat) {

	poly = make([]*big.Rat, deg+1)
	poly[0] = new(big.Rat).SetInt64(1)
	if deg > 0 {
		poly[1] = new(big.Rat).Set(x)
	}

	tmp := new(big.Rat)

	for k := 1; k < deg; k++ {
		next := new(big.Rat).Mul(new(big.Rat).SetInt64(int64(2*k+1)), x)
		next.Mul(next, poly[k])
		tmp.Mul(new(big.Rat).SetInt64(int64(k)), poly[k-1])
		next.Sub(next, tmp)
		poly[k+1] = next.Quo(next, new(big.Rat).SetInt64(int64(k+1)))
	}

	return
}
