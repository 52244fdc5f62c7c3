package bignum

import (
	"math"
	"math/big"
)

// legendreGuess returns the initial Newton estimate of the k-th root of P_n,
// roots being sorted in descending order.
func legendreGuess(k, n int) float64 {
	return math.Cos(math.Pi * (float64(k) + 0.75) / (float64(n) + 0.5))
}

// legendreFloat64 returns P_n(x) and P_n'(x).
func legendreFloat64(n int, x float64) (p, dp float64) {
	p0, p1 := 1.0, x
	if n == 0 {
		return 1, 0
	}
	for k := 1; k < n; k++ {
		fk := float64(k)
		p0, p1 = p1, ((2*fk+1)*x*p1-fk*p0)/(fk+1)
	}
	dp = float64(n) * (x*p1 - p0) / (x*x - 1)
	return p1, dp
}

// LegendreRootsFloat64 returns the n roots of P_n in descending order.
// The roots are odd-symmetric and the middle root of odd n is exactly zero.
func LegendreRootsFloat64(n int) (roots []float64) {

	roots = make([]float64, n)

	for k := 0; k < n/2; k++ {
		x := legendreGuess(k, n)
		for i := 0; i < 100; i++ {
			p, dp := legendreFloat64(n, x)
			dx := p / dp
			x -= dx
			if math.Abs(dx) <= 1e-16*math.Abs(x) {
				break
			}
		}
		roots[k] = x
		roots[n-1-k] = -x
	}

	return
}

// legendreBigFloat returns P_n(x) and P_n'(x) with the precision of x.
func legendreBigFloat(n int, x *big.Float) (p, dp *big.Float) {

	prec := x.Prec()

	poly := LegendreBasisBigFloat(n, x)

	p = poly[n]

	// P_n'(x) = n * (x*P_n - P_(n-1)) / (x^2 - 1)
	dp = new(big.Float).SetPrec(prec).Mul(x, p)
	dp.Sub(dp, poly[n-1])
	dp.Mul(dp, NewFloat(n, prec))
	den := new(big.Float).SetPrec(prec).Mul(x, x)
	den.Sub(den, NewFloat(1, prec))
	dp.Quo(dp, den)

	return
}

// LegendreRootsBigFloat returns the n roots of P_n in descending order with prec
// bits of precision, refined by Newton iteration from the float64 roots.
// The roots are odd-symmetric and the middle root of odd n is exactly zero.
func LegendreRootsBigFloat(n int, prec uint) (roots []*big.Float) {

	start := LegendreRootsFloat64(n)

	roots = make([]*big.Float, n)

	iters := int(math.Ceil(math.Log2(float64(prec)/50))) + 3

	for k := 0; k < n/2; k++ {
		x := NewFloat(start[k], prec+guardBits)
		for i := 0; i < iters; i++ {
			p, dp := legendreBigFloat(n, x)
			x.Sub(x, p.Quo(p, dp))
		}
		roots[k] = x.SetPrec(prec)
		roots[n-1-k] = new(big.Float).Neg(roots[k])
	}

	if n&1 == 1 {
		roots[n/2] = NewFloat(0, prec)
	}

	return
}
