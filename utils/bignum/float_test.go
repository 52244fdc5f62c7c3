package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testFunc1("Sin", 1.4142135623730951, math.Sin, Sin, 1e-15, t)
	testFunc1("Cos", 1.4142135623730951, math.Cos, Cos, 1e-15, t)
	testFunc1("Cos/Reduced", 20.5, math.Cos, Cos, 1e-14, t)
	testFunc1("Cos/Negative", -2.75, math.Cos, Cos, 1e-15, t)
	testFunc1("Acos", 0.3, math.Acos, Acos, 1e-15, t)
	testFunc1("Acos/Negative", -0.95, math.Acos, Acos, 1e-15, t)
	testFunc1("Sqrt", 2, math.Sqrt, Sqrt, 1e-15, t)

	t.Run("Acos/Endpoints", func(t *testing.T) {
		require.Equal(t, 0, Acos(NewFloat(1, 128)).Sign())
		require.Equal(t, 0, Acos(NewFloat(-1, 128)).Cmp(Pi(128)))
		require.Panics(t, func() { Acos(NewFloat(1.5, 128)) })
	})

	t.Run("Acos/NearEndpoints", func(t *testing.T) {
		prec := uint(512)
		near := NewFloat(1, prec)
		near.Sub(near, new(big.Float).SetMantExp(NewFloat(1, prec), -300))
		beyond, _ := new(big.Float).SetPrec(prec).SetString("-0.99999999999999999999")
		for _, x := range []*big.Float{near, beyond, new(big.Float).Neg(near)} {
			theta := Acos(x)
			require.Equal(t, 1, theta.Sign())
			diff := new(big.Float).Sub(Cos(theta), x)
			require.True(t, diff.Sign() == 0 || diff.MantExp(nil) < -480)
		}
	})

	t.Run("Cos/HighPrecision", func(t *testing.T) {
		// cos(pi/3) = 1/2
		prec := uint(256)
		x := Pi(prec)
		x.Quo(x, NewFloat(3, prec))
		diff := new(big.Float).Sub(Cos(x), NewFloat(0.5, prec))
		require.Less(t, diff.Abs(diff).MantExp(nil), -200)
	})

	t.Run("Round", func(t *testing.T) {
		require.Equal(t, 0, Round(NewFloat(2.5, 64)).Cmp(NewFloat(3, 64)))
		require.Equal(t, 0, Round(NewFloat(-2.5, 64)).Cmp(NewFloat(-3, 64)))
	})
}

func testFunc1(name string, x float64, f func(x float64) (y float64), g func(x *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53)).Float64()
		require.InDelta(t, f(x), y, delta)
	})
}
