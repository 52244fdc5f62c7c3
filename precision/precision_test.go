package precision

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils/bignum"
	"github.com/stretchr/testify/require"
)

func testString[T any](opname string, ar Arithmetic[T]) string {
	return fmt.Sprintf("%s/Precision=%s/Bits=%d", opname, ar.Precision(), ar.Bits())
}

func TestPrecision(t *testing.T) {

	t.Run("Text", func(t *testing.T) {
		for p := NativeFloat; p <= Adaptive; p++ {
			b, err := p.MarshalText()
			require.NoError(t, err)
			var q Precision
			require.NoError(t, q.UnmarshalText(b))
			require.Equal(t, p, q)
		}
		var q Precision
		require.NoError(t, q.UnmarshalText([]byte("ExactRational")))
		require.Equal(t, ExactRational, q)
		require.Error(t, q.UnmarshalText([]byte("quad")))
		_, err := Precision(9).MarshalText()
		require.Error(t, err)
	})

	t.Run("IsExact", func(t *testing.T) {
		require.True(t, ExactRational.IsExact())
		require.True(t, ArbitraryInteger.IsExact())
		require.False(t, Adaptive.IsExact())
	})

	t.Run("WidenedBits", func(t *testing.T) {
		require.Equal(t, uint(256), WidenedBits(0))
		require.Equal(t, uint(256), WidenedBits(64))
		require.Equal(t, uint(400), WidenedBits(100))
	})
}

func TestCast(t *testing.T) {

	t.Run("Native", func(t *testing.T) {
		ar := NewNative()
		y, err := ar.Cast("1/4")
		require.NoError(t, err)
		require.Equal(t, 0.25, y)

		huge := new(big.Int).Lsh(big.NewInt(1), 2000)
		_, err = ar.Cast(huge)
		require.True(t, errors.Is(err, polyerr.ErrRange))
		require.Contains(t, err.Error(), "NativeFloat")

		_, err = ar.Cast(math.NaN())
		require.True(t, errors.Is(err, polyerr.ErrRange))

		_, err = NewAdaptive().Cast(math.Inf(1))
		require.Contains(t, err.Error(), "Adaptive")
	})

	t.Run("Rational", func(t *testing.T) {
		ar := NewRational(0)

		y, err := ar.Cast(0.1)
		require.NoError(t, err)
		require.Equal(t, "1/10", y.RatString())

		y, err = ar.Cast(bignum.Pi(128))
		require.NoError(t, err)
		require.LessOrEqual(t, y.Denom().Cmp(ar.bound()), 0)
		require.InDelta(t, math.Pi, ar.Float64(y), 1e-15)

		exact := big.NewRat(1, 3)
		y, err = ar.Cast(exact)
		require.NoError(t, err)
		require.Equal(t, 0, y.Cmp(exact))
		require.False(t, y == exact)

		_, err = ar.Cast(math.Inf(-1))
		require.True(t, errors.Is(err, polyerr.ErrRange))
		require.Contains(t, err.Error(), "ExactRational")

		_, err = NewInteger(0).Cast(new(big.Float).SetInf(false))
		require.Contains(t, err.Error(), "ArbitraryInteger")

		_, err = ar.Cast(struct{}{})
		require.Error(t, err)
	})

	t.Run("Float", func(t *testing.T) {
		ar := NewFloat(0)
		require.Equal(t, uint(DefaultFloatBits), ar.Bits())

		y, err := ar.Cast("1/3")
		require.NoError(t, err)
		require.Equal(t, uint(DefaultFloatBits), y.Prec())
		require.InDelta(t, 1.0/3, ar.Float64(y), 1e-16)

		_, err = ar.Cast(math.NaN())
		require.True(t, errors.Is(err, polyerr.ErrRange))
	})
}

func TestEvaluateBasis(t *testing.T) {
	testEvaluateBasis(t, NewNative())
	testEvaluateBasis(t, NewFloat(128))
	testEvaluateBasis(t, NewRational(0))
}

func testEvaluateBasis[T any](t *testing.T, ar Arithmetic[T]) {

	t.Run(testString("EvaluateBasis", ar), func(t *testing.T) {

		x, err := ar.Cast("1/2")
		require.NoError(t, err)

		cheb, err := ar.EvaluateBasis(bignum.Chebyshev, 3, x)
		require.NoError(t, err)
		// T_2(1/2) = -1/2, T_3(1/2) = -1
		require.InDelta(t, -0.5, ar.Float64(cheb[2]), 1e-15)
		require.InDelta(t, -1.0, ar.Float64(cheb[3]), 1e-15)

		leg, err := ar.EvaluateBasis(bignum.Legendre, 2, x)
		require.NoError(t, err)
		require.InDelta(t, -0.125, ar.Float64(leg[2]), 1e-15)

		_, err = ar.EvaluateBasis(bignum.Monomial, 2, x)
		require.True(t, errors.Is(err, polyerr.ErrBasisUnsupported))

		_, err = ar.EvaluateBasis(bignum.Chebyshev, -1, x)
		require.True(t, errors.Is(err, polyerr.ErrArgument))
	})
}

func TestSolve(t *testing.T) {
	testSolve(t, NewNative(), 1e-12)
	testSolve(t, NewFloat(256), 1e-30)
	testSolve(t, NewRational(0), 0)
}

func testSolve[T any](t *testing.T, ar Arithmetic[T], tol float64) {

	cast := func(v interface{}) T {
		y, err := ar.Cast(v)
		require.NoError(t, err)
		return y
	}

	t.Run(testString("Solve/Square", ar), func(t *testing.T) {
		// 2a + b = 5, a + 3b = 10 -> a = 1, b = 3
		V := [][]T{{cast(2), cast(1)}, {cast(1), cast(3)}}
		f := []T{cast(5), cast(10)}
		c, err := ar.Solve(V, f)
		require.NoError(t, err)
		require.InDelta(t, 1, ar.Float64(c[0]), tol+1e-300)
		require.InDelta(t, 3, ar.Float64(c[1]), tol+1e-300)
		// The input rows are left in place.
		require.Equal(t, 0, ar.Cmp(V[0][0], cast(2)))
	})

	t.Run(testString("Solve/LeastSquares", ar), func(t *testing.T) {
		// Fit y = 1 + 2x through 4 exact points.
		V := make([][]T, 4)
		f := make([]T, 4)
		for i := range V {
			V[i] = []T{cast(1), cast(i)}
			f[i] = cast(1 + 2*i)
		}
		c, err := ar.Solve(V, f)
		require.NoError(t, err)
		require.InDelta(t, 1, ar.Float64(c[0]), tol+1e-300)
		require.InDelta(t, 2, ar.Float64(c[1]), tol+1e-300)

		if ar.Precision().IsExact() {
			require.Equal(t, 0, ar.Cmp(c[0], cast(1)))
			require.Equal(t, 0, ar.Cmp(c[1], cast(2)))
		}
	})

	t.Run(testString("Solve/Underdetermined", ar), func(t *testing.T) {
		V := [][]T{{cast(1), cast(2), cast(3)}}
		_, err := ar.Solve(V, []T{cast(1)})
		require.True(t, errors.Is(err, polyerr.ErrUnderdetermined))
		require.Contains(t, err.Error(), "1 < 3")
	})

	t.Run(testString("Solve/RankDeficient", ar), func(t *testing.T) {
		V := [][]T{{cast(1), cast(0)}, {cast(2), cast(0)}, {cast(3), cast(0)}}
		f := []T{cast(1), cast(2), cast(3)}
		_, err := ar.Solve(V, f)
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
	})

	t.Run(testString("Solve/Shape", ar), func(t *testing.T) {
		V := [][]T{{cast(1)}, {cast(1)}}
		_, err := ar.Solve(V, []T{cast(1)})
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
	})
}

func TestSolveNearSingular(t *testing.T) {
	testSolveNearSingular(t, NewFloat(128))
	testSolveNearSingular(t, NewFloat(256))
	testSolveNearSingular(t, NewRational(0))
}

// testSolveNearSingular builds the design matrix of a 2 x 4 Chebyshev grid.
// On the two nodes +-cos(pi/4), T_2(x0) vanishes up to rounding and is
// proportional to T_0, so the system is rank-deficient in every carrier.
func testSolveNearSingular[T any](t *testing.T, ar Arithmetic[T]) {

	node := func(k, n int) T {
		theta := bignum.Pi(320)
		theta.Mul(theta, bignum.NewFloat(2*k+1, 320))
		theta.Quo(theta, bignum.NewFloat(2*n, 320))
		x, err := ar.Cast(bignum.Cos(theta))
		require.NoError(t, err)
		return x
	}

	design := func(x0Degree, x1Degree int) (V [][]T, f []T) {
		for i := 0; i < 2; i++ {
			for k := 0; k < 4; k++ {
				b0, err := ar.EvaluateBasis(bignum.Chebyshev, 2, node(i, 2))
				require.NoError(t, err)
				b1, err := ar.EvaluateBasis(bignum.Chebyshev, 2, node(k, 4))
				require.NoError(t, err)
				V = append(V, []T{ar.One(), b1[1], b0[1], ar.Mul(b0[x0Degree], b1[x1Degree])})
				f = append(f, ar.Mul(b0[1], b1[1]))
			}
		}
		return
	}

	t.Run(testString("Solve/NearSingular", ar), func(t *testing.T) {
		V, f := design(2, 0)
		_, err := ar.Solve(V, f)
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
		require.Contains(t, err.Error(), "rank-deficient")
	})

	t.Run(testString("Solve/FullRank", ar), func(t *testing.T) {
		V, f := design(0, 2)
		c, err := ar.Solve(V, f)
		require.NoError(t, err)
		require.Len(t, c, 4)
	})
}
