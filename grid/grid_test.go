package grid

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils/bignum"
)

func testString[T any](opname string, ar precision.Arithmetic[T], family bignum.Basis) string {
	return fmt.Sprintf("%s/Precision=%s/Basis=%s", opname, ar.Precision(), family)
}

var numberComparers = []cmp.Option{
	cmp.Comparer(func(a, b *big.Float) bool { return a.Cmp(b) == 0 }),
	cmp.Comparer(func(a, b *big.Rat) bool { return a.Cmp(b) == 0 }),
}

func equalGrids[T any](g0, g1 *Grid[T]) bool {
	return g0.family == g1.family &&
		g0.prec == g1.prec &&
		cmp.Equal(g0.resolution, g1.resolution) &&
		cmp.Equal(g0.nodes, g1.nodes, numberComparers...) &&
		cmp.Equal(g0.points, g1.points, numberComparers...)
}

func TestGrid(t *testing.T) {
	for _, family := range []bignum.Basis{bignum.Chebyshev, bignum.Legendre} {
		testGrid(t, precision.NewNative(), family)
		testGrid(t, precision.NewFloat(192), family)
		testGrid(t, precision.NewRational(0), family)
	}
}

func testGrid[T any](t *testing.T, ar precision.Arithmetic[T], family bignum.Basis) {

	t.Run(testString("Size", ar, family), func(t *testing.T) {
		g, err := New(ar, family, []int{3, 2, 4}, Options{})
		require.NoError(t, err)
		require.Equal(t, 3, g.Dim())
		require.Equal(t, 4*3*5, g.Len())
		require.Equal(t, []int{4, 3, 5}, g.Shape())
		for _, pt := range g.Points() {
			require.Len(t, pt, 3)
			for _, x := range pt {
				require.LessOrEqual(t, math.Abs(ar.Float64(x)), 1.0)
			}
		}
	})

	t.Run(testString("Order", ar, family), func(t *testing.T) {
		g, err := New(ar, family, []int{1, 2}, Options{})
		require.NoError(t, err)
		// Last dimension varies fastest.
		want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
		for i := range want {
			for d := range want[i] {
				require.Equal(t, want[i][d], g.NodeIndex(i, d))
				require.Equal(t, 0, ar.Cmp(g.Point(i)[d], g.Nodes(d)[want[i][d]]))
			}
		}
	})

	t.Run(testString("Symmetry", ar, family), func(t *testing.T) {
		for _, res := range []int{0, 1, 4, 7} {
			nodes, err := Nodes(ar, family, res, Options{})
			require.NoError(t, err)
			require.Len(t, nodes, res+1)
			for k := range nodes {
				require.Equal(t, 0, ar.Cmp(nodes[k], ar.Neg(nodes[res-k])))
			}
			for k := 1; k < len(nodes); k++ {
				require.Equal(t, 1, ar.Cmp(nodes[k-1], nodes[k]))
			}
		}
	})

	t.Run(testString("ResolutionZero", ar, family), func(t *testing.T) {
		g, err := New(ar, family, []int{0}, Options{})
		require.NoError(t, err)
		require.Equal(t, 1, g.Len())
		require.Equal(t, 0, ar.Sign(g.Point(0)[0]))
	})

	t.Run(testString("Deterministic", ar, family), func(t *testing.T) {
		g0, err := New(ar, family, Uniform(2, 3), Options{})
		require.NoError(t, err)
		g1, err := New(ar, family, Uniform(2, 3), Options{})
		require.NoError(t, err)
		require.True(t, equalGrids(g0, g1))

		g2, err := New(ar, family, []int{3, 4}, Options{})
		require.NoError(t, err)
		require.False(t, equalGrids(g0, g2))
	})

	t.Run(testString("Copies", ar, family), func(t *testing.T) {
		g, err := New(ar, family, []int{2}, Options{})
		require.NoError(t, err)
		res := g.Resolution()
		res[0] = 5
		require.Equal(t, []int{2}, g.Resolution())
		pts := g.Points()
		pts[0] = nil
		require.Len(t, g.Point(0), 1)
	})
}

func TestChebyshevNodes(t *testing.T) {

	t.Run("Resolution4", func(t *testing.T) {
		g, err := New(precision.NewNative(), bignum.Chebyshev, []int{4}, Options{})
		require.NoError(t, err)
		nodes := g.Nodes(0)
		require.Len(t, nodes, 5)
		for k := range nodes {
			require.InDelta(t, math.Cos(float64(2*k+1)*math.Pi/10), nodes[k], 1e-15)
		}
	})

	t.Run("ArbitraryFloat", func(t *testing.T) {
		ar := precision.NewFloat(256)
		nodes, err := Nodes(ar, bignum.Chebyshev, 2, Options{})
		require.NoError(t, err)
		// cos(pi/6) = sqrt(3)/2
		want := bignum.Sqrt(bignum.NewFloat(3, 256))
		want.Quo(want, bignum.NewFloat(2, 256))
		diff := new(big.Float).Sub(nodes[0], want)
		require.True(t, diff.Abs(diff).Cmp(bignum.NewFloat(1e-70, 256)) < 0)
	})

	t.Run("Rational", func(t *testing.T) {
		ar := precision.NewRational(0)
		nodes, err := Nodes(ar, bignum.Chebyshev, 5, Options{})
		require.NoError(t, err)
		maxDen := new(big.Int).SetUint64(precision.DefaultMaxDenominator)
		for _, x := range nodes {
			require.LessOrEqual(t, x.Denom().Cmp(maxDen), 0)
		}
	})
}

func TestLegendreNodes(t *testing.T) {

	t.Run("Roots", func(t *testing.T) {
		ar := precision.NewFloat(256)
		for _, res := range []int{1, 5, 12} {
			nodes, err := Nodes(ar, bignum.Legendre, res, Options{})
			require.NoError(t, err)
			for _, x := range nodes {
				p, err := ar.EvaluateBasis(bignum.Legendre, res+1, x)
				require.NoError(t, err)
				require.InDelta(t, 0, ar.Float64(p[res+1]), 1e-60)
			}
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		ar := precision.NewNative()
		nodes, err := Nodes(ar, bignum.Legendre, MaxTabulatedLegendre, Options{})
		require.NoError(t, err)
		require.Len(t, nodes, MaxTabulatedLegendre+1)
		for _, x := range nodes {
			p := bignum.LegendreBasisFloat64(MaxTabulatedLegendre+1, x)
			require.InDelta(t, 0, p[MaxTabulatedLegendre+1], 1e-12)
		}

		_, err = Nodes(ar, bignum.Legendre, MaxTabulatedLegendre, Options{Strict: true})
		require.True(t, errors.Is(err, polyerr.ErrBasisUnsupported))

		_, err = Nodes(ar, bignum.Legendre, MaxTabulatedLegendre-1, Options{Strict: true})
		require.NoError(t, err)
	})
}

func TestErrors(t *testing.T) {

	ar := precision.NewNative()

	_, err := New(ar, bignum.Chebyshev, nil, Options{})
	require.True(t, errors.Is(err, polyerr.ErrConfiguration))

	_, err = New(ar, bignum.Chebyshev, []int{2, -1}, Options{})
	require.True(t, errors.Is(err, polyerr.ErrConfiguration))

	_, err = New(ar, bignum.Monomial, []int{2}, Options{})
	require.True(t, errors.Is(err, polyerr.ErrBasisUnsupported))

	_, err = New(ar, bignum.Basis(7), []int{2}, Options{})
	require.True(t, errors.Is(err, polyerr.ErrBasisUnsupported))
}
