package convert

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/grid"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/solver"
	"github.com/polyopt/polyopt/utils/bignum"
)

func ratStrings(e []*big.Rat) (s []string) {
	for _, r := range e {
		s = append(s, r.RatString())
	}
	return
}

func TestTable(t *testing.T) {

	table := NewTable()

	t.Run("Chebyshev", func(t *testing.T) {
		e, err := table.Expansion(bignum.Chebyshev, 2)
		require.NoError(t, err)
		require.Equal(t, []string{"-1", "0", "2"}, ratStrings(e))

		e, err = table.Expansion(bignum.Chebyshev, 5)
		require.NoError(t, err)
		require.Equal(t, []string{"0", "5", "0", "-20", "0", "16"}, ratStrings(e))
		require.Equal(t, 6, table.Len(bignum.Chebyshev))

		e, err = table.Expansion(bignum.Chebyshev, 0)
		require.NoError(t, err)
		require.Equal(t, []string{"1"}, ratStrings(e))
	})

	t.Run("Legendre", func(t *testing.T) {
		e, err := table.Expansion(bignum.Legendre, 2)
		require.NoError(t, err)
		require.Equal(t, []string{"-1/2", "0", "3/2"}, ratStrings(e))

		e, err = table.Expansion(bignum.Legendre, 3)
		require.NoError(t, err)
		require.Equal(t, []string{"0", "-3/2", "0", "5/2"}, ratStrings(e))
	})

	t.Run("Recurrence", func(t *testing.T) {
		// The closed forms agree with the exact three-term recurrences.
		x := big.NewRat(3, 7)
		for _, family := range []bignum.Basis{bignum.Chebyshev, bignum.Legendre} {
			var want []*big.Rat
			if family == bignum.Chebyshev {
				want = bignum.ChebyshevBasisRat(12, x)
			} else {
				want = bignum.LegendreBasisRat(12, x)
			}
			for k := range want {
				e, err := table.Expansion(family, k)
				require.NoError(t, err)
				y := new(big.Rat)
				pow := big.NewRat(1, 1)
				for _, a := range e {
					y.Add(y, new(big.Rat).Mul(a, pow))
					pow.Mul(pow, x)
				}
				require.Equal(t, want[k].RatString(), y.RatString())
			}
		}
	})

	t.Run("Errors", func(t *testing.T) {
		e, err := table.Expansion(bignum.Monomial, 3)
		require.NoError(t, err)
		require.Equal(t, []string{"0", "0", "0", "1"}, ratStrings(e))
		_, err = table.Expansion(bignum.Basis(5), 3)
		require.True(t, errors.Is(err, polyerr.ErrBasisUnsupported))
		_, err = table.Expansion(bignum.Chebyshev, -1)
		require.True(t, errors.Is(err, polyerr.ErrArgument))
	})
}

// approximate fits f on a Chebyshev grid of uniform resolution.
func approximate[T any](t *testing.T, ar precision.Arithmetic[T], family bignum.Basis, dim, res, degree int, f func(x []T) T) *approx.ApproxPoly[T] {
	g, err := grid.New(ar, family, grid.Uniform(dim, res), grid.Options{})
	require.NoError(t, err)
	s, err := basis.NewSupportSet(dim, degree, basis.TotalDegree)
	require.NoError(t, err)
	V, err := basis.Build(ar, g, s, basis.NewCache[T](), 0)
	require.NoError(t, err)
	values := make([]T, g.Len())
	for i := range values {
		values[i] = f(g.Point(i))
	}
	p, err := solver.Solve(ar, g, s, V, values, solver.Options{})
	require.NoError(t, err)
	return p
}

func TestToMonomial(t *testing.T) {

	table := NewTable()

	t.Run("SumOfSquaresExact", func(t *testing.T) {
		ar := precision.NewRational(0)
		f := func(x []*big.Rat) *big.Rat {
			return ar.Add(ar.Mul(x[0], x[0]), ar.Mul(x[1], x[1]))
		}
		for _, family := range []bignum.Basis{bignum.Chebyshev, bignum.Legendre} {
			p := approximate(t, ar, family, 2, 2, 2, f)
			require.Equal(t, 0, p.Residual().Sign())

			poly, err := ToMonomial(ar, table, p, Options{})
			require.NoError(t, err)
			require.Equal(t, 2, poly.Dim())
			require.Equal(t, 2, poly.Len())
			require.Equal(t, 2, poly.Degree())
			require.Equal(t, "1", poly.Coefficient(2, 0).RatString())
			require.Equal(t, "1", poly.Coefficient(0, 2).RatString())
			require.Equal(t, "0", poly.Coefficient(1, 1).RatString())
			require.Equal(t, "0", poly.Coefficient(0, 0).RatString())
			require.Equal(t, "1", poly.Denominator().String())

			terms := poly.Terms()
			require.Equal(t, []int{0, 2}, terms[0].Exponents)
			require.Equal(t, []int{2, 0}, terms[1].Exponents)
		}
	})

	t.Run("Exact", func(t *testing.T) {
		// T_2 = 2x^2 - 1 through fit and conversion.
		ar := precision.NewRational(0)
		f := func(x []*big.Rat) *big.Rat {
			return ar.Sub(ar.Mul(big.NewRat(2, 1), ar.Mul(x[0], x[0])), ar.One())
		}
		p := approximate(t, ar, bignum.Chebyshev, 1, 4, 2, f)
		c := p.Coefficients()
		require.Equal(t, []string{"0", "0", "1"}, ratStrings(c))

		poly, err := ToMonomial(ar, table, p, Options{})
		require.NoError(t, err)
		require.Equal(t, "2", poly.Coefficient(2).RatString())
		require.Equal(t, "-1", poly.Coefficient(0).RatString())
	})

	t.Run("Integer", func(t *testing.T) {
		ar := precision.NewInteger(0)
		third, half := big.NewRat(1, 3), big.NewRat(1, 2)
		f := func(x []*big.Rat) *big.Rat {
			return ar.Add(ar.Mul(third, ar.Mul(x[0], x[0])), half)
		}
		p := approximate(t, ar, bignum.Legendre, 1, 3, 2, f)

		poly, err := ToMonomial(ar, table, p, Options{})
		require.NoError(t, err)
		require.Equal(t, precision.ArbitraryInteger, poly.Precision())
		require.Equal(t, "6", poly.Denominator().String())
		require.Equal(t, "2", poly.Coefficient(2).RatString())
		require.Equal(t, "3", poly.Coefficient(0).RatString())
		for _, term := range poly.Terms() {
			require.True(t, term.Coefficient.IsInt())
		}

		y, err := poly.Evaluate(ar, []*big.Rat{big.NewRat(1, 1)})
		require.NoError(t, err)
		require.Equal(t, "5/6", y.RatString())

		terms, den := poly.TermReports(ar)
		require.Equal(t, "6", den)
		require.Len(t, terms, 2)
	})

	t.Run("Threshold", func(t *testing.T) {
		ar := precision.NewRational(0)
		eps := big.NewRat(1, 1000000000)
		f := func(x []*big.Rat) *big.Rat {
			return ar.Add(ar.Mul(x[0], x[0]), ar.Mul(eps, x[0]))
		}
		p := approximate(t, ar, bignum.Chebyshev, 1, 4, 2, f)

		poly, err := ToMonomial(ar, table, p, Options{})
		require.NoError(t, err)
		require.Equal(t, 2, poly.Len())

		poly, err = ToMonomial(ar, table, p, Options{Threshold: 1e-6})
		require.NoError(t, err)
		require.Equal(t, 1, poly.Len())
		require.Equal(t, "0", poly.Coefficient(1).RatString())

		_, err = ToMonomial(ar, table, p, Options{Threshold: -1})
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
	})

	t.Run("Adaptive", func(t *testing.T) {
		f := func(x []float64) float64 { return math.Cos(x[0]) * math.Exp(x[1]) }

		native := precision.NewNative()
		pn := approximate(t, native, bignum.Chebyshev, 2, 8, 6, f)
		polyNative, err := ToMonomial(native, table, pn, Options{})
		require.NoError(t, err)

		adaptive := precision.NewAdaptive()
		pa := approximate(t, adaptive, bignum.Chebyshev, 2, 8, 6, f)
		polyAdaptive, err := ToMonomial(adaptive, table, pa, Options{})
		require.NoError(t, err)
		require.Equal(t, precision.Adaptive, polyAdaptive.Precision())

		for _, term := range polyAdaptive.Terms() {
			require.InDelta(t, polyNative.Coefficient(term.Exponents...), term.Coefficient, 1e-9)
		}

		x := []float64{0.3, -0.7}
		want, err := pa.Evaluate(adaptive, x)
		require.NoError(t, err)
		have, err := polyAdaptive.Evaluate(adaptive, x)
		require.NoError(t, err)
		require.InDelta(t, want, have, 1e-12)
		require.InDelta(t, f(x), have, 1e-3)
	})

	t.Run("Widen", func(t *testing.T) {
		native := precision.NewNative()
		p := approximate(t, native, bignum.Chebyshev, 1, 4, 2, func(x []float64) float64 { return x[0] * x[0] })

		poly, err := Widen(native, table, p, precision.NewRational(0), Options{})
		require.NoError(t, err)
		require.Equal(t, precision.ExactRational, poly.Precision())
		require.Equal(t, 1, poly.Len())
		require.Equal(t, "1", poly.Coefficient(2).RatString())

		wide, err := Widen(native, table, p, precision.NewFloat(512), Options{})
		require.NoError(t, err)
		require.InDelta(t, 1, precision.NewFloat(512).Float64(wide.Coefficient(2)), 1e-14)

		ar := precision.NewRational(0)
		pr := approximate(t, ar, bignum.Chebyshev, 1, 4, 2, func(x []*big.Rat) *big.Rat { return ar.Mul(x[0], x[0]) })
		_, err = Widen(ar, table, pr, ar, Options{})
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
	})

	t.Run("Mismatch", func(t *testing.T) {
		native := precision.NewNative()
		p := approximate(t, native, bignum.Chebyshev, 1, 2, 1, func(x []float64) float64 { return x[0] })
		_, err := ToMonomial(precision.NewAdaptive(), table, p, Options{})
		require.True(t, errors.Is(err, polyerr.ErrConfiguration))
	})
}
