// Package convert expands orthogonal-basis approximations into multivariate
// polynomials in the monomial basis.
package convert

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Options are the optional parameters of the conversion.
type Options struct {
	// Threshold drops the terms whose magnitude is smaller than Threshold times
	// the largest magnitude. Zero keeps every non-zero term.
	Threshold float64
}

// ToMonomial expands the approximation in the monomial basis.
//
// The expansion is carried out in the arithmetic of the record: ExactRational
// records give the exact expansion, and ArbitraryInteger records are further
// scaled to integer coefficients sharing a single denominator. Adaptive records
// are expanded with precision.WidenedBits(degree) bits of ArbitraryFloat and
// rounded back to float64.
func ToMonomial[T any](ar precision.Arithmetic[T], table *Table, p *approx.ApproxPoly[T], opts Options) (poly *Polynomial[T], err error) {

	if ar.Precision() != p.Precision() {
		return nil, polyerr.Configurationf("record precision %s does not match arithmetic precision %s", p.Precision(), ar.Precision())
	}

	if ar.Precision() == precision.Adaptive {
		return Widen(ar, table, p, ar, opts)
	}

	if poly, err = expand(ar, table, p.Basis(), p.Support(), p.Coefficients(), opts); err != nil {
		return nil, fmt.Errorf("cannot ToMonomial: %w", err)
	}

	if ar.Precision() == precision.ArbitraryInteger {
		if err = integerize(poly); err != nil {
			return nil, fmt.Errorf("cannot ToMonomial: %w", err)
		}
	}

	return
}

// Widen expands a NativeFloat or Adaptive record with precision.WidenedBits(degree)
// bits of ArbitraryFloat and casts the resulting coefficients to the target
// arithmetic. Magnitudes are compared against the threshold before the cast.
func Widen[T, U any](ar precision.Arithmetic[T], table *Table, p *approx.ApproxPoly[T], target precision.Arithmetic[U], opts Options) (*Polynomial[U], error) {

	if prec := p.Precision(); prec != precision.NativeFloat && prec != precision.Adaptive {
		return nil, polyerr.Configurationf("cannot widen a record of precision %s", prec)
	}

	wide := precision.NewFloat(precision.WidenedBits(p.Degree()))

	coeffs := make([]*big.Float, 0, p.Support().Len())
	for _, c := range p.Coefficients() {
		// float64 coefficients are represented exactly.
		w, err := wide.Cast(ar.Float64(c))
		if err != nil {
			return nil, fmt.Errorf("cannot Widen: %w", err)
		}
		coeffs = append(coeffs, w)
	}

	widened, err := expand[*big.Float](wide, table, p.Basis(), p.Support(), coeffs, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot Widen: %w", err)
	}

	terms := make([]Term[U], 0, widened.Len())
	for _, term := range widened.terms {
		c, err := target.Cast(term.Coefficient)
		if err != nil {
			return nil, fmt.Errorf("cannot Widen: %w", err)
		}
		if target.Sign(c) != 0 {
			terms = append(terms, Term[U]{Exponents: term.Exponents, Coefficient: c})
		}
	}

	poly := newPolynomial(target, widened.dim, terms)

	if target.Precision() == precision.ArbitraryInteger {
		if err = integerize(poly); err != nil {
			return nil, fmt.Errorf("cannot Widen: %w", err)
		}
	}

	return poly, nil
}

// expand computes sum_j c_j prod_d B_(alpha_jd)(x_d) in the monomial basis.
func expand[T any](ar precision.Arithmetic[T], table *Table, family bignum.Basis, support *basis.SupportSet, coeffs []T, opts Options) (*Polynomial[T], error) {

	if len(coeffs) != support.Len() {
		return nil, polyerr.Configurationf("%d coefficients for a support of size %d", len(coeffs), support.Len())
	}

	if opts.Threshold < 0 {
		return nil, polyerr.Configurationf("negative threshold %g", opts.Threshold)
	}

	dim := support.Dim()

	// Sparse expansions of the univariate basis polynomials, cast to the carrier.
	type monomial struct {
		exponent int
		value    T
	}

	expansions := map[int][]monomial{}

	expansionOf := func(k int) ([]monomial, error) {
		if e, ok := expansions[k]; ok {
			return e, nil
		}
		rat, err := table.Expansion(family, k)
		if err != nil {
			return nil, err
		}
		var e []monomial
		for i, r := range rat {
			if r.Sign() == 0 {
				continue
			}
			v, err := ar.Cast(r)
			if err != nil {
				return nil, err
			}
			e = append(e, monomial{exponent: i, value: v})
		}
		expansions[k] = e
		return e, nil
	}

	var terms []Term[T]
	index := map[string]int{}

	for j, c := range coeffs {

		if ar.Sign(c) == 0 {
			continue
		}

		alpha := support.Index(j)

		factors := make([][]monomial, dim)
		shape := make([]int, dim)
		for d := range factors {
			var err error
			if factors[d], err = expansionOf(alpha[d]); err != nil {
				return nil, err
			}
			shape[d] = len(factors[d])
		}

		n, err := utils.Product(shape)
		if err != nil {
			return nil, polyerr.Configurationf("expansion of %v: %s", alpha, err)
		}

		idx := make([]int, dim)
		for i := 0; i < n; i++ {

			utils.Unravel(i, shape, idx)

			exponents := make([]int, dim)
			v := c
			for d := range idx {
				m := factors[d][idx[d]]
				exponents[d] = m.exponent
				v = ar.Mul(v, m.value)
			}

			k := key(exponents)
			if t, ok := index[k]; ok {
				terms[t].Coefficient = ar.Add(terms[t].Coefficient, v)
			} else {
				index[k] = len(terms)
				terms = append(terms, Term[T]{Exponents: exponents, Coefficient: v})
			}
		}
	}

	// Cancellations and thresholding.
	largest := ar.Zero()
	for _, term := range terms {
		if a := ar.Abs(term.Coefficient); ar.Cmp(a, largest) > 0 {
			largest = a
		}
	}

	bound := ar.Zero()
	if opts.Threshold > 0 {
		threshold, err := ar.Cast(strconv.FormatFloat(opts.Threshold, 'g', -1, 64))
		if err != nil {
			return nil, err
		}
		bound = ar.Mul(largest, threshold)
	}

	kept := terms[:0]
	for _, term := range terms {
		if ar.Sign(term.Coefficient) == 0 || ar.Cmp(ar.Abs(term.Coefficient), bound) < 0 {
			continue
		}
		kept = append(kept, term)
	}

	return newPolynomial(ar, dim, kept), nil
}

// integerize scales the rational coefficients of poly to integers sharing the
// least common multiple of their denominators.
func integerize[T any](poly *Polynomial[T]) error {

	den := big.NewInt(1)

	for _, term := range poly.terms {
		r, ok := any(term.Coefficient).(*big.Rat)
		if !ok {
			return polyerr.Configurationf("integer coefficients require a rational carrier, not %T", term.Coefficient)
		}
		den = bignum.LCM(den, r.Denom())
	}

	scale := new(big.Rat).SetInt(den)

	for i, term := range poly.terms {
		r := new(big.Rat).Mul(any(term.Coefficient).(*big.Rat), scale)
		poly.terms[i].Coefficient = any(r).(T)
	}

	poly.den = den

	return nil
}
