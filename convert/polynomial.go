package convert

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
)

// Term is a monomial c * x_0^e_0 * ... * x_(n-1)^e_(n-1).
type Term[T any] struct {
	Exponents   []int
	Coefficient T
}

// Polynomial is a multivariate polynomial in the monomial basis, as consumed
// by polynomial system solvers. Terms are sorted by total degree, then
// lexicographically on the exponents. Zero terms are not stored.
//
// For ArbitraryInteger, the stored coefficients are integers and the
// polynomial is their sum divided by Denominator.
type Polynomial[T any] struct {
	dim   int
	prec  precision.Precision
	zero  T
	terms []Term[T]
	index map[string]int
	den   *big.Int
}

func newPolynomial[T any](ar precision.Arithmetic[T], dim int, terms []Term[T]) *Polynomial[T] {

	sort.Slice(terms, func(i, j int) bool {
		if di, dj := utils.Sum(terms[i].Exponents), utils.Sum(terms[j].Exponents); di != dj {
			return di < dj
		}
		return utils.CompareSlices(terms[i].Exponents, terms[j].Exponents) < 0
	})

	index := make(map[string]int, len(terms))
	for i := range terms {
		index[key(terms[i].Exponents)] = i
	}

	return &Polynomial[T]{
		dim:   dim,
		prec:  ar.Precision(),
		zero:  ar.Zero(),
		terms: terms,
		index: index,
	}
}

func key(exponents []int) string {
	var sb strings.Builder
	for i, e := range exponents {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(e))
	}
	return sb.String()
}

// Dim returns the number of variables.
func (p Polynomial[T]) Dim() int {
	return p.dim
}

// Precision returns the precision tag of the coefficients.
func (p Polynomial[T]) Precision() precision.Precision {
	return p.prec
}

// Len returns the number of non-zero terms.
func (p Polynomial[T]) Len() int {
	return len(p.terms)
}

// Degree returns the total degree of the polynomial, or -1 for the zero polynomial.
func (p Polynomial[T]) Degree() (degree int) {
	degree = -1
	for _, term := range p.terms {
		degree = utils.Max(degree, utils.Sum(term.Exponents))
	}
	return
}

// Coefficient returns the coefficient of x_0^exponents[0] * ... and zero for
// absent terms. The returned value is shared and must not be mutated.
func (p Polynomial[T]) Coefficient(exponents ...int) T {
	if i, ok := p.index[key(exponents)]; ok {
		return p.terms[i].Coefficient
	}
	return p.zero
}

// Terms returns a copy of the terms. Coefficients are shared and must not be mutated.
func (p Polynomial[T]) Terms() (terms []Term[T]) {
	terms = make([]Term[T], len(p.terms))
	for i, term := range p.terms {
		terms[i] = Term[T]{Exponents: append([]int(nil), term.Exponents...), Coefficient: term.Coefficient}
	}
	return
}

// Denominator returns a copy of the shared denominator of the coefficients,
// which is one unless the polynomial was scaled to integer coefficients.
func (p Polynomial[T]) Denominator() *big.Int {
	if p.den == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(p.den)
}

// Evaluate evaluates the polynomial at x.
func (p Polynomial[T]) Evaluate(ar precision.Arithmetic[T], x []T) (y T, err error) {

	if len(x) != p.dim {
		return y, polyerr.Argumentf("point of dimension %d, expected %d", len(x), p.dim)
	}

	// powers[d][e] = x_d^e
	powers := make([][]T, p.dim)
	for d := range powers {
		powers[d] = []T{ar.One()}
	}

	y = ar.Zero()
	for _, term := range p.terms {
		v := term.Coefficient
		for d, e := range term.Exponents {
			for len(powers[d]) <= e {
				powers[d] = append(powers[d], ar.Mul(powers[d][len(powers[d])-1], x[d]))
			}
			v = ar.Mul(v, powers[d][e])
		}
		y = ar.Add(y, v)
	}

	if p.den != nil {
		den, err := ar.Cast(p.den)
		if err != nil {
			return y, err
		}
		y = ar.Quo(y, den)
	}

	return
}

// TermReports returns the export shape of the terms and of the denominator.
// The denominator is empty unless the coefficients were scaled to integers.
func (p Polynomial[T]) TermReports(ar precision.Arithmetic[T]) (terms []approx.TermReport, den string) {
	terms = make([]approx.TermReport, len(p.terms))
	for i, term := range p.terms {
		terms[i] = approx.TermReport{Exponents: append([]int(nil), term.Exponents...), Value: ar.String(term.Coefficient)}
	}
	if p.den != nil {
		den = p.den.String()
	}
	return
}
