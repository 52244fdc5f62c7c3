// Package approx defines the approximation record produced by the coefficient
// solver and its export shapes.
package approx

import (
	"github.com/google/uuid"

	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/grid"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Domain is the affine map center + scale*x from the reference domain
// [-1, 1]^n to the sampling domain of the objective.
type Domain struct {
	Center []float64 `json:"center"`
	Scale  float64   `json:"scale"`
}

// Clone returns a deep copy of the domain.
func (d Domain) Clone() Domain {
	return Domain{Center: append([]float64(nil), d.Center...), Scale: d.Scale}
}

// Diagnostics gathers the quality indicators of a least-squares fit.
// Residual quantities are taken on r = Vc - f.
type Diagnostics struct {
	ResidualNorm float64
	MaxResidual  float64
	MeanResidual float64
	StdResidual  float64
	Condition    float64
	Warnings     []polyerr.IllConditionedWarning
}

// IllConditioned reports whether an IllConditionedWarning was recorded.
func (d Diagnostics) IllConditioned() bool {
	return len(d.Warnings) > 0
}

func (d Diagnostics) clone() Diagnostics {
	d.Warnings = append([]polyerr.IllConditionedWarning(nil), d.Warnings...)
	return d
}

// Literal is the set of fields of an ApproxPoly.
type Literal[T any] struct {
	Grid         *grid.Grid[T]
	Support      *basis.SupportSet
	Coefficients []T
	Values       []T
	Residual     T
	Diagnostics  Diagnostics
	Domain       Domain
}

// ApproxPoly is a read-only least-squares approximation of an objective in an
// orthogonal basis. The j-th coefficient multiplies the basis polynomial of the
// j-th multi-index of the support set.
type ApproxPoly[T any] struct {
	id       uuid.UUID
	grid     *grid.Grid[T]
	support  *basis.SupportSet
	coeffs   []T
	values   []T
	residual T
	diag     Diagnostics
	domain   Domain
}

// New returns a new record with a fresh identifier.
// Slices of the literal are copied.
func New[T any](lit Literal[T]) *ApproxPoly[T] {
	return &ApproxPoly[T]{
		id:       uuid.New(),
		grid:     lit.Grid,
		support:  lit.Support,
		coeffs:   append([]T(nil), lit.Coefficients...),
		values:   append([]T(nil), lit.Values...),
		residual: lit.Residual,
		diag:     lit.Diagnostics.clone(),
		domain:   lit.Domain.Clone(),
	}
}

// ID returns the identifier of the record.
func (p ApproxPoly[T]) ID() uuid.UUID {
	return p.id
}

// Grid returns the sampling grid.
func (p ApproxPoly[T]) Grid() *grid.Grid[T] {
	return p.grid
}

// Support returns the multi-index support set.
func (p ApproxPoly[T]) Support() *basis.SupportSet {
	return p.support
}

// Basis returns the basis family of the coefficients.
func (p ApproxPoly[T]) Basis() bignum.Basis {
	return p.grid.Family()
}

// Precision returns the precision tag of the record.
func (p ApproxPoly[T]) Precision() precision.Precision {
	return p.grid.Precision()
}

// Dim returns the number of variables.
func (p ApproxPoly[T]) Dim() int {
	return p.support.Dim()
}

// Degree returns the maximum total degree of the support set.
func (p ApproxPoly[T]) Degree() int {
	return p.support.Degree()
}

// Coefficients returns a copy of the coefficients.
func (p ApproxPoly[T]) Coefficients() []T {
	return append([]T(nil), p.coeffs...)
}

// Values returns a copy of the sampled objective values, in grid order.
func (p ApproxPoly[T]) Values() []T {
	return append([]T(nil), p.values...)
}

// Residual returns the squared Euclidean norm of the residual, computed in the
// carrier type. It is exact for the rational precisions.
func (p ApproxPoly[T]) Residual() T {
	return p.residual
}

// Diagnostics returns a copy of the diagnostics.
func (p ApproxPoly[T]) Diagnostics() Diagnostics {
	return p.diag.clone()
}

// Domain returns a copy of the sampling domain.
func (p ApproxPoly[T]) Domain() Domain {
	return p.domain.Clone()
}

// Evaluate evaluates the orthogonal expansion at a point x of the reference domain.
func (p ApproxPoly[T]) Evaluate(ar precision.Arithmetic[T], x []T) (y T, err error) {

	dim := p.support.Dim()

	if len(x) != dim {
		return y, polyerr.Argumentf("point of dimension %d, expected %d", len(x), dim)
	}

	tables := make([][]T, dim)
	for d := range tables {
		if tables[d], err = ar.EvaluateBasis(p.Basis(), p.support.MaxDegree(d), x[d]); err != nil {
			return y, err
		}
	}

	y = ar.Zero()
	for j, c := range p.coeffs {
		alpha := p.support.Index(j)
		term := c
		for d := range alpha {
			term = ar.Mul(term, tables[d][alpha[d]])
		}
		y = ar.Add(y, term)
	}

	return
}
