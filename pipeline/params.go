// Package pipeline wires the grid generator, the Vandermonde builder, the
// coefficient solver and the basis converter into approximation requests.
package pipeline

import (
	"fmt"
	"math"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/solver"
	"github.com/polyopt/polyopt/utils/bignum"
)

// DefaultSeed keys the pseudo-random validation points when no seed is given.
const DefaultSeed = "polyopt"

// ParametersLiteral is the user-facing description of an approximation request.
// It can be decoded from JSON, YAML or TOML with DecodeParametersLiteral and
// is validated by NewParametersFromLiteral.
type ParametersLiteral struct {
	// Dimension is the number of variables of the objective.
	Dimension int `json:"dimension" yaml:"dimension" toml:"dimension"`
	// Degree is the maximum degree of the support set.
	Degree int `json:"degree" yaml:"degree" toml:"degree"`
	// Resolution is the per-dimension grid resolution. A single entry is
	// broadcast to every dimension; an empty slice selects Degree.
	Resolution []int `json:"resolution,omitempty" yaml:"resolution,omitempty" toml:"resolution,omitempty"`
	// Support selects the multi-indices of degree at most Degree ("total" or "tensor").
	Support basis.SupportKind `json:"support" yaml:"support" toml:"support"`
	// Basis is the orthogonal family ("chebyshev" or "legendre").
	Basis bignum.Basis `json:"basis" yaml:"basis" toml:"basis"`
	// Precision is the numeric precision ("native", "rational", "float", "integer" or "adaptive").
	Precision precision.Precision `json:"precision" yaml:"precision" toml:"precision"`
	// Bits is the mantissa size of ArbitraryFloat. Zero selects precision.DefaultFloatBits.
	Bits uint `json:"bits,omitempty" yaml:"bits,omitempty" toml:"bits,omitempty"`
	// MaxDenominator bounds the rationalization of floating point values for
	// the exact precisions. Zero selects precision.DefaultMaxDenominator.
	MaxDenominator uint64 `json:"max_denominator,omitempty" yaml:"max_denominator,omitempty" toml:"max_denominator,omitempty"`
	// Center and Scale map [-1, 1]^n onto the domain of the objective.
	// An empty center is the origin and a zero scale is one.
	Center []float64 `json:"center,omitempty" yaml:"center,omitempty" toml:"center,omitempty"`
	Scale  float64   `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	// ConditionThreshold is the advisory condition number bound.
	// Zero selects solver.DefaultConditionThreshold.
	ConditionThreshold float64 `json:"condition_threshold,omitempty" yaml:"condition_threshold,omitempty" toml:"condition_threshold,omitempty"`
	// Threshold is the relative magnitude below which monomial terms are dropped.
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	// Strict refuses the float64 fallback of high-resolution Legendre nodes.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty"`
	// Workers bounds the goroutines filling the Vandermonde matrix.
	// Zero selects runtime.GOMAXPROCS(0).
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty"`
	// ValidationPoints is the number of pseudo-random points at which Run
	// compares the approximation with the objective. Zero disables the validation.
	ValidationPoints int `json:"validation_points,omitempty" yaml:"validation_points,omitempty" toml:"validation_points,omitempty"`
	// Seed keys the pseudo-random validation points. Empty selects DefaultSeed.
	Seed string `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed,omitempty"`
}

// Parameters is a validated approximation request. Its fields are private and
// immutable. See ParametersLiteral for user-specified parameters.
type Parameters struct {
	dim                int
	degree             int
	resolution         []int
	support            basis.SupportKind
	family             bignum.Basis
	prec               precision.Precision
	bits               uint
	maxDen             uint64
	domain             approx.Domain
	conditionThreshold float64
	threshold          float64
	strict             bool
	workers            int
	validationPoints   int
	seed               []byte
}

// NewParametersFromLiteral validates the literal and returns the corresponding parameters.
// It returns a polyerr.ErrConfiguration error if the literal is invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	switch {
	case pl.Dimension < 1:
		return Parameters{}, polyerr.Configurationf("dimension must be at least 1 but is %d", pl.Dimension)
	case pl.Degree < 0:
		return Parameters{}, polyerr.Configurationf("negative degree %d", pl.Degree)
	case !pl.Basis.IsOrthogonal():
		return Parameters{}, polyerr.Configurationf("basis %s is not an orthogonal family", pl.Basis)
	case !pl.Precision.Valid():
		return Parameters{}, polyerr.Configurationf("invalid precision %s", pl.Precision)
	case pl.Support != basis.TotalDegree && pl.Support != basis.TensorDegree:
		return Parameters{}, polyerr.Configurationf("invalid support kind %s", pl.Support)
	case len(pl.Center) != 0 && len(pl.Center) != pl.Dimension:
		return Parameters{}, polyerr.Configurationf("center has %d coordinates for dimension %d", len(pl.Center), pl.Dimension)
	case pl.Scale < 0 || math.IsNaN(pl.Scale) || math.IsInf(pl.Scale, 0):
		return Parameters{}, polyerr.Configurationf("invalid scale %g", pl.Scale)
	case pl.ConditionThreshold < 0:
		return Parameters{}, polyerr.Configurationf("negative condition threshold %g", pl.ConditionThreshold)
	case pl.Threshold < 0 || pl.Threshold >= 1:
		return Parameters{}, polyerr.Configurationf("threshold %g is outside of [0, 1)", pl.Threshold)
	case pl.Workers < 0:
		return Parameters{}, polyerr.Configurationf("negative number of workers %d", pl.Workers)
	case pl.ValidationPoints < 0:
		return Parameters{}, polyerr.Configurationf("negative number of validation points %d", pl.ValidationPoints)
	}

	var resolution []int
	switch len(pl.Resolution) {
	case 0:
		resolution = uniform(pl.Dimension, pl.Degree)
	case 1:
		resolution = uniform(pl.Dimension, pl.Resolution[0])
	case pl.Dimension:
		resolution = append([]int(nil), pl.Resolution...)
	default:
		return Parameters{}, polyerr.Configurationf("resolution has %d entries for dimension %d", len(pl.Resolution), pl.Dimension)
	}

	for d, res := range resolution {
		if res < 0 {
			return Parameters{}, polyerr.Configurationf("negative resolution %d in dimension %d", res, d)
		}
	}

	center := make([]float64, pl.Dimension)
	copy(center, pl.Center)

	scale := pl.Scale
	if scale == 0 {
		scale = 1
	}

	conditionThreshold := pl.ConditionThreshold
	if conditionThreshold == 0 {
		conditionThreshold = solver.DefaultConditionThreshold
	}

	seed := pl.Seed
	if seed == "" {
		seed = DefaultSeed
	}

	return Parameters{
		dim:                pl.Dimension,
		degree:             pl.Degree,
		resolution:         resolution,
		support:            pl.Support,
		family:             pl.Basis,
		prec:               pl.Precision,
		bits:               pl.Bits,
		maxDen:             pl.MaxDenominator,
		domain:             approx.Domain{Center: center, Scale: scale},
		conditionThreshold: conditionThreshold,
		threshold:          pl.Threshold,
		strict:             pl.Strict,
		workers:            pl.Workers,
		validationPoints:   pl.ValidationPoints,
		seed:               []byte(seed),
	}, nil
}

func uniform(dim, res int) (resolution []int) {
	resolution = make([]int, dim)
	for i := range resolution {
		resolution[i] = res
	}
	return
}

// ParametersLiteral returns the literal of the parameters, with the defaults filled in.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Dimension:          p.dim,
		Degree:             p.degree,
		Resolution:         p.Resolution(),
		Support:            p.support,
		Basis:              p.family,
		Precision:          p.prec,
		Bits:               p.bits,
		MaxDenominator:     p.maxDen,
		Center:             p.Domain().Center,
		Scale:              p.domain.Scale,
		ConditionThreshold: p.conditionThreshold,
		Threshold:          p.threshold,
		Strict:             p.strict,
		Workers:            p.workers,
		ValidationPoints:   p.validationPoints,
		Seed:               string(p.seed),
	}
}

// Dimension returns the number of variables.
func (p Parameters) Dimension() int {
	return p.dim
}

// Degree returns the maximum degree of the support set.
func (p Parameters) Degree() int {
	return p.degree
}

// Resolution returns a copy of the per-dimension grid resolution.
func (p Parameters) Resolution() []int {
	return append([]int(nil), p.resolution...)
}

// Support returns the kind of support set.
func (p Parameters) Support() basis.SupportKind {
	return p.support
}

// Basis returns the orthogonal family.
func (p Parameters) Basis() bignum.Basis {
	return p.family
}

// Precision returns the precision tag.
func (p Parameters) Precision() precision.Precision {
	return p.prec
}

// Domain returns a copy of the sampling domain.
func (p Parameters) Domain() approx.Domain {
	return p.domain.Clone()
}

// ConditionThreshold returns the advisory condition number bound.
func (p Parameters) ConditionThreshold() float64 {
	return p.conditionThreshold
}

// Threshold returns the relative magnitude below which monomial terms are dropped.
func (p Parameters) Threshold() float64 {
	return p.threshold
}

// ValidationPoints returns the number of pseudo-random validation points.
func (p Parameters) ValidationPoints() int {
	return p.validationPoints
}

// Seed returns a copy of the key of the validation points.
func (p Parameters) Seed() []byte {
	return append([]byte(nil), p.seed...)
}

// String returns a one-line summary of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("dim=%d degree=%d support=%s basis=%s precision=%s resolution=%v", p.dim, p.degree, p.support, p.family, p.prec, p.resolution)
}
