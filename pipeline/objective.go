package pipeline

import (
	"math/big"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Objective is the function being approximated. It must be one of
//
//	func([]float64) float64
//	func([]*big.Float) *big.Float
//	func([]*big.Rat) *big.Rat
//
// and is evaluated at center + scale*x for x in [-1, 1]^n. Arguments are
// converted from the carrier type of the engine and results are cast back
// into it; a NaN or infinite result is a RangeError.
type Objective interface{}

// evaluator evaluates an objective on points of the reference domain.
type evaluator[T any] func(x []T) (T, error)

func newEvaluator[T any](ar precision.Arithmetic[T], f Objective, domain approx.Domain) (evaluator[T], error) {

	center := make([]T, len(domain.Center))
	for d, c := range domain.Center {
		var err error
		if center[d], err = ar.Cast(c); err != nil {
			return nil, err
		}
	}

	scale, err := ar.Cast(domain.Scale)
	if err != nil {
		return nil, err
	}

	affine := func(x []T) ([]T, error) {
		if len(x) != len(center) {
			return nil, polyerr.Argumentf("point of dimension %d, expected %d", len(x), len(center))
		}
		y := make([]T, len(x))
		for d := range x {
			y[d] = ar.Add(center[d], ar.Mul(scale, x[d]))
		}
		return y, nil
	}

	// Objectives over big.Float are evaluated at the precision of the carrier,
	// and at least at 53 bits.
	bits := utils.Max(ar.Bits(), 53)

	switch f := f.(type) {
	case func([]float64) float64:
		return func(x []T) (v T, err error) {
			y, err := affine(x)
			if err != nil {
				return v, err
			}
			args := make([]float64, len(y))
			for d := range y {
				args[d] = ar.Float64(y[d])
			}
			return ar.Cast(f(args))
		}, nil
	case func([]*big.Float) *big.Float:
		return func(x []T) (v T, err error) {
			y, err := affine(x)
			if err != nil {
				return v, err
			}
			args := make([]*big.Float, len(y))
			for d := range y {
				args[d] = bignum.NewFloat(any(y[d]), bits)
			}
			r := f(args)
			if r == nil {
				return v, polyerr.RangeErrorf("nil", ar.Precision().String())
			}
			return ar.Cast(r)
		}, nil
	case func([]*big.Rat) *big.Rat:
		return func(x []T) (v T, err error) {
			y, err := affine(x)
			if err != nil {
				return v, err
			}
			args := make([]*big.Rat, len(y))
			for d := range y {
				if args[d], err = toRat(any(y[d])); err != nil {
					return v, err
				}
			}
			r := f(args)
			if r == nil {
				return v, polyerr.RangeErrorf("nil", ar.Precision().String())
			}
			return ar.Cast(r)
		}, nil
	}

	return nil, polyerr.Configurationf("unsupported objective type %T", f)
}

// toRat returns the exact rational value of x.
func toRat(x interface{}) (*big.Rat, error) {
	switch x := x.(type) {
	case float64:
		if r := new(big.Rat).SetFloat64(x); r != nil {
			return r, nil
		}
	case *big.Float:
		if !x.IsInf() {
			r, _ := x.Rat(nil)
			return r, nil
		}
	case *big.Rat:
		return new(big.Rat).Set(x), nil
	}
	return nil, polyerr.RangeErrorf(x, "ExactRational")
}
