package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
)

// Run approximates the objective as described by the parameters, expands the
// result in the monomial basis and returns the export report. The arithmetic
// is selected from the precision of the parameters.
func Run(params Parameters, f Objective) (approx.Report, error) {
	return RunWithLogger(slog.New(slog.DiscardHandler), params, f)
}

// RunWithLogger is Run with a logger.
func RunWithLogger(logger *slog.Logger, params Parameters, f Objective) (r approx.Report, err error) {

	switch params.prec {
	case precision.NativeFloat:
		return run(precision.NewNative(), logger, params, f)
	case precision.Adaptive:
		return run(precision.NewAdaptive(), logger, params, f)
	case precision.ArbitraryFloat:
		return run(precision.NewFloat(params.bits), logger, params, f)
	case precision.ExactRational:
		return run(precision.NewRational(params.maxDen), logger, params, f)
	case precision.ArbitraryInteger:
		return run(precision.NewInteger(params.maxDen), logger, params, f)
	}

	return r, polyerr.Configurationf("invalid precision %s", params.prec)
}

func run[T any](ar precision.Arithmetic[T], logger *slog.Logger, params Parameters, f Objective) (r approx.Report, err error) {

	e, err := NewEngine(ar, params)
	if err != nil {
		return r, fmt.Errorf("cannot Run: %w", err)
	}

	e = e.WithLogger(logger)

	logger.Info("run", "params", params.String())

	p, err := e.Approximate(f, DegreeSpec{Degree: params.degree, Kind: params.support})
	if err != nil {
		return r, fmt.Errorf("cannot Run: %w", err)
	}

	poly, err := e.Monomial(p)
	if err != nil {
		return r, fmt.Errorf("cannot Run: %w", err)
	}

	r = p.Report(ar)
	r.Monomial, r.Denominator = poly.TermReports(ar)

	if n := params.validationPoints; n > 0 {
		v, err := e.Validate(f, p, n)
		if err != nil {
			return approx.Report{}, fmt.Errorf("cannot Run: %w", err)
		}
		r.ValidationError = &v
	}

	return r, nil
}
