package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/polyopt/polyopt/approx"
	"github.com/polyopt/polyopt/basis"
	"github.com/polyopt/polyopt/convert"
	"github.com/polyopt/polyopt/grid"
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/solver"
	"github.com/polyopt/polyopt/utils/sampling"
)

// Source selects the sampling grid of an approximation: either a DegreeSpec,
// for which the grid is generated from the parameters, or a PrebuiltGrid.
type Source interface {
	source()
}

// DegreeSpec requests an approximation of the given degree on the grid
// described by the parameters of the engine.
type DegreeSpec struct {
	Degree int
	Kind   basis.SupportKind
}

func (DegreeSpec) source() {}

// PrebuiltGrid requests an approximation of the given degree on an existing grid.
type PrebuiltGrid[T any] struct {
	Grid   *grid.Grid[T]
	Degree int
	Kind   basis.SupportKind
}

func (PrebuiltGrid[T]) source() {}

// Engine runs approximation requests for a fixed arithmetic and set of
// parameters. It owns the evaluation cache and the conversion table, which
// are shared by all the requests of the engine and by its copies.
// An Engine is safe for concurrent use.
type Engine[T any] struct {
	ar     precision.Arithmetic[T]
	params Parameters
	cache  *basis.Cache[T]
	table  *convert.Table
	logger *slog.Logger
}

// NewEngine returns a new engine. The precision of ar must be the one of the parameters.
func NewEngine[T any](ar precision.Arithmetic[T], params Parameters) (*Engine[T], error) {
	if ar.Precision() != params.Precision() {
		return nil, polyerr.Configurationf("arithmetic precision %s does not match parameters precision %s", ar.Precision(), params.Precision())
	}
	return &Engine[T]{
		ar:     ar,
		params: params,
		cache:  basis.NewCache[T](),
		table:  convert.NewTable(),
		logger: slog.New(slog.DiscardHandler),
	}, nil
}

// WithLogger returns a shallow copy of the engine logging to logger.
// The copy shares the caches of the receiver.
func (e Engine[T]) WithLogger(logger *slog.Logger) *Engine[T] {
	e.logger = logger
	return &e
}

// Arithmetic returns the arithmetic of the engine.
func (e Engine[T]) Arithmetic() precision.Arithmetic[T] {
	return e.ar
}

// Parameters returns the parameters of the engine.
func (e Engine[T]) Parameters() Parameters {
	return e.params
}

// Cache returns the evaluation cache of the engine.
func (e Engine[T]) Cache() *basis.Cache[T] {
	return e.cache
}

// Table returns the conversion table of the engine.
func (e Engine[T]) Table() *convert.Table {
	return e.table
}

// Grid generates the grid described by the parameters.
func (e Engine[T]) Grid() (*grid.Grid[T], error) {
	return grid.New(e.ar, e.params.family, e.params.resolution, grid.Options{Strict: e.params.strict})
}

// Sample evaluates the objective at every point of the grid, in grid order.
func (e Engine[T]) Sample(f Objective, g *grid.Grid[T]) (values []T, err error) {

	eval, err := newEvaluator(e.ar, f, e.params.domain)
	if err != nil {
		return nil, fmt.Errorf("cannot Sample: %w", err)
	}

	values = make([]T, g.Len())
	for i := range values {
		if values[i], err = eval(g.Point(i)); err != nil {
			return nil, fmt.Errorf("cannot Sample: point %d: %w", i, err)
		}
	}

	return
}

// Approximate samples the objective on the grid of the source and returns
// its least-squares approximation.
func (e Engine[T]) Approximate(f Objective, src Source) (p *approx.ApproxPoly[T], err error) {

	var g *grid.Grid[T]
	var degree int
	var kind basis.SupportKind

	switch src := src.(type) {
	case DegreeSpec:
		if g, err = e.Grid(); err != nil {
			return nil, fmt.Errorf("cannot Approximate: %w", err)
		}
		degree, kind = src.Degree, src.Kind
	case PrebuiltGrid[T]:
		if src.Grid == nil {
			return nil, polyerr.Configurationf("prebuilt grid is nil")
		}
		if src.Grid.Precision() != e.ar.Precision() {
			return nil, polyerr.Configurationf("prebuilt grid precision %s does not match engine precision %s", src.Grid.Precision(), e.ar.Precision())
		}
		g, degree, kind = src.Grid, src.Degree, src.Kind
	default:
		return nil, polyerr.Configurationf("unsupported source %T", src)
	}

	if g.Dim() != e.params.dim {
		return nil, polyerr.Configurationf("grid dimension %d does not match parameters dimension %d", g.Dim(), e.params.dim)
	}

	log := e.logger.With("degree", degree, "dim", g.Dim(), "precision", e.ar.Precision().String())

	now := time.Now()

	support, err := basis.NewSupportSet(g.Dim(), degree, kind)
	if err != nil {
		return nil, fmt.Errorf("cannot Approximate: %w", err)
	}

	log.Debug("support set", "kind", kind.String(), "size", support.Len(), "samples", g.Len())

	V, err := basis.Build(e.ar, g, support, e.cache, e.params.workers)
	if err != nil {
		return nil, fmt.Errorf("cannot Approximate: %w", err)
	}

	log.Debug("vandermonde", "rows", V.Rows(), "cols", V.Cols(), "duration", time.Since(now))

	values, err := e.Sample(f, g)
	if err != nil {
		return nil, fmt.Errorf("cannot Approximate: %w", err)
	}

	p, err = solver.Solve(e.ar, g, support, V, values, solver.Options{
		ConditionThreshold: e.params.conditionThreshold,
		Domain:             e.params.Domain(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot Approximate: %w", err)
	}

	diag := p.Diagnostics()

	for _, w := range diag.Warnings {
		log.Warn(w.String(), "id", p.ID().String())
	}

	log.Debug("solved", "id", p.ID().String(), "residual", diag.ResidualNorm, "condition", diag.Condition, "duration", time.Since(now))

	return
}

// Monomial expands the approximation in the monomial basis.
func (e Engine[T]) Monomial(p *approx.ApproxPoly[T]) (*convert.Polynomial[T], error) {
	poly, err := convert.ToMonomial(e.ar, e.table, p, convert.Options{Threshold: e.params.threshold})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("monomial", "id", p.ID().String(), "terms", poly.Len(), "degree", poly.Degree())
	return poly, nil
}

// Validate returns the largest absolute difference between the approximation
// and the objective over n pseudo-random points of the reference domain.
// The points are derived from the seed of the parameters.
func (e Engine[T]) Validate(f Objective, p *approx.ApproxPoly[T], n int) (maxErr float64, err error) {

	if n < 1 {
		return 0, polyerr.Configurationf("validation requires at least one point but got %d", n)
	}

	eval, err := newEvaluator(e.ar, f, e.params.domain)
	if err != nil {
		return 0, fmt.Errorf("cannot Validate: %w", err)
	}

	prng, err := sampling.NewKeyedPRNG(e.params.seed)
	if err != nil {
		return 0, fmt.Errorf("cannot Validate: %w", err)
	}

	points, err := sampling.Points(prng, n, p.Dim(), -1, 1)
	if err != nil {
		return 0, fmt.Errorf("cannot Validate: %w", err)
	}

	x := make([]T, p.Dim())
	for _, pt := range points {

		for d := range pt {
			if x[d], err = e.ar.Cast(pt[d]); err != nil {
				return 0, fmt.Errorf("cannot Validate: %w", err)
			}
		}

		want, err := eval(x)
		if err != nil {
			return 0, fmt.Errorf("cannot Validate: %w", err)
		}

		have, err := p.Evaluate(e.ar, x)
		if err != nil {
			return 0, fmt.Errorf("cannot Validate: %w", err)
		}

		maxErr = math.Max(maxErr, math.Abs(e.ar.Float64(e.ar.Sub(have, want))))
	}

	e.logger.Debug("validated", "id", p.ID().String(), "points", n, "max_error", maxErr)

	return
}

// Sweep approximates the objective for each degree on the grid of the
// parameters. Failed attempts do not stop the sweep: they are returned as
// error contexts, in the order of the degrees.
func (e Engine[T]) Sweep(f Objective, degrees []int) (records []*approx.ApproxPoly[T], failures []approx.ErrorContext) {
	for _, degree := range degrees {
		p, err := e.Approximate(f, DegreeSpec{Degree: degree, Kind: e.params.support})
		if err != nil {
			ctx := approx.NewErrorContext(err, degree, e.params.dim, e.params.resolution)
			e.logger.Error("approximation failed", "degree", degree, "kind", ctx.Kind, "err", err)
			failures = append(failures, ctx)
			continue
		}
		records = append(records, p)
	}
	return
}
