package approx

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
)

// TermReport is a coefficient attached to its multi-index.
type TermReport struct {
	Exponents []int  `json:"exponents"`
	Value     string `json:"value"`
}

// Report is the export shape of an approximation. Numbers of the carrier type
// are rendered as strings so that no precision is lost.
type Report struct {
	ID           string       `json:"id"`
	Precision    string       `json:"precision"`
	Basis        string       `json:"basis"`
	Support      string       `json:"support"`
	Dimension    int          `json:"dimension"`
	Degree       int          `json:"degree"`
	Resolution   []int        `json:"resolution"`
	Samples      int          `json:"samples"`
	Domain       Domain       `json:"domain"`
	Coefficients []TermReport `json:"coefficients"`
	Residual     string       `json:"residual_squared_norm"`
	ResidualNorm float64      `json:"residual_norm"`
	MaxResidual  float64      `json:"max_residual"`
	MeanResidual float64      `json:"mean_residual"`
	Condition    string       `json:"condition"`
	Warnings     []string     `json:"warnings,omitempty"`

	// Monomial expansion, filled in by the caller of the basis converter.
	Monomial    []TermReport `json:"monomial,omitempty"`
	Denominator string       `json:"denominator,omitempty"`

	// Maximum error at pseudo-random points, when validated.
	ValidationError *float64 `json:"validation_error,omitempty"`
}

// Report returns the export shape of the record.
func (p ApproxPoly[T]) Report(ar precision.Arithmetic[T]) (r Report) {

	r = Report{
		ID:           p.id.String(),
		Precision:    p.Precision().String(),
		Basis:        p.Basis().String(),
		Support:      p.support.Kind().String(),
		Dimension:    p.Dim(),
		Degree:       p.Degree(),
		Resolution:   p.grid.Resolution(),
		Samples:      p.grid.Len(),
		Domain:       p.domain.Clone(),
		Coefficients: make([]TermReport, len(p.coeffs)),
		Residual:     ar.String(p.residual),
		ResidualNorm: p.diag.ResidualNorm,
		MaxResidual:  p.diag.MaxResidual,
		MeanResidual: p.diag.MeanResidual,
		Condition:    strconv.FormatFloat(p.diag.Condition, 'g', 6, 64),
	}

	for j, c := range p.coeffs {
		r.Coefficients[j] = TermReport{Exponents: p.support.Index(j), Value: ar.String(c)}
	}

	for _, w := range p.diag.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}

	return
}

// Encode writes the report as indented JSON.
func (r Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("cannot Encode: %w", err)
	}
	return nil
}

// DecodeReport reads a report written by Encode.
func DecodeReport(rd io.Reader) (r Report, err error) {
	if err = json.NewDecoder(rd).Decode(&r); err != nil {
		return r, fmt.Errorf("cannot DecodeReport: %w", err)
	}
	return
}

// ErrorContext is the export shape of a failed approximation attempt.
type ErrorContext struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Degree     int    `json:"degree"`
	Dimension  int    `json:"dimension"`
	Resolution []int  `json:"resolution"`
}

// NewErrorContext returns the error context of err for the given attempt.
// Errors outside of the polyerr taxonomy are reported with the kind "Error".
func NewErrorContext(err error, degree, dim int, resolution []int) ErrorContext {

	kind := "Error"
	if k := polyerr.KindOf(err); k != 0 {
		kind = k.String()
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}

	return ErrorContext{
		Kind:       kind,
		Message:    msg,
		Degree:     degree,
		Dimension:  dim,
		Resolution: append([]int(nil), resolution...),
	}
}

// Error implements the error interface.
func (e ErrorContext) Error() string {
	return fmt.Sprintf("%s (degree=%d, dimension=%d, resolution=%v): %s", e.Kind, e.Degree, e.Dimension, e.Resolution, e.Message)
}

// Is matches the polyerr sentinel of the kind of the context.
func (e ErrorContext) Is(target error) bool {
	for _, k := range []polyerr.Kind{polyerr.Configuration, polyerr.Range, polyerr.UnderdeterminedSystem, polyerr.BasisUnsupported, polyerr.Argument} {
		if k.String() == e.Kind {
			return errors.Is(&polyerr.Error{Kind: k}, target)
		}
	}
	return false
}
