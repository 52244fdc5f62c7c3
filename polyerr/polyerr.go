// Package polyerr defines the error taxonomy shared by the approximation pipeline.
//
// Every fatal condition is reported as a *Error carrying a Kind. Callers match
// kinds with errors.Is against the package sentinels, which keeps working
// through fmt.Errorf("cannot X: %w", err) wrapping:
//
//	if errors.Is(err, polyerr.ErrUnderdetermined) { ... }
//
// Ill-conditioning is not an error: it is surfaced as an IllConditionedWarning
// stored in the diagnostics of a successful approximation.
package polyerr

import (
	"errors"
	"fmt"
)

// Kind enumerates the fatal error classes.
type Kind int

const (
	// Configuration: invalid degree/dimension/sample-count combination,
	// detected before any numeric work.
	Configuration = Kind(iota + 1)
	// Range: a value cannot be represented in the target numeric type.
	Range
	// UnderdeterminedSystem: fewer samples than basis functions.
	UnderdeterminedSystem
	// BasisUnsupported: no node generator for the requested basis,
	// resolution and precision.
	BasisUnsupported
	// Argument: a lookup outside of what was precomputed.
	Argument
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrRange            = errors.New("range error")
	ErrUnderdetermined  = errors.New("underdetermined system")
	ErrBasisUnsupported = errors.New("basis unsupported")
	ErrArgument         = errors.New("argument error")
)

var kindNames = map[Kind]string{
	Configuration:         "ConfigurationError",
	Range:                 "RangeError",
	UnderdeterminedSystem: "UnderdeterminedSystemError",
	BasisUnsupported:      "BasisUnsupportedError",
	Argument:              "ArgumentError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case Configuration:
		return ErrConfiguration
	case Range:
		return ErrRange
	case UnderdeterminedSystem:
		return ErrUnderdetermined
	case BasisUnsupported:
		return ErrBasisUnsupported
	case Argument:
		return ErrArgument
	}
	return nil
}

// Error is a fatal pipeline error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Msg)
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Configurationf returns a ConfigurationError.
func Configurationf(format string, args ...interface{}) error {
	return newError(Configuration, format, args...)
}

// RangeErrorf returns a RangeError naming the value and the target type.
func RangeErrorf(value interface{}, target string) error {
	return newError(Range, "value %v is not representable as %s", value, target)
}

// Underdetermined returns an UnderdeterminedSystemError stating both counts.
func Underdetermined(samples, support int) error {
	return newError(UnderdeterminedSystem, "samples < support size (%d < %d)", samples, support)
}

// BasisUnsupportedf returns a BasisUnsupportedError.
func BasisUnsupportedf(format string, args ...interface{}) error {
	return newError(BasisUnsupported, format, args...)
}

// Argumentf returns an ArgumentError.
func Argumentf(format string, args ...interface{}) error {
	return newError(Argument, format, args...)
}

// IllConditionedWarning is the non-fatal diagnostic recorded when the
// condition number estimate of a design matrix exceeds the advisory threshold.
type IllConditionedWarning struct {
	Condition float64
	Threshold float64
}

func (w IllConditionedWarning) String() string {
	return fmt.Sprintf("IllConditionedWarning: condition number %.3e exceeds %.3e", w.Condition, w.Threshold)
}
