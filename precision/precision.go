// Package precision implements the numeric precision policy of the approximation pipeline.
//
// A Precision tag names one of the supported numeric types. Each tag is served
// by a strategy implementing Arithmetic[T] for its carrier type T:
//
//	NativeFloat, Adaptive          -> float64     (NewNative, NewAdaptive)
//	ArbitraryFloat                 -> *big.Float  (NewFloat)
//	ExactRational, ArbitraryInteger -> *big.Rat   (NewRational, NewInteger)
//
// The strategy is selected once at pipeline entry and threaded explicitly through
// the grid generator, the Vandermonde builder, the coefficient solver and the
// basis converter, so that no value is ever silently downcast.
//
// Adaptive samples and solves in NativeFloat and only widens to ArbitraryFloat,
// at WidenedBits(degree) bits, during basis conversion and coefficient magnitude
// classification.
package precision

import (
	"fmt"
	"strings"
)

// Precision is the closed set of numeric precision tags.
type Precision int

const (
	NativeFloat = Precision(iota)
	ExactRational
	ArbitraryFloat
	ArbitraryInteger
	Adaptive
)

// MinWidenedBits is the floor of the ArbitraryFloat precision used by Adaptive.
const MinWidenedBits = 256

// DefaultFloatBits is the default precision of the ArbitraryFloat strategy.
const DefaultFloatBits = 256

var precisionNames = []string{"NativeFloat", "ExactRational", "ArbitraryFloat", "ArbitraryInteger", "Adaptive"}

// short names used in configuration files.
var precisionKeys = []string{"native", "rational", "float", "integer", "adaptive"}

func (p Precision) String() string {
	if p.Valid() {
		return precisionNames[p]
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// Valid returns true if p is one of the defined tags.
func (p Precision) Valid() bool {
	return p >= NativeFloat && p <= Adaptive
}

// IsExact returns true for the tags whose arithmetic incurs no rounding.
func (p Precision) IsExact() bool {
	return p == ExactRational || p == ArbitraryInteger
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot MarshalText: invalid precision %d", int(p))
	}
	return []byte(precisionKeys[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both the short
// configuration names and the tag names are accepted, case-insensitively.
func (p *Precision) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i := range precisionKeys {
		if s == precisionKeys[i] || s == strings.ToLower(precisionNames[i]) {
			*p = Precision(i)
			return nil
		}
	}
	return fmt.Errorf("cannot UnmarshalText: unknown precision %q", s)
}

// WidenedBits returns the ArbitraryFloat bit-width used by Adaptive for a
// polynomial of the given degree: 4*degree bits, with a floor of MinWidenedBits.
func WidenedBits(degree int) uint {
	if bits := 4 * degree; bits > MinWidenedBits {
		return uint(bits)
	}
	return MinWidenedBits
}
