package bignum

import (
	"fmt"
	"strings"
)

// Basis is a type for the polynomials basis
type Basis int

const (
	// Monomial : x^(a+b) = x^a * x^b
	Monomial = Basis(0)
	// Chebyshev : T_(a+b) = 2 * T_a * T_b - T_(|a-b|)
	Chebyshev = Basis(1)
	// Legendre : (k+1) * P_(k+1) = (2k+1) * x * P_k - k * P_(k-1)
	Legendre = Basis(2)
)

var basisNames = []string{"monomial", "chebyshev", "legendre"}

func (b Basis) String() string {
	if b >= 0 && int(b) < len(basisNames) {
		return basisNames[b]
	}
	return fmt.Sprintf("Basis(%d)", int(b))
}

// IsOrthogonal returns true if b is one of the orthogonal bases.
func (b Basis) IsOrthogonal() bool {
	return b == Chebyshev || b == Legendre
}

// MarshalText implements encoding.TextMarshaler.
func (b Basis) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(basisNames) {
		return nil, fmt.Errorf("cannot MarshalText: invalid basis %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Basis) UnmarshalText(p []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	for i, name := range basisNames {
		if s == name {
			*b = Basis(i)
			return nil
		}
	}
	return fmt.Errorf("cannot UnmarshalText: unknown basis %q", s)
}
