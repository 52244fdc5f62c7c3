package bignum

import (
	"math/big"
)

// LCM returns the least common multiple of a and b, both positive.
func LCM(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	l := new(big.Int).Quo(a, g)
	return l.Mul(l, b)
}
