package grid

import (
	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils"
	"github.com/polyopt/polyopt/utils/bignum"
)

// MaxTabulatedLegendre is the largest number of Legendre nodes computed in
// arbitrary precision. Larger node sets are computed in float64.
const MaxTabulatedLegendre = 20

// nodeBits is the minimum precision at which the nodes are computed before
// being cast to the target carrier.
const nodeBits = 128

// Nodes returns the res+1 nodes of the given family on [-1, 1], in descending
// order, cast to the carrier of ar.
func Nodes[T any](ar precision.Arithmetic[T], family bignum.Basis, res int, opts Options) (nodes []T, err error) {

	if res < 0 {
		return nil, polyerr.Configurationf("negative resolution %d", res)
	}

	n := res + 1

	prec := utils.Max(ar.Bits(), nodeBits)

	var values []interface{}

	switch family {
	case bignum.Chebyshev:
		values = chebyshevNodes(n, prec)
	case bignum.Legendre:
		if n > MaxTabulatedLegendre {
			if opts.Strict {
				return nil, polyerr.BasisUnsupportedf("legendre nodes for resolution %d exceed the arbitrary precision table (%d nodes)", res, MaxTabulatedLegendre)
			}
			for _, x := range bignum.LegendreRootsFloat64(n) {
				values = append(values, x)
			}
		} else {
			for _, x := range bignum.LegendreRootsBigFloat(n, prec) {
				values = append(values, x)
			}
		}
	default:
		return nil, polyerr.BasisUnsupportedf("no node generator for basis %s", family)
	}

	nodes = make([]T, n)

	// Casting only the upper half and negating keeps the node set exactly
	// symmetric after rounding or rationalization.
	for k := 0; k < n/2; k++ {
		if nodes[k], err = ar.Cast(values[k]); err != nil {
			return nil, err
		}
		nodes[n-1-k] = ar.Neg(nodes[k])
	}

	if n&1 == 1 {
		nodes[n/2] = ar.Zero()
	}

	return
}

// chebyshevNodes returns cos((2k+1)pi/(2n)) for k = 0, ..., n-1.
// Only the first half is computed; the remaining entries are nil.
func chebyshevNodes(n int, prec uint) (nodes []interface{}) {

	pi := bignum.Pi(prec)

	den := bignum.NewFloat(2*n, prec)

	nodes = make([]interface{}, n)
	for k := 0; k < n/2; k++ {
		theta := bignum.NewFloat(2*k+1, prec)
		theta.Mul(theta, pi)
		theta.Quo(theta, den)
		nodes[k] = bignum.Cos(theta)
	}

	return
}
