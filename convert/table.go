package convert

import (
	"math/big"
	"sync"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Table stores the exact monomial expansions of the Chebyshev and Legendre
// polynomials. Expansions are computed on demand from their closed forms and
// never evicted. A Table is safe for concurrent use.
type Table struct {
	mu        sync.RWMutex
	chebyshev [][]*big.Rat
	legendre  [][]*big.Rat
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Expansion returns the coefficients [a_0, ..., a_k] such that the basis
// polynomial of degree k of the given family is sum a_i x^i.
// The returned values are shared and must not be mutated.
func (t *Table) Expansion(family bignum.Basis, k int) ([]*big.Rat, error) {

	if k < 0 {
		return nil, polyerr.Argumentf("negative degree %d", k)
	}

	var expansion func(k int) []*big.Rat

	switch family {
	case bignum.Monomial:
		e := zeros(k + 1)
		e[k].SetInt64(1)
		return e, nil
	case bignum.Chebyshev:
		expansion = chebyshevExpansion
	case bignum.Legendre:
		expansion = legendreExpansion
	default:
		return nil, polyerr.BasisUnsupportedf("no monomial expansion for basis %s", family)
	}

	t.mu.RLock()
	if e := t.get(family, k); e != nil {
		t.mu.RUnlock()
		return e, nil
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.list(family)
	for i := len(*list); i <= k; i++ {
		*list = append(*list, expansion(i))
	}

	return (*list)[k], nil
}

// Len returns the number of expansions stored for the given family.
func (t *Table) Len(family bignum.Basis) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if list := t.list(family); list != nil {
		return len(*list)
	}
	return 0
}

func (t *Table) list(family bignum.Basis) *[][]*big.Rat {
	switch family {
	case bignum.Chebyshev:
		return &t.chebyshev
	case bignum.Legendre:
		return &t.legendre
	}
	return nil
}

func (t *Table) get(family bignum.Basis, k int) []*big.Rat {
	if list := *t.list(family); k < len(list) {
		return list[k]
	}
	return nil
}

// chebyshevExpansion returns the monomial coefficients of T_k:
// [x^(k-2m)] T_k = (-1)^m * k * binomial(k-m, m) * 2^(k-2m) / (2(k-m)).
func chebyshevExpansion(k int) (e []*big.Rat) {

	e = zeros(k + 1)

	if k == 0 {
		e[0].SetInt64(1)
		return
	}

	for m := 0; 2*m <= k; m++ {
		num := new(big.Int).Binomial(int64(k-m), int64(m))
		num.Mul(num, big.NewInt(int64(k)))
		num.Lsh(num, uint(k-2*m))
		if m&1 == 1 {
			num.Neg(num)
		}
		e[k-2*m].SetFrac(num, big.NewInt(int64(2*(k-m))))
	}

	return
}

// legendreExpansion returns the monomial coefficients of P_k:
// [x^(k-2m)] P_k = (-1)^m * binomial(k, m) * binomial(2k-2m, k) / 2^k.
func legendreExpansion(k int) (e []*big.Rat) {

	e = zeros(k + 1)

	den := new(big.Int).Lsh(big.NewInt(1), uint(k))

	for m := 0; 2*m <= k; m++ {
		num := new(big.Int).Binomial(int64(k), int64(m))
		num.Mul(num, new(big.Int).Binomial(int64(2*k-2*m), int64(k)))
		if m&1 == 1 {
			num.Neg(num)
		}
		e[k-2*m].SetFrac(num, den)
	}

	return
}

func zeros(n int) (z []*big.Rat) {
	z = make([]*big.Rat, n)
	for i := range z {
		z[i] = new(big.Rat)
	}
	return
}
