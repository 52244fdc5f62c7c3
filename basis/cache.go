package basis

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/precision"
	"github.com/polyopt/polyopt/utils/bignum"
)

// Table stores the values of the first Degree()+1 basis polynomials at every
// node of a one-dimensional node set. A Table is immutable once published.
type Table[T any] struct {
	family bignum.Basis
	values [][]T // values[k][node]
}

// Family returns the basis family of the table.
func (t Table[T]) Family() bignum.Basis {
	return t.family
}

// Degree returns the largest degree stored in the table.
func (t Table[T]) Degree() int {
	return len(t.values) - 1
}

// Nodes returns the number of nodes of the table.
func (t Table[T]) Nodes() int {
	if len(t.values) == 0 {
		return 0
	}
	return len(t.values[0])
}

// At returns the value of the basis polynomial of the given degree at the given node.
// The returned value is shared and must not be mutated.
func (t Table[T]) At(degree, node int) (v T, err error) {
	if degree < 0 || degree > t.Degree() {
		return v, polyerr.Argumentf("degree %d is outside of the table [0, %d]", degree, t.Degree())
	}
	if node < 0 || node >= t.Nodes() {
		return v, polyerr.Argumentf("node %d is outside of the table [0, %d)", node, t.Nodes())
	}
	return t.values[degree][node], nil
}

type cacheKey struct {
	family      bignum.Basis
	prec        precision.Precision
	bits        uint
	fingerprint [32]byte
}

// Cache memoizes evaluation tables per (basis family, precision, node set).
// It is safe for concurrent use and is meant to be shared by reference
// between the approximations of a same engine.
type Cache[T any] struct {
	mu     sync.RWMutex
	tables map[cacheKey]*Table[T]
}

// NewCache returns an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{tables: map[cacheKey]*Table[T]{}}
}

// Len returns the number of node sets stored in the cache.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Table returns a table of degree at least degree for the given node set,
// evaluating it if it is absent or too small. Concurrent misses may evaluate
// the same table twice; the results are identical and the largest is kept.
func (c *Cache[T]) Table(ar precision.Arithmetic[T], family bignum.Basis, nodes []T, degree int) (*Table[T], error) {

	if degree < 0 {
		return nil, polyerr.Argumentf("negative degree %d", degree)
	}

	key := cacheKey{
		family:      family,
		prec:        ar.Precision(),
		bits:        ar.Bits(),
		fingerprint: fingerprint(ar, nodes),
	}

	c.mu.RLock()
	t, ok := c.tables[key]
	c.mu.RUnlock()

	if ok && t.Degree() >= degree {
		return t, nil
	}

	t, err := evaluate(ar, family, nodes, degree)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.tables[key]; ok && old.Degree() >= t.Degree() {
		return old, nil
	}

	c.tables[key] = t

	return t, nil
}

func evaluate[T any](ar precision.Arithmetic[T], family bignum.Basis, nodes []T, degree int) (*Table[T], error) {

	values := make([][]T, degree+1)
	for k := range values {
		values[k] = make([]T, len(nodes))
	}

	for i, x := range nodes {
		poly, err := ar.EvaluateBasis(family, degree, x)
		if err != nil {
			return nil, err
		}
		for k := range values {
			values[k][i] = poly[k]
		}
	}

	return &Table[T]{family: family, values: values}, nil
}

// fingerprint hashes the canonical string representation of the node set.
func fingerprint[T any](ar precision.Arithmetic[T], nodes []T) (sum [32]byte) {
	hasher := blake3.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(nodes)))
	hasher.Write(buf[:])
	for _, x := range nodes {
		s := ar.String(x)
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		hasher.Write(buf[:])
		hasher.Write([]byte(s))
	}
	copy(sum[:], hasher.Sum(nil))
	return
}
