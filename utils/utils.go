// Package utils implements various helper functions.
package utils

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Max returns the maximum of a and b.
func Max[V constraints.Ordered](a, b V) V {
	if a >= b {
		return a
	}
	return b
}

// Min returns the minimum of a and b.
func Min[V constraints.Ordered](a, b V) V {
	if a <= b {
		return a
	}
	return b
}

// Sum returns the sum of the elements of slice.
func Sum[V constraints.Integer | constraints.Float](slice []V) (s V) {
	for _, v := range slice {
		s += v
	}
	return
}

// Product returns the product of the elements of slice.
// It returns an error if the product overflows an int.
func Product(slice []int) (p int, err error) {
	const maxInt = int(^uint(0) >> 1)
	p = 1
	for _, v := range slice {
		if v < 0 {
			return 0, fmt.Errorf("cannot Product: negative factor %d", v)
		}
		if v != 0 && p > maxInt/v {
			return 0, fmt.Errorf("cannot Product: overflow")
		}
		p *= v
	}
	return
}

// Clone2D returns a copy of the input matrix. The inner elements are copied by value.
func Clone2D[V any](m [][]V) (c [][]V) {
	c = make([][]V, len(m))
	for i := range m {
		c[i] = make([]V, len(m[i]))
		copy(c[i], m[i])
	}
	return
}
