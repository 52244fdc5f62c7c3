package utils

import (
	"golang.org/x/exp/constraints"
)

// CompareSlices compares a and b lexicographically and returns -1, 0 or 1.
// A strict prefix compares as smaller.
func CompareSlices[T constraints.Ordered](a, b []T) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Unravel writes in idx the row-major multi-index of the flat index i
// for the given shape, the last axis varying fastest.
func Unravel(i int, shape, idx []int) {
	if len(idx) != len(shape) {
		panic("cannot Unravel: len(idx) != len(shape)")
	}
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = i % shape[d]
		i /= shape[d]
	}
}
