package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareSlices(t *testing.T) {
	require.Equal(t, 0, CompareSlices([]int{1, 2}, []int{1, 2}))
	require.Equal(t, -1, CompareSlices([]int{1, 2}, []int{1, 3}))
	require.Equal(t, 1, CompareSlices([]int{2}, []int{1, 3}))
	require.Equal(t, -1, CompareSlices([]int{1}, []int{1, 0}))
}

func TestUnravel(t *testing.T) {
	shape := []int{2, 3, 4}
	idx := make([]int, 3)
	for i := 0; i < 24; i++ {
		Unravel(i, shape, idx)
		require.Equal(t, i, (idx[0]*3+idx[1])*4+idx[2])
	}
	Unravel(5, shape, idx)
	require.Equal(t, []int{0, 1, 1}, idx)
	require.Panics(t, func() { Unravel(0, shape, idx[:2]) })
}
