package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	require.Equal(t, 3, Max(2, 3))
	require.Equal(t, 2, Min(2, 3))
	require.Equal(t, 6, Sum([]int{1, 2, 3}))
}

func TestProduct(t *testing.T) {
	p, err := Product([]int{2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 24, p)

	p, err = Product(nil)
	require.NoError(t, err)
	require.Equal(t, 1, p)

	_, err = Product([]int{1 << 40, 1 << 40})
	require.Error(t, err)

	_, err = Product([]int{-1})
	require.Error(t, err)
}

func TestClone2D(t *testing.T) {
	m := [][]int{{1, 2}, {3}}
	c := Clone2D(m)
	c[0][0] = 9
	require.Equal(t, 1, m[0][0])
	require.Equal(t, [][]int{{9, 2}, {3}}, c)
}
