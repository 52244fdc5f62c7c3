// Package sampling implements deterministic sampling of floating point values.
package sampling

import (
	"encoding/binary"
	"fmt"
)

// Float64 reads 8 bytes from prng and returns a float in [min, max).
func Float64(prng PRNG, min, max float64) (float64, error) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		return 0, fmt.Errorf("cannot Float64: %w", err)
	}
	// 53 random bits in [0, 1).
	f := float64(binary.LittleEndian.Uint64(b)>>11) / (1 << 53)
	return min + f*(max-min), nil
}

// Points returns n points of the given dimension with coordinates uniformly
// distributed in [min, max).
func Points(prng PRNG, n, dim int, min, max float64) (points [][]float64, err error) {
	points = make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, dim)
		for j := range points[i] {
			if points[i][j], err = Float64(prng, min, max); err != nil {
				return nil, err
			}
		}
	}
	return
}
