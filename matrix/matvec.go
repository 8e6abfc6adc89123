// SPDX-License-Identifier: MIT

package matrix

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf("MatVec", ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf("MatVec", ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	var acc, xv float64
	for i := 0; i < m.r; i++ {
		acc = 0
		base := i * m.c
		for j := 0; j < m.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += m.data[base+j] * xv
			}
		}
		y[i] = acc
	}
	return y, nil
}
