// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense APSP (Floyd–Warshall) with deterministic loop order, in place.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import (
	"context"
	"math"
)

const opFloydWarshall = "FloydWarshall"

// DistancesFromWeights builds an n×n distance table from a weight table.
// conv maps a positive weight to a distance; zero or non-finite weights mean
// "no edge" and become +Inf. The diagonal is 0.
func DistancesFromWeights(w *Dense, conv func(float64) float64) (*Dense, error) {
	if w == nil {
		return nil, matrixErrorf(opFloydWarshall, ErrNilMatrix)
	}
	if w.r != w.c {
		return nil, matrixErrorf(opFloydWarshall, ErrNonSquare)
	}
	n := w.r
	d := &Dense{r: n, c: n, data: make([]float64, n*n)}
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := w.data[i*n+j]
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				d.data[i*n+j] = inf
				continue
			}
			dist := conv(v)
			if dist < 0 || math.IsNaN(dist) {
				dist = inf
			}
			d.data[i*n+j] = dist
		}
	}
	return d, nil
}

// floydWarshallInPlace runs the APSP closure on d, checking ctx once per
// intermediate vertex k.
//
// Loop order is fixed (k → i → j) for deterministic accumulation.
func floydWarshallInPlace(ctx context.Context, d *Dense) error {
	n := d.r
	data := d.data
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	for k = 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] { // strict improvement only
					data[baseI+j] = cand
				}
			}
		}
	}
	return nil
}

// FloydWarshall computes all-pairs shortest paths in place on m.
//
// Contract:
//   - m must be square; +Inf denotes "no edge" off-diagonal; the diagonal MUST be 0.
//   - Cancelling ctx aborts between outer iterations and leaves m partially relaxed.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNegativeCycle, ctx.Err().
//
// Complexity: Time O(n^3), Extra space O(1).
func FloydWarshall(ctx context.Context, m *Dense) error {
	if m == nil {
		return matrixErrorf(opFloydWarshall, ErrNilMatrix)
	}
	if m.r != m.c {
		return matrixErrorf(opFloydWarshall, ErrNonSquare)
	}
	if err := floydWarshallInPlace(ctx, m); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		if m.data[i*m.r+i] < 0 {
			return matrixErrorf(opFloydWarshall, ErrNegativeCycle)
		}
	}
	return nil
}
