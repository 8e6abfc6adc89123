package spatial

import (
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

func valid(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// MoranI computes global Moran's I of r.
//
//	I = (n/S0) · Σ_ij w_ij z_i z_j / Σ_i z_i²
//
// with w_ij = 1 for 8-adjacent valid cells. Fewer than two valid cells, no
// adjacency or zero variance return I = 0, Z = 0, P = 1.
func MoranI(r *raster.Raster) (Moran, error) {
	if r == nil {
		return Moran{}, ErrNilRaster
	}
	mean, _, n := r.MeanStd()
	out := Moran{N: n, P: 1}
	if n < 2 {
		return out, nil
	}
	out.Expected = -1 / float64(n-1)

	var (
		num, den float64
		s0, s2   float64
	)
	for idx := 0; idx < r.Len(); idx++ {
		v := r.AtIndex(idx)
		if !valid(v) {
			continue
		}
		zi := v - mean
		den += zi * zi
		k := 0.0
		for _, q := range r.Neighbors(r.Point(idx), raster.Conn8) {
			u := r.At(q)
			if !valid(u) {
				continue
			}
			k++
			num += zi * (u - mean)
		}
		s0 += k
		s2 += 4 * k * k
	}
	if s0 == 0 || den == 0 {
		return out, nil
	}

	nf := float64(n)
	s1 := 2 * s0
	out.I = nf / s0 * num / den
	out.Variance = (nf*nf*s1-nf*s2+3*s0*s0)/((nf*nf-1)*s0*s0) - out.Expected*out.Expected
	if out.Variance > 0 {
		out.Z = (out.I - out.Expected) / math.Sqrt(out.Variance)
		out.P = math.Erfc(math.Abs(out.Z) / math.Sqrt2)
	}
	return out, nil
}
