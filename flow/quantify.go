package flow

import (
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// Quantify derives theoretical, actual and efficiency rasters.
//
// sp and dp are supply and demand potentials, cost is the accumulated
// resistance from each cell to its nearest reachable demand (+Inf when none)
// and k is the decay constant. All three rasters must share a shape.
//
// Behavior highlights:
//   - NaN or non-positive potentials give zero theoretical flow.
//   - Inf or NaN cost gives zero actual flow and zero efficiency.
//   - Efficiency is clamped to [0,1].
//
// Complexity: O(R×C).
func Quantify(sp, dp, cost *raster.Raster, k float64) (*Field, error) {
	if k < 0 || math.IsNaN(k) {
		return nil, ErrNegativeDecay
	}
	if err := raster.CheckSameShape(sp, dp, cost); err != nil {
		return nil, err
	}

	f := &Field{
		Theoretical: raster.NewLike(sp),
		Actual:      raster.NewLike(sp),
		Efficiency:  raster.NewLike(sp),
	}
	for i := 0; i < sp.Len(); i++ {
		th := Theoretical(sp.AtIndex(i), dp.AtIndex(i))
		if th == 0 {
			continue
		}
		ac := Attenuate(th, cost.AtIndex(i), k)
		f.Theoretical.SetIndex(i, th)
		f.Actual.SetIndex(i, ac)
		f.Efficiency.SetIndex(i, Efficiency(th, ac))
	}
	return f, nil
}

// Theoretical is the geometric mean of the two potentials, 0 unless both are positive.
func Theoretical(supply, demand float64) float64 {
	if !(supply > 0) || !(demand > 0) || math.IsInf(supply, 0) || math.IsInf(demand, 0) {
		return 0
	}
	return math.Sqrt(supply * demand)
}

// Attenuate discounts theoretical flow by exp(−k·cost).
func Attenuate(theoretical, cost, k float64) float64 {
	if math.IsNaN(cost) || math.IsInf(cost, 1) {
		return 0
	}
	return theoretical * math.Exp(-k*cost)
}

// Efficiency returns actual/(theoretical+ε) clamped to [0,1].
func Efficiency(theoretical, actual float64) float64 {
	if theoretical <= 0 {
		return 0
	}
	e := actual / (theoretical + Epsilon)
	switch {
	case e < 0:
		return 0
	case e > 1:
		return 1
	}
	return e
}

// Summarize totals the field and combines it with consumed flow (see Usage).
func Summarize(f *Field, used float64) Summary {
	s := Summary{
		TotalTheoretical: f.Theoretical.Sum(),
		TotalActual:      f.Actual.Sum(),
		TotalUsed:        used,
	}
	s.TotalBlocked = s.TotalTheoretical - s.TotalActual
	if s.TotalTheoretical > 0 {
		s.DeliveryRatio = s.TotalActual / s.TotalTheoretical
		s.BlockRatio = 1 - s.DeliveryRatio
	}
	if s.TotalActual > 0 {
		s.UseRatio = s.TotalUsed / s.TotalActual
	}
	return s
}
