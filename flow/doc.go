// Package flow converts supply and demand potentials plus routed costs into
// flow rasters and run-level totals.
//
// For every cell:
//
//	theoretical = sqrt(supplyPotential · demandPotential)      (0 if either ≤ 0)
//	actual      = theoretical · exp(−k · costToNearestDemand)  (0 if unreachable)
//	efficiency  = actual / (theoretical + ε)                   (0 if theoretical = 0)
//
// Summary totals:
//
//	TotalBlocked  = TotalTheoretical − TotalActual
//	DeliveryRatio = TotalActual / TotalTheoretical
//	UseRatio      = TotalUsed / TotalActual
//	BlockRatio    = 1 − DeliveryRatio
//
// Potentials come from a Model selected by name ("reachable" or "local"),
// so domain-specific services plug in without touching the quantifier.
// Usage folds deliveries into consumed flow, capped per demand node; the
// benefit type (rival, non-rival) decides which deliveries a caller builds.
//
// Errors:
//
//   - ErrNegativeDecay: k < 0.
//   - ErrUnknownModel: no Model registered under the requested name.
//   - ErrDemandIndex: a Delivery references a demand node outside the capacity slice.
package flow
