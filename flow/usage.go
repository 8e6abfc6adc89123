package flow

import "fmt"

// Usage folds deliveries into consumed flow. Each demand node consumes at most
// its capacity; the result is the sum over nodes of min(inflow, capacity).
// Negative amounts are ignored.
func Usage(deliveries []Delivery, capacity []float64) (float64, error) {
	inflow := make([]float64, len(capacity))
	for _, d := range deliveries {
		if d.Demand < 0 || d.Demand >= len(capacity) {
			return 0, fmt.Errorf("%w: %d (have %d)", ErrDemandIndex, d.Demand, len(capacity))
		}
		if d.Amount > 0 {
			inflow[d.Demand] += d.Amount
		}
	}
	var used float64
	for i, in := range inflow {
		c := capacity[i]
		if c < 0 {
			c = 0
		}
		if in < c {
			used += in
		} else {
			used += c
		}
	}
	return used, nil
}
