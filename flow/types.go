package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/spanflow/raster"
)

// Sentinel errors for flow quantification.
var (
	// ErrNegativeDecay indicates a negative decay constant.
	ErrNegativeDecay = errors.New("flow: decay constant must be non-negative")

	// ErrUnknownModel indicates an unregistered potential model name.
	ErrUnknownModel = errors.New("flow: unknown flow model")

	// ErrDemandIndex indicates a delivery to a demand node that does not exist.
	ErrDemandIndex = errors.New("flow: demand index out of range")
)

// Epsilon keeps the efficiency ratio finite.
const Epsilon = 1e-12

// Benefit describes whether a unit of supply can serve one or many beneficiaries.
type Benefit string

const (
	// Rival benefits are consumed once: supply goes to the nearest demand only.
	Rival Benefit = "rival"
	// NonRival benefits serve every reachable beneficiary.
	NonRival Benefit = "non-rival"
)

// ParseBenefit maps a configuration string to a Benefit.
func ParseBenefit(s string) (Benefit, error) {
	switch Benefit(s) {
	case Rival, NonRival:
		return Benefit(s), nil
	}
	return "", fmt.Errorf("flow: unknown benefit type %q", s)
}

// Field bundles the three per-cell flow rasters of a run.
type Field struct {
	Theoretical *raster.Raster
	Actual      *raster.Raster
	Efficiency  *raster.Raster
}

// Summary holds run-level totals. Ratios with a zero denominator are 0.
type Summary struct {
	TotalTheoretical float64 `json:"total_theoretical"`
	TotalActual      float64 `json:"total_actual"`
	TotalUsed        float64 `json:"total_used"`
	TotalBlocked     float64 `json:"total_blocked"`
	DeliveryRatio    float64 `json:"delivery_ratio"`
	UseRatio         float64 `json:"use_ratio"`
	BlockRatio       float64 `json:"block_ratio"`
}

// Delivery is an amount of actual flow arriving at one demand node.
type Delivery struct {
	Demand int
	Amount float64
}
