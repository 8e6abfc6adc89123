package flow

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/spanflow/raster"
)

// Inputs carries what a potential model may read.
// Supply and Demand are the raw rasters; SupplyCells and DemandCells are the
// classified nodes. Nearest maps each row-major cell index to the index of its
// nearest reachable demand cell (or -1).
type Inputs struct {
	Supply, Demand *raster.Raster
	SupplyCells    []raster.Point
	DemandCells    []raster.Point
	Nearest        []int
}

// Model turns raw supply and demand into the potentials fed to Quantify.
type Model interface {
	Potentials(in Inputs) (sp, dp *raster.Raster, err error)
}

// ModelFunc adapts a function to Model.
type ModelFunc func(in Inputs) (sp, dp *raster.Raster, err error)

// Potentials implements Model.
func (f ModelFunc) Potentials(in Inputs) (*raster.Raster, *raster.Raster, error) { return f(in) }

// Built-in model names.
const (
	ModelReachable = "reachable"
	ModelLocal     = "local"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Model{
		ModelReachable: ModelFunc(reachablePotentials),
		ModelLocal:     ModelFunc(localPotentials),
	}
)

// Register adds or replaces a named model.
func Register(name string, m Model) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = m
}

// Lookup returns the model registered under name.
func Lookup(name string) (Model, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return m, nil
}

// Models lists registered model names in sorted order.
func Models() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// localPotentials uses the raw rasters cell by cell.
func localPotentials(in Inputs) (*raster.Raster, *raster.Raster, error) {
	if err := raster.CheckSameShape(in.Supply, in.Demand); err != nil {
		return nil, nil, err
	}
	return in.Supply.Clone(), in.Demand.Clone(), nil
}

// reachablePotentials keeps supply on supply cells and pairs each with the
// demand of its nearest reachable demand cell.
func reachablePotentials(in Inputs) (*raster.Raster, *raster.Raster, error) {
	if err := raster.CheckSameShape(in.Supply, in.Demand); err != nil {
		return nil, nil, err
	}
	if len(in.Nearest) != in.Supply.Len() {
		return nil, nil, fmt.Errorf("flow: nearest index covers %d cells, raster has %d", len(in.Nearest), in.Supply.Len())
	}
	sp := raster.NewLike(in.Supply)
	dp := raster.NewLike(in.Supply)
	for _, p := range in.SupplyCells {
		idx := in.Supply.Index(p)
		sp.SetIndex(idx, in.Supply.AtIndex(idx))
		if n := in.Nearest[idx]; n >= 0 && n < len(in.DemandCells) {
			dp.SetIndex(idx, in.Demand.At(in.DemandCells[n]))
		}
	}
	return sp, dp, nil
}
