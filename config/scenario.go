package config

import (
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/katalvlaran/spanflow/raster"
)

// Synthetic describes a seeded random landscape.
type Synthetic struct {
	Rows int   `yaml:"rows" validate:"gte=1"`
	Cols int   `yaml:"cols" validate:"gte=1"`
	Seed int64 `yaml:"seed"`
	// Smooth is the box-filter radius applied to supply and demand.
	Smooth int `yaml:"smooth" validate:"gte=0"`
	// MaxResistance scales resistance into [1, MaxResistance] (default 5).
	MaxResistance float64 `yaml:"max_resistance" validate:"omitempty,gte=1"`
}

// Landscape holds the raw grids of a scenario. Either all three inline grids
// or Synthetic must be set.
type Landscape struct {
	CellWidth  float64     `yaml:"cell_width" validate:"gte=0"`
	CellHeight float64     `yaml:"cell_height" validate:"gte=0"`
	Supply     [][]float64 `yaml:"supply"`
	Demand     [][]float64 `yaml:"demand"`
	Resistance [][]float64 `yaml:"resistance"`
	Synthetic  *Synthetic  `yaml:"synthetic"`
}

// Scenario is a run configuration plus its landscape.
type Scenario struct {
	Config    `yaml:",inline"`
	Landscape Landscape `yaml:"landscape"`
}

// Grids holds the decoded rasters of a scenario.
type Grids struct {
	Supply, Demand, Resistance *raster.Raster
}

// ParseScenario decodes a scenario over Default and validates it.
func ParseScenario(in io.Reader) (Scenario, error) {
	sc := Scenario{Config: Default()}
	if err := decode(in, &sc); err != nil {
		return Scenario{}, err
	}
	if err := validate.Struct(sc); err != nil {
		return Scenario{}, formatValidationError(err)
	}
	l := sc.Landscape
	inline := l.Supply != nil || l.Demand != nil || l.Resistance != nil
	switch {
	case inline && l.Synthetic != nil:
		return Scenario{}, errors.New("config: landscape sets both inline grids and synthetic")
	case !inline && l.Synthetic == nil:
		return Scenario{}, errors.New("config: landscape needs inline grids or synthetic")
	}
	return sc, nil
}

// LoadScenario reads and parses the scenario file at path.
func LoadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "config: open scenario")
	}
	defer f.Close()
	return ParseScenario(f)
}

// Grids builds the scenario rasters. Inline grids must share one shape.
func (l Landscape) Grids() (Grids, error) {
	var (
		g   Grids
		err error
	)
	if l.Synthetic != nil {
		g = l.Synthetic.generate()
	} else {
		if g.Supply, err = raster.FromRows(l.Supply); err != nil {
			return Grids{}, errors.Wrap(err, "config: supply")
		}
		if g.Demand, err = raster.FromRows(l.Demand); err != nil {
			return Grids{}, errors.Wrap(err, "config: demand")
		}
		if g.Resistance, err = raster.FromRows(l.Resistance); err != nil {
			return Grids{}, errors.Wrap(err, "config: resistance")
		}
	}
	for _, r := range []*raster.Raster{g.Supply, g.Demand, g.Resistance} {
		if l.CellWidth > 0 {
			r.CellWidth = l.CellWidth
		}
		if l.CellHeight > 0 {
			r.CellHeight = l.CellHeight
		}
	}
	return g, nil
}

// generate draws supply and demand as smoothed noise raised to a power so
// that a few patches dominate, and resistance as uniform noise.
func (s *Synthetic) generate() Grids {
	rng := rand.New(rand.NewSource(s.Seed))
	top := s.MaxResistance
	if top < 1 {
		top = 5
	}
	supply, _ := raster.Random(rng, s.Rows, s.Cols)
	demand, _ := raster.Random(rng, s.Rows, s.Cols)
	res, _ := raster.Random(rng, s.Rows, s.Cols)

	supply = smooth(supply, s.Smooth)
	demand = smooth(demand, s.Smooth)
	for i := 0; i < res.Len(); i++ {
		supply.SetIndex(i, math.Pow(supply.AtIndex(i), 3))
		demand.SetIndex(i, math.Pow(demand.AtIndex(i), 3))
		res.SetIndex(i, 1+(top-1)*res.AtIndex(i))
	}
	return Grids{Supply: supply, Demand: demand, Resistance: res}
}

// smooth replaces each cell with the mean of its (2·radius+1)² window.
func smooth(r *raster.Raster, radius int) *raster.Raster {
	if radius <= 0 {
		return r
	}
	out := raster.NewLike(r)
	for i := 0; i < r.Len(); i++ {
		win := r.Window(r.Point(i), radius)
		var sum float64
		for _, q := range win {
			sum += r.At(q)
		}
		out.SetIndex(i, sum/float64(len(win)))
	}
	return out
}
