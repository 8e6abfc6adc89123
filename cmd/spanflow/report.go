package main

import (
	"math"
	"strconv"

	"github.com/katalvlaran/spanflow/engine"
	"github.com/katalvlaran/spanflow/flow"
)

// number encodes NaN and ±Inf as JSON null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type graphReport struct {
	Nodes             int      `json:"nodes"`
	Edges             int      `json:"edges"`
	Density           number   `json:"density"`
	Clustering        number   `json:"clustering"`
	Components        int      `json:"components"`
	Connectivity      number   `json:"connectivity"`
	AveragePathLength number   `json:"average_path_length"`
	Diameter          number   `json:"diameter"`
	GlobalEfficiency  number   `json:"global_efficiency"`
	Communities       int      `json:"communities"`
	Modularity        number   `json:"modularity"`
	CriticalFraction  number   `json:"critical_fraction"`
	Skipped           []string `json:"skipped,omitempty"`
}

type spatialReport struct {
	MoranI number `json:"moran_i"`
	MoranZ number `json:"moran_z"`
	MoranP number `json:"moran_p"`
	Hot    int    `json:"hot_spots"`
	Cold   int    `json:"cold_spots"`
}

type report struct {
	RunID       string        `json:"run_id"`
	SupplyCells int           `json:"supply_cells"`
	DemandCells int           `json:"demand_cells"`
	Pairs       int           `json:"pairs"`
	Summary     flow.Summary  `json:"summary"`
	Graph       graphReport   `json:"graph"`
	Spatial     spatialReport `json:"spatial"`
}

func newReport(res *engine.Result) report {
	rep := report{
		RunID:       res.RunID.String(),
		SupplyCells: len(res.SupplyCells),
		DemandCells: len(res.DemandCells),
		Pairs:       len(res.Pairs),
		Summary:     res.Summary,
	}
	if m := res.Metrics; m != nil {
		rep.Graph = graphReport{
			Nodes:             m.Nodes,
			Edges:             m.Edges,
			Density:           number(m.Density),
			Clustering:        number(m.Clustering),
			Components:        m.Components,
			Connectivity:      number(m.Connectivity),
			AveragePathLength: number(m.AveragePathLength),
			Diameter:          number(m.Diameter),
			GlobalEfficiency:  number(m.GlobalEfficiency),
			Communities:       m.Communities.Count,
			Modularity:        number(m.Communities.Modularity),
			CriticalFraction:  number(m.Robustness.CriticalFraction),
			Skipped:           m.Skipped,
		}
	}
	if st := res.Statistics; st != nil {
		rep.Spatial = spatialReport{
			MoranI: number(st.Moran.I),
			MoranZ: number(st.Moran.Z),
			MoranP: number(st.Moran.P),
			Hot:    len(st.HotSpots.Hot),
			Cold:   len(st.HotSpots.Cold),
		}
	}
	return rep
}
