package graphmetrics_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spanflow/graphmetrics"
	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/raster"
)

// ExampleCompute summarizes a one-hub network.
func ExampleCompute() {
	nodes := network.NewNodes(
		[]raster.Point{{Row: 2, Col: 2}},
		[]raster.Point{{Row: 0, Col: 0}, {Row: 0, Col: 4}, {Row: 4, Col: 4}},
	)
	g, _ := network.FromEdges(nodes, []network.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 2, Weight: 1},
		{From: 0, To: 3, Weight: 1},
	})
	m, _ := graphmetrics.Compute(context.Background(), g)
	fmt.Printf("density=%.2f components=%d diameter=%.0f\n", m.Density, m.Components, m.Diameter)
	fmt.Printf("hub betweenness=%.1f critical=%.2f\n", m.Betweenness[0], m.Robustness.CriticalFraction)
	// Output:
	// density=0.25 components=1 diameter=2
	// hub betweenness=1.0 critical=0.25
}
