// Package spanflow routes ecosystem-service flow across a landscape grid and
// analyzes the supply→demand network it produces.
//
// What is spanflow?
//
//	A batch engine in the Service Path Attribution Networks (SPAN) tradition:
//		• Grid model: equal-shaped supply, demand and resistance rasters
//		• Routing: least-cost paths (A* or contraction hierarchies), cost fields
//		• Flow: theoretical, actual and efficiency rasters plus run summaries
//		• Network: supply→demand graph from overlapping realized flow
//		• Graph metrics: density, distances, centralities, communities, robustness
//		• Spatial statistics: Moran's I and Getis-Ord Gi* hot spots
//
// Packages:
//
//	raster/         Raster, Point, connectivity, masks, seeded generators
//	pathrouter/     Router interface, A*, CostField, CH backend, cache, worker pool
//	flow/           Quantify, Summarize, Usage, potential model registry
//	network/        Node, Graph, Intensity, Build
//	graphmetrics/   Compute and the individual descriptors
//	spatial/        MoranI, GetisOrd, Analyze
//	matrix/         dense matrix and Floyd–Warshall
//	engine/         staged Run producing the Result bundle
//	config/         YAML configuration and scenarios
//	store/          bbolt archive of finished runs
//	cmd/spanflow/   command-line front end
//
// Quick example (5×5 grid, resistance 1, k = 0.1, 4-connected):
//
//	S . . . .
//	. . . . .        cost(S→D) = 8
//	. . . . .        actual(S) = e^−0.8 ≈ 0.449
//	. . . . .        blocked   ≈ 0.551
//	. . . . D
//
//	spanflow run -c scenario.yaml --json
package spanflow
