package path

import (
	"github.com/routeviz/go-pathfinding/pkg/geometry"
	"github.com/routeviz/go-pathfinding/pkg/graph"
)

// Heuristic estimates the remaining distance in kilometers between two graph
// nodes. AStar is optimal and complete only if the supplied heuristic is
// admissible (never overestimates the true remaining cost) and consistent
// (h(a) <= cost(a,b) + h(b) for every edge). That contract belongs to the
// caller and is not checked at runtime: an inadmissible heuristic silently
// yields a possibly suboptimal path.
type Heuristic func(from, to graph.Node) float64

// The named heuristics, ordered from tightest estimate to cheapest
// computation. All return exactly 0 for nodes with equal IDs or coordinates.
var (
	// Haversine is the great-circle distance, admissible and consistent
	// for road networks.
	Haversine Heuristic = nodeDistance(geometry.Haversine)

	// Grid sums the north-south and east-west components; still admissible
	// on quasi-grid networks.
	Grid Heuristic = nodeDistance(geometry.GridDistance)

	// Diagonal takes the larger of the two grid components.
	Diagonal Heuristic = nodeDistance(geometry.DiagonalDistance)

	// Approximate trades accuracy for speed by avoiding trigonometry.
	Approximate Heuristic = nodeDistance(geometry.ApproxDistance)
)

// HeuristicByName resolves a configuration string to a named heuristic.
func HeuristicByName(name string) (Heuristic, bool) {
	switch name {
	case "haversine":
		return Haversine, true
	case "grid":
		return Grid, true
	case "diagonal":
		return Diagonal, true
	case "approximate":
		return Approximate, true
	}
	return nil, false
}

func nodeDistance(estimate func(a, b geometry.Point) float64) Heuristic {
	return func(from, to graph.Node) float64 {
		if from.ID == to.ID {
			return 0
		}
		return estimate(from.Point(), to.Point())
	}
}
