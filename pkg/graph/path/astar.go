package path

import "github.com/routeviz/go-pathfinding/pkg/graph"

// AStar computes the least-cost path from start to goal, ordering the
// frontier by cumulative cost plus the heuristic estimate of the remaining
// distance. Optimality requires an admissible, consistent heuristic; see
// Heuristic. A nil heuristic is a usage error reported synchronously as a
// failure Result.
//
// Validation, degenerate cases and complexity match Dijkstra.
func AStar(g *graph.Graph, start, goal graph.Node, heuristic Heuristic, opts ...Option) Result {
	if heuristic == nil {
		return failf("Heuristic must be a callable function")
	}
	return runSearch(g, start, goal, heuristic, AlgorithmAStar, opts)
}
