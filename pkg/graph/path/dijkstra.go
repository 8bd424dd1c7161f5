package path

import "github.com/routeviz/go-pathfinding/pkg/graph"

// AlgorithmDijkstra and AlgorithmAStar are the Route.Algorithm names.
const (
	AlgorithmDijkstra = "Dijkstra"
	AlgorithmAStar    = "A*"
)

// Dijkstra computes the least-cost path from start to goal, ordering the
// frontier by cumulative cost alone. Optimal and complete for positive edge
// weights.
//
// Start or goal missing from the graph is reported as a failure Result. An
// unreachable goal is a normal failure Result with a "No path found"
// message. Start equal to goal succeeds immediately with a one-node,
// zero-cost route.
//
// Time O((V+E) log V), space O(V) plus the instrumentation traces.
func Dijkstra(g *graph.Graph, start, goal graph.Node, opts ...Option) Result {
	return runSearch(g, start, goal, nil, AlgorithmDijkstra, opts)
}
