package routing

import (
	"math"

	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/graph/path"
)

// Router runs both search strategies back to back over one read-only graph
// and packages the side-by-side comparison for rendering and metrics
// consumers. The two searches do not interact; each allocates its own
// frontier and instrumentation state.
type Router struct {
	graph     *graph.Graph
	heuristic path.Heuristic
	logger    *slog.Logger
}

// NewRouter builds a Router over g. A nil heuristic defaults to the
// great-circle estimate; logger may be nil for silent searches.
func NewRouter(g *graph.Graph, heuristic path.Heuristic, logger *slog.Logger) *Router {
	if heuristic == nil {
		heuristic = path.Haversine
	}
	return &Router{graph: g, heuristic: heuristic, logger: logger}
}

func (r *Router) Graph() *graph.Graph { return r.graph }

// Comparison carries the two results plus the performance summary. Summary
// is nil unless both searches succeeded.
type Comparison struct {
	Dijkstra path.Result
	AStar    path.Result
	Summary  *Summary
}

// Summary compares the informed search against the uninformed baseline.
type Summary struct {
	// SpeedupFactor is how many times faster A* ran than Dijkstra.
	SpeedupFactor float64
	// NodeReductionPct is the percentage of frontier pops A* saved.
	NodeReductionPct float64
	// PathMatch reports whether both algorithms agreed on the total
	// distance within a 0.1% tolerance.
	PathMatch bool
}

// Compare runs Dijkstra and A* for the same start and goal.
func (r *Router) Compare(start, goal graph.Node) Comparison {
	dijkstra := path.Dijkstra(r.graph, start, goal, path.WithLogger(r.logger))
	astar := path.AStar(r.graph, start, goal, r.heuristic, path.WithLogger(r.logger))

	comparison := Comparison{Dijkstra: dijkstra, AStar: astar}
	if dijkstra.Success && astar.Success {
		comparison.Summary = newSummary(astar.Route, dijkstra.Route)
	}
	return comparison
}

func newSummary(astar, dijkstra *path.Route) *Summary {
	speedup := 1.0
	if astar.ExecutionTime > 0 {
		speedup = float64(dijkstra.ExecutionTime) / float64(astar.ExecutionTime)
	}

	reduction := 0.0
	if dijkstra.NodesExplored > 0 {
		reduction = float64(dijkstra.NodesExplored-astar.NodesExplored) /
			float64(dijkstra.NodesExplored) * 100
	}

	var match bool
	if astar.TotalDistance == 0 {
		match = dijkstra.TotalDistance == 0
	} else {
		match = math.Abs(astar.TotalDistance-dijkstra.TotalDistance) < astar.TotalDistance*0.001
	}

	return &Summary{
		SpeedupFactor:    speedup,
		NodeReductionPct: reduction,
		PathMatch:        match,
	}
}
