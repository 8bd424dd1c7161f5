package path

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeviz/go-pathfinding/pkg/graph"
)

// unitGrid builds a 3x3 bidirectional grid with unit weights. Node IDs are
// "r,c" and coordinates mirror the grid position so geometric heuristics
// stay admissible.
func unitGrid(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	node := func(r, c int) graph.Node {
		return graph.Node{ID: fmt.Sprintf("%d,%d", r, c), Lat: float64(r), Lon: float64(c)}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c < 2 {
				require.NoError(t, g.AddEdge(node(r, c), node(r, c+1), 1, true))
			}
			if r < 2 {
				require.NoError(t, g.AddEdge(node(r, c), node(r+1, c), 1, true))
			}
		}
	}
	return g
}

// sixNodeGraph is the classic benchmark graph where greedy choices lose:
// the optimal route from a to f is a-d-e-f with cost 5.
func sixNodeGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	edges := []struct {
		from, to string
		weight   float64
	}{
		{"a", "b", 5}, {"a", "d", 2},
		{"b", "c", 3}, {"b", "e", 4},
		{"c", "f", 1},
		{"d", "e", 1},
		{"e", "f", 2},
	}
	coords := map[string][2]float64{
		"a": {0, 0}, "b": {0, 1}, "c": {0, 2},
		"d": {1, 0}, "e": {1, 1}, "f": {1, 2},
	}
	for _, e := range edges {
		from := graph.Node{ID: e.from, Lat: coords[e.from][0] / 100, Lon: coords[e.from][1] / 100}
		to := graph.Node{ID: e.to, Lat: coords[e.to][0] / 100, Lon: coords[e.to][1] / 100}
		require.NoError(t, g.AddEdge(from, to, e.weight, true))
	}
	return g
}

func pathIDs(route *Route) []string {
	ids := make([]string, len(route.Path))
	for i, n := range route.Path {
		ids[i] = n.ID
	}
	return ids
}

func TestDijkstraUnitGridCornerToCorner(t *testing.T) {
	g := unitGrid(t)

	result := Dijkstra(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 4.0, result.Route.TotalDistance)
	assert.Len(t, result.Route.Path, 5)
	assert.Equal(t, "0,0", result.Route.Path[0].ID)
	assert.Equal(t, "2,2", result.Route.Path[len(result.Route.Path)-1].ID)
	assert.Equal(t, AlgorithmDijkstra, result.Route.Algorithm)
}

func TestAStarUnitGridCornerToCorner(t *testing.T) {
	g := unitGrid(t)

	result := AStar(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"}, Haversine)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 4.0, result.Route.TotalDistance)
	assert.Len(t, result.Route.Path, 5)
	assert.Equal(t, AlgorithmAStar, result.Route.Algorithm)
}

func TestSixNodeGraphOptimalRoute(t *testing.T) {
	g := sixNodeGraph(t)
	start := graph.Node{ID: "a"}
	goal := graph.Node{ID: "f"}

	dijkstra := Dijkstra(g, start, goal)
	astar := AStar(g, start, goal, Haversine)

	require.True(t, dijkstra.Success, dijkstra.Error)
	require.True(t, astar.Success, astar.Error)

	assert.Equal(t, 5.0, dijkstra.Route.TotalDistance)
	assert.Equal(t, []string{"a", "d", "e", "f"}, pathIDs(dijkstra.Route))
	assert.Equal(t, 5.0, astar.Route.TotalDistance)
	assert.Equal(t, []string{"a", "d", "e", "f"}, pathIDs(astar.Route))
}

func TestStartEqualsGoal(t *testing.T) {
	g := unitGrid(t)
	n := graph.Node{ID: "1,1"}

	for _, result := range []Result{Dijkstra(g, n, n), AStar(g, n, n, Haversine)} {
		require.True(t, result.Success, result.Error)
		assert.Equal(t, 0.0, result.Route.TotalDistance)
		require.Len(t, result.Route.Path, 1)
		assert.Equal(t, "1,1", result.Route.Path[0].ID)
		assert.Equal(t, 1, result.Route.NodesExplored)
		assert.Len(t, result.Route.ExploredNodes, 1)
		assert.Len(t, result.Route.OpenSetNodes, 1)
		assert.Empty(t, result.Route.ExploredEdges)
		assert.NotNil(t, result.Route.ExploredEdges)
	}
}

func TestUnreachableGoal(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Node{ID: "a"}, graph.Node{ID: "b"}, 1, true))
	g.AddNode(graph.Node{ID: "island"})

	result := Dijkstra(g, graph.Node{ID: "a"}, graph.Node{ID: "island"})

	assert.False(t, result.Success)
	assert.Nil(t, result.Route)
	assert.Equal(t, "No path found from a to island", result.Error)
}

func TestMissingStartAndGoal(t *testing.T) {
	g := unitGrid(t)

	missingStart := Dijkstra(g, graph.Node{ID: "nope"}, graph.Node{ID: "0,0"})
	assert.False(t, missingStart.Success)
	assert.Equal(t, "Start node nope not found in graph", missingStart.Error)

	missingGoal := AStar(g, graph.Node{ID: "0,0"}, graph.Node{ID: "nope"}, Haversine)
	assert.False(t, missingGoal.Success)
	assert.Equal(t, "Goal node nope not found in graph", missingGoal.Error)
}

func TestAStarNilHeuristic(t *testing.T) {
	g := unitGrid(t)

	result := AStar(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"}, nil)

	assert.False(t, result.Success)
	assert.Equal(t, "Heuristic must be a callable function", result.Error)
}

func TestPathIsContiguous(t *testing.T) {
	g := sixNodeGraph(t)

	result := Dijkstra(g, graph.Node{ID: "a"}, graph.Node{ID: "c"})
	require.True(t, result.Success, result.Error)

	for i := 0; i < len(result.Route.Path)-1; i++ {
		from := result.Route.Path[i]
		to := result.Route.Path[i+1]
		found := false
		for _, arc := range g.Neighbors(from) {
			if arc.To.ID == to.ID {
				found = true
				break
			}
		}
		assert.True(t, found, "no arc from %s to %s", from.ID, to.ID)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	g := unitGrid(t)
	start := graph.Node{ID: "0,0"}
	goal := graph.Node{ID: "2,2"}

	first := Dijkstra(g, start, goal)
	require.True(t, first.Success)

	for i := 0; i < 5; i++ {
		again := Dijkstra(g, start, goal)
		require.True(t, again.Success)
		assert.Equal(t, pathIDs(first.Route), pathIDs(again.Route))
		assert.Equal(t, first.Route.TotalDistance, again.Route.TotalDistance)

		firstExplored := make([]string, len(first.Route.ExploredNodes))
		for j, n := range first.Route.ExploredNodes {
			firstExplored[j] = n.ID
		}
		againExplored := make([]string, len(again.Route.ExploredNodes))
		for j, n := range again.Route.ExploredNodes {
			againExplored[j] = n.ID
		}
		assert.Equal(t, firstExplored, againExplored)
	}
}

func TestNodesExploredMatchesTrace(t *testing.T) {
	g := unitGrid(t)

	result := Dijkstra(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"})
	require.True(t, result.Success)

	assert.Equal(t, result.Route.NodesExplored, len(result.Route.ExploredNodes))
	assert.Equal(t, "0,0", result.Route.ExploredNodes[0].ID)
}

func TestOpenSetNodesDeduplicated(t *testing.T) {
	g := unitGrid(t)

	result := Dijkstra(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"})
	require.True(t, result.Success)

	seen := make(map[string]bool)
	for _, n := range result.Route.OpenSetNodes {
		assert.False(t, seen[n.ID], "duplicate open set entry %s", n.ID)
		seen[n.ID] = true
	}
	assert.Equal(t, "0,0", result.Route.OpenSetNodes[0].ID)
}

func TestExploredEdgesIncludeFinalizedNeighbors(t *testing.T) {
	// In a triangle the third expansion always re-inspects edges back to
	// finalized nodes; the trace must record them anyway.
	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Node{ID: "a"}, graph.Node{ID: "b"}, 1, true))
	require.NoError(t, g.AddEdge(graph.Node{ID: "b"}, graph.Node{ID: "c"}, 1, true))
	require.NoError(t, g.AddEdge(graph.Node{ID: "a"}, graph.Node{ID: "c"}, 3, true))

	result := Dijkstra(g, graph.Node{ID: "a"}, graph.Node{ID: "c"})
	require.True(t, result.Success)

	foundBackEdge := false
	for _, e := range result.Route.ExploredEdges {
		if e.From.ID == "b" && e.To.ID == "a" {
			foundBackEdge = true
		}
	}
	assert.True(t, foundBackEdge, "edge back to the finalized start node missing from trace")
}

func TestAStarExploresNoMoreThanDijkstra(t *testing.T) {
	g := unitGrid(t)
	start := graph.Node{ID: "0,0"}
	goal := graph.Node{ID: "2,2"}

	dijkstra := Dijkstra(g, start, goal)
	astar := AStar(g, start, goal, Haversine)
	require.True(t, dijkstra.Success)
	require.True(t, astar.Success)

	assert.LessOrEqual(t, astar.Route.NodesExplored, dijkstra.Route.NodesExplored)
}

func TestSearchRespectsDirectedArcs(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Node{ID: "a"}, graph.Node{ID: "b"}, 1, false))

	forward := Dijkstra(g, graph.Node{ID: "a"}, graph.Node{ID: "b"})
	backward := Dijkstra(g, graph.Node{ID: "b"}, graph.Node{ID: "a"})

	assert.True(t, forward.Success)
	assert.False(t, backward.Success)
	assert.Equal(t, "No path found from b to a", backward.Error)
}

func TestSearchUsesStoredCoordinates(t *testing.T) {
	g := unitGrid(t)

	// Callers may pass bare IDs; the trace carries the stored coordinates.
	result := Dijkstra(g, graph.Node{ID: "0,0"}, graph.Node{ID: "2,2"})
	require.True(t, result.Success)

	last := result.Route.Path[len(result.Route.Path)-1]
	assert.Equal(t, 2.0, last.Lat)
	assert.Equal(t, 2.0, last.Lon)
}
