package routing

import (
	"errors"
	"math"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
	"github.com/routeviz/go-pathfinding/pkg/graph"
)

// ErrEmptyGraph is returned by FindClosestNode when the graph has no nodes.
var ErrEmptyGraph = errors.New("routing: graph has no nodes")

// FindClosestNode returns the graph node nearest to the given location by
// great-circle distance, along with that distance in kilometers. Linear scan
// over all nodes, O(V).
func FindClosestNode(location Location, g *graph.Graph) (graph.Node, float64, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return graph.Node{}, 0, ErrEmptyGraph
	}

	point := location.Point()
	closest := nodes[0]
	minDistance := math.Inf(1)

	for _, n := range nodes {
		if d := geometry.Haversine(point, n.Point()); d < minDistance {
			minDistance = d
			closest = n
		}
	}
	return closest, minDistance, nil
}
