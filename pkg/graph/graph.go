// Package graph provides the weighted adjacency-list graph the search
// algorithms operate on.
package graph

import (
	"errors"
	"fmt"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
)

// ErrNonPositiveWeight is returned by AddEdge for zero or negative weights.
var ErrNonPositiveWeight = errors.New("graph: edge weight must be positive")

// Node is a point in a road network. Identity is carried solely by ID: two
// nodes with the same ID are the same node everywhere (adjacency keys, path
// membership, visited sets), even if their coordinates differ. Reusing an ID
// for a semantically different point is a caller contract violation the
// graph cannot detect.
type Node struct {
	ID  string
	Lat float64
	Lon float64
}

func (n Node) Point() geometry.Point { return geometry.NewPoint(n.Lat, n.Lon) }

func (n Node) String() string { return n.ID }

// Arc is one adjacency entry: the neighbor and the edge weight in kilometers.
type Arc struct {
	To     Node
	Weight float64
}

// Graph is a mapping from node to an ordered list of weighted neighbor
// entries. Arcs are directed; callers choose whether to insert the reverse
// arc. The graph is not safe for concurrent mutation, but any number of
// searches may read it concurrently.
type Graph struct {
	order     []string
	nodes     map[string]Node
	adjacency map[string][]Arc
	arcCount  int
}

func New() *Graph {
	return &Graph{
		nodes:     make(map[string]Node),
		adjacency: make(map[string][]Arc),
	}
}

// AddNode inserts n with an empty neighbor list. Adding a node whose ID is
// already present is a no-op; the first coordinates win.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	g.nodes[n.ID] = n
	g.adjacency[n.ID] = nil
	g.order = append(g.order, n.ID)
}

// AddEdge appends a directed arc from -> to with the given weight in
// kilometers, implicitly adding both endpoints. If bidirectional is set the
// reverse arc is appended as well. Parallel edges are not deduplicated:
// repeated calls add repeated entries.
func (g *Graph) AddEdge(from, to Node, weight float64, bidirectional bool) error {
	if weight <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveWeight, weight)
	}

	g.AddNode(from)
	g.AddNode(to)

	g.adjacency[from.ID] = append(g.adjacency[from.ID], Arc{To: g.nodes[to.ID], Weight: weight})
	g.arcCount++

	if bidirectional {
		g.adjacency[to.ID] = append(g.adjacency[to.ID], Arc{To: g.nodes[from.ID], Weight: weight})
		g.arcCount++
	}
	return nil
}

// Neighbors returns n's adjacency entries in insertion order, or an empty
// slice if n is not in the graph.
func (g *Graph) Neighbors(n Node) []Arc {
	return g.adjacency[n.ID]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Node returns the stored node for the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) HasNode(n Node) bool {
	_, ok := g.nodes[n.ID]
	return ok
}

func (g *Graph) NodeCount() int { return len(g.order) }

func (g *Graph) ArcCount() int { return g.arcCount }
