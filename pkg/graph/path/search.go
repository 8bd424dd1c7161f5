// Package path implements the two priority-queue-driven shortest-path
// searches and their instrumentation.
//
// Dijkstra and AStar share one state machine; the only difference is the
// priority key ordering the frontier (cumulative cost alone vs. cumulative
// cost plus heuristic estimate). Both record the full search trace so that
// downstream tooling can visualize and benchmark the two strategies side by
// side.
package path

import (
	"time"

	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/queue"
	"github.com/routeviz/go-pathfinding/pkg/slice"
)

// Option configures a single search invocation.
type Option func(*searchOptions)

type searchOptions struct {
	logger *slog.Logger
}

// WithLogger routes the per-search telemetry (explored count, open-set
// count, edge count, elapsed time) to the given logger. Without it the
// search is silent; the same figures are available as Route fields either
// way.
func WithLogger(logger *slog.Logger) Option {
	return func(o *searchOptions) { o.logger = logger }
}

// frontierItem is one frontier entry. A node may be pushed multiple times at
// different priorities; stale entries are discarded on pop against the
// finalized set instead of being updated in place (lazy deletion, so no
// decrease-key-capable heap is needed). The insertion sequence makes the
// ordering total: equal priorities pop in FIFO order, which keeps the whole
// search deterministic for a fixed graph and start/goal.
type frontierItem struct {
	node     graph.Node
	priority float64
	sequence int64
}

func (item *frontierItem) Priority() float64 { return item.priority }
func (item *frontierItem) Sequence() int64   { return item.sequence }

type search struct {
	g         *graph.Graph
	start     graph.Node
	goal      graph.Node
	heuristic Heuristic // nil for the cost-only variant

	frontier *queue.MinHeap[*frontierItem]
	sequence int64

	bestCost  map[string]float64
	cameFrom  map[string]graph.Node
	finalized map[string]bool

	exploredNodes []graph.Node
	openSetNodes  []graph.Node
	openSetSeen   map[string]bool
	exploredEdges []Edge
}

// runSearch is the shared search shape behind Dijkstra and AStar.
func runSearch(g *graph.Graph, start, goal graph.Node, heuristic Heuristic, algorithm string, opts []Option) Result {
	var options searchOptions
	for _, opt := range opts {
		opt(&options)
	}

	if !g.HasNode(start) {
		return failf("Start node %s not found in graph", start.ID)
	}
	if !g.HasNode(goal) {
		return failf("Goal node %s not found in graph", goal.ID)
	}

	// Work with the stored nodes so path and trace entries carry the
	// graph's canonical coordinates for each ID.
	start, _ = g.Node(start.ID)
	goal, _ = g.Node(goal.ID)

	began := time.Now()

	if start.ID == goal.ID {
		route := &Route{
			Path:          []graph.Node{start},
			TotalDistance: 0,
			Algorithm:     algorithm,
			ExecutionTime: time.Since(began),
			NodesExplored: 1,
			ExploredNodes: []graph.Node{start},
			OpenSetNodes:  []graph.Node{start},
			ExploredEdges: []Edge{},
		}
		return succeed(route)
	}

	s := &search{
		g:         g,
		start:     start,
		goal:      goal,
		heuristic: heuristic,
		frontier:  queue.NewMinHeap[*frontierItem](),
		bestCost:  map[string]float64{start.ID: 0},
		cameFrom:  make(map[string]graph.Node),
		finalized: make(map[string]bool),

		openSetNodes: []graph.Node{start},
		openSetSeen:  map[string]bool{start.ID: true},
	}
	s.push(start, s.estimate(start))

	s.run()

	if !s.finalized[goal.ID] {
		if options.logger != nil {
			options.logger.Debug("no path found",
				slog.String("algorithm", algorithm),
				slog.String("start", start.ID),
				slog.String("goal", goal.ID))
		}
		return failf("No path found from %s to %s", start.ID, goal.ID)
	}

	elapsed := time.Since(began)
	route := &Route{
		Path:          s.reconstruct(),
		TotalDistance: s.bestCost[goal.ID],
		Algorithm:     algorithm,
		ExecutionTime: elapsed,
		NodesExplored: len(s.exploredNodes),
		ExploredNodes: s.exploredNodes,
		OpenSetNodes:  s.openSetNodes,
		ExploredEdges: s.exploredEdges,
	}

	if options.logger != nil {
		options.logger.Debug("search finished",
			slog.String("algorithm", algorithm),
			slog.Int("nodes_explored", route.NodesExplored),
			slog.Int("open_set_nodes", len(route.OpenSetNodes)),
			slog.Int("explored_edges", len(route.ExploredEdges)),
			slog.Int("path_length", len(route.Path)),
			slog.Float64("total_distance_km", route.TotalDistance),
			slog.Duration("execution_time", route.ExecutionTime))
	}

	return succeed(route)
}

func (s *search) run() {
	for s.frontier.Len() > 0 {
		item := s.frontier.Pop()
		current := item.node

		// stale entry for an already-finalized node
		if s.finalized[current.ID] {
			continue
		}

		s.finalized[current.ID] = true
		s.exploredNodes = append(s.exploredNodes, current)

		if current.ID == s.goal.ID {
			return
		}

		s.expand(current)
	}
}

func (s *search) expand(current graph.Node) {
	for _, arc := range s.g.Neighbors(current) {
		neighbor := arc.To

		// Every inspected edge is recorded, including edges to
		// already-finalized neighbors, before the relaxation check.
		s.exploredEdges = append(s.exploredEdges, Edge{From: current, To: neighbor})

		if s.finalized[neighbor.ID] {
			continue
		}

		tentative := s.bestCost[current.ID] + arc.Weight
		if best, known := s.bestCost[neighbor.ID]; known && tentative >= best {
			continue
		}

		s.bestCost[neighbor.ID] = tentative
		s.cameFrom[neighbor.ID] = current
		s.push(neighbor, tentative+s.estimate(neighbor))

		if !s.openSetSeen[neighbor.ID] {
			s.openSetSeen[neighbor.ID] = true
			s.openSetNodes = append(s.openSetNodes, neighbor)
		}
	}
}

func (s *search) estimate(n graph.Node) float64 {
	if s.heuristic == nil {
		return 0
	}
	return s.heuristic(n, s.goal)
}

func (s *search) push(n graph.Node, priority float64) {
	s.frontier.Push(&frontierItem{node: n, priority: priority, sequence: s.sequence})
	s.sequence++
}

func (s *search) reconstruct() []graph.Node {
	path := make([]graph.Node, 0)
	for current := s.goal; ; current = s.cameFrom[current.ID] {
		path = append(path, current)
		if current.ID == s.start.ID {
			break
		}
	}
	slice.ReverseInPlace(path)
	return path
}
