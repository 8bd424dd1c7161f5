package path

import (
	"errors"
	"fmt"
	"time"

	"github.com/routeviz/go-pathfinding/pkg/graph"
)

var (
	ErrNegativeDistance = errors.New("path: total distance cannot be negative")
	ErrNegativeTime     = errors.New("path: execution time cannot be negative")
	ErrNegativeExplored = errors.New("path: nodes explored cannot be negative")

	ErrMissingRoute      = errors.New("path: successful result must include a route")
	ErrMissingError      = errors.New("path: failed result must include an error message")
	ErrConflictingResult = errors.New("path: result cannot carry both a route and an error")
)

// Edge is one (from, to) pair inspected while expanding a popped node. The
// ExploredEdges trace is an exhaustive inspection log: it includes edges to
// already-finalized neighbors, not only relaxations.
type Edge struct {
	From graph.Node
	To   graph.Node
}

// Route is the result of one completed search: the final path from start to
// goal inclusive, its total cost in kilometers, and the full instrumentation
// trail for visualization and benchmarking. Values are immutable once
// returned.
type Route struct {
	Path          []graph.Node
	TotalDistance float64
	Algorithm     string
	ExecutionTime time.Duration
	NodesExplored int

	// ExploredNodes holds every node popped off the frontier, in pop order.
	ExploredNodes []graph.Node
	// OpenSetNodes holds every node ever pushed onto the frontier,
	// deduplicated by first occurrence.
	OpenSetNodes []graph.Node
	// ExploredEdges holds every edge examined during expansion.
	ExploredEdges []Edge
}

func (r *Route) Validate() error {
	if r.TotalDistance < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDistance, r.TotalDistance)
	}
	if r.ExecutionTime < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTime, r.ExecutionTime)
	}
	if r.NodesExplored < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeExplored, r.NodesExplored)
	}
	return nil
}

// Result is a success/failure union. On success Route is set and Error is
// empty; on failure Error is set and Route is nil. An unreachable goal is a
// normal failure Result, never a Go error.
type Result struct {
	Success bool
	Route   *Route
	Error   string
}

// Validate checks the mutual exclusivity of the two states. Results built by
// the search functions are always valid; this exists for values assembled
// elsewhere (e.g. decoded from JSON).
func (r Result) Validate() error {
	if r.Success {
		if r.Route == nil {
			return ErrMissingRoute
		}
		if r.Error != "" {
			return ErrConflictingResult
		}
		return r.Route.Validate()
	}
	if r.Error == "" {
		return ErrMissingError
	}
	if r.Route != nil {
		return ErrConflictingResult
	}
	return nil
}

func succeed(route *Route) Result {
	return Result{Success: true, Route: route}
}

func failf(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}
