package server

import (
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/graph/path"
	"github.com/routeviz/go-pathfinding/pkg/routing"
)

// Endpoint names one end of the requested route: either an address to
// geocode or raw coordinates.
type Endpoint struct {
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteRequest struct {
	Start       Endpoint `json:"start"`
	Destination Endpoint `json:"destination"`
}

type LocationModel struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NodeModel struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type EdgeModel struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AlgorithmResult mirrors path.Result for one algorithm, with the full
// instrumentation traces. Consumers downsample as they see fit; the server
// never does.
type AlgorithmResult struct {
	Success          bool        `json:"success"`
	Error            string      `json:"error,omitempty"`
	Algorithm        string      `json:"algorithm,omitempty"`
	TotalDistanceKm  float64     `json:"totalDistanceKm,omitempty"`
	ExecutionTimeMus int64       `json:"executionTimeMicros,omitempty"`
	NodesExplored    int         `json:"nodesExplored,omitempty"`
	Path             []NodeModel `json:"path,omitempty"`
	ExploredNodes    []NodeModel `json:"exploredNodes,omitempty"`
	OpenSetNodes     []NodeModel `json:"openSetNodes,omitempty"`
	ExploredEdges    []EdgeModel `json:"exploredEdges,omitempty"`
}

type SummaryModel struct {
	SpeedupFactor    float64 `json:"speedupFactor"`
	NodeReductionPct float64 `json:"nodeReductionPct"`
	PathMatch        bool    `json:"pathMatch"`
}

type RouteResponse struct {
	Start       LocationModel   `json:"start"`
	Destination LocationModel   `json:"destination"`
	GraphNodes  int             `json:"graphNodes"`
	GraphArcs   int             `json:"graphArcs"`
	Dijkstra    AlgorithmResult `json:"dijkstra"`
	AStar       AlgorithmResult `json:"astar"`
	Summary     *SummaryModel   `json:"summary,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func locationModel(l routing.Location) LocationModel {
	return LocationModel{Address: l.Address, Latitude: l.Latitude, Longitude: l.Longitude}
}

func nodeModels(nodes []graph.Node) []NodeModel {
	out := make([]NodeModel, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NodeModel{ID: n.ID, Lat: n.Lat, Lon: n.Lon})
	}
	return out
}

func edgeModels(edges []path.Edge) []EdgeModel {
	out := make([]EdgeModel, 0, len(edges))
	for _, e := range edges {
		out = append(out, EdgeModel{From: e.From.ID, To: e.To.ID})
	}
	return out
}

func algorithmResult(result path.Result) AlgorithmResult {
	if !result.Success {
		return AlgorithmResult{Success: false, Error: result.Error}
	}

	route := result.Route
	return AlgorithmResult{
		Success:          true,
		Algorithm:        route.Algorithm,
		TotalDistanceKm:  route.TotalDistance,
		ExecutionTimeMus: route.ExecutionTime.Microseconds(),
		NodesExplored:    route.NodesExplored,
		Path:             nodeModels(route.Path),
		ExploredNodes:    nodeModels(route.ExploredNodes),
		OpenSetNodes:     nodeModels(route.OpenSetNodes),
		ExploredEdges:    edgeModels(route.ExploredEdges),
	}
}

func summaryModel(s *routing.Summary) *SummaryModel {
	if s == nil {
		return nil
	}
	return &SummaryModel{
		SpeedupFactor:    s.SpeedupFactor,
		NodeReductionPct: s.NodeReductionPct,
		PathMatch:        s.PathMatch,
	}
}
