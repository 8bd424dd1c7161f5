package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
	"github.com/routeviz/go-pathfinding/pkg/graph"
)

// ErrNoRoute is returned when the external service cannot produce a route
// or road network between two locations.
var ErrNoRoute = errors.New("routing: no route found")

// DefaultOSRMServer is the public OSRM demo instance.
const DefaultOSRMServer = "http://router.project-osrm.org"

// minEdgeKm drops segments shorter than ~3 meters while building graphs.
const minEdgeKm = 0.003

// OSRMClient fetches a driving route from an OSRM server and converts its
// step geometries into a search graph.
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOSRMClient(baseURL string, logger *slog.Logger) *OSRMClient {
	if baseURL == "" {
		baseURL = DefaultOSRMServer
	}
	return &OSRMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Legs []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Distance float64          `json:"distance"` // meters
	Geometry geojson.Geometry `json:"geometry"`
}

// RouteGraph queries the route between start and destination and converts
// every step geometry into graph nodes and bidirectional edges. The start
// node is the first node added, the destination the last, so callers can use
// the first/last-node convention to pick search endpoints.
func (c *OSRMClient) RouteGraph(ctx context.Context, start, destination Location) (*graph.Graph, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%v,%v;%v,%v?steps=true&geometries=geojson",
		c.baseURL,
		start.Longitude, start.Latitude,
		destination.Longitude, destination.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: building OSRM request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing: OSRM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: OSRM returned status %d", resp.StatusCode)
	}

	var data osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("routing: invalid OSRM response: %w", err)
	}

	if data.Code != "Ok" || len(data.Routes) == 0 {
		return nil, fmt.Errorf("%w: between %s and %s", ErrNoRoute, start.Address, destination.Address)
	}

	g := buildRouteGraph(data.Routes[0])
	if c.logger != nil {
		c.logger.Debug("route graph built",
			slog.Int("nodes", g.NodeCount()),
			slog.Int("arcs", g.ArcCount()))
	}
	return g, nil
}

// nodeIndex assigns node identifiers to coordinates. Identical coordinates
// map to the same node, making identity assignment explicit and auditable
// rather than hidden in per-call state.
type nodeIndex struct {
	byCoord map[[2]float64]graph.Node
	next    int
}

func newNodeIndex() *nodeIndex {
	return &nodeIndex{byCoord: make(map[[2]float64]graph.Node)}
}

func (ix *nodeIndex) nodeAt(lat, lon float64) graph.Node {
	key := [2]float64{lat, lon}
	if n, ok := ix.byCoord[key]; ok {
		return n
	}
	n := graph.Node{ID: fmt.Sprintf("node_%d", ix.next), Lat: lat, Lon: lon}
	ix.next++
	ix.byCoord[key] = n
	return n
}

func buildRouteGraph(route osrmRoute) *graph.Graph {
	g := graph.New()
	index := newNodeIndex()

	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			line, ok := step.Geometry.Geometry().(orb.LineString)
			if !ok || len(line) < 2 {
				continue
			}

			stepKm := step.Distance / 1000.0
			if stepKm < minEdgeKm {
				continue
			}

			// The step distance is spread evenly over the geometry's
			// segments.
			segments := len(line) - 1
			segmentKm := stepKm / float64(segments)

			for i := 0; i < segments; i++ {
				from := index.nodeAt(line[i].Lat(), line[i].Lon())
				to := index.nodeAt(line[i+1].Lat(), line[i+1].Lon())
				if from.ID == to.ID {
					continue
				}
				_ = g.AddEdge(from, to, segmentKm, true)
			}
		}
	}

	addDetourEdges(g)
	return g
}

// addDetourEdges links waypoints that are spatially close but not directly
// connected, with a 20% weight penalty. A bare route polyline gives both
// algorithms a single corridor to walk; the detours create alternatives the
// two strategies can disagree on.
func addDetourEdges(g *graph.Graph) {
	nodes := g.Nodes()
	for i, a := range nodes {
		for j := i + 2; j < i+10 && j < len(nodes); j++ {
			b := nodes[j]

			distance := geometry.Haversine(a.Point(), b.Point())
			if distance <= 0.05 || distance >= 0.5 {
				continue
			}
			if hasArc(g, a, b) {
				continue
			}
			_ = g.AddEdge(a, b, distance*1.2, true)
		}
	}
}

func hasArc(g *graph.Graph, from, to graph.Node) bool {
	for _, arc := range g.Neighbors(from) {
		if arc.To.ID == to.ID {
			return true
		}
	}
	return false
}
