package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/road"
)

// DefaultOverpassServer is the public Overpass API instance.
const DefaultOverpassServer = "http://overpass-api.de/api/interpreter"

// DefaultPadding widens the query bounding box by roughly one kilometer.
const DefaultPadding = 0.01

// OverpassClient fetches the full road network inside the bounding box
// spanned by two locations and converts it into a search graph with real
// intersections.
type OverpassClient struct {
	baseURL    string
	padding    float64
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOverpassClient(baseURL string, padding float64, logger *slog.Logger) *OverpassClient {
	if baseURL == "" {
		baseURL = DefaultOverpassServer
	}
	if padding <= 0 {
		padding = DefaultPadding
	}
	return &OverpassClient{
		baseURL:    baseURL,
		padding:    padding,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     logger,
	}
}

// RoadNetworkGraph queries all highway ways in the padded bounding box
// around start and destination. One-way roads become single directed edges,
// everything else both directions; weights are haversine distances in
// kilometers.
func (c *OverpassClient) RoadNetworkGraph(ctx context.Context, start, destination Location) (*graph.Graph, error) {
	minLat := math.Min(start.Latitude, destination.Latitude) - c.padding
	maxLat := math.Max(start.Latitude, destination.Latitude) + c.padding
	minLon := math.Min(start.Longitude, destination.Longitude) - c.padding
	maxLon := math.Max(start.Longitude, destination.Longitude) + c.padding

	query := fmt.Sprintf(
		`[out:json][timeout:300];(way["highway"](%v,%v,%v,%v););out body;>;out skel qt;`,
		minLat, minLon, maxLat, maxLon)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("routing: building Overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing: Overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: Overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing: reading Overpass response: %w", err)
	}

	var data osm.OSM
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("routing: invalid Overpass response: %w", err)
	}

	if len(data.Nodes) == 0 && len(data.Ways) == 0 {
		return nil, fmt.Errorf("%w: no roads between %s and %s",
			ErrNoRoute, start.Address, destination.Address)
	}

	g := buildRoadNetworkGraph(&data)
	if c.logger != nil {
		c.logger.Debug("road network graph built",
			slog.Int("osm_nodes", len(data.Nodes)),
			slog.Int("osm_ways", len(data.Ways)),
			slog.Int("nodes", g.NodeCount()),
			slog.Int("arcs", g.ArcCount()))
	}
	return g, nil
}

func buildRoadNetworkGraph(data *osm.OSM) *graph.Graph {
	coords := make(map[osm.NodeID]graph.Node, len(data.Nodes))
	for _, n := range data.Nodes {
		coords[n.ID] = graph.Node{
			ID:  fmt.Sprintf("osm_%d", n.ID),
			Lat: n.Lat,
			Lon: n.Lon,
		}
	}

	g := graph.New()
	for _, way := range data.Ways {
		if !road.ClassifyHighway(way.Tags.Find("highway")).Routable() {
			continue
		}
		oneway := road.IsOneway(way.Tags.Find("oneway"))

		for i := 0; i < len(way.Nodes)-1; i++ {
			from, okFrom := coords[way.Nodes[i].ID]
			to, okTo := coords[way.Nodes[i+1].ID]
			if !okFrom || !okTo {
				continue
			}

			distance := geometry.Haversine(from.Point(), to.Point())
			if distance < minEdgeKm {
				continue
			}
			_ = g.AddEdge(from, to, distance, !oneway)
		}
	}
	return g
}
