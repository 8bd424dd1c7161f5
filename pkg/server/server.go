// Package server exposes the side-by-side pathfinding comparison over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/geocode"
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/graph/path"
	"github.com/routeviz/go-pathfinding/pkg/routing"
)

var errEndpointRequired = errors.New("address or coordinates required")

// Geocoder resolves an address string to a Location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (routing.Location, error)
}

// GraphBuilder assembles the road network between two locations.
type GraphBuilder interface {
	RoadNetworkGraph(ctx context.Context, start, destination routing.Location) (*graph.Graph, error)
}

// Server wires geocoding, graph assembly, sanitization and the two search
// algorithms behind a JSON API.
type Server struct {
	geocoder  Geocoder
	builder   GraphBuilder
	heuristic path.Heuristic
	logger    *slog.Logger
}

func New(geocoder Geocoder, builder GraphBuilder, heuristic path.Heuristic, logger *slog.Logger) *Server {
	if heuristic == nil {
		heuristic = path.Haversine
	}
	return &Server{
		geocoder:  geocoder,
		builder:   builder,
		heuristic: heuristic,
		logger:    logger,
	}
}

// Routes returns the HTTP router for the comparison API.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/routes", s.handleComputeRoutes).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleComputeRoutes(w http.ResponseWriter, r *http.Request) {
	var request RouteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	ctx := r.Context()

	start, err := s.resolveEndpoint(ctx, request.Start, "start")
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	destination, err := s.resolveEndpoint(ctx, request.Destination, "destination")
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	if err := routing.ValidateDistinct(start, destination); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.builder.RoadNetworkGraph(ctx, start, destination)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	// Road networks from noisy map data routinely carry disconnected
	// fragments; search only the largest component.
	g = graph.LargestConnectedComponent(g)

	startNode, startDist, err := routing.FindClosestNode(start, g)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	goalNode, goalDist, err := routing.FindClosestNode(destination, g)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if s.logger != nil {
		s.logger.Info("computing routes",
			slog.String("start", start.Address),
			slog.String("destination", destination.Address),
			slog.Int("graph_nodes", g.NodeCount()),
			slog.Float64("start_snap_km", startDist),
			slog.Float64("goal_snap_km", goalDist))
	}

	comparison := routing.NewRouter(g, s.heuristic, s.logger).Compare(startNode, goalNode)

	response := RouteResponse{
		Start:       locationModel(start),
		Destination: locationModel(destination),
		GraphNodes:  g.NodeCount(),
		GraphArcs:   g.ArcCount(),
		Dijkstra:    algorithmResult(comparison.Dijkstra),
		AStar:       algorithmResult(comparison.AStar),
		Summary:     summaryModel(comparison.Summary),
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) resolveEndpoint(ctx context.Context, endpoint Endpoint, name string) (routing.Location, error) {
	if endpoint.Coordinates != nil {
		address := endpoint.Address
		if address == "" {
			address = fmt.Sprintf("%v,%v",
				endpoint.Coordinates.Latitude, endpoint.Coordinates.Longitude)
		}
		return routing.NewLocation(address,
			endpoint.Coordinates.Latitude, endpoint.Coordinates.Longitude)
	}
	if endpoint.Address == "" {
		return routing.Location{}, fmt.Errorf("%s: %w", name, errEndpointRequired)
	}
	return s.geocoder.Geocode(ctx, endpoint.Address)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errEndpointRequired),
		errors.Is(err, geocode.ErrEmptyAddress),
		errors.Is(err, geocode.ErrAddressNotFound),
		errors.Is(err, routing.ErrEmptyAddress),
		errors.Is(err, routing.ErrInvalidLatitude),
		errors.Is(err, routing.ErrInvalidLongitude),
		errors.Is(err, routing.ErrSameLocation):
		return http.StatusBadRequest
	case errors.Is(err, routing.ErrNoRoute):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
