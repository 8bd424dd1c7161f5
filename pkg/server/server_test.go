package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/routing"
)

type stubGeocoder struct {
	locations map[string]routing.Location
	err       error
}

func (s stubGeocoder) Geocode(_ context.Context, address string) (routing.Location, error) {
	if s.err != nil {
		return routing.Location{}, s.err
	}
	loc, ok := s.locations[address]
	if !ok {
		return routing.Location{}, fmt.Errorf("%w: %q", routing.ErrEmptyAddress, address)
	}
	return loc, nil
}

type stubBuilder struct {
	graph *graph.Graph
	err   error
}

func (s stubBuilder) RoadNetworkGraph(context.Context, routing.Location, routing.Location) (*graph.Graph, error) {
	return s.graph, s.err
}

// corridorGraph is a small connected road graph spanning the stub locations.
func corridorGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []graph.Node{
		{ID: "n0", Lat: 48.7700, Lon: 9.1800},
		{ID: "n1", Lat: 48.7720, Lon: 9.1820},
		{ID: "n2", Lat: 48.7740, Lon: 9.1840},
		{ID: "n3", Lat: 48.7760, Lon: 9.1860},
	}
	for i := 0; i < len(nodes)-1; i++ {
		require.NoError(t, g.AddEdge(nodes[i], nodes[i+1], 0.3, true))
	}
	return g
}

func testServer(t *testing.T) *Server {
	t.Helper()
	start, err := routing.NewLocation("Start Street 1", 48.7701, 9.1801)
	require.NoError(t, err)
	destination, err := routing.NewLocation("End Street 9", 48.7759, 9.1859)
	require.NoError(t, err)

	geocoder := stubGeocoder{locations: map[string]routing.Location{
		"Start Street 1": start,
		"End Street 9":   destination,
	}}
	builder := stubBuilder{graph: corridorGraph(t)}
	return New(geocoder, builder, nil, nil)
}

func postRoutes(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/routes", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()
	srv.Routes().ServeHTTP(recorder, req)
	return recorder
}

func TestComputeRoutesByAddress(t *testing.T) {
	srv := testServer(t)

	recorder := postRoutes(t, srv, `{
		"start": {"address": "Start Street 1"},
		"destination": {"address": "End Street 9"}
	}`)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response RouteResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "Start Street 1", response.Start.Address)
	assert.Equal(t, 4, response.GraphNodes)
	require.True(t, response.Dijkstra.Success, response.Dijkstra.Error)
	require.True(t, response.AStar.Success, response.AStar.Error)
	assert.Equal(t, "Dijkstra", response.Dijkstra.Algorithm)
	assert.Equal(t, "A*", response.AStar.Algorithm)
	assert.InDelta(t, 0.9, response.Dijkstra.TotalDistanceKm, 1e-9)
	assert.Equal(t, "n0", response.Dijkstra.Path[0].ID)
	assert.Equal(t, "n3", response.Dijkstra.Path[len(response.Dijkstra.Path)-1].ID)
	require.NotNil(t, response.Summary)
	assert.True(t, response.Summary.PathMatch)
}

func TestComputeRoutesByCoordinates(t *testing.T) {
	srv := testServer(t)

	recorder := postRoutes(t, srv, `{
		"start": {"coordinates": {"latitude": 48.7701, "longitude": 9.1801}},
		"destination": {"coordinates": {"latitude": 48.7759, "longitude": 9.1859}}
	}`)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response RouteResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "48.7701,9.1801", response.Start.Address)
}

func TestComputeRoutesSameLocation(t *testing.T) {
	srv := testServer(t)

	recorder := postRoutes(t, srv, `{
		"start": {"coordinates": {"latitude": 48.77, "longitude": 9.18}},
		"destination": {"coordinates": {"latitude": 48.77, "longitude": 9.18}}
	}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestComputeRoutesMissingEndpoint(t *testing.T) {
	srv := testServer(t)

	recorder := postRoutes(t, srv, `{"start": {"address": "Start Street 1"}, "destination": {}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestComputeRoutesRejectsUnknownFields(t *testing.T) {
	srv := testServer(t)

	recorder := postRoutes(t, srv, `{"start": {"address": "a"}, "destination": {"address": "b"}, "bogus": 1}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestComputeRoutesBuilderNoRoute(t *testing.T) {
	srv := testServer(t)
	srv.builder = stubBuilder{err: fmt.Errorf("%w: nothing here", routing.ErrNoRoute)}

	recorder := postRoutes(t, srv, `{
		"start": {"address": "Start Street 1"},
		"destination": {"address": "End Street 9"}
	}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	srv.Routes().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status": "ok"}`, recorder.Body.String())
}
