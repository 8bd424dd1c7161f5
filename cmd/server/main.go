package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/internal/config"
	"github.com/routeviz/go-pathfinding/pkg/geocode"
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/graph/path"
	"github.com/routeviz/go-pathfinding/pkg/routing"
	"github.com/routeviz/go-pathfinding/pkg/server"
)

// osrmBuilder adapts the OSRM route graph to the server's GraphBuilder.
type osrmBuilder struct {
	client *routing.OSRMClient
}

func (b osrmBuilder) RoadNetworkGraph(ctx context.Context, start, destination routing.Location) (*graph.Graph, error) {
	return b.client.RouteGraph(ctx, start, destination)
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	builderName := flag.String("builder", "overpass", "Graph source: overpass or osrm")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	heuristic, ok := path.HeuristicByName(cfg.Heuristic)
	if !ok {
		log.Fatalf("unknown heuristic: %s", cfg.Heuristic)
	}

	geocoder := geocode.NewClient(cfg.Nominatim.URL, cfg.Nominatim.UserAgent, logger)

	var builder server.GraphBuilder
	switch strings.ToLower(*builderName) {
	case "overpass":
		builder = routing.NewOverpassClient(cfg.Overpass.URL, cfg.Overpass.Padding, logger)
	case "osrm":
		builder = osrmBuilder{client: routing.NewOSRMClient(cfg.OSRM.URL, logger)}
	default:
		log.Fatalf("unknown graph builder: %s", *builderName)
	}

	srv := server.New(geocoder, builder, heuristic, logger)

	logger.Info("listening", slog.String("addr", cfg.Listen), slog.String("builder", *builderName))
	if err := http.ListenAndServe(cfg.Listen, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
