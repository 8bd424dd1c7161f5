// Package pbf builds road-network graphs from OSM .pbf extracts.
package pbf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/road"
)

// minEdgeKm drops degenerate segments shorter than ~3 meters.
const minEdgeKm = 0.003

// Importer reads an OSM .pbf extract and assembles a weighted road graph.
// Decoding is two-pass: node coordinates are collected first, then highway
// ways are turned into edges with haversine weights. One-way roads produce a
// single directed edge; everything else produces both directions.
type Importer struct {
	filename string
	logger   *slog.Logger
	coords   map[int64]geometry.Point
}

func NewImporter(filename string, logger *slog.Logger) *Importer {
	return &Importer{
		filename: filename,
		logger:   logger,
		coords:   make(map[int64]geometry.Point),
	}
}

func (im *Importer) Import() (*graph.Graph, error) {
	if err := im.collectNodes(); err != nil {
		return nil, fmt.Errorf("pbf: collecting nodes: %w", err)
	}

	g := graph.New()
	if err := im.collectWays(g); err != nil {
		return nil, fmt.Errorf("pbf: collecting ways: %w", err)
	}

	if im.logger != nil {
		im.logger.Info("road network imported",
			slog.String("file", im.filename),
			slog.Int("nodes", g.NodeCount()),
			slog.Int("arcs", g.ArcCount()))
	}
	return g, nil
}

func (im *Importer) collectNodes() error {
	return im.decode(func(v any) {
		if n, ok := v.(*osmpbf.Node); ok {
			im.coords[n.ID] = geometry.NewPoint(n.Lat, n.Lon)
		}
	})
}

func (im *Importer) collectWays(g *graph.Graph) error {
	return im.decode(func(v any) {
		w, ok := v.(*osmpbf.Way)
		if !ok {
			return
		}
		if !road.ClassifyHighway(w.Tags["highway"]).Routable() {
			return
		}

		oneway := road.IsOneway(w.Tags["oneway"])
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			fromID, toID := w.NodeIDs[i], w.NodeIDs[i+1]
			fromPt, okFrom := im.coords[fromID]
			toPt, okTo := im.coords[toID]
			if !okFrom || !okTo {
				continue
			}

			distance := geometry.Haversine(fromPt, toPt)
			if distance < minEdgeKm {
				continue
			}

			from := graph.Node{ID: osmNodeID(fromID), Lat: fromPt.Lat(), Lon: fromPt.Lon()}
			to := graph.Node{ID: osmNodeID(toID), Lat: toPt.Lat(), Lon: toPt.Lon()}
			// distance >= minEdgeKm, so the weight invariant holds
			_ = g.AddEdge(from, to, distance, !oneway)
		}
	})
}

func (im *Importer) decode(handle func(v any)) error {
	file, err := os.Open(im.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		handle(v)
	}
}

func osmNodeID(id int64) string {
	return fmt.Sprintf("osm_%d", id)
}
