package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/internal/pbf"
	"github.com/routeviz/go-pathfinding/pkg/graph"
	"github.com/routeviz/go-pathfinding/pkg/graph/path"
	"github.com/routeviz/go-pathfinding/pkg/routing"
)

func main() {
	graphFile := flag.String("graph", "", "OSM pbf extract to benchmark on")
	amount := flag.Int("n", 100, "How many random start/goal pairs to run")
	seed := flag.Int64("seed", 1, "Seed for the random pair selection")
	heuristicName := flag.String("heuristic", "haversine", "Heuristic for the A* runs")
	verbose := flag.Bool("v", false, "Log every pair instead of the summary only")
	flag.Parse()

	if *graphFile == "" {
		log.Fatal("no graph file given, use -graph")
	}

	heuristic, ok := path.HeuristicByName(*heuristicName)
	if !ok {
		log.Fatalf("unknown heuristic: %s", *heuristicName)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	start := time.Now()
	g, err := pbf.NewImporter(*graphFile, logger).Import()
	if err != nil {
		log.Fatal(err)
	}
	g = graph.LargestConnectedComponent(g)
	fmt.Printf("Imported %v nodes / %v arcs in %v\n", g.NodeCount(), g.ArcCount(), time.Since(start))

	router := routing.NewRouter(g, heuristic, logger)
	nodes := g.Nodes()
	rng := rand.New(rand.NewSource(*seed))

	var (
		solved        int
		mismatches    int
		totalSpeedup  float64
		totalSavedPct float64
	)

	for i := 0; i < *amount; i++ {
		from := nodes[rng.Intn(len(nodes))]
		to := nodes[rng.Intn(len(nodes))]

		comparison := router.Compare(from, to)
		if comparison.Summary == nil {
			// One-way streets can still strand a pair inside the
			// largest weakly connected component.
			continue
		}

		solved++
		totalSpeedup += comparison.Summary.SpeedupFactor
		totalSavedPct += comparison.Summary.NodeReductionPct
		if !comparison.Summary.PathMatch {
			mismatches++
		}

		if *verbose {
			fmt.Printf("%v -> %v: %.3f km, dijkstra %v/%v nodes, astar %v/%v nodes\n",
				from.ID, to.ID,
				comparison.Dijkstra.Route.TotalDistance,
				comparison.Dijkstra.Route.ExecutionTime, comparison.Dijkstra.Route.NodesExplored,
				comparison.AStar.Route.ExecutionTime, comparison.AStar.Route.NodesExplored)
		}
	}

	if solved == 0 {
		fmt.Println("No pair produced a route")
		return
	}

	fmt.Printf("Solved %v/%v pairs with heuristic %q\n", solved, *amount, *heuristicName)
	fmt.Printf("Average speedup: %.2fx\n", totalSpeedup/float64(solved))
	fmt.Printf("Average node reduction: %.1f%%\n", totalSavedPct/float64(solved))
	fmt.Printf("Distance mismatches: %v\n", mismatches)
}
