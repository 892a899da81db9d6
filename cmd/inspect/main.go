package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"route_viz/pkg/category"
	"route_viz/pkg/colorize"
	"route_viz/pkg/elevation"
	"route_viz/pkg/gpx"
	"route_viz/pkg/osm"
	"route_viz/pkg/profile"
	"route_viz/pkg/route"
)

func main() {
	input := flag.String("input", "", "Route file: .json (route graph), .gpx or .osm")
	output := flag.String("output", "", "Write the imported route graph as JSON to this path")
	at := flag.String("at", "", "Report the node and chart sample nearest to lat,lon")
	itemLimit := flag.Int("item-limit", profile.DefaultItemLimit, "Maximum number of elevation chart samples")
	srtm := flag.Bool("srtm", false, "Fill missing elevations from SRTM tiles")
	verbose := flag.Bool("v", false, "Print every segment and chart sample")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect --input <route.json|track.gpx|ways.osm> [--output graph.json] [--at lat,lon] [--srtm] [-v]")
		os.Exit(1)
	}

	start := time.Now()
	ctx := context.Background()

	// Step 1: Import.
	g, err := load(ctx, *input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}
	if err := route.Validate(g); err != nil {
		log.Fatalf("Invalid route graph: %v", err)
	}
	log.Printf("Loaded %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	// Step 2: Optional elevation lookup.
	if *srtm {
		src, err := elevation.NewSRTM(nil)
		if err != nil {
			log.Fatalf("Failed to set up SRTM: %v", err)
		}
		log.Println("Looking up missing elevations...")
		if g, err = elevation.Enrich(ctx, g, src); err != nil {
			log.Fatalf("Elevation lookup failed: %v", err)
		}
	}
	g = route.WithCurvature(g)

	if *output != "" {
		if err := writeGraph(*output, g); err != nil {
			log.Fatalf("Failed to write %s: %v", *output, err)
		}
		log.Printf("Wrote route graph to %s", *output)
	}

	// Step 3: Reduce.
	segs := colorize.Segments(g)
	prof := profile.Reduce(g, profile.WithItemLimit(*itemLimit))
	tables := category.Tables(g)
	sum := route.Summarize(g)

	w := os.Stdout
	fmt.Fprintf(w, "Distance:      %.2f km\n", sum.DistanceMeters/1000)
	fmt.Fprintf(w, "Time:          %s\n", route.FormatDuration(sum.TimeSeconds))
	fmt.Fprintf(w, "Intersections: %d\n", sum.Intersections)
	fmt.Fprintf(w, "Curvature:     %.1f per km\n", sum.CurvaturePerKm)
	fmt.Fprintf(w, "Segments:      %d\n", len(segs))
	fmt.Fprintf(w, "Chart samples: %d (window %d)\n", len(prof.Samples), prof.Resolver.WindowSize)

	if *verbose {
		printSegments(w, segs)
		printSamples(w, prof)
	}
	for _, t := range tables {
		printTable(w, t)
	}

	if *at != "" {
		var lat, lon float64
		if _, err := fmt.Sscanf(*at, "%f,%f", &lat, &lon); err != nil {
			log.Fatalf("Invalid --at (expected lat,lon): %v", err)
		}
		node, dist, ok := route.NewIndex(g).Nearest(lat, lon)
		if !ok {
			log.Fatalf("Route has no nodes")
		}
		sample, _ := prof.Resolver.SampleOf(node)
		ll := g.Nodes[node].Coordinates
		fmt.Fprintf(w, "\nNearest node %d at %.6f, %.6f (%.1f m away), chart sample %d\n",
			node, ll.Lat, ll.Lon, dist, sample)
	}

	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}

func load(ctx context.Context, path string) (*route.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return gpx.ParseRoute(f)
	case ".osm", ".xml":
		return osm.ParseRoute(ctx, f)
	default:
		return route.Decode(f)
	}
}

func writeGraph(path string, g *route.Graph) error {
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func printSegments(w io.Writer, segs []colorize.Segment) {
	fmt.Fprintln(w, "\nSegments:")
	for i, s := range segs {
		fmt.Fprintf(w, "  %4d  %s  weight %d  %d points\n", i, s.Color, s.Weight, len(s.Positions))
	}
}

func printSamples(w io.Writer, p profile.Profile) {
	fmt.Fprintln(w, "\nElevation profile:")
	for i, s := range p.Samples {
		fmt.Fprintf(w, "  %4d  %8.1f m  %s  %s\n", i, s.Value, s.Color, s.Label)
	}
}

func printTable(w io.Writer, t category.Table) {
	fmt.Fprintf(w, "\n%s:\n", t.Title)
	for _, r := range t.Rows {
		fmt.Fprintf(w, "  %-20s %9.0f m  %5.1f%%  %s\n", r.Label, r.Distance, r.Percentage, r.Color)
	}
}
