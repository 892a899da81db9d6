package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"route_viz/pkg/api"
	"route_viz/pkg/elevation"
	"route_viz/pkg/profile"
	"route_viz/pkg/routing"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	routerURL := flag.String("router-url", os.Getenv("ROUTER_URL"), "Base URL of the routing service (empty disables /api/v1/route)")
	itemLimit := flag.Int("item-limit", profile.DefaultItemLimit, "Maximum number of elevation chart samples")
	simplify := flag.Float64("simplify", 0, "Douglas-Peucker tolerance in degrees for long routes (0 = off)")
	maxBody := flag.Int64("max-body", api.DefaultMaxBodyBytes, "Maximum request body size in bytes")
	srtm := flag.Bool("srtm", false, "Fill missing elevations from SRTM tiles")
	flag.Parse()

	var router routing.Router
	if *routerURL != "" {
		router = routing.NewClient(*routerURL, nil)
		log.Printf("Routing service: %s", *routerURL)
	} else {
		log.Println("No routing service configured, /api/v1/route disabled")
	}

	opts := api.Options{
		ItemLimit:    *itemLimit,
		Simplify:     *simplify,
		MaxBodyBytes: *maxBody,
	}
	if *srtm {
		src, err := elevation.NewSRTM(nil)
		if err != nil {
			log.Fatalf("Failed to set up SRTM: %v", err)
		}
		opts.Elevation = src
		log.Println("SRTM elevation lookup enabled")
	}

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(router, opts)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
