package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"route_viz/pkg/category"
	"route_viz/pkg/colorize"
	"route_viz/pkg/elevation"
	"route_viz/pkg/profile"
	"route_viz/pkg/route"
	"route_viz/pkg/routing"
)

// Options tunes the visualization pipeline behind the handlers.
type Options struct {
	ItemLimit int
	// Simplify is the Douglas-Peucker tolerance in degrees applied to the
	// single polyline of long routes. 0 disables.
	Simplify     float64
	MaxBodyBytes int64
	// Elevation fills missing node elevations. nil disables.
	Elevation elevation.Source
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router routing.Router
	opts   Options
}

// NewHandlers creates handlers with the given router. router may be nil when
// no routing service is configured; /api/v1/route then answers 502.
func NewHandlers(router routing.Router, opts Options) *Handlers {
	if opts.ItemLimit <= 0 {
		opts.ItemLimit = profile.DefaultItemLimit
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handlers{
		router: router,
		opts:   opts,
	}
}

// HandleVisualize handles POST /api/v1/visualize.
func (h *Handlers) HandleVisualize(w http.ResponseWriter, r *http.Request) {
	var g route.Graph
	if !h.decode(w, r, &g) {
		return
	}
	if !h.validGraph(w, &g) {
		return
	}

	resp, err := h.visualize(r.Context(), &g, r.URL.Query().Get("encoding") == "polyline")
	if err != nil {
		h.pipelineError(w, err)
		return
	}
	writeJSON(w, resp)
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !h.decode(w, r, &req) {
		return
	}

	stops := make([]route.LatLng, len(req.Stops))
	for i, s := range req.Stops {
		if err := validateCoord(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "stops")
			return
		}
		stops[i] = route.LatLng{Lat: s.Lat, Lon: s.Lon}
	}

	rreq := routing.Request{
		Stops:        stops,
		Transport:    req.Transport,
		Routing:      req.Routing,
		AvoidUnpaved: req.AvoidUnpaved,
	}
	if err := rreq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if h.router == nil {
		writeError(w, http.StatusBadGateway, "routing_unavailable", "")
		return
	}

	g, err := h.router.Route(r.Context(), rreq)
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrNoRoute):
			writeError(w, http.StatusNotFound, "no_route_found", "")
		case errors.Is(err, routing.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", "")
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			writeError(w, http.StatusBadGateway, "routing_failed", "")
		}
		return
	}
	if !h.validGraph(w, g) {
		return
	}

	vis, err := h.visualize(r.Context(), g, r.URL.Query().Get("encoding") == "polyline")
	if err != nil {
		h.pipelineError(w, err)
		return
	}
	writeJSON(w, RouteResponse{Route: g, Visualization: vis})
}

// HandleLocate handles POST /api/v1/locate.
func (h *Handlers) HandleLocate(w http.ResponseWriter, r *http.Request) {
	var req LocateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Route == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "route")
		return
	}
	if err := validateCoord(req.Point); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "point")
		return
	}
	if !h.validGraph(w, req.Route) {
		return
	}

	node, dist, ok := route.NewIndex(req.Route).Nearest(req.Point.Lat, req.Point.Lon)
	if !ok {
		writeError(w, http.StatusNotFound, "empty_route", "route")
		return
	}
	p := profile.Reduce(req.Route, profile.WithItemLimit(h.opts.ItemLimit))
	sample, _ := p.Resolver.SampleOf(node)

	ll := req.Route.Nodes[node].Coordinates
	writeJSON(w, LocateResponse{
		NodeIndex:      node,
		SampleIndex:    sample,
		Location:       LatLngJSON{Lat: ll.Lat, Lon: ll.Lon},
		DistanceMeters: dist,
	})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatsResponse{
		ItemLimit:       h.opts.ItemLimit,
		MaxPerEdgeNodes: colorize.MaxPerEdgeNodes,
		MaxBodyBytes:    h.opts.MaxBodyBytes,
		SimplifyDegrees: h.opts.Simplify,
		Elevation:       h.opts.Elevation != nil,
	})
}

// visualize runs the full pipeline on a validated graph. encode adds encoded
// polylines to the segments.
func (h *Handlers) visualize(ctx context.Context, g *route.Graph, encode bool) (VisualizeResponse, error) {
	if h.opts.Elevation != nil && missingElevation(g) {
		enriched, err := elevation.Enrich(ctx, g, h.opts.Elevation)
		if err != nil {
			return VisualizeResponse{}, err
		}
		g = enriched
	}
	g = route.WithCurvature(g)
	routeNodes.Observe(float64(len(g.Nodes)))

	var copts []colorize.Option
	if h.opts.Simplify > 0 {
		copts = append(copts, colorize.WithSimplify(h.opts.Simplify))
	}
	if encode {
		copts = append(copts, colorize.WithEncoding())
	}

	p := profile.Reduce(g, profile.WithItemLimit(h.opts.ItemLimit))
	samples := make([]SampleJSON, len(p.Samples))
	for i, s := range p.Samples {
		samples[i] = SampleJSON{Sample: s}
		if ll, ok := p.Resolver.Locate(g, i); ok {
			samples[i].Location = &LatLngJSON{Lat: ll.Lat, Lon: ll.Lon}
		}
	}

	return VisualizeResponse{
		Segments: colorize.Segments(g, copts...),
		Profile: ProfileJSON{
			Samples:    samples,
			WindowSize: p.Resolver.WindowSize,
		},
		Tables:  category.Tables(g),
		Summary: summaryJSON(route.Summarize(g)),
	}, nil
}

func summaryJSON(s route.Summary) SummaryJSON {
	return SummaryJSON{
		DistanceMeters: s.DistanceMeters,
		TimeSeconds:    s.TimeSeconds,
		Duration:       route.FormatDuration(s.TimeSeconds),
		Intersections:  s.Intersections,
		CurvaturePerKm: s.CurvaturePerKm,
		Nodes:          s.NodeCount,
		Edges:          s.EdgeCount,
		Bounds: [2]LatLngJSON{
			{Lat: s.Bound.Min.Lat(), Lon: s.Bound.Min.Lon()},
			{Lat: s.Bound.Max.Lat(), Lon: s.Bound.Max.Lon()},
		},
	}
}

func missingElevation(g *route.Graph) bool {
	for _, n := range g.Nodes {
		if !n.HasElevation {
			return true
		}
	}
	return false
}

// decode enforces the JSON content type and body limit, then decodes into v.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	return true
}

func (h *Handlers) validGraph(w http.ResponseWriter, g *route.Graph) bool {
	err := route.Validate(g)
	if err == nil {
		return true
	}
	var verr *route.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, "invalid_route_graph", verr.Field)
		return false
	}
	writeError(w, http.StatusUnprocessableEntity, "invalid_route_graph", "")
	return false
}

func (h *Handlers) pipelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		return
	}
	writeError(w, http.StatusBadGateway, "elevation_failed", "")
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lon) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lon < -180 || ll.Lon > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
