package api

import (
	"route_viz/pkg/category"
	"route_viz/pkg/colorize"
	"route_viz/pkg/profile"
	"route_viz/pkg/route"
)

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Stops        []LatLngJSON `json:"stops"`
	Transport    string       `json:"transport"`
	Routing      string       `json:"routing"`
	AvoidUnpaved bool         `json:"avoid_unpaved"`
}

// LatLngJSON represents a lat/lon pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	Route         *route.Graph      `json:"route"`
	Visualization VisualizeResponse `json:"visualization"`
}

// VisualizeResponse is everything the map and chart need to draw a route.
type VisualizeResponse struct {
	Segments []colorize.Segment `json:"segments"`
	Profile  ProfileJSON        `json:"profile"`
	Tables   []category.Table   `json:"tables"`
	Summary  SummaryJSON        `json:"summary"`
}

// ProfileJSON is the reduced elevation chart.
type ProfileJSON struct {
	Samples    []SampleJSON `json:"samples"`
	WindowSize int          `json:"window_size"`
}

// SampleJSON is one chart bar plus the map position it highlights.
type SampleJSON struct {
	profile.Sample
	Location *LatLngJSON `json:"location,omitempty"`
}

// SummaryJSON holds the headline figures of a route.
type SummaryJSON struct {
	DistanceMeters float64       `json:"distance_meters"`
	TimeSeconds    float64       `json:"time_seconds"`
	Duration       string        `json:"duration"`
	Intersections  int           `json:"intersections"`
	CurvaturePerKm float64       `json:"curvature_per_km"`
	Nodes          int           `json:"nodes"`
	Edges          int           `json:"edges"`
	Bounds         [2]LatLngJSON `json:"bounds"`
}

// LocateRequest is the JSON body for POST /api/v1/locate.
type LocateRequest struct {
	Route *route.Graph `json:"route"`
	Point LatLngJSON   `json:"point"`
}

// LocateResponse names the node and chart sample nearest to a map point.
type LocateResponse struct {
	NodeIndex      int        `json:"node_index"`
	SampleIndex    int        `json:"sample_index"`
	Location       LatLngJSON `json:"location"`
	DistanceMeters float64    `json:"distance_meters"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	ItemLimit       int     `json:"item_limit"`
	MaxPerEdgeNodes int     `json:"max_per_edge_nodes"`
	MaxBodyBytes    int64   `json:"max_body_bytes"`
	SimplifyDegrees float64 `json:"simplify_degrees"`
	Elevation       bool    `json:"elevation"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
