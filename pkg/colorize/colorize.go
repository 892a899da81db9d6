// Package colorize turns a route into colored map polylines, one per edge,
// tinted by how sharply the route turns there.
package colorize

import (
	"github.com/paulmach/orb/simplify"
	"github.com/twpayne/go-polyline"

	"route_viz/pkg/route"
)

// Colors shared with the renderer's legend.
const (
	ColorGood   = "#92d050"
	ColorYellow = "#ffff00"
	ColorOrange = "#ffc000"
	ColorRed    = "#ff0000"
)

const (
	// MaxPerEdgeNodes is the largest route rendered as per-edge segments.
	// Beyond it the route collapses into a single polyline.
	MaxPerEdgeNodes = 1000

	WeightThin  = 3
	WeightThick = 7
)

// Segment is a polyline the map draws with a single color and weight.
// Per-edge segments have exactly two positions. Encoded holds the same
// positions as a Google encoded polyline when WithEncoding is set.
type Segment struct {
	Positions []route.LatLng `json:"positions"`
	Color     string         `json:"color"`
	Weight    int            `json:"weight"`
	Encoded   string         `json:"encoded,omitempty"`
}

type options struct {
	tolerance float64
	encode    bool
}

// Option configures Segments.
type Option func(*options)

// WithSimplify applies Douglas-Peucker simplification, with the given
// tolerance in degrees, to the single polyline emitted for large routes.
// Endpoints are always kept. A tolerance <= 0 disables it.
func WithSimplify(tolerance float64) Option {
	return func(o *options) {
		o.tolerance = tolerance
	}
}

// WithEncoding fills Segment.Encoded.
func WithEncoding() Option {
	return func(o *options) {
		o.encode = true
	}
}

// Encode returns positions as a Google encoded polyline (precision 5).
func Encode(positions []route.LatLng) string {
	coords := make([][]float64, len(positions))
	for i, p := range positions {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// CurvatureColor maps a turn radius to its map color. Thresholds are checked
// in ascending order with strict comparisons; missing data is not a concern.
func CurvatureColor(r route.Radius) string {
	if !r.Valid || r.Degrees == 0 {
		return ColorGood
	}
	switch {
	case r.Degrees < route.SharpTurnDegrees:
		return ColorRed
	case r.Degrees < route.MediumTurnDegrees:
		return ColorOrange
	case r.Degrees < route.GentleTurnDegrees:
		return ColorYellow
	default:
		return ColorGood
	}
}

// Segments builds the map polylines for g. Routes with more than
// MaxPerEdgeNodes nodes yield one thin polyline through every node; smaller
// routes yield one thick segment per consecutive node pair, colored by the
// curvature radius of that edge.
func Segments(g *route.Graph, opts ...Option) []Segment {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(g.Nodes)
	var segs []Segment
	switch {
	case n > MaxPerEdgeNodes:
		segs = []Segment{{
			Positions: singleLine(g, o.tolerance),
			Color:     ColorGood,
			Weight:    WeightThin,
		}}
	case n < 2:
		return []Segment{}
	default:
		segs = make([]Segment, 0, n-1)
		for i := 0; i < n-1; i++ {
			segs = append(segs, Segment{
				Positions: []route.LatLng{g.Nodes[i].Coordinates, g.Nodes[i+1].Coordinates},
				Color:     CurvatureColor(g.RadiusAt(i)),
				Weight:    WeightThick,
			})
		}
	}

	if o.encode {
		for i := range segs {
			segs[i].Encoded = Encode(segs[i].Positions)
		}
	}
	return segs
}

func singleLine(g *route.Graph, tolerance float64) []route.LatLng {
	if tolerance <= 0 {
		return g.Coordinates()
	}

	ls := simplify.DouglasPeucker(tolerance).LineString(g.LineString())
	positions := make([]route.LatLng, len(ls))
	for i, p := range ls {
		positions[i] = route.LatLng{Lat: p.Lat(), Lon: p.Lon()}
	}
	return positions
}
