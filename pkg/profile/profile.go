// Package profile reduces a route's elevation and grade series to a bounded
// number of chart samples.
//
// Routes with at most ItemLimit nodes are charted one sample per node. Longer
// routes are averaged over fixed windows of S = round(N/ItemLimit) nodes; a
// trailing partial window is dropped so that every sample covers exactly S
// nodes. A Resolver maps a chart sample back to the node it starts at, which
// is how a hovered bar becomes a marker on the map.
package profile

import (
	"math"
	"strconv"

	"route_viz/pkg/route"
)

// DefaultItemLimit is the default maximum number of raw samples.
const DefaultItemLimit = 300

// Grade ladder colors.
const (
	ColorFlat   = "#d9d9d9"
	ColorGentle = "#92d050"
	ColorMedium = "#ffff00"
	ColorSteep  = "#ffc000"
	ColorSevere = "#ff0000"
)

// Sample is one bar of the elevation chart.
type Sample struct {
	Label string  `json:"label"`
	Value float64 `json:"value"` // meters, rounded to 0.1
	Color string  `json:"color"`
}

// Profile is the reduced chart and its sample-to-node resolver.
type Profile struct {
	Samples  []Sample
	Resolver Resolver
}

// Smoothed reports whether samples average windows of more than one node.
func (p Profile) Smoothed() bool {
	r := p.Resolver
	return r.WindowSize > 1 || r.SampleCount != r.NodeCount
}

type options struct {
	limit     int
	elevation func(route.Node) float64
	grade     func(route.Edge) float64
}

// Option configures Reduce.
type Option func(*options)

// WithItemLimit overrides DefaultItemLimit. Values below 1 are ignored.
func WithItemLimit(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.limit = n
		}
	}
}

// WithElevation overrides how a node's elevation is read.
func WithElevation(f func(route.Node) float64) Option {
	return func(o *options) {
		if f != nil {
			o.elevation = f
		}
	}
}

// WithGrade overrides how an edge's grade is read.
func WithGrade(f func(route.Edge) float64) Option {
	return func(o *options) {
		if f != nil {
			o.grade = f
		}
	}
}

// GradeColor maps a grade in percent to its chart color.
func GradeColor(grade float64) string {
	switch {
	case grade < 1:
		return ColorFlat
	case grade < 3:
		return ColorGentle
	case grade < 6:
		return ColorMedium
	case grade < 9:
		return ColorSteep
	default:
		return ColorSevere
	}
}

// Reduce builds the elevation profile of g.
//
// Elevation and grade values must be finite; Reduce does not check.
func Reduce(g *route.Graph, opts ...Option) Profile {
	o := options{
		limit:     DefaultItemLimit,
		elevation: func(n route.Node) float64 { return n.Elevation },
		grade:     func(e route.Edge) float64 { return e.Grade },
	}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(g.Nodes)
	switch {
	case n == 0:
		return Profile{Samples: []Sample{}}
	case n <= o.limit:
		return raw(g, o)
	default:
		return smoothed(g, o)
	}
}

func raw(g *route.Graph, o options) Profile {
	samples := make([]Sample, len(g.Nodes))
	for i, node := range g.Nodes {
		color := ColorFlat
		if e, ok := g.EdgeAt(i); ok {
			color = GradeColor(o.grade(e))
		}
		samples[i] = Sample{
			Label: label(node.Coordinates),
			Value: round1(o.elevation(node)),
			Color: color,
		}
	}
	return Profile{
		Samples:  samples,
		Resolver: Resolver{WindowSize: 1, NodeCount: len(g.Nodes), SampleCount: len(samples)},
	}
}

func smoothed(g *route.Graph, o options) Profile {
	n := len(g.Nodes)
	size := int(math.Round(float64(n) / float64(o.limit)))
	if size < 1 {
		size = 1
	}

	samples := make([]Sample, 0, n/size)
	for i := 0; i < n-size; i += size {
		var elevSum float64
		for _, node := range g.Nodes[i : i+size] {
			elevSum += o.elevation(node)
		}

		samples = append(samples, Sample{
			Label: label(g.Nodes[i].Coordinates),
			Value: round1(elevSum / float64(size)),
			Color: windowColor(g, o, i, size),
		})
	}

	return Profile{
		Samples: samples,
		Resolver: Resolver{
			WindowSize:  size,
			NodeCount:   n,
			SampleCount: len(samples),
		},
	}
}

// windowColor averages the grades of edges [start, start+size). Edge lists
// shorter than the node list fall back to the last edge.
func windowColor(g *route.Graph, o options, start, size int) string {
	if len(g.Edges) == 0 {
		return ColorFlat
	}
	end := min(start+size, len(g.Edges))
	if start >= end {
		e, _ := g.EdgeAt(start)
		return GradeColor(math.Round(o.grade(e)))
	}

	var sum float64
	for _, e := range g.Edges[start:end] {
		sum += o.grade(e)
	}
	return GradeColor(math.Round(sum / float64(end-start)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func label(ll route.LatLng) string {
	return strconv.FormatFloat(ll.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(ll.Lon, 'f', -1, 64)
}
