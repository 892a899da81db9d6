package route

import (
	"github.com/paulmach/orb"
)

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point returns the coordinate as an orb point (lon, lat order).
func (ll LatLng) Point() orb.Point {
	return orb.Point{ll.Lon, ll.Lat}
}

// Node is a single position along the route.
type Node struct {
	ID           int64
	Coordinates  LatLng
	Elevation    float64 // meters
	HasElevation bool
}

// Edge connects node i to node i+1 of the route.
type Edge struct {
	Source   int
	Target   int
	Distance float64 // meters, never negative
	Grade    float64 // percent
	MaxSpeed int     // km/h, 0 if unknown
	Surface  string  // empty if absent
	Highway  string  // empty if absent
}

// Radius is the turn angle in degrees at an edge. Valid is false when the
// routing service could not compute it.
type Radius struct {
	Degrees float64
	Valid   bool
}

// Deg returns a valid radius of d degrees.
func Deg(d float64) Radius {
	return Radius{Degrees: d, Valid: true}
}

// Curvature holds per-edge turn radii and the route's summed curvature score.
type Curvature struct {
	Radii []Radius `json:"radii"`
	Score float64  `json:"score"`
}

// Graph is a computed route as returned by the routing service. It is treated
// as a read-only snapshot: nothing in this module mutates a Graph it is given.
type Graph struct {
	Nodes         []Node
	Edges         []Edge
	Curvature     Curvature
	Time          float64 // seconds
	Distance      float64 // meters, as reported by the routing service
	Intersections int
}

// EdgeAt returns the edge at index i, clamped to the last edge.
// ok is false if the graph has no edges.
func (g *Graph) EdgeAt(i int) (e Edge, ok bool) {
	if len(g.Edges) == 0 {
		return Edge{}, false
	}
	if i >= len(g.Edges) {
		i = len(g.Edges) - 1
	}
	if i < 0 {
		i = 0
	}
	return g.Edges[i], true
}

// RadiusAt returns the curvature radius of edge i. Missing entries are invalid.
func (g *Graph) RadiusAt(i int) Radius {
	if i < 0 || i >= len(g.Curvature.Radii) {
		return Radius{}
	}
	return g.Curvature.Radii[i]
}

// TotalDistance sums all edge distances in meters.
func (g *Graph) TotalDistance() float64 {
	var total float64
	for _, e := range g.Edges {
		total += e.Distance
	}
	return total
}

// Coordinates returns the node coordinates in path order.
func (g *Graph) Coordinates() []LatLng {
	coords := make([]LatLng, len(g.Nodes))
	for i, n := range g.Nodes {
		coords[i] = n.Coordinates
	}
	return coords
}

// LineString returns the route path as an orb line string.
func (g *Graph) LineString() orb.LineString {
	ls := make(orb.LineString, len(g.Nodes))
	for i, n := range g.Nodes {
		ls[i] = n.Coordinates.Point()
	}
	return ls
}

// Bound returns the bounding box of all route nodes. The zero bound is
// returned for an empty route.
func (g *Graph) Bound() orb.Bound {
	if len(g.Nodes) == 0 {
		return orb.Bound{}
	}
	return g.LineString().Bound()
}
