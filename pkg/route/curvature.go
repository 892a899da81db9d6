package route

import (
	"route_viz/pkg/geo"
)

// Curvature thresholds in degrees. An interior angle below a threshold is a
// sharper turn than the threshold describes.
const (
	SharpTurnDegrees  = 160.0
	MediumTurnDegrees = 170.0
	GentleTurnDegrees = 175.0
)

// RadiusScore weights a single radius for the route's curvature score.
func RadiusScore(r Radius) float64 {
	if !r.Valid {
		return 0
	}
	switch {
	case r.Degrees < SharpTurnDegrees:
		return 6
	case r.Degrees < MediumTurnDegrees:
		return 2
	case r.Degrees < GentleTurnDegrees:
		return 1
	default:
		return 0
	}
}

// DeriveCurvature computes turn radii from node coordinates for routes whose
// provider did not supply them. The result has one radius per node: the first
// and last entries reuse the angle of the first and last node triples. Routes
// with fewer than three nodes have no radii.
func DeriveCurvature(g *Graph) Curvature {
	n := len(g.Nodes)
	if n < 3 {
		return Curvature{}
	}

	angle := func(i int) Radius {
		a := g.Nodes[i-1].Coordinates
		b := g.Nodes[i].Coordinates
		c := g.Nodes[i+1].Coordinates
		deg, ok := geo.TurnAngle(a.Lat, a.Lon, b.Lat, b.Lon, c.Lat, c.Lon)
		if !ok {
			return Radius{}
		}
		return Deg(deg)
	}

	radii := make([]Radius, 0, n)
	radii = append(radii, angle(1))
	for i := 1; i < n-1; i++ {
		radii = append(radii, angle(i))
	}
	radii = append(radii, angle(n-2))

	var score float64
	for _, r := range radii {
		score += RadiusScore(r)
	}
	return Curvature{Radii: radii, Score: score}
}

// WithCurvature returns a shallow copy of g whose curvature is derived from
// its coordinates when g carries no radii. g itself is left untouched.
func WithCurvature(g *Graph) *Graph {
	if len(g.Curvature.Radii) > 0 {
		return g
	}
	cp := *g
	cp.Curvature = DeriveCurvature(g)
	return &cp
}
