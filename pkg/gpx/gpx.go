// Package gpx imports recorded or planned GPX tracks as route graphs, so a
// saved trip can be charted without asking the routing service again.
package gpx

import (
	"errors"
	"fmt"
	"io"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"route_viz/pkg/elevation"
	"route_viz/pkg/geo"
	"route_viz/pkg/route"
)

// ErrNoPoints is returned when the document contains no track or route points.
var ErrNoPoints = errors.New("gpx document has no points")

// ParseRoute reads a GPX document. All track segments are concatenated in
// order; documents without tracks fall back to their first route. Edges carry
// haversine distances and grades derived from point elevations; highway and
// surface are unknown.
func ParseRoute(r io.Reader) (*route.Graph, error) {
	doc, err := gpxgo.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}

	var points []gpxgo.GPXPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			points = append(points, seg.Points...)
		}
	}
	if len(points) == 0 && len(doc.Routes) > 0 {
		points = doc.Routes[0].Points
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	g := &route.Graph{Nodes: make([]route.Node, 0, len(points))}
	for i, p := range points {
		node := route.Node{
			ID:          int64(i),
			Coordinates: route.LatLng{Lat: p.Latitude, Lon: p.Longitude},
		}
		if p.Elevation.NotNull() {
			node.Elevation = p.Elevation.Value()
			node.HasElevation = true
		}
		g.Nodes = append(g.Nodes, node)

		if i == 0 {
			continue
		}
		prev := points[i-1]
		dist := geo.Haversine(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		g.Edges = append(g.Edges, route.Edge{Source: i - 1, Target: i, Distance: dist})
		g.Distance += dist

		if !prev.Timestamp.IsZero() && p.Timestamp.After(prev.Timestamp) {
			g.Time += p.Timestamp.Sub(prev.Timestamp).Seconds()
		}
	}

	g.Edges = elevation.Grades(g)
	g.Curvature = route.DeriveCurvature(g)
	return g, nil
}
