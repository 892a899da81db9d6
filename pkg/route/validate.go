package route

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGraph is returned when a route graph violates the pipeline's
// input contract.
var ErrInvalidGraph = errors.New("invalid route graph")

// ValidationError describes the first offending field of a route graph.
type ValidationError struct {
	Field  string // e.g. "nodes[3].elevation"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match ErrInvalidGraph with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidGraph
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks that every numeric field is finite, distances are not
// negative and coordinates are in range. An empty graph is valid.
func Validate(g *Graph) error {
	if g == nil {
		return &ValidationError{Field: "graph", Reason: "missing"}
	}
	for i, n := range g.Nodes {
		ll := n.Coordinates
		if !finite(ll.Lat) || !finite(ll.Lon) {
			return &ValidationError{Field: fmt.Sprintf("nodes[%d].coordinates", i), Reason: "must be finite"}
		}
		if ll.Lat < -90 || ll.Lat > 90 || ll.Lon < -180 || ll.Lon > 180 {
			return &ValidationError{Field: fmt.Sprintf("nodes[%d].coordinates", i), Reason: "out of range"}
		}
		if !finite(n.Elevation) {
			return &ValidationError{Field: fmt.Sprintf("nodes[%d].elevation", i), Reason: "must be finite"}
		}
	}
	for i, e := range g.Edges {
		if !finite(e.Distance) {
			return &ValidationError{Field: fmt.Sprintf("edges[%d].distance", i), Reason: "must be finite"}
		}
		if e.Distance < 0 {
			return &ValidationError{Field: fmt.Sprintf("edges[%d].distance", i), Reason: "must not be negative"}
		}
		if !finite(e.Grade) {
			return &ValidationError{Field: fmt.Sprintf("edges[%d].grade", i), Reason: "must be finite"}
		}
	}
	for i, r := range g.Curvature.Radii {
		if r.Valid && !finite(r.Degrees) {
			return &ValidationError{Field: fmt.Sprintf("curvature.radii[%d]", i), Reason: "must be finite"}
		}
	}
	return nil
}
