package route

import (
	"encoding/json"
	"fmt"
	"io"
)

// Wire shapes of the routing service's response.
type nodeJSON struct {
	ID          int64  `json:"id"`
	Coordinates LatLng `json:"coordinates"`
	Meta        struct {
		Elevation *float64 `json:"elevation"`
	} `json:"meta"`
}

type edgeMetaJSON struct {
	Grade    *float64 `json:"grade"`
	MaxSpeed *struct {
		Speed int `json:"speed"`
	} `json:"max_speed,omitempty"`
	Highway *string `json:"highway"`
	Surface *string `json:"surface"`
}

type edgeJSON struct {
	SourceIndex int          `json:"source_index"`
	TargetIndex int          `json:"target_index"`
	Distance    *float64     `json:"distance"`
	Meta        edgeMetaJSON `json:"meta"`
}

type graphJSON struct {
	Nodes         []Node    `json:"nodes"`
	Edges         []Edge    `json:"edges"`
	Time          float64   `json:"time"`
	Distance      float64   `json:"distance"`
	Intersections int       `json:"intersections"`
	Curvature     Curvature `json:"curvature"`
}

// MarshalJSON encodes an invalid radius as null.
func (r Radius) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Degrees)
}

// UnmarshalJSON decodes a number or null.
func (r *Radius) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("radius: %w", err)
	}
	if v == nil {
		*r = Radius{}
		return nil
	}
	*r = Radius{Degrees: *v, Valid: true}
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	nj := nodeJSON{ID: n.ID, Coordinates: n.Coordinates}
	if n.HasElevation {
		e := n.Elevation
		nj.Meta.Elevation = &e
	}
	return json.Marshal(nj)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var nj nodeJSON
	if err := json.Unmarshal(data, &nj); err != nil {
		return err
	}
	*n = Node{ID: nj.ID, Coordinates: nj.Coordinates}
	if nj.Meta.Elevation != nil {
		n.Elevation = *nj.Meta.Elevation
		n.HasElevation = true
	}
	return nil
}

func (e Edge) MarshalJSON() ([]byte, error) {
	d := e.Distance
	g := e.Grade
	ej := edgeJSON{
		SourceIndex: e.Source,
		TargetIndex: e.Target,
		Distance:    &d,
		Meta:        edgeMetaJSON{Grade: &g},
	}
	if e.MaxSpeed > 0 {
		ej.Meta.MaxSpeed = &struct {
			Speed int `json:"speed"`
		}{Speed: e.MaxSpeed}
	}
	if e.Highway != "" {
		hw := e.Highway
		ej.Meta.Highway = &hw
	}
	if e.Surface != "" {
		s := e.Surface
		ej.Meta.Surface = &s
	}
	return json.Marshal(ej)
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var ej edgeJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}
	*e = Edge{Source: ej.SourceIndex, Target: ej.TargetIndex}
	if ej.Distance != nil {
		e.Distance = *ej.Distance
	}
	if ej.Meta.Grade != nil {
		e.Grade = *ej.Meta.Grade
	}
	if ej.Meta.MaxSpeed != nil {
		e.MaxSpeed = ej.Meta.MaxSpeed.Speed
	}
	if ej.Meta.Highway != nil {
		e.Highway = *ej.Meta.Highway
	}
	if ej.Meta.Surface != nil {
		e.Surface = *ej.Meta.Surface
	}
	return nil
}

func (g Graph) MarshalJSON() ([]byte, error) {
	gj := graphJSON{
		Nodes:         g.Nodes,
		Edges:         g.Edges,
		Time:          g.Time,
		Distance:      g.Distance,
		Intersections: g.Intersections,
		Curvature:     g.Curvature,
	}
	if gj.Nodes == nil {
		gj.Nodes = []Node{}
	}
	if gj.Edges == nil {
		gj.Edges = []Edge{}
	}
	if gj.Curvature.Radii == nil {
		gj.Curvature.Radii = []Radius{}
	}
	return json.Marshal(gj)
}

func (g *Graph) UnmarshalJSON(data []byte) error {
	var gj graphJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return err
	}
	*g = Graph{
		Nodes:         gj.Nodes,
		Edges:         gj.Edges,
		Curvature:     gj.Curvature,
		Time:          gj.Time,
		Distance:      gj.Distance,
		Intersections: gj.Intersections,
	}
	return nil
}

// Decode reads a single route graph document from r.
func Decode(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode route graph: %w", err)
	}
	return &g, nil
}
