// Package elevation fills in node elevations and edge grades for routes whose
// provider did not supply them.
package elevation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/tkrajina/go-elevations/geoelevations"

	"route_viz/pkg/route"
)

// ErrNoData is returned by a Source that has no elevation for a position.
var ErrNoData = errors.New("no elevation data")

// Source looks up the terrain elevation in meters at a position.
type Source interface {
	Elevation(lat, lon float64) (float64, error)
}

// SRTM is a Source backed by NASA SRTM tiles, downloaded on demand and
// cached by the underlying library.
type SRTM struct {
	client *http.Client
	srtm   *geoelevations.Srtm
}

// NewSRTM creates an SRTM source that downloads tiles with client.
func NewSRTM(client *http.Client) (*SRTM, error) {
	if client == nil {
		client = http.DefaultClient
	}
	s, err := geoelevations.NewSrtm(client)
	if err != nil {
		return nil, fmt.Errorf("creating srtm client: %w", err)
	}
	return &SRTM{client: client, srtm: s}, nil
}

// Elevation implements Source.
func (s *SRTM) Elevation(lat, lon float64) (float64, error) {
	e, err := s.srtm.GetElevation(s.client, lat, lon)
	if err != nil {
		return 0, fmt.Errorf("srtm lookup %.5f,%.5f: %w", lat, lon, err)
	}
	if math.IsNaN(e) {
		return 0, ErrNoData
	}
	return e, nil
}

// Enrich returns a copy of g in which nodes without an elevation are looked
// up in src. Grades are recomputed only for edges touching a node that was
// filled in; every other edge keeps the provider's grade, sign included.
// Nodes the source has no data for keep HasElevation=false. g is not
// modified.
func Enrich(ctx context.Context, g *route.Graph, src Source) (*route.Graph, error) {
	out := *g
	out.Nodes = make([]route.Node, len(g.Nodes))
	copy(out.Nodes, g.Nodes)

	filled := make([]bool, len(out.Nodes))
	missing := 0
	for i := range out.Nodes {
		if i%100 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if out.Nodes[i].HasElevation {
			continue
		}

		ll := out.Nodes[i].Coordinates
		e, err := src.Elevation(ll.Lat, ll.Lon)
		if errors.Is(err, ErrNoData) {
			missing++
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Nodes[i].Elevation = e
		out.Nodes[i].HasElevation = true
		filled[i] = true
	}
	if missing > 0 {
		log.Printf("Warning: no elevation data for %d of %d nodes", missing, len(out.Nodes))
	}

	out.Edges = make([]route.Edge, len(g.Edges))
	copy(out.Edges, g.Edges)
	for i := range out.Edges {
		if i+1 >= len(filled) || !(filled[i] || filled[i+1]) {
			continue
		}
		if grade, ok := edgeGrade(out.Nodes[i], out.Nodes[i+1], out.Edges[i]); ok {
			out.Edges[i].Grade = grade
		}
	}
	return &out, nil
}

// Grades returns a copy of g's edges with grades derived from the elevations
// of their endpoints: |rise| / run * 100, rounded to a whole percent. Edges
// without a distance, or whose endpoints lack elevation, keep their grade.
func Grades(g *route.Graph) []route.Edge {
	edges := make([]route.Edge, len(g.Edges))
	copy(edges, g.Edges)

	for i := range edges {
		if i+1 >= len(g.Nodes) {
			continue
		}
		if grade, ok := edgeGrade(g.Nodes[i], g.Nodes[i+1], edges[i]); ok {
			edges[i].Grade = grade
		}
	}
	return edges
}

func edgeGrade(from, to route.Node, e route.Edge) (float64, bool) {
	if e.Distance <= 0 || !from.HasElevation || !to.HasElevation {
		return 0, false
	}
	rise := math.Abs(to.Elevation - from.Elevation)
	return math.Round(rise / e.Distance * 100), true
}
