package elevation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_viz/pkg/route"
)

// fakeSource returns elevations keyed by latitude.
type fakeSource struct {
	byLat map[float64]float64
	err   error
	calls int
}

func (f *fakeSource) Elevation(lat, lon float64) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	e, ok := f.byLat[lat]
	if !ok {
		return 0, ErrNoData
	}
	return e, nil
}

func testGraph() *route.Graph {
	return &route.Graph{
		Nodes: []route.Node{
			{Coordinates: route.LatLng{Lat: 48.0, Lon: 9}, Elevation: 300, HasElevation: true},
			{Coordinates: route.LatLng{Lat: 48.1, Lon: 9}},
			{Coordinates: route.LatLng{Lat: 48.2, Lon: 9}},
			{Coordinates: route.LatLng{Lat: 48.3, Lon: 9}},
		},
		Edges: []route.Edge{
			{Distance: 100, Grade: 1},
			{Distance: 200, Grade: 1},
			{Distance: 0, Grade: 4},
		},
	}
}

func TestEnrich(t *testing.T) {
	g := testGraph()
	src := &fakeSource{byLat: map[float64]float64{48.1: 310, 48.2: 300}}

	out, err := Enrich(context.Background(), g, src)
	require.NoError(t, err)

	// Only nodes without elevation are looked up.
	assert.Equal(t, 3, src.calls)

	assert.Equal(t, 310.0, out.Nodes[1].Elevation)
	assert.True(t, out.Nodes[1].HasElevation)
	assert.False(t, out.Nodes[3].HasElevation, "no data keeps the node unset")

	assert.Equal(t, 10.0, out.Edges[0].Grade) // 10 m over 100 m
	assert.Equal(t, 5.0, out.Edges[1].Grade)  // |-10| m over 200 m
	assert.Equal(t, 4.0, out.Edges[2].Grade)  // zero distance keeps provider grade

	// Input untouched.
	assert.False(t, g.Nodes[1].HasElevation)
	assert.Equal(t, 1.0, g.Edges[0].Grade)
}

func TestEnrich_SourceError(t *testing.T) {
	boom := errors.New("tile download failed")
	_, err := Enrich(context.Background(), testGraph(), &fakeSource{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestEnrich_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Enrich(ctx, testGraph(), &fakeSource{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrich_Empty(t *testing.T) {
	out, err := Enrich(context.Background(), &route.Graph{}, &fakeSource{})
	require.NoError(t, err)
	assert.Empty(t, out.Nodes)
	assert.Empty(t, out.Edges)
}

func TestGrades_ShortNodeList(t *testing.T) {
	g := &route.Graph{
		Nodes: []route.Node{{Elevation: 0, HasElevation: true}},
		Edges: []route.Edge{{Distance: 50, Grade: 3}},
	}
	edges := Grades(g)
	assert.Equal(t, 3.0, edges[0].Grade)
}

func TestEnrich_KeepsProviderGrades(t *testing.T) {
	g := &route.Graph{
		Nodes: []route.Node{
			{Coordinates: route.LatLng{Lat: 48.0, Lon: 9}, Elevation: 320, HasElevation: true},
			{Coordinates: route.LatLng{Lat: 48.1, Lon: 9}, Elevation: 310, HasElevation: true},
			{Coordinates: route.LatLng{Lat: 48.2, Lon: 9}},
		},
		Edges: []route.Edge{
			{Distance: 100, Grade: -10},
			{Distance: 100, Grade: 0},
		},
	}
	src := &fakeSource{byLat: map[float64]float64{48.2: 315}}

	out, err := Enrich(context.Background(), g, src)
	require.NoError(t, err)

	assert.Equal(t, -10.0, out.Edges[0].Grade, "both ends came from the provider")
	assert.Equal(t, 5.0, out.Edges[1].Grade, "one end filled in")
}
