package colorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_viz/pkg/route"
)

func nodes(n int) []route.Node {
	ns := make([]route.Node, n)
	for i := range ns {
		ns[i] = route.Node{Coordinates: route.LatLng{Lat: 48 + float64(i)*1e-4, Lon: 9}}
	}
	return ns
}

func TestSegments_Empty(t *testing.T) {
	segs := Segments(&route.Graph{})
	require.NotNil(t, segs)
	assert.Empty(t, segs)

	assert.Empty(t, Segments(&route.Graph{Nodes: nodes(1)}))
}

func TestSegments_PerEdge(t *testing.T) {
	ns := nodes(3)
	g := &route.Graph{
		Nodes:     ns,
		Edges:     []route.Edge{{Distance: 10}, {Distance: 10}},
		Curvature: route.Curvature{Radii: []route.Radius{route.Deg(150), route.Deg(200)}},
	}

	segs := Segments(g)
	want := []Segment{
		{Positions: []route.LatLng{ns[0].Coordinates, ns[1].Coordinates}, Color: ColorRed, Weight: WeightThick},
		{Positions: []route.LatLng{ns[1].Coordinates, ns[2].Coordinates}, Color: ColorGood, Weight: WeightThick},
	}
	assert.Equal(t, want, segs)
}

func TestSegments_LengthIsNodesMinusOne(t *testing.T) {
	for _, n := range []int{2, 10, 999, MaxPerEdgeNodes} {
		segs := Segments(&route.Graph{Nodes: nodes(n)})
		assert.Len(t, segs, n-1, "n=%d", n)
		for _, s := range segs {
			assert.Len(t, s.Positions, 2)
		}
	}
}

func TestSegments_MissingRadiiAreGood(t *testing.T) {
	g := &route.Graph{
		Nodes:     nodes(4),
		Curvature: route.Curvature{Radii: []route.Radius{route.Deg(165)}},
	}
	segs := Segments(g)
	require.Len(t, segs, 3)
	assert.Equal(t, ColorOrange, segs[0].Color)
	assert.Equal(t, ColorGood, segs[1].Color)
	assert.Equal(t, ColorGood, segs[2].Color)
}

func TestSegments_LargeRouteSingleLine(t *testing.T) {
	g := &route.Graph{Nodes: nodes(MaxPerEdgeNodes + 1)}
	g.Curvature.Radii = make([]route.Radius, len(g.Nodes))
	for i := range g.Curvature.Radii {
		g.Curvature.Radii[i] = route.Deg(100)
	}

	segs := Segments(g)
	require.Len(t, segs, 1)
	assert.Equal(t, ColorGood, segs[0].Color)
	assert.Equal(t, WeightThin, segs[0].Weight)
	assert.Equal(t, g.Coordinates(), segs[0].Positions)
}

func TestSegments_LargeRouteSimplified(t *testing.T) {
	// A straight line collapses to its endpoints.
	g := &route.Graph{Nodes: nodes(1500)}

	segs := Segments(g, WithSimplify(1e-6))
	require.Len(t, segs, 1)
	require.Len(t, segs[0].Positions, 2)
	assert.Equal(t, g.Nodes[0].Coordinates, segs[0].Positions[0])
	assert.Equal(t, g.Nodes[1499].Coordinates, segs[0].Positions[1])

	// Simplification never applies to per-edge output.
	small := &route.Graph{Nodes: nodes(5)}
	assert.Len(t, Segments(small, WithSimplify(1)), 4)
}

func TestCurvatureColor(t *testing.T) {
	tests := []struct {
		name string
		r    route.Radius
		want string
	}{
		{"absent", route.Radius{}, ColorGood},
		{"zero", route.Deg(0), ColorGood},
		{"tight", route.Deg(90), ColorRed},
		{"just below 160", route.Deg(159.99), ColorRed},
		{"exactly 160", route.Deg(160), ColorOrange},
		{"exactly 170", route.Deg(170), ColorYellow},
		{"174.9", route.Deg(174.9), ColorYellow},
		{"exactly 175", route.Deg(175), ColorGood},
		{"straight", route.Deg(180), ColorGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurvatureColor(tt.r))
		})
	}
}

func TestSegments_Idempotent(t *testing.T) {
	g := &route.Graph{
		Nodes:     nodes(20),
		Curvature: route.Curvature{Radii: []route.Radius{route.Deg(120), {}, route.Deg(172)}},
	}
	assert.Equal(t, Segments(g), Segments(g))
}

func TestEncode(t *testing.T) {
	positions := []route.LatLng{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Encode(positions))
}

func TestSegments_WithEncoding(t *testing.T) {
	g := &route.Graph{Nodes: []route.Node{
		{Coordinates: route.LatLng{Lat: 38.5, Lon: -120.2}},
		{Coordinates: route.LatLng{Lat: 40.7, Lon: -120.95}},
	}}

	segs := Segments(g, WithEncoding())
	require.Len(t, segs, 1)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", segs[0].Encoded)

	assert.Empty(t, Segments(g)[0].Encoded)
}
