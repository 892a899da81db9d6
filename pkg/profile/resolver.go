package profile

import "route_viz/pkg/route"

// Resolver maps between chart samples and route nodes. The zero Resolver
// belongs to an empty route and resolves nothing.
type Resolver struct {
	WindowSize  int
	NodeCount   int
	SampleCount int
}

// Resolve returns the index of the first node of sample i, clamped to the
// last node. ok is false for an empty route or a negative index.
func (r Resolver) Resolve(i int) (node int, ok bool) {
	if r.NodeCount == 0 || i < 0 {
		return 0, false
	}
	size := max(r.WindowSize, 1)
	if i > (r.NodeCount-1)/size {
		return r.NodeCount - 1, true
	}
	return i * size, true
}

// Locate resolves sample i to the coordinates of its node in g.
func (r Resolver) Locate(g *route.Graph, i int) (route.LatLng, bool) {
	node, ok := r.Resolve(i)
	if !ok || node < 0 || node >= len(g.Nodes) {
		return route.LatLng{}, false
	}
	return g.Nodes[node].Coordinates, true
}

// SampleOf returns the sample whose window contains node. Nodes in a dropped
// trailing window map to the last sample.
func (r Resolver) SampleOf(node int) (sample int, ok bool) {
	if r.SampleCount == 0 || node < 0 || node >= r.NodeCount {
		return 0, false
	}
	return min(node/max(r.WindowSize, 1), r.SampleCount-1), true
}
