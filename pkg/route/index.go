package route

import (
	"math"

	"github.com/tidwall/rtree"

	"route_viz/pkg/geo"
)

const initialSearchDeg = 0.001 // ~110 m

// Index answers "which route node is closest to this map position" for
// reverse cross-highlighting. Nodes are stored as points in an R-tree and
// ranked by great-circle distance.
type Index struct {
	tr    rtree.RTreeG[int]
	nodes []LatLng
}

// NewIndex builds an index over the route's node coordinates.
func NewIndex(g *Graph) *Index {
	idx := &Index{nodes: g.Coordinates()}
	for i, ll := range idx.nodes {
		p := [2]float64{ll.Lon, ll.Lat}
		idx.tr.Insert(p, p, i)
	}
	return idx
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int {
	return len(idx.nodes)
}

// Nearest returns the index of the route node closest to (lat, lon) and its
// haversine distance in meters. Ties go to the lower index. ok is false for
// an empty route.
func (idx *Index) Nearest(lat, lon float64) (node int, meters float64, ok bool) {
	if len(idx.nodes) == 0 {
		return 0, 0, false
	}

	// Grow the search window until it holds at least one node.
	best := math.Inf(1)
	for radius := initialSearchDeg; math.IsInf(best, 1); radius *= 2 {
		if radius > 360 {
			return idx.scan(lat, lon)
		}
		node, best = idx.search(lat, lon, radius, radius)
	}

	// Any closer node lies within best meters; widen the window to cover
	// that distance at the most poleward latitude it reaches.
	dLat := best / geo.EarthRadiusMeters * 180 / math.Pi * 1.01
	cosLat := math.Cos(math.Min(90, math.Abs(lat)+dLat) * math.Pi / 180)
	if cosLat < 1e-6 {
		return idx.scan(lat, lon)
	}
	dLon := dLat / cosLat
	if lon-dLon < -180 || lon+dLon > 180 {
		return idx.scan(lat, lon)
	}
	node, best = idx.search(lat, lon, dLat, dLon)
	return node, best, true
}

func (idx *Index) search(lat, lon, dLat, dLon float64) (int, float64) {
	bestNode := 0
	best := math.Inf(1)
	lo := [2]float64{lon - dLon, lat - dLat}
	hi := [2]float64{lon + dLon, lat + dLat}

	idx.tr.Search(lo, hi, func(_, _ [2]float64, i int) bool {
		ll := idx.nodes[i]
		d := geo.Haversine(lat, lon, ll.Lat, ll.Lon)
		if d < best || (d == best && i < bestNode) {
			best = d
			bestNode = i
		}
		return true
	})
	return bestNode, best
}

// scan checks every node. It covers windows that wrap a pole or the
// antimeridian.
func (idx *Index) scan(lat, lon float64) (int, float64, bool) {
	bestNode := 0
	best := math.Inf(1)
	for i, ll := range idx.nodes {
		if d := geo.Haversine(lat, lon, ll.Lat, ll.Lon); d < best {
			best = d
			bestNode = i
		}
	}
	return bestNode, best, true
}
