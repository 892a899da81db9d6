package osm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"route_viz/pkg/elevation"
	"route_viz/pkg/geo"
	"route_viz/pkg/route"
)

// ErrNoPath is returned when a document holds no routable ways.
var ErrNoPath = errors.New("no routable ways")

// defaultSpeeds lists routable highway tag values and their assumed speed in
// km/h when the way has no maxspeed tag.
var defaultSpeeds = map[string]int{
	"motorway":       120,
	"trunk":          120,
	"primary":        100,
	"secondary":      100,
	"tertiary":       100,
	"unclassified":   50,
	"residential":    30,
	"motorway_link":  60,
	"trunk_link":     60,
	"primary_link":   50,
	"secondary_link": 50,
	"tertiary_link":  50,
	"living_street":  5,
	"service":        30,
	"pedestrian":     30,
	"track":          30,
	"road":           30,
	"footway":        30,
	"steps":          30,
	"path":           30,
	"cycleway":       30,
}

// knownSurfaces lists the surface tag values that map to a category.
var knownSurfaces = map[string]bool{
	"paved": true, "unpaved": true, "asphalt": true, "concrete": true,
	"paving_stones": true, "sett": true, "cobblestone": true, "metal": true,
	"wood": true, "compacted": true, "fine_gravel": true, "gravel": true,
	"pebblestone": true, "plastic": true, "grass_paver": true, "grass": true,
	"dirt": true, "earth": true, "mud": true, "sand": true, "ground": true,
}

// isRoutable returns true if the way is a highway the route planner uses.
func isRoutable(tags osm.Tags) bool {
	if _, ok := defaultSpeeds[tags.Find("highway")]; !ok {
		return false
	}

	// Skip area highways (pedestrian plazas).
	return tags.Find("area") != "yes"
}

// CategoryKey converts an OSM tag value such as "living_street" into the
// CamelCase key used by category tables ("LivingStreet").
func CategoryKey(value string) string {
	var b strings.Builder
	for _, part := range strings.Split(value, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// maxSpeed parses a maxspeed tag ("50", "30 mph") into km/h, falling back to
// the highway's default speed.
func maxSpeed(tags osm.Tags) int {
	tag := strings.TrimSpace(tags.Find("maxspeed"))
	if v, err := strconv.Atoi(tag); err == nil && v > 0 {
		return v
	}
	if fields := strings.Fields(tag); len(fields) == 2 && fields[1] == "mph" {
		if mph, err := strconv.Atoi(fields[0]); err == nil && mph > 0 {
			return int(float64(mph) * 1.609344)
		}
	}
	return defaultSpeeds[tags.Find("highway")]
}

// wayInfo holds the parts of a routable way the path builder needs.
type wayInfo struct {
	NodeIDs  []osm.NodeID
	Highway  string
	Surface  string
	MaxSpeed int
}

// ParseRoute reads an OSM XML document and returns the route formed by
// walking its routable ways in document order. Consecutive ways are joined
// at shared end nodes; a way whose last node meets the current path end is
// walked in reverse. Node "ele" tags become elevations and edge grades;
// curvature is derived from the coordinates.
func ParseRoute(ctx context.Context, r io.Reader) (*route.Graph, error) {
	nodes := make(map[osm.NodeID]*osm.Node)
	var ways []wayInfo

	scanner := osmxml.New(ctx, r)
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			nodes[obj.ID] = obj
		case *osm.Way:
			if !isRoutable(obj.Tags) || len(obj.Nodes) < 2 {
				continue
			}
			ids := make([]osm.NodeID, len(obj.Nodes))
			for i, wn := range obj.Nodes {
				ids[i] = wn.ID
			}
			surface := ""
			if s := obj.Tags.Find("surface"); knownSurfaces[s] {
				surface = CategoryKey(s)
			}
			ways = append(ways, wayInfo{
				NodeIDs:  ids,
				Highway:  CategoryKey(obj.Tags.Find("highway")),
				Surface:  surface,
				MaxSpeed: maxSpeed(obj.Tags),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scan osm xml: %w", err)
	}
	scanner.Close()

	if len(ways) == 0 {
		return nil, ErrNoPath
	}
	log.Printf("Parsed %d routable ways, %d nodes", len(ways), len(nodes))

	g := &route.Graph{}
	var pathEnd osm.NodeID
	for wi, w := range ways {
		walk := w.NodeIDs
		if wi > 0 && walk[len(walk)-1] == pathEnd && walk[0] != pathEnd {
			walk = reversed(walk)
		}
		ids := walk
		if wi > 0 && ids[0] == pathEnd {
			ids = ids[1:]
		}

		for _, id := range ids {
			n, ok := nodes[id]
			if !ok {
				return nil, fmt.Errorf("way references missing node %d", id)
			}
			if len(g.Nodes) > 0 {
				prev := g.Nodes[len(g.Nodes)-1].Coordinates
				dist := geo.Haversine(prev.Lat, prev.Lon, n.Lat, n.Lon)
				g.Edges = append(g.Edges, route.Edge{
					Source:   len(g.Nodes) - 1,
					Target:   len(g.Nodes),
					Distance: dist,
					MaxSpeed: w.MaxSpeed,
					Highway:  w.Highway,
					Surface:  w.Surface,
				})
				g.Distance += dist
				if w.MaxSpeed > 0 {
					g.Time += dist / (float64(w.MaxSpeed) / 3.6)
				}
			}
			g.Nodes = append(g.Nodes, toNode(n))
		}
		pathEnd = walk[len(walk)-1]
	}

	g.Edges = elevation.Grades(g)
	g.Curvature = route.DeriveCurvature(g)
	return g, nil
}

func toNode(n *osm.Node) route.Node {
	node := route.Node{
		ID:          int64(n.ID),
		Coordinates: route.LatLng{Lat: n.Lat, Lon: n.Lon},
	}
	if ele, err := strconv.ParseFloat(strings.TrimSpace(n.Tags.Find("ele")), 64); err == nil {
		node.Elevation = ele
		node.HasElevation = true
	}
	return node
}

func reversed(ids []osm.NodeID) []osm.NodeID {
	out := make([]osm.NodeID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
