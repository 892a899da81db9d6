package category

import "route_viz/pkg/route"

// Fallback is the color of categories missing from a palette.
const Fallback = "#000000"

// Palette maps a category key to a display color. An empty result means the
// key is not in the palette.
type Palette interface {
	ColorOf(key string) string
}

// PaletteMap is a Palette backed by a fixed table.
type PaletteMap map[string]string

// ColorOf returns the table entry for key, or Fallback.
func (m PaletteMap) ColorOf(key string) string {
	if c, ok := m[key]; ok && c != "" {
		return c
	}
	return Fallback
}

// RoadTypeColors colors highway categories.
var RoadTypeColors = PaletteMap{
	"Motorway":     "#264653",
	"Trunk":        "#2a9d8f",
	"Primary":      "#e9c46a",
	"Secondary":    "#f4a261",
	"Tertiary":     "#e76f51",
	"Unclassified": "#e63946",
	"Residential":  "#f1faee",
	"LivingStreet": "#a8dadc",
	"Service":      "#457b9d",
	"Pedestrian":   "#8338ec",
	"Track":        "#3a86ff",
	"Road":         "#99582a",
	"Footway":      "#979dac",
	"Steps":        "#fbff12",
	"Path":         "#ffa5ab",
	"Cycleway":     "#276321",
}

// RoadSurfaceColors colors surface categories.
var RoadSurfaceColors = PaletteMap{
	"Paved":        "#264653",
	"Unpaved":      "#2a9d8f",
	"Asphalt":      "#979dac",
	"Concrete":     "#e9c46a",
	"PavingStones": "#ffa5ab",
	"Sett":         "#457b9d",
	"Cobblestone":  "#f1faee",
	"Metal":        "#a8dadc",
	"Wood":         "#e63946",
	"Compacted":    "#8338ec",
	"FineGravel":   "#6d7980",
	"Gravel":       "#953272",
	"Pebblestone":  "#3a86ff",
	"Plastic":      "#f4a261",
	"GrassPaver":   "#7fb800",
	"Grass":        "#276321",
	"Dirt":         "#99582a",
	"Earth":        "#54211C",
	"Mud":          "#e76f51",
	"Sand":         "#fbff12",
	"Ground":       "#ff5400",
}

// Table is a titled category breakdown.
type Table struct {
	Title string `json:"title"`
	Rows  []Stat `json:"rows"`
}

// Tables returns the road type and road surface breakdowns of g.
func Tables(g *route.Graph) []Table {
	return []Table{
		{Title: "Road Type", Rows: Aggregate(g, Highway, RoadTypeColors)},
		{Title: "Road Surface", Rows: Aggregate(g, Surface, RoadSurfaceColors)},
	}
}
