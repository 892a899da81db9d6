// Package category groups route edges into categories such as road type or
// road surface and reports how much of the route each category covers.
package category

import (
	"sort"
	"strings"
	"unicode"

	"route_viz/pkg/route"
)

// Unknown is the category of edges the classifier has no value for.
const Unknown = "Unknown"

// linkSuffix marks ramp/connector variants, e.g. TrunkLink belongs to Trunk.
const linkSuffix = "Link"

// Classifier extracts a category key from an edge. An empty key means the
// edge is unclassified.
type Classifier interface {
	Classify(e route.Edge) string
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(e route.Edge) string

// Classify calls f(e).
func (f ClassifierFunc) Classify(e route.Edge) string {
	return f(e)
}

// Built-in classifiers.
var (
	Highway Classifier = ClassifierFunc(func(e route.Edge) string { return e.Highway })
	Surface Classifier = ClassifierFunc(func(e route.Edge) string { return e.Surface })
)

// Stat is one row of a category table.
type Stat struct {
	Key        string  `json:"key"`
	Color      string  `json:"color"`
	Label      string  `json:"label"`
	Distance   float64 `json:"distance_meters"`
	Percentage float64 `json:"percentage"`
}

// Aggregate sums edge distances per category and returns the categories by
// descending distance, with ties ordered by key. A route whose total
// distance is zero yields an empty result.
func Aggregate(g *route.Graph, c Classifier, p Palette) []Stat {
	total := g.TotalDistance()
	if total <= 0 {
		return []Stat{}
	}

	totals := make(map[string]float64)
	for _, e := range g.Edges {
		totals[Normalize(c.Classify(e))] += e.Distance
	}

	stats := make([]Stat, 0, len(totals))
	for key, dist := range totals {
		stats = append(stats, Stat{
			Key:        key,
			Color:      colorOf(p, key),
			Label:      SplitCamel(key),
			Distance:   dist,
			Percentage: dist / total * 100,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Distance != stats[j].Distance {
			return stats[i].Distance > stats[j].Distance
		}
		return stats[i].Key < stats[j].Key
	})
	return stats
}

// Normalize maps a raw classifier value to its aggregation key: empty values
// become Unknown and a trailing "Link" is dropped.
func Normalize(key string) string {
	if key == "" {
		return Unknown
	}
	if base := strings.TrimSuffix(key, linkSuffix); base != "" {
		return base
	}
	return key
}

// SplitCamel inserts a space before every uppercase letter after the first
// character, e.g. "LivingStreet" becomes "Living Street".
func SplitCamel(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func colorOf(p Palette, key string) string {
	if p == nil {
		return Fallback
	}
	if c := p.ColorOf(key); c != "" {
		return c
	}
	return Fallback
}
