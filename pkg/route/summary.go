package route

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Summary holds the headline figures shown next to a route.
type Summary struct {
	DistanceMeters float64
	TimeSeconds    float64
	Intersections  int
	CurvaturePerKm float64
	Bound          orb.Bound
	NodeCount      int
	EdgeCount      int
}

// Summarize derives headline figures. The routing service's reported distance
// is preferred; the sum of edge distances is used when it is missing.
func Summarize(g *Graph) Summary {
	dist := g.Distance
	if dist <= 0 {
		dist = g.TotalDistance()
	}
	return Summary{
		DistanceMeters: dist,
		TimeSeconds:    g.Time,
		Intersections:  g.Intersections,
		CurvaturePerKm: CurvaturePerKm(g.Curvature.Score, dist),
		Bound:          g.Bound(),
		NodeCount:      len(g.Nodes),
		EdgeCount:      len(g.Edges),
	}
}

// CurvaturePerKm normalizes a curvature score by route length, rounded to one
// decimal. Zero-length routes score 0.
func CurvaturePerKm(score, distanceMeters float64) float64 {
	if distanceMeters <= 0 {
		return 0
	}
	return math.Round(score/(distanceMeters/1000)*10) / 10
}

// FormatDuration renders seconds as "H h M min".
func FormatDuration(secs float64) string {
	total := int(math.Max(0, secs))
	hours := total / 3600
	minutes := (total - hours*3600) / 60
	return fmt.Sprintf("%d h %d min", hours, minutes)
}
