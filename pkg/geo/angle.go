package geo

import "math"

// TurnAngle returns the interior angle in degrees at B formed by the path
// A -> B -> C, using the law of cosines on great-circle side lengths.
// A straight path yields 180; a hairpin yields values close to 0.
// ok is false when the angle is not a normal number (coincident points,
// or a perfectly collinear reversal that collapses to zero).
func TurnAngle(aLat, aLon, bLat, bLon, cLat, cLon float64) (degrees float64, ok bool) {
	sideA := Haversine(bLat, bLon, cLat, cLon)
	sideB := Haversine(aLat, aLon, bLat, bLon)
	sideC := Haversine(aLat, aLon, cLat, cLon)

	cos := (sideA*sideA + sideB*sideB - sideC*sideC) / (2 * sideA * sideB)
	radians := math.Acos(cos)
	if !isNormal(radians) {
		return 0, false
	}
	return radians / degToRad, true
}

// isNormal reports whether v is a non-zero, finite, non-subnormal number.
func isNormal(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return math.Abs(v) >= 0x1p-1022
}
