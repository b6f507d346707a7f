package geo

import "math"

// CrossingParallels returns the two longitudes in degrees at which the
// great circle through p1 and p2 crosses the given parallel of latitude.
// The final return is false when the great circle never reaches that
// latitude.
func CrossingParallels(p1, p2 Point, latitude float64) (lon1, lon2 float64, ok bool) {
	φ1 := toRadians(p1.Lat)
	φ2 := toRadians(p2.Lat)
	φ3 := toRadians(latitude)
	λ1 := toRadians(p1.Lon)
	Δλ := toRadians(p2.Lon - p1.Lon)

	x := math.Sin(φ1) * math.Cos(φ2) * math.Cos(φ3) * math.Sin(Δλ)
	y := math.Sin(φ1)*math.Cos(φ2)*math.Cos(φ3)*math.Cos(Δλ) -
		math.Cos(φ1)*math.Sin(φ2)*math.Cos(φ3)
	z := math.Cos(φ1) * math.Cos(φ2) * math.Sin(φ3) * math.Sin(Δλ)

	if z*z > x*x+y*y {
		return 0, 0, false // great circle doesn't reach latitude
	}

	λm := math.Atan2(-y, x)                  // longitude at max latitude
	Δλi := math.Acos(z / math.Sqrt(x*x+y*y)) // Δλ from λm to crossings
	λi1 := wrap180(toDegrees(λ1 + λm - Δλi))
	λi2 := wrap180(toDegrees(λ1 + λm + Δλi))

	return λi1, λi2, true
}
