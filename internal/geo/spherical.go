package geo

import "math"

// Great-circle formulas after the classic spherical trigonometry
// derivations, see www.movable-type.co.uk/scripts/latlong.html and
// www.edwilliams.org/avform147.htm.

// Distance returns the great-circle distance between a and b over a sphere
// of the given radius, using the haversine formula. The result is in the
// units of radius.
func Distance(a, b Point, radius float64) float64 {
	φ1 := toRadians(a.Lat)
	φ2 := toRadians(b.Lat)
	Δφ := toRadians(b.Lat - a.Lat)
	Δλ := toRadians(b.Lon - a.Lon)

	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return radius * c
}

// DistanceTo returns the great-circle distance to the given point in metres.
func (p Point) DistanceTo(to Point) float64 {
	return Distance(p, to, EarthRadius)
}

// BearingTo returns the initial bearing in degrees [0, 360) of the
// great-circle path toward the given point.
func (p Point) BearingTo(to Point) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	φ1 := toRadians(p.Lat)
	φ2 := toRadians(to.Lat)
	Δλ := toRadians(to.Lon - p.Lon)

	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	θ := math.Atan2(y, x)

	return wrap360(toDegrees(θ))
}

// FinalBearingTo returns the bearing in degrees [0, 360) at which the
// great-circle path arrives at the given point.
func (p Point) FinalBearingTo(to Point) float64 {
	// reverse initial bearing from the far end
	return wrap360(to.BearingTo(p) + 180)
}

// MidpointTo returns the half-way point along the great-circle path to the
// given point.
func (p Point) MidpointTo(to Point) Point {
	// φm = atan2(sinφ1+sinφ2, √((cosφ1+Bx)²+By²))
	// λm = λ1 + atan2(By, cosφ1+Bx)
	φ1 := toRadians(p.Lat)
	φ2 := toRadians(to.Lat)
	λ1 := toRadians(p.Lon)
	Δλ := toRadians(to.Lon - p.Lon)

	bx := math.Cos(φ2) * math.Cos(Δλ)
	by := math.Cos(φ2) * math.Sin(Δλ)

	φm := math.Atan2(math.Sin(φ1)+math.Sin(φ2),
		math.Sqrt((math.Cos(φ1)+bx)*(math.Cos(φ1)+bx)+by*by))
	λm := λ1 + math.Atan2(by, math.Cos(φ1)+bx)

	return Point{Lat: toDegrees(φm), Lon: wrap180(toDegrees(λm))}
}

// IntermediatePointTo returns the point at the given fraction of the
// great-circle path to the given point (0 = receiver, 1 = to). Coincident
// endpoints return the start point rather than an indeterminate 0/0.
func (p Point) IntermediatePointTo(to Point, fraction float64) Point {
	φ1 := toRadians(p.Lat)
	λ1 := toRadians(p.Lon)
	φ2 := toRadians(to.Lat)
	λ2 := toRadians(to.Lon)

	// angular distance between the endpoints
	Δφ := φ2 - φ1
	Δλ := λ2 - λ1
	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	δ := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	if δ == 0 {
		return p
	}

	a := math.Sin((1-fraction)*δ) / math.Sin(δ)
	b := math.Sin(fraction*δ) / math.Sin(δ)

	x := a*math.Cos(φ1)*math.Cos(λ1) + b*math.Cos(φ2)*math.Cos(λ2)
	y := a*math.Cos(φ1)*math.Sin(λ1) + b*math.Cos(φ2)*math.Sin(λ2)
	z := a*math.Sin(φ1) + b*math.Sin(φ2)

	φi := math.Atan2(z, math.Sqrt(x*x+y*y))
	λi := math.Atan2(y, x)

	return Point{Lat: toDegrees(φi), Lon: wrap180(toDegrees(λi))}
}

// Destination returns the point reached after travelling the given distance
// on the given initial bearing from p, over a sphere of the given radius.
func Destination(p Point, distance, bearing, radius float64) Point {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	δ := distance / radius
	θ := toRadians(bearing)
	φ1 := toRadians(p.Lat)
	λ1 := toRadians(p.Lon)

	φ2 := math.Asin(math.Sin(φ1)*math.Cos(δ) +
		math.Cos(φ1)*math.Sin(δ)*math.Cos(θ))
	λ2 := λ1 + math.Atan2(math.Sin(θ)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2))

	return Point{Lat: toDegrees(φ2), Lon: wrap180(toDegrees(λ2))}
}

// DestinationPoint returns the point reached after travelling the given
// distance in metres on the given initial bearing from p.
func (p Point) DestinationPoint(distance, bearing float64) Point {
	return Destination(p, distance, bearing, EarthRadius)
}

// Intersection returns the point where the great-circle path from p1 on
// bearing brng1 crosses the path from p2 on brng2. The second return is
// false when the start points coincide, the paths have no distinct
// crossing (infinite intersections), or the included angles disagree in
// sign so no intersection lies ahead on both paths.
func Intersection(p1 Point, brng1 float64, p2 Point, brng2 float64) (Point, bool) {
	φ1 := toRadians(p1.Lat)
	λ1 := toRadians(p1.Lon)
	φ2 := toRadians(p2.Lat)
	λ2 := toRadians(p2.Lon)
	θ13 := toRadians(brng1)
	θ23 := toRadians(brng2)
	Δφ := φ2 - φ1
	Δλ := λ2 - λ1

	// angular distance p1 → p2
	δ12 := 2 * math.Asin(math.Sqrt(math.Sin(Δφ/2)*math.Sin(Δφ/2)+
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)))
	if δ12 == 0 {
		return Point{}, false
	}

	// initial/final bearings between the start points
	θa := math.Acos((math.Sin(φ2) - math.Sin(φ1)*math.Cos(δ12)) /
		(math.Sin(δ12) * math.Cos(φ1)))
	if math.IsNaN(θa) {
		θa = 0 // protect against rounding
	}
	θb := math.Acos((math.Sin(φ1) - math.Sin(φ2)*math.Cos(δ12)) /
		(math.Sin(δ12) * math.Cos(φ2)))

	var θ12, θ21 float64
	if math.Sin(Δλ) > 0 {
		θ12 = θa
		θ21 = 2*math.Pi - θb
	} else {
		θ12 = 2*math.Pi - θa
		θ21 = θb
	}

	α1 := θ13 - θ12 // angle 2-1-3
	α2 := θ21 - θ23 // angle 1-2-3

	if math.Sin(α1) == 0 && math.Sin(α2) == 0 {
		return Point{}, false // infinite intersections
	}
	if math.Sin(α1)*math.Sin(α2) < 0 {
		return Point{}, false // ambiguous intersection
	}

	α3 := math.Acos(-math.Cos(α1)*math.Cos(α2) +
		math.Sin(α1)*math.Sin(α2)*math.Cos(δ12))
	δ13 := math.Atan2(math.Sin(δ12)*math.Sin(α1)*math.Sin(α2),
		math.Cos(α2)+math.Cos(α1)*math.Cos(α3))

	φ3 := math.Asin(math.Sin(φ1)*math.Cos(δ13) +
		math.Cos(φ1)*math.Sin(δ13)*math.Cos(θ13))
	Δλ13 := math.Atan2(math.Sin(θ13)*math.Sin(δ13)*math.Cos(φ1),
		math.Cos(δ13)-math.Sin(φ1)*math.Sin(φ3))
	λ3 := λ1 + Δλ13

	return Point{Lat: toDegrees(φ3), Lon: wrap180(toDegrees(λ3))}, true
}

// CrossTrackDistance returns the signed perpendicular distance from p to
// the great-circle path through pathStart and pathEnd, over a sphere of the
// given radius. Negative means left of the path, positive right.
func CrossTrackDistance(p, pathStart, pathEnd Point, radius float64) float64 {
	δ13 := Distance(pathStart, p, radius) / radius
	θ13 := toRadians(pathStart.BearingTo(p))
	θ12 := toRadians(pathStart.BearingTo(pathEnd))

	δxt := math.Asin(math.Sin(δ13) * math.Sin(θ13-θ12))

	return δxt * radius
}

// CrossTrackDistanceTo returns the signed perpendicular distance in metres
// from p to the great-circle path through pathStart and pathEnd.
func (p Point) CrossTrackDistanceTo(pathStart, pathEnd Point) float64 {
	return CrossTrackDistance(p, pathStart, pathEnd, EarthRadius)
}

// MaxLatitude returns the maximum latitude in degrees reached by the
// great-circle path leaving p on the given initial bearing, by Clairaut's
// formula. Negate for the Southern-hemisphere minimum.
func (p Point) MaxLatitude(bearing float64) float64 {
	θ := toRadians(bearing)
	φ := toRadians(p.Lat)

	φMax := math.Acos(math.Abs(math.Sin(θ) * math.Cos(φ)))

	return toDegrees(φMax)
}
