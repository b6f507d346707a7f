package geo

import "math"

// Rhumb-line (loxodrome) formulas based on the Mercator projection and its
// isometric latitude, see www.movable-type.co.uk/scripts/latlong.html#rhumblines.

// RhumbDistance returns the length of the constant-bearing path from a to b
// over a sphere of the given radius. The path crossing the anti-meridian
// takes the shorter wrap-around.
func RhumbDistance(a, b Point, radius float64) float64 {
	φ1 := toRadians(a.Lat)
	φ2 := toRadians(b.Lat)
	Δφ := φ2 - φ1
	Δλ := toRadians(math.Abs(b.Lon - a.Lon))
	if Δλ > math.Pi {
		Δλ -= 2 * math.Pi
	}

	// on Mercator projection north-south distances scale by the projected
	// latitude stretch Δψ; the E-W line (Δψ → 0) is ill-conditioned and
	// falls back to cosφ
	Δψ := math.Log(math.Tan(φ2/2+math.Pi/4) / math.Tan(φ1/2+math.Pi/4))
	q := math.Cos(φ1)
	if math.Abs(Δψ) > 1e-11 {
		q = Δφ / Δψ
	}

	// Pythagoras on the projected plane
	δ := math.Sqrt(Δφ*Δφ + q*q*Δλ*Δλ)

	return δ * radius
}

// RhumbDistanceTo returns the rhumb-line distance to the given point in
// metres.
func (p Point) RhumbDistanceTo(to Point) float64 {
	return RhumbDistance(p, to, EarthRadius)
}

// RhumbBearingTo returns the constant bearing in degrees [0, 360) of the
// rhumb line toward the given point.
func (p Point) RhumbBearingTo(to Point) float64 {
	φ1 := toRadians(p.Lat)
	φ2 := toRadians(to.Lat)
	Δλ := toRadians(to.Lon - p.Lon)
	if Δλ > math.Pi {
		Δλ -= 2 * math.Pi
	}
	if Δλ < -math.Pi {
		Δλ += 2 * math.Pi
	}

	Δψ := math.Log(math.Tan(φ2/2+math.Pi/4) / math.Tan(φ1/2+math.Pi/4))
	θ := math.Atan2(Δλ, Δψ)

	return wrap360(toDegrees(θ))
}

// RhumbDestination returns the point reached after travelling the given
// distance on the given constant bearing from p, over a sphere of the
// given radius. A path crossing a pole reflects back into latitude range.
func RhumbDestination(p Point, distance, bearing, radius float64) Point {
	δ := distance / radius
	φ1 := toRadians(p.Lat)
	λ1 := toRadians(p.Lon)
	θ := toRadians(bearing)

	Δφ := δ * math.Cos(θ)
	φ2 := φ1 + Δφ

	// crossed a pole, reflect back into range
	if math.Abs(φ2) > math.Pi/2 {
		if φ2 > 0 {
			φ2 = math.Pi - φ2
		} else {
			φ2 = -math.Pi - φ2
		}
	}

	Δψ := math.Log(math.Tan(φ2/2+math.Pi/4) / math.Tan(φ1/2+math.Pi/4))
	q := math.Cos(φ1)
	if math.Abs(Δψ) > 1e-11 {
		q = Δφ / Δψ
	}

	Δλ := δ * math.Sin(θ) / q
	λ2 := λ1 + Δλ

	return Point{Lat: toDegrees(φ2), Lon: wrap180(toDegrees(λ2))}
}

// RhumbDestinationPoint returns the point reached after travelling the
// given distance in metres on the given constant bearing from p.
func (p Point) RhumbDestinationPoint(distance, bearing float64) Point {
	return RhumbDestination(p, distance, bearing, EarthRadius)
}

// RhumbMidpointTo returns the loxodromic midpoint between p and the given
// point, half-way along the rhumb line.
func (p Point) RhumbMidpointTo(to Point) Point {
	φ1 := toRadians(p.Lat)
	λ1 := toRadians(p.Lon)
	φ2 := toRadians(to.Lat)
	λ2 := toRadians(to.Lon)

	// shift one longitude by a full turn when straddling the anti-meridian
	if math.Abs(λ2-λ1) > math.Pi {
		λ1 += 2 * math.Pi
	}

	φ3 := (φ1 + φ2) / 2
	f1 := math.Tan(math.Pi/4 + φ1/2)
	f2 := math.Tan(math.Pi/4 + φ2/2)
	f3 := math.Tan(math.Pi/4 + φ3/2)
	λ3 := ((λ2-λ1)*math.Log(f3) + λ1*math.Log(f2) - λ2*math.Log(f1)) /
		math.Log(f2/f1)

	// parallel of latitude divides by log(1) = 0
	if math.IsInf(λ3, 0) || math.IsNaN(λ3) {
		λ3 = (λ1 + λ2) / 2
	}

	return Point{Lat: toDegrees(φ3), Lon: wrap180(toDegrees(λ3))}
}
