// Package geo implements spherical-earth and rhumb-line geodesy over
// latitude/longitude points: distances, bearings, midpoints, destination
// points, path intersections, cross-track distances and latitude crossings.
//
// All functions are pure closed-form trigonometry over float64 degrees and
// are safe for unlimited concurrent use.
package geo

import (
	"fmt"
	"math"
	"strings"

	"github.com/woozymasta/latlon/internal/dms"
)

// EarthRadius is the mean radius of the Earth in metres.
const EarthRadius = 6371e3

// Point is an immutable geographic position in decimal degrees.
// Latitude is expected in [-90, 90] but not enforced; longitude is stored
// as given, and every operation that computes a new longitude normalizes
// its result into (-180, 180].
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// New creates a Point from latitude and longitude in degrees, as given.
func New(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// ParsePoint parses a "lat,lon" pair. Each component may be signed decimal
// degrees or a degrees/minutes/seconds string with hemisphere suffix,
// e.g. "52.205,0.119" or "51°28′40″N, 000°00′05″W".
func ParsePoint(s string) (Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point %q: expected \"lat,lon\"", s)
	}

	lat, err := dms.Parse(parts[0])
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}

	lon, err := dms.Parse(parts[1])
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	return Point{Lat: lat, Lon: lon}, nil
}

// Format renders the point as hemisphere-suffixed latitude and longitude
// joined with ", ". Negative decimals select the per-style default.
func (p Point) Format(style dms.Style, decimals int) string {
	return dms.FormatLat(p.Lat, style, decimals) + ", " + dms.FormatLon(p.Lon, style, decimals)
}

// String renders the point in degrees/minutes/seconds.
func (p Point) String() string {
	return p.Format(dms.DMS, -1)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// wrap360 normalizes a bearing in degrees into [0, 360).
func wrap360(deg float64) float64 {
	if 0 <= deg && deg < 360 {
		return deg
	}

	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}

	return d
}

// wrap180 normalizes a longitude in degrees into (-180, 180].
func wrap180(deg float64) float64 {
	if -180 < deg && deg <= 180 {
		return deg
	}

	d := math.Mod(deg+540, 360)
	if d <= 0 {
		d += 360
	}

	return d - 180
}
