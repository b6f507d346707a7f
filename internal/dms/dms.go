// Package dms formats and parses angles in degrees, degrees/decimal-minutes
// and degrees/minutes/seconds notation, and maps bearings to compass points.
package dms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Style selects an angle notation.
type Style int

const (
	// D is decimal degrees, e.g. "051.4778°".
	D Style = iota
	// DM is degrees and decimal minutes, e.g. "051°28.67′".
	DM
	// DMS is degrees, minutes and seconds, e.g. "051°28′40″".
	DMS
)

// String returns the style tag: "d", "dm" or "dms".
func (s Style) String() string {
	switch s {
	case DM:
		return "dm"
	case DMS:
		return "dms"
	default:
		return "d"
	}
}

// ParseStyle converts a style tag into a Style.
func ParseStyle(tag string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "d":
		return D, nil
	case "dm":
		return DM, nil
	case "dms":
		return DMS, nil
	}

	return D, fmt.Errorf("unknown angle style %q", tag)
}

// defaultDecimals returns the per-style default number of decimal places.
func defaultDecimals(style Style) int {
	switch style {
	case DM:
		return 2
	case DMS:
		return 0
	default:
		return 4
	}
}

// Format renders the absolute value of an angle in degrees using the given
// style, with 3-digit zero-padded degrees. Negative decimals selects the
// style default (4 for D, 2 for DM, 0 for DMS). The sign and hemisphere are
// the caller's concern; see FormatLat, FormatLon and FormatBearing.
func Format(deg float64, style Style, decimals int) string {
	if decimals < 0 {
		decimals = defaultDecimals(style)
	}

	deg = math.Abs(deg)
	scale := math.Pow(10, float64(decimals))

	switch style {
	case DM:
		d := math.Floor(deg)
		m := math.Round((deg-d)*60*scale) / scale
		if m >= 60 { // carry on rounding up
			m -= 60
			d++
		}
		return fmt.Sprintf("%03.0f°%0*.*f′", d, numWidth(2, decimals), decimals, m)

	case DMS:
		d := math.Floor(deg)
		m := math.Floor((deg - d) * 60)
		sec := math.Round((deg-d-m/60)*3600*scale) / scale
		if sec >= 60 {
			sec -= 60
			m++
		}
		if m >= 60 {
			m -= 60
			d++
		}
		return fmt.Sprintf("%03.0f°%02.0f′%0*.*f″", d, m, numWidth(2, decimals), decimals, sec)

	default:
		deg = math.Round(deg*scale) / scale
		return fmt.Sprintf("%0*.*f°", numWidth(3, decimals), decimals, deg)
	}
}

// numWidth returns the zero-padded field width for the given count of
// integer digits and decimal places.
func numWidth(intDigits, decimals int) int {
	if decimals == 0 {
		return intDigits
	}

	return intDigits + 1 + decimals
}

// FormatLat renders a latitude with 2-digit degrees and an N/S suffix.
func FormatLat(deg float64, style Style, decimals int) string {
	hemisphere := "N"
	if deg < 0 {
		hemisphere = "S"
	}

	// latitude degrees never need the third digit
	return Format(deg, style, decimals)[1:] + hemisphere
}

// FormatLon renders a longitude with 3-digit degrees and an E/W suffix.
func FormatLon(deg float64, style Style, decimals int) string {
	hemisphere := "E"
	if deg < 0 {
		hemisphere = "W"
	}

	return Format(deg, style, decimals) + hemisphere
}

// FormatBearing renders a bearing normalized into [0, 360), with a full
// turn shown as 0.
func FormatBearing(deg float64, style Style, decimals int) string {
	if deg = math.Mod(deg, 360); deg < 0 {
		deg += 360
	}

	s := Format(deg, style, decimals)
	if strings.HasPrefix(s, "360") {
		// rounding can push e.g. 359.9999° back to a full turn
		s = "0" + strings.TrimPrefix(s, "360")
	}

	return s
}

// Parse converts a signed decimal number or a D/DM/DMS string with an
// optional hemisphere prefix or suffix into decimal degrees. "-", "S" and
// "W" negate.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty angle")
	}

	// plain signed decimal short-circuits the sexagesimal split
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	switch s[len(s)-1] {
	case 'S', 's', 'W', 'w':
		sign = -1
		s = strings.TrimSpace(s[:len(s)-1])
	case 'N', 'n', 'E', 'e':
		s = strings.TrimSpace(s[:len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		sign = -sign
		s = strings.TrimSpace(s[1:])
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	var deg float64
	switch len(parts) {
	case 3:
		sec, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
		}
		deg += sec / 3600
		fallthrough
	case 2:
		min, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
		}
		deg += min / 60
		fallthrough
	case 1:
		d, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid degrees in %q: %w", s, err)
		}
		deg += d
	default:
		return 0, fmt.Errorf("invalid angle %q", s)
	}

	return sign * deg, nil
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint returns the compass point for a bearing at the given
// precision: 1 = cardinal (4-wind), 2 = intercardinal (8-wind),
// 3 = secondary intercardinal (16-wind). Out-of-range precision falls back
// to 16-wind.
func CompassPoint(bearing float64, precision int) string {
	if precision < 1 || precision > 3 {
		precision = 3
	}

	if bearing = math.Mod(bearing, 360); bearing < 0 {
		bearing += 360
	}

	n := 4 << (precision - 1)
	idx := int(math.Round(bearing/360*float64(n))) % n * (16 / n)

	return compassPoints[idx]
}
