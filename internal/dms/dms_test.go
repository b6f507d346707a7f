package dms

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		style    Style
		decimals int
		expected string
	}{
		{name: "d default decimals", deg: 51.477811, style: D, decimals: -1, expected: "051.4778°"},
		{name: "d zero decimals", deg: 51.477811, style: D, decimals: 0, expected: "051°"},
		{name: "dm default decimals", deg: 51.477811, style: DM, decimals: -1, expected: "051°28.67′"},
		{name: "dms default decimals", deg: 51.477811, style: DMS, decimals: -1, expected: "051°28′40″"},
		{name: "dms two decimals", deg: 51.477811, style: DMS, decimals: 2, expected: "051°28′40.12″"},
		{name: "sign ignored", deg: -51.477811, style: DMS, decimals: -1, expected: "051°28′40″"},
		{name: "zero", deg: 0, style: DMS, decimals: -1, expected: "000°00′00″"},
		{name: "seconds carry", deg: 51.999999, style: DMS, decimals: -1, expected: "052°00′00″"},
		{name: "minutes carry", deg: 51.9999, style: DM, decimals: 0, expected: "052°00′"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.deg, tt.style, tt.decimals); got != tt.expected {
				t.Errorf("Format(%v, %v, %d) = %q, want %q", tt.deg, tt.style, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestFormatLatLon(t *testing.T) {
	if got, want := FormatLat(51.477811, DMS, -1), "51°28′40″N"; got != want {
		t.Errorf("FormatLat() = %q, want %q", got, want)
	}
	if got, want := FormatLat(-33.8688, D, -1), "33.8688°S"; got != want {
		t.Errorf("FormatLat() = %q, want %q", got, want)
	}
	if got, want := FormatLon(-0.001475, DMS, -1), "000°00′05″W"; got != want {
		t.Errorf("FormatLon() = %q, want %q", got, want)
	}
	if got, want := FormatLon(151.2093, D, -1), "151.2093°E"; got != want {
		t.Errorf("FormatLon() = %q, want %q", got, want)
	}
}

func TestFormatBearing(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		expected string
	}{
		{name: "plain", deg: 156.2, expected: "156.2000°"},
		{name: "negative wraps", deg: -45, expected: "315.0000°"},
		{name: "full turn wraps to zero", deg: 360, expected: "000.0000°"},
		{name: "rounds up to full turn", deg: 359.99999, expected: "0.0000°"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBearing(tt.deg, D, -1); got != tt.expected {
				t.Errorf("FormatBearing(%v) = %q, want %q", tt.deg, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		wantErr  bool
	}{
		{name: "decimal", in: "51.4778", expected: 51.4778},
		{name: "negative decimal", in: "-0.0015", expected: -0.0015},
		{name: "dms north", in: "51°28′40″N", expected: 51.477778},
		{name: "dms west", in: "000°00′05″W", expected: -0.001389},
		{name: "dm south", in: "33°52.13′S", expected: -33.868833},
		{name: "degrees only with suffix", in: "151.2093°E", expected: 151.2093},
		{name: "signed dms", in: "-51°28′40″", expected: -51.477778},
		{name: "spaced separators", in: "51 28 40N", expected: 51.477778},
		{name: "empty", in: "", wantErr: true},
		{name: "no numbers", in: "north", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 51.477811, 33.8688, 179.9999} {
		s := Format(deg, DMS, 2)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if math.Abs(got-deg) > 1.0/3600/100 {
			t.Errorf("round-trip %v -> %q -> %v", deg, s, got)
		}
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{in: "d", want: D},
		{in: "DM", want: DM},
		{in: " dms ", want: DMS},
		{in: "degrees", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStyle(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		bearing   float64
		precision int
		expected  string
	}{
		{0, 3, "N"},
		{24, 3, "NNE"},
		{24, 2, "NE"},
		{24, 1, "N"},
		{226, 3, "SW"},
		{315, 3, "NW"},
		{-1, 3, "N"},
		{359, 3, "N"},
		{999, 3, "W"},
	}

	for _, tt := range tests {
		if got := CompassPoint(tt.bearing, tt.precision); got != tt.expected {
			t.Errorf("CompassPoint(%v, %d) = %q, want %q", tt.bearing, tt.precision, got, tt.expected)
		}
	}
}
