package geo

import (
	"testing"

	"github.com/woozymasta/latlon/internal/dms"
)

func TestNewKeepsValuesAsGiven(t *testing.T) {
	// construction performs no normalization or validation
	p := New(95, 475.5)
	if p.Lat != 95 || p.Lon != 475.5 {
		t.Errorf("New(95, 475.5) = %v, want values stored as given", p)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		lat, lon float64
		wantErr  bool
	}{
		{name: "decimal", in: "52.205,0.119", lat: 52.205, lon: 0.119},
		{name: "decimal with spaces", in: " 48.857 , 2.351 ", lat: 48.857, lon: 2.351},
		{name: "negative decimal", in: "-33.8688,151.2093", lat: -33.8688, lon: 151.2093},
		{name: "dms with hemispheres", in: "51°28′40″N, 000°00′05″W", lat: 51.477778, lon: -0.001389},
		{name: "missing longitude", in: "52.205", wantErr: true},
		{name: "garbage latitude", in: "north,0.119", wantErr: true},
		{name: "garbage longitude", in: "52.205,east", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePoint(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePoint(%q) = %v, want error", tt.in, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePoint(%q) error: %v", tt.in, err)
			}
			if !almostEqual(p.Lat, tt.lat, 1e-6) || !almostEqual(p.Lon, tt.lon, 1e-6) {
				t.Errorf("ParsePoint(%q) = %v, want %v,%v", tt.in, p, tt.lat, tt.lon)
			}
		})
	}
}

func TestPointFormat(t *testing.T) {
	p := New(51.477811, -0.001475)

	tests := []struct {
		name     string
		style    dms.Style
		decimals int
		expected string
	}{
		{name: "dms default", style: dms.DMS, decimals: -1, expected: "51°28′40″N, 000°00′05″W"},
		{name: "dm default", style: dms.DM, decimals: -1, expected: "51°28.67′N, 000°00.09′W"},
		{name: "d default", style: dms.D, decimals: -1, expected: "51.4778°N, 000.0015°W"},
		{name: "d two decimals", style: dms.D, decimals: 2, expected: "51.48°N, 000.00°W"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Format(tt.style, tt.decimals); got != tt.expected {
				t.Errorf("Format(%v, %d) = %q, want %q", tt.style, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestPointString(t *testing.T) {
	p := New(51.477811, -0.001475)
	if got, want := p.String(), "51°28′40″N, 000°00′05″W"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWrap360(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{725, 5},
		{-45, 315},
		{-360, 0},
	}

	for _, tt := range tests {
		if got := wrap360(tt.in); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("wrap360(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrap180(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{-181, 179},
		{540, 180},
		{359, -1},
	}

	for _, tt := range tests {
		if got := wrap180(tt.in); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("wrap180(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
