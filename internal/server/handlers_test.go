package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/woozymasta/latlon/internal/config"
	"github.com/woozymasta/latlon/internal/geo"
)

func testContext(t *testing.T) *ServerContext {
	t.Helper()

	one := 1
	cfg := &config.Config{
		Places: []config.Place{
			{Name: "Paris", Lat: 48.857, Lon: 2.351},
			{Name: "Greenwich", Index: &one, Lat: 51.4778, Lon: -0.0015, Aliases: []string{"observatory"}},
			{Name: "", Lat: 1, Lon: 1},            // no name, dropped
			{Name: "Atlantis", Lat: 95, Lon: 0},   // latitude out of range, dropped
		},
	}

	ctx, err := NewServerContext(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestNewServerContext(t *testing.T) {
	ctx := testContext(t)

	if len(ctx.Config.Places) != 2 {
		t.Fatalf("valid places = %d, want 2", len(ctx.Config.Places))
	}
	// indexed places sort ahead of unindexed
	if ctx.Config.Places[0].Name != "Greenwich" || ctx.Config.Places[1].Name != "Paris" {
		t.Errorf("places order = %s, %s", ctx.Config.Places[0].Name, ctx.Config.Places[1].Name)
	}
	if ctx.Radius != geo.EarthRadius {
		t.Errorf("Radius = %v, want default", ctx.Radius)
	}
}

func TestNewServerContextRadiusOverride(t *testing.T) {
	ctx, err := NewServerContext(&config.Config{Radius: 3389.5e3})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Radius != 3389.5e3 {
		t.Errorf("Radius = %v, want 3389500", ctx.Radius)
	}
}

func TestResolvePoint(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name    string
		in      string
		lat     float64
		wantErr bool
	}{
		{name: "place name", in: "Paris", lat: 48.857},
		{name: "case-insensitive", in: "paris", lat: 48.857},
		{name: "alias", in: "observatory", lat: 51.4778},
		{name: "coordinates", in: "10.5,-20.25", lat: 10.5},
		{name: "unknown name", in: "Atlantis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ctx.ResolvePoint(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolvePoint(%q) = %v, want error", tt.in, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePoint(%q) error: %v", tt.in, err)
			}
			if p.Lat != tt.lat {
				t.Errorf("ResolvePoint(%q).Lat = %v, want %v", tt.in, p.Lat, tt.lat)
			}
		})
	}
}

func TestHandlePlaces(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandlePlaces(rec, httptest.NewRequest(http.MethodGet, "/api/places", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var fc geo.GeoJSONFeatureCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("invalid GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
		t.Errorf("collection = %s with %d features", fc.Type, len(fc.Features))
	}
}

func TestHandleIndex(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag")
	}

	// conditional request returns 304
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	ctx.HandleIndex(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}

	// asset-looking paths are not the SPA
	rec = httptest.NewRecorder()
	ctx.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("asset path status = %d, want 404", rec.Code)
	}
}

func TestHandleFavicon(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleFavicon(rec, httptest.NewRequest(http.MethodGet, "/favicon.svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandleTrack(t *testing.T) {
	ctx := testContext(t)

	t.Run("webp default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Paris&to=Greenwich&width=128", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/webp" {
			t.Errorf("Content-Type = %q", ct)
		}
		if rec.Body.Len() == 0 {
			t.Error("empty body")
		}
	})

	t.Run("png", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Paris&to=40.7,-74&width=128&format=png", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("geojson", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Paris&to=Greenwich&format=geojson", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var fc geo.GeoJSONFeatureCollection
		if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
			t.Fatalf("invalid GeoJSON: %v", err)
		}
		if len(fc.Features) != 2 {
			t.Fatalf("features = %d, want great-circle and rhumb", len(fc.Features))
		}
		routes := []string{
			fc.Features[0].Properties["route"].(string),
			fc.Features[1].Properties["route"].(string),
		}
		if routes[0] != "great-circle" || routes[1] != "rhumb" {
			t.Errorf("routes = %v", routes)
		}
	})

	t.Run("unknown place", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Sirius&to=Paris", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad width", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Paris&to=Greenwich&width=chonky", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx.HandleTrack(rec, httptest.NewRequest(http.MethodGet, "/api/track?from=Paris&to=Greenwich&format=gif", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

func TestHandleCalcRejectsPlainGET(t *testing.T) {
	ctx := testContext(t)

	rec := httptest.NewRecorder()
	ctx.HandleCalc(rec, httptest.NewRequest(http.MethodGet, "/api/calc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without upgrade headers", rec.Code)
	}
}
