// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/latlon/internal/geo"
	"github.com/woozymasta/latlon/internal/metrics"
	"github.com/woozymasta/latlon/internal/render"
)

// HandlePlaces serves the configured places as a GeoJSON FeatureCollection.
func (s *ServerContext) HandlePlaces(w http.ResponseWriter, r *http.Request) {
	features := make([]geo.GeoJSONFeature, 0, len(s.Config.Places))
	for _, place := range s.Config.Places {
		features = append(features, geo.NewPointFeature(
			geo.New(place.Lat, place.Lon),
			map[string]interface{}{"name": place.Name},
		))
	}

	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(geo.NewFeatureCollection(features...))
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.svg" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleTrack renders the great-circle and rhumb-line tracks between two
// points. Query parameters: from, to (place name, alias or "lat,lon"),
// width, format (webp, png or geojson).
func (s *ServerContext) HandleTrack(w http.ResponseWriter, r *http.Request) {
	from, err := s.ResolvePoint(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "bad from: "+err.Error(), http.StatusBadRequest)
		return
	}
	to, err := s.ResolvePoint(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "bad to: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "webp"
	}

	if format == "geojson" {
		s.serveTrackGeoJSON(w, from, to)
		return
	}

	width := 0
	if q := r.URL.Query().Get("width"); q != "" {
		width, err = strconv.Atoi(q)
		if err != nil || width < 0 {
			http.Error(w, "bad width", http.StatusBadRequest)
			return
		}
	}
	if max := s.Config.Render.MaxWidth; max > 0 && width > max {
		width = max
	}

	start := time.Now()
	img := s.Renderer.Track(from, to, width)

	switch format {
	case "webp":
		w.Header().Set("Content-Type", "image/webp")
		err = s.Renderer.EncodeWebP(w, img)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(w, img)
	default:
		http.Error(w, "bad format", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Failed to encode track image")
		return
	}

	metrics.RecordTrackRender(format, time.Since(start))
}

// serveTrackGeoJSON replies with the sampled paths as GeoJSON LineStrings
// plus the numeric summary of both routes.
func (s *ServerContext) serveTrackGeoJSON(w http.ResponseWriter, from, to geo.Point) {
	const samples = 128

	great := geo.NewLineStringFeature(
		render.GreatCirclePath(from, to, samples),
		map[string]interface{}{
			"route":    "great-circle",
			"distance": geo.Distance(from, to, s.Radius),
			"bearing":  from.BearingTo(to),
		},
	)
	rhumb := geo.NewLineStringFeature(
		render.RhumbPath(from, to, samples),
		map[string]interface{}{
			"route":    "rhumb",
			"distance": geo.RhumbDistance(from, to, s.Radius),
			"bearing":  from.RhumbBearingTo(to),
		},
	)

	w.Header().Set("Content-Type", "application/geo+json")
	_ = json.NewEncoder(w).Encode(geo.NewFeatureCollection(great, rhumb))
}
