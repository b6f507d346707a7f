package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/latlon/assets"
	"github.com/woozymasta/latlon/internal/config"
	"github.com/woozymasta/latlon/internal/geo"
	"github.com/woozymasta/latlon/internal/render"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config        *config.Config
	PlaceResolver map[string]config.Place
	Renderer      *render.Renderer
	IndexHTML     []byte
	Favicon       []byte
	Radius        float64
}

// NewServerContext initializes the context and processes the place
// configuration. It filters out invalid places, sets up the name resolver
// and loads the optional basemap.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	log.Info().Int("config_places_count", len(cfg.Places)).Msg("Initializing server context")

	radius := cfg.Radius
	if radius <= 0 {
		radius = geo.EarthRadius
	}

	resolver := make(map[string]config.Place)
	validPlaces := make([]config.Place, 0, len(cfg.Places))

	// Normalize and Sort
	for i := range cfg.Places {
		place := &cfg.Places[i]

		if place.Name == "" {
			log.Warn().
				Float64("lat", place.Lat).
				Float64("lon", place.Lon).
				Msg("Skipping place: no name in config")
			continue
		}

		if place.Lat < -90 || place.Lat > 90 {
			log.Warn().
				Str("place", place.Name).
				Float64("lat", place.Lat).
				Msg("Skipping place: latitude out of range")
			continue
		}

		// Setup Resolver
		resolver[strings.ToLower(place.Name)] = *place
		for _, alias := range place.Aliases {
			resolver[strings.ToLower(alias)] = *place
		}

		log.Debug().
			Str("place", place.Name).
			Float64("lat", place.Lat).
			Float64("lon", place.Lon).
			Msg("Place validated and added to context")

		validPlaces = append(validPlaces, *place)
	}

	cfg.Places = validPlaces

	sort.Slice(cfg.Places, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Places[i].Index != nil {
			idxI = *cfg.Places[i].Index
		}
		if cfg.Places[j].Index != nil {
			idxJ = *cfg.Places[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Places[i].Name < cfg.Places[j].Name
	})

	renderer, err := render.New(cfg.Render.Basemap, cfg.Render.Quality)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	log.Info().
		Int("valid_places_count", len(cfg.Places)).
		Float64("radius", radius).
		Bool("basemap", cfg.Render.Basemap != "").
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:        cfg,
		PlaceResolver: resolver,
		Renderer:      renderer,
		IndexHTML:     assets.Index,
		Favicon:       assets.Favicon,
		Radius:        radius,
	}, nil
}

// ResolvePoint turns a place name, alias or "lat,lon" string into a point.
func (s *ServerContext) ResolvePoint(name string) (geo.Point, error) {
	if place, ok := s.PlaceResolver[strings.ToLower(strings.TrimSpace(name))]; ok {
		return geo.New(place.Lat, place.Lon), nil
	}

	return geo.ParsePoint(name)
}
