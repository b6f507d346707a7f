// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string  `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Places      []Place `yaml:"places" json:"places"`
	Render      Render  `yaml:"render,omitempty" json:"-"`
	Radius      float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// Place represents a named point offered as a preset in the calculator UI
// and resolvable by name in the track endpoint.
type Place struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases,omitempty" json:"-"`
	Lat     float64  `yaml:"lat" json:"lat"`
	Lon     float64  `yaml:"lon" json:"lon"`
}

// Render represents track image rendering settings.
type Render struct {
	// Basemap is an optional path to an equirectangular world image used as
	// the track background. Empty renders a plain graticule background.
	Basemap  string `yaml:"basemap,omitempty" json:"-"`
	Quality  int    `yaml:"quality,omitempty" json:"-"`   // webp quality
	MaxWidth int    `yaml:"max_width,omitempty" json:"-"` // output width cap
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
