package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/latlon/internal/config"
	"github.com/woozymasta/latlon/internal/logger"
	"github.com/woozymasta/latlon/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string  `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int     `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	Radius     float64 `short:"r" long:"radius" env:"SPHERE_RADIUS"  description:"Sphere radius in metres"`
}

func main() {
	// .env is optional, environment wins
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Radius <= 0 && opts.Radius > 0 {
		cfg.Radius = opts.Radius
	}

	srvCtx, err := server.NewServerContext(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server context")
	}

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/places", srvCtx.HandlePlaces)
	mux.HandleFunc("/api/track", srvCtx.HandleTrack)
	mux.HandleFunc("/api/calc", srvCtx.HandleCalc)
	mux.HandleFunc("/favicon.svg", srvCtx.HandleFavicon)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("places_loaded", len(cfg.Places)).
		Float64("radius", srvCtx.Radius).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
