package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bike_transit/pkg/api"
	"bike_transit/pkg/bike"
	"bike_transit/pkg/config"
	"bike_transit/pkg/graph"
	"bike_transit/pkg/routing"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	graphPath := flag.String("graph", "", "Path to transit graph JSON (overrides config)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	// API keys may live in a local .env file.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Read(*configPath)
		if err != nil {
			slog.Error("failed to read config", "error", err)
			os.Exit(1)
		}
	}
	if *graphPath != "" {
		cfg.Graph = *graphPath
	}
	if *port != 0 {
		cfg.Server.Addr = fmt.Sprintf(":%d", *port)
	}
	if *corsOrigin != "" {
		cfg.Server.CORSOrigin = *corsOrigin
	}

	start := time.Now()

	slog.Info("loading transit graph", "path", cfg.Graph)
	g, err := graph.ReadFile(cfg.Graph)
	if err != nil {
		slog.Error("failed to load graph", "error", err)
		os.Exit(1)
	}
	slog.Info("graph loaded",
		"nodes", g.NumNodes(),
		"edges", g.NumEdges(),
		"stations", len(g.Stations()))

	routingDefaults := cfg.RoutingDefaults()

	provider, err := buildProvider(cfg, routingDefaults.CycleSpeedKmh)
	if err != nil {
		slog.Error("failed to configure bicycle provider", "error", err)
		os.Exit(1)
	}
	client := bike.NewClient(provider, time.Duration(cfg.Bike.CacheTTLMinutes)*time.Minute)
	slog.Info("bicycle provider ready", "provider", client.Name())

	planner := routing.NewPlanner(g, client)
	slog.Info("planner ready", "elapsed", time.Since(start).Round(time.Millisecond))

	serverCfg := api.DefaultServerConfig(cfg.Server.Addr)
	serverCfg.CORSOrigin = cfg.Server.CORSOrigin

	stats := api.StatsResponse{
		NumNodes:    g.NumNodes(),
		NumEdges:    g.NumEdges(),
		NumStations: len(g.Stations()),
	}

	handlers := api.NewHandlers(planner, routingDefaults, stats)
	srv := api.NewServer(serverCfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildProvider wires the configured external bicycle router.
func buildProvider(cfg config.Config, speedKmh float64) (bike.Provider, error) {
	timeout := time.Duration(cfg.Bike.TimeoutSeconds) * time.Second

	switch cfg.Bike.Provider {
	case "", "osrm":
		return bike.NewOSRMProvider(cfg.Bike.OSRMURL, speedKmh, timeout), nil
	case "graphhopper":
		return bike.NewGraphHopperProvider(os.Getenv("GRAPHHOPPER_API_KEY"), timeout), nil
	case "google":
		return bike.NewGoogleProvider(os.Getenv("GOOGLE_MAPS_API_KEY"), timeout), nil
	default:
		return nil, fmt.Errorf("unknown bicycle provider %q", cfg.Bike.Provider)
	}
}
