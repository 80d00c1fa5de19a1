package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bike_transit/pkg/routing"
)

// Config is the application configuration loaded from a YAML file.
// Secrets (provider API keys) come from the environment, not the file.
type Config struct {
	Graph string `yaml:"graph"`

	Server struct {
		Addr       string `yaml:"addr"`
		CORSOrigin string `yaml:"cors-origin"`
	} `yaml:"server"`

	Bike struct {
		// Provider is one of "osrm", "graphhopper", "google".
		Provider        string `yaml:"provider"`
		OSRMURL         string `yaml:"osrm-url"`
		TimeoutSeconds  int    `yaml:"timeout-seconds"`
		CacheTTLMinutes int    `yaml:"cache-ttl-minutes"`
	} `yaml:"bike"`

	Routing struct {
		CycleSpeedKmh        float64 `yaml:"cycle-speed-kmh"`
		StationAccessMinutes float64 `yaml:"station-access-minutes"`
		TrainWaitMinutes     float64 `yaml:"train-wait-minutes"`
		LineChangeMinutes    float64 `yaml:"line-change-minutes"`
		MaxBikeOnlyMinutes   float64 `yaml:"max-bike-only-minutes"`
	} `yaml:"routing"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Graph = "data/graph.json"
	c.Server.Addr = ":8080"
	c.Bike.Provider = "osrm"
	c.Bike.TimeoutSeconds = 10
	c.Bike.CacheTTLMinutes = 60
	return c
}

// Read loads the YAML file at path over the defaults.
func Read(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// RoutingDefaults maps the file's routing section onto a request config.
// Unset fields stay zero; Normalize fills them downstream.
func (c Config) RoutingDefaults() routing.Config {
	cfg := routing.Config{
		CycleSpeedKmh:        c.Routing.CycleSpeedKmh,
		StationAccessMinutes: c.Routing.StationAccessMinutes,
		TrainWaitMinutes:     c.Routing.TrainWaitMinutes,
		LineChangeMinutes:    c.Routing.LineChangeMinutes,
		MaxBikeOnlyMinutes:   c.Routing.MaxBikeOnlyMinutes,
	}
	return cfg.Normalize()
}
