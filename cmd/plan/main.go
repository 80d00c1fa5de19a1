package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"bike_transit/pkg/bike"
	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
	"bike_transit/pkg/routing"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: plan [flags] start_lon start_lat end_lon end_lat

Plans the fastest bicycle + transit journey between two coordinates.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	graphPath := flag.String("graph", "data/graph.json", "Path to transit graph JSON")
	provider := flag.String("provider", "osrm", "Bicycle router: osrm, graphhopper or google")
	osrmURL := flag.String("osrm-url", "", "OSRM base URL (default public instance)")
	speed := flag.Float64("speed", routing.DefaultCycleSpeedKmh, "Cycling speed in km/h")
	maxBike := flag.Float64("max-bike", routing.DefaultMaxBikeOnlyMinutes, "Longest acceptable bike-only leg in minutes")
	lineChange := flag.Float64("line-change", routing.DefaultLineChangeMinutes, "Line change time in minutes")
	format := flag.String("format", "detailed", "Output format: simple, detailed or json")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall request timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 4 {
		usage()
		os.Exit(2)
	}

	coords := make([]float64, 4)
	for i, arg := range flag.Args() {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid coordinate %q\n", arg)
			os.Exit(2)
		}
		coords[i] = v
	}
	start := geo.Coord{Lon: coords[0], Lat: coords[1]}
	end := geo.Coord{Lon: coords[2], Lat: coords[3]}

	godotenv.Load()

	g, err := graph.ReadFile(*graphPath)
	if err != nil {
		slog.Error("failed to load graph", "error", err)
		os.Exit(1)
	}

	cfg := routing.DefaultConfig()
	cfg.CycleSpeedKmh = *speed
	cfg.MaxBikeOnlyMinutes = *maxBike
	cfg.LineChangeMinutes = *lineChange
	cfg = cfg.Normalize()

	var p bike.Provider
	switch *provider {
	case "osrm":
		p = bike.NewOSRMProvider(*osrmURL, cfg.CycleSpeedKmh, 10*time.Second)
	case "graphhopper":
		p = bike.NewGraphHopperProvider(os.Getenv("GRAPHHOPPER_API_KEY"), 10*time.Second)
	case "google":
		p = bike.NewGoogleProvider(os.Getenv("GOOGLE_MAPS_API_KEY"), 10*time.Second)
	default:
		fmt.Fprintf(os.Stderr, "unknown provider %q\n", *provider)
		os.Exit(2)
	}

	planner := routing.NewPlanner(g, bike.NewClient(p, 0))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := planner.FindRoute(ctx, start, end, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	startName := fmt.Sprintf("(%.4f, %.4f)", start.Lon, start.Lat)
	endName := fmt.Sprintf("(%.4f, %.4f)", end.Lon, end.Lat)

	switch *format {
	case "simple":
		fmt.Println(routing.FormatSimple(result))
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Print(routing.FormatDetailed(result, startName, endName))
	}
}
