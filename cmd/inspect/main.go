package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"bike_transit/pkg/graph"
)

func main() {
	input := flag.String("input", "", "Path to transit graph JSON")
	output := flag.String("output", "", "Rewrite the graph in canonical form to this path (optional)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect --input <graph.json> [--output canonical.json]")
		os.Exit(1)
	}

	g, err := graph.ReadFile(*input)
	if err != nil {
		slog.Error("failed to load graph", "error", err)
		os.Exit(1)
	}

	lines := map[string]int{}
	for _, n := range g.Nodes {
		lines[n.Line]++
	}
	names := make([]string, 0, len(lines))
	for l := range lines {
		names = append(names, l)
	}
	sort.Strings(names)

	fmt.Printf("Nodes:    %d\n", g.NumNodes())
	fmt.Printf("Edges:    %d\n", g.NumEdges())
	fmt.Printf("Stations: %d\n", len(g.Stations()))
	fmt.Printf("Lines:    %d\n", len(names))
	for _, l := range names {
		fmt.Printf("  %-20s %d stops\n", l, lines[l])
	}

	sizes := g.ComponentSizes()
	fmt.Printf("Components: %d\n", len(sizes))
	if len(sizes) > 1 {
		fmt.Printf("WARNING: network is not connected by rail, component sizes: %v\n", sizes)
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			slog.Error("failed to create output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := g.Write(f); err != nil {
			slog.Error("failed to write graph", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote canonical graph to %s\n", *output)
	}
}
