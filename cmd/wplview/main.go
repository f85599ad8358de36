// Package main provides the mission viewer. It parses a QGC WPL
// mission file, projects it into a local ENU frame anchored at the
// first waypoint and renders the flight path as an interactive 3D
// chart plus optional static projections.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyshow-data/missionkit/internal/catalog"
	"github.com/skyshow-data/missionkit/internal/geo"
	"github.com/skyshow-data/missionkit/internal/render"
	"github.com/skyshow-data/missionkit/internal/version"
	"github.com/skyshow-data/missionkit/internal/wpl"
)

// Config holds configuration for the mission viewer.
type Config struct {
	OutFile      string
	PNGDir       string
	Listen       string
	KeepTerminal bool
	DBPath       string
	Recent       int
	Title        string
	ShowVersion  bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Println("wplview", version.String())
		return
	}

	// -recent only lists the inspection log, no mission needed.
	if config.Recent > 0 {
		if config.DBPath == "" {
			fmt.Fprintln(os.Stderr, "Error: -recent requires -db")
			os.Exit(1)
		}
		if err := listRecent(config.DBPath, config.Recent); err != nil {
			log.Fatalf("Failed to list inspections: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: mission file is required")
		flag.Usage()
		os.Exit(1)
	}
	missionFile := flag.Arg(0)

	mission, err := wpl.ParseFile(missionFile)
	if err != nil {
		log.Fatalf("Failed to parse mission: %v", err)
	}

	flight := mission.Waypoints
	if !config.KeepTerminal {
		flight = wpl.FlightPath(mission.Waypoints)
	}

	path, err := geo.ProjectMission(flight)
	if err != nil {
		log.Fatalf("Failed to project mission: %v", err)
	}

	labels := make([]string, len(flight))
	for i, w := range flight {
		labels[i] = fmt.Sprintf("%d", w.Index)
	}

	stats := geo.ComputeStats(path)
	printSummary(missionFile, mission, flight, stats)

	chart := &render.PathChart{
		SourceFile: missionFile,
		Title:      config.Title,
		Path:       path,
		Labels:     labels,
	}

	outFile := config.OutFile
	if outFile == "" {
		outFile = baseName(missionFile) + ".html"
	}
	if err := chart.RenderFile(outFile); err != nil {
		log.Fatalf("Failed to write chart: %v", err)
	}
	log.Printf("Wrote chart to %s", outFile)

	if config.PNGDir != "" {
		files, err := render.SaveProjections(config.PNGDir, baseName(missionFile), path, labels)
		if err != nil {
			log.Fatalf("Failed to write projections: %v", err)
		}
		for _, f := range files {
			log.Printf("Wrote projection to %s", f)
		}
	}

	if config.DBPath != "" {
		id, err := recordInspection(config.DBPath, missionFile, mission, flight, stats)
		if err != nil {
			log.Fatalf("Failed to record inspection: %v", err)
		}
		log.Printf("Recorded inspection %s", id)
	}

	if config.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/", render.Handler(chart))
		mux.Handle("/path.json", render.PathJSONHandler(chart))
		log.Printf("Serving chart on http://%s/", config.Listen)
		if err := http.ListenAndServe(config.Listen, mux); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

func parseFlags() Config {
	var config Config

	flag.StringVar(&config.OutFile, "out", "", "Output HTML file (default: <mission>.html)")
	flag.StringVar(&config.PNGDir, "png-dir", "", "Also write top-down and profile PNGs to this directory")
	flag.StringVar(&config.Listen, "listen", "", "Serve the chart over HTTP on this address (e.g. localhost:8080)")
	flag.BoolVar(&config.KeepTerminal, "keep-terminal", false, "Keep trailing LAND/RTL waypoints in the rendered path")
	flag.StringVar(&config.DBPath, "db", "", "SQLite inspection log path (optional)")
	flag.IntVar(&config.Recent, "recent", 0, "List the N most recent inspections and exit (requires -db)")
	flag.StringVar(&config.Title, "title", "", "Chart title (default: Flight Path — <mission>)")
	flag.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <mission.waypoints>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parses a QGC WPL 110 mission file, converts the waypoints to a local\n")
		fmt.Fprintf(os.Stderr, "ENU frame anchored at the first waypoint and renders the flight path\n")
		fmt.Fprintf(os.Stderr, "as an interactive 3D chart with per-waypoint labels.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -png-dir ./plots -db catalog.db show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -listen localhost:8080 show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db catalog.db -recent 10\n", os.Args[0])
	}

	flag.Parse()
	return config
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func printSummary(file string, mission *wpl.Mission, flight []wpl.Waypoint, stats geo.PathStats) {
	fmt.Println("========== Mission Summary ==========")
	fmt.Printf("File: %s\n", file)
	fmt.Printf("Waypoints: %d total, %d in flight path\n", len(mission.Waypoints), len(flight))
	fmt.Printf("Path length: %.1f m\n", stats.TotalLength)
	if stats.Points > 1 {
		fmt.Printf("Legs: %.1f m mean, %.1f m min, %.1f m max, %.1f m p95\n",
			stats.MeanLeg, stats.MinLeg, stats.MaxLeg, stats.P95Leg)
	}
	fmt.Printf("Altitude: %.1f m to %.1f m (%.1f m climb, %.1f m descent)\n",
		stats.MinUp, stats.MaxUp, stats.Climb, stats.Descent)
	fmt.Printf("Extent: %.1f m east, %.1f m north\n",
		stats.MaxEast-stats.MinEast, stats.MaxNorth-stats.MinNorth)
	fmt.Println("=====================================")
}

func recordInspection(dbPath, file string, mission *wpl.Mission, flight []wpl.Waypoint, stats geo.PathStats) (string, error) {
	db, err := catalog.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.RecordInspection(catalog.Record{
		File:              filepath.Base(file),
		Waypoints:         len(mission.Waypoints),
		FlightPoints:      len(flight),
		TotalLengthMeters: stats.TotalLength,
		MaxAltitudeMeters: stats.MaxUp,
	})
}

func listRecent(dbPath string, limit int) error {
	db, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	recs, err := db.Recent(limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No inspections recorded yet")
		return nil
	}

	for _, r := range recs {
		fmt.Printf("%s  %-30s  %3d wp  %8.1f m  %6.1f m alt  %s\n",
			r.InspectedAt.Format("2006-01-02 15:04:05"), r.File,
			r.Waypoints, r.TotalLengthMeters, r.MaxAltitudeMeters, r.ID)
	}
	return nil
}
