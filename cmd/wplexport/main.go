// Package main provides the mission exporter. It converts a QGC WPL
// mission file into downstream formats (KML preview, QGC .plan, LED
// cue documents) and can run the pipeline in reverse: georeference a
// local-frame scene CSV into a flyable WPL mission.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/skyshow-data/missionkit/internal/export"
	"github.com/skyshow-data/missionkit/internal/geo"
	"github.com/skyshow-data/missionkit/internal/version"
	"github.com/skyshow-data/missionkit/internal/wpl"
)

// Config holds configuration for the mission exporter.
type Config struct {
	Format      string
	OutFile     string
	AbsoluteAlt bool
	CruiseSpeed float64
	Dwell       float64
	Cues        string

	// Scene georeferencing (-local-csv mode)
	LocalCSV   string
	Lat0       float64
	Lon0       float64
	SiteAlt    float64
	Scale      float64
	YawDeg     float64
	AltModeStr string
	ZOffset    float64

	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Println("wplexport", version.String())
		return
	}

	if config.LocalCSV != "" {
		if err := georeferenceScene(config); err != nil {
			log.Fatalf("Failed to georeference scene: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: mission file is required")
		flag.Usage()
		os.Exit(1)
	}

	mission, err := wpl.ParseFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to parse mission: %v", err)
	}

	if config.OutFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -out is required")
		os.Exit(1)
	}

	switch config.Format {
	case "kml":
		err = export.WriteKMLFile(config.OutFile, mission, config.AbsoluteAlt)
	case "plan":
		plan := export.BuildPlan(mission, export.PlanOptions{
			CruiseSpeed:  config.CruiseSpeed,
			DwellSeconds: config.Dwell,
		})
		err = export.WritePlanFile(config.OutFile, plan)
	case "cues":
		var doc *export.CueDoc
		doc, err = export.BuildCueDoc(splitCues(config.Cues))
		if err == nil {
			err = export.WriteCueDocFile(config.OutFile, doc)
		}
	case "led-template":
		err = export.WriteLEDTemplateFile(config.OutFile, mission)
	default:
		log.Fatalf("Unknown format %q (want kml, plan, cues or led-template)", config.Format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Wrote %s export for %d waypoints to %s",
		config.Format, len(mission.Waypoints), config.OutFile)
}

// georeferenceScene runs the reverse pipeline: local scene points in,
// flyable WPL mission out.
func georeferenceScene(config Config) error {
	if config.OutFile == "" {
		return fmt.Errorf("-out is required")
	}
	if config.Lat0 == 0 && config.Lon0 == 0 {
		return fmt.Errorf("-lat0 and -lon0 are required for scene georeferencing")
	}

	mode, err := geo.ParseAltitudeMode(config.AltModeStr)
	if err != nil {
		return err
	}

	pts, err := geo.ReadScenePointsFile(config.LocalCSV)
	if err != nil {
		return err
	}

	origin := geo.NewOrigin(config.Lat0, config.Lon0)
	transform := geo.SceneTransform{
		ScaleMetersPerUnit: config.Scale,
		YawDeg:             config.YawDeg,
	}

	pattern := geo.Georeference(origin, transform, mode, config.SiteAlt, config.ZOffset, pts)
	home := wpl.Fix{Lat: config.Lat0, Lon: config.Lon0}
	flight := wpl.BuildFlight(home, pattern)

	if err := wpl.WriteFile(config.OutFile, flight); err != nil {
		return err
	}
	log.Printf("Wrote %d pattern waypoints (+ TAKEOFF & LAND) to %s", len(pattern), config.OutFile)
	return nil
}

func splitCues(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseFlags() Config {
	var config Config

	flag.StringVar(&config.Format, "format", "kml", "Export format: kml, plan, cues or led-template")
	flag.StringVar(&config.OutFile, "out", "", "Output file (required)")
	flag.BoolVar(&config.AbsoluteAlt, "absolute-alt", false, "KML: treat altitudes as absolute instead of relative to ground")
	flag.Float64Var(&config.CruiseSpeed, "cruise", 2.0, "Plan: cruise speed in m/s")
	flag.Float64Var(&config.Dwell, "dwell", 0, "Plan: dwell seconds per waypoint (0 = none)")
	flag.StringVar(&config.Cues, "cues", "", "Cues: comma-separated from:to:#RRGGBB:mode range specs")

	flag.StringVar(&config.LocalCSV, "local-csv", "", "Georeference a local scene CSV (x,y[,z]) into a WPL mission instead of exporting")
	flag.Float64Var(&config.Lat0, "lat0", 0, "Scene: origin latitude in degrees")
	flag.Float64Var(&config.Lon0, "lon0", 0, "Scene: origin longitude in degrees")
	flag.Float64Var(&config.SiteAlt, "site-alt", 0, "Scene: site ground altitude AMSL in meters")
	flag.Float64Var(&config.Scale, "scale", 1.0, "Scene: meters per local unit")
	flag.Float64Var(&config.YawDeg, "yaw", 0, "Scene: rotation in degrees CCW from east")
	flag.StringVar(&config.AltModeStr, "alt-mode", "rel", "Scene: altitude mode, rel or amsl")
	flag.Float64Var(&config.ZOffset, "z-offset", 0, "Scene: altitude offset in meters added to every point")
	flag.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <mission.waypoints>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Converts a QGC WPL 110 mission into downstream formats, or\n")
		fmt.Fprintf(os.Stderr, "georeferences a local scene CSV into a flyable mission.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -format kml -out show.kml show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format plan -cruise 4 -out show.plan show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format cues -cues 0:25:#00A3FF:solid,26:60:#FF006E:blink -out cues.json show.waypoints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -local-csv scene.csv -lat0 47.0 -lon0 8.0 -scale 0.5 -out show.waypoints\n", os.Args[0])
	}

	flag.Parse()
	return config
}
