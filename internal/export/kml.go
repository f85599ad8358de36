// Package export converts parsed missions into the downstream formats
// the ground crew consumes: KML previews, QGroundControl .plan files
// and LED cue documents for the onboard light controller.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	kml "github.com/twpayne/go-kml"

	"github.com/skyshow-data/missionkit/internal/wpl"
)

// MissionKML builds a KML folder with the flight track as a LineString
// plus one placemark per waypoint. With absolute=false altitudes are
// interpreted relative to ground, which matches frame 3 missions viewed
// without a terrain reference.
func MissionKML(m *wpl.Mission, absolute bool) kml.Element {
	altmode := kml.AltitudeModeRelativeToGround
	if absolute {
		altmode = kml.AltitudeModeAbsolute
	}

	var points []kml.Coordinate
	var marks []kml.Element
	for _, w := range m.Waypoints {
		c := kml.Coordinate{Lon: w.Longitude, Lat: w.Latitude, Alt: w.Altitude}
		points = append(points, c)
		marks = append(marks, kml.Placemark(
			kml.Name(fmt.Sprintf("%s %d", wpl.CommandName(w.Command), w.Index)),
			kml.Description(fmt.Sprintf("Command: %s<br/>Altitude: %.2fm<br/>", wpl.CommandName(w.Command), w.Altitude)),
			kml.StyleURL("#styleWP"),
			kml.Point(
				kml.AltitudeMode(altmode),
				kml.Coordinates(c),
			),
		))
	}

	track := kml.Placemark(
		kml.Name("Drone Path"),
		kml.StyleURL("#styleTrack"),
		kml.LineString(
			kml.AltitudeMode(altmode),
			kml.Extrude(false),
			kml.Tessellate(false),
			kml.Coordinates(points...),
		),
	)

	styles := []kml.Element{
		kml.SharedStyle("styleTrack",
			kml.LineStyle(
				kml.Width(3.0),
				kml.Color(color.RGBA{R: 0, G: 0xa3, B: 0xff, A: 0xff}),
			),
		),
		kml.SharedStyle("styleWP",
			kml.IconStyle(kml.Scale(0.8)),
		),
	}

	folder := kml.Folder(kml.Name("Mission")).
		Add(kml.Description(fmt.Sprintf("Created from %s", m.File))).
		Add(styles...).
		Add(track).
		Add(marks...)
	return folder
}

// WriteKML writes the mission as an indented KML document.
func WriteKML(w io.Writer, m *wpl.Mission, absolute bool) error {
	doc := kml.KML(kml.Document(MissionKML(m, absolute)))
	return doc.WriteIndent(w, "", "  ")
}

// WriteKMLFile writes the mission KML to a file.
func WriteKMLFile(path string, m *wpl.Mission, absolute bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteKML(f, m, absolute); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
