package wpl

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// BuildFlight wraps a georeferenced pattern in a flyable mission:
// TAKEOFF at home (climbing to the altitude of the first pattern point),
// one NAV_WAYPOINT per pattern point, then LAND back at home. All rows
// use the relative-altitude frame.
func BuildFlight(home Fix, pattern []Fix) []Waypoint {
	takeoffAlt := home.Alt
	if len(pattern) > 0 {
		takeoffAlt = pattern[0].Alt
	}

	wps := make([]Waypoint, 0, len(pattern)+2)
	wps = append(wps, Waypoint{
		Index:        0,
		Current:      true,
		Frame:        FrameGlobalRelativeAlt,
		Command:      CmdNavTakeoff,
		Latitude:     home.Lat,
		Longitude:    home.Lon,
		Altitude:     takeoffAlt,
		AutoContinue: true,
	})
	for i, p := range pattern {
		wps = append(wps, Waypoint{
			Index:        i + 1,
			Frame:        FrameGlobalRelativeAlt,
			Command:      CmdNavWaypoint,
			Latitude:     p.Lat,
			Longitude:    p.Lon,
			Altitude:     p.Alt,
			AutoContinue: true,
		})
	}
	wps = append(wps, Waypoint{
		Index:        len(pattern) + 1,
		Frame:        FrameGlobalRelativeAlt,
		Command:      CmdNavLand,
		Latitude:     home.Lat,
		Longitude:    home.Lon,
		Altitude:     home.Alt,
		AutoContinue: true,
	})
	return wps
}

// Write emits waypoints in QGC WPL 110 format. Coordinates keep seven
// decimals, altitudes two, matching what ground stations emit.
func Write(w io.Writer, wps []Waypoint) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, wp := range wps {
		_, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%g\t%g\t%g\t%g\t%.7f\t%.7f\t%.2f\t%d\n",
			wp.Index, boolInt(wp.Current), wp.Frame, wp.Command,
			wp.Param1, wp.Param2, wp.Param3, wp.Param4,
			wp.Latitude, wp.Longitude, wp.Altitude, boolInt(wp.AutoContinue))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a mission to disk in WPL format.
func WriteFile(path string, wps []Waypoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, wps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
