// Package wpl reads and writes QGC WPL 110 waypoint files, the
// tab-delimited mission plan format used by Mission Planner and
// QGroundControl.
package wpl

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MAV_CMD values that appear in the missions we handle.
const (
	CmdNavWaypoint       = 16
	CmdNavReturnToLaunch = 20
	CmdNavLand           = 21
	CmdNavTakeoff        = 22
)

// FrameGlobalRelativeAlt is MAV_FRAME_GLOBAL_RELATIVE_ALT, the frame
// every mission we generate uses.
const FrameGlobalRelativeAlt = 3

// header written at the top of every file. Parsing accepts any version
// number after the "QGC WPL" marker.
const header = "QGC WPL 110"

// fieldsPerRow is the fixed column count of a waypoint row.
const fieldsPerRow = 12

// Waypoint is one row of a WPL file. Latitude and longitude are in
// degrees, altitude in meters.
type Waypoint struct {
	Index        int
	Current      bool
	Frame        int
	Command      int
	Param1       float64
	Param2       float64
	Param3       float64
	Param4       float64
	Latitude     float64
	Longitude    float64
	Altitude     float64
	AutoContinue bool
}

// Fix is a bare geographic position, used when building missions from
// already-georeferenced points.
type Fix struct {
	Lat float64
	Lon float64
	Alt float64
}

// Mission is a parsed waypoint file.
type Mission struct {
	File      string
	Waypoints []Waypoint
}

// ParseFile reads and parses a WPL file from disk.
func ParseFile(path string) (*Mission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.File = path
	return m, nil
}

// Parse reads a WPL document. The first line must carry the "QGC WPL"
// marker; every following non-empty line must have exactly 12
// tab-separated fields. Any malformed row fails the whole parse.
func Parse(r io.Reader) (*Mission, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !strings.HasPrefix(strings.TrimSpace(first), "QGC WPL") {
		return nil, fmt.Errorf("not a WPL file: missing %q header", "QGC WPL")
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	m := &Mission{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != fieldsPerRow {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, fieldsPerRow, len(record))
		}
		wp, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		m.Waypoints = append(m.Waypoints, wp)
	}
	return m, nil
}

func parseRow(record []string) (Waypoint, error) {
	var wp Waypoint
	var err error

	if wp.Index, err = strconv.Atoi(record[0]); err != nil {
		return wp, fmt.Errorf("bad index %q", record[0])
	}
	cur, err := strconv.Atoi(record[1])
	if err != nil {
		return wp, fmt.Errorf("bad current flag %q", record[1])
	}
	wp.Current = cur != 0
	if wp.Frame, err = strconv.Atoi(record[2]); err != nil {
		return wp, fmt.Errorf("bad frame %q", record[2])
	}
	if wp.Command, err = strconv.Atoi(record[3]); err != nil {
		return wp, fmt.Errorf("bad command %q", record[3])
	}

	params := [4]*float64{&wp.Param1, &wp.Param2, &wp.Param3, &wp.Param4}
	for i, dst := range params {
		if *dst, err = strconv.ParseFloat(record[4+i], 64); err != nil {
			return wp, fmt.Errorf("bad param%d %q", i+1, record[4+i])
		}
	}

	if wp.Latitude, err = strconv.ParseFloat(record[8], 64); err != nil {
		return wp, fmt.Errorf("bad latitude %q", record[8])
	}
	if wp.Longitude, err = strconv.ParseFloat(record[9], 64); err != nil {
		return wp, fmt.Errorf("bad longitude %q", record[9])
	}
	if wp.Altitude, err = strconv.ParseFloat(record[10], 64); err != nil {
		return wp, fmt.Errorf("bad altitude %q", record[10])
	}
	ac, err := strconv.Atoi(record[11])
	if err != nil {
		return wp, fmt.Errorf("bad autocontinue %q", record[11])
	}
	wp.AutoContinue = ac != 0

	return wp, nil
}

// FlightPath returns the waypoints worth plotting: if the final row is a
// terminal command (LAND or RTL) it is dropped, everything else is kept.
// This is deliberately caller policy — the old convention of always
// skipping the last row silently hid missions that never landed.
func FlightPath(wps []Waypoint) []Waypoint {
	if n := len(wps); n > 0 {
		switch wps[n-1].Command {
		case CmdNavLand, CmdNavReturnToLaunch:
			return wps[:n-1]
		}
	}
	return wps
}

// CommandName returns a human-readable name for the MAV_CMD values this
// package knows about.
func CommandName(cmd int) string {
	switch cmd {
	case CmdNavWaypoint:
		return "WAYPOINT"
	case CmdNavReturnToLaunch:
		return "RTL"
	case CmdNavLand:
		return "LAND"
	case CmdNavTakeoff:
		return "TAKEOFF"
	default:
		return fmt.Sprintf("CMD_%d", cmd)
	}
}
