package wpl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleMission = `QGC WPL 110
0	1	3	22	0	0	0	0	50.9628940	11.3303100	10.00	1
1	0	3	16	0	0	0	0	50.9629840	11.3304530	12.50	1
2	0	3	16	0	0	0	0	50.9630740	11.3305960	15.00	1
3	0	3	21	0	0	0	0	50.9628940	11.3303100	0.00	1
`

func TestParseSampleMission(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleMission))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Waypoints) != 4 {
		t.Fatalf("expected 4 waypoints, got %d", len(m.Waypoints))
	}

	want := Waypoint{
		Index:        0,
		Current:      true,
		Frame:        FrameGlobalRelativeAlt,
		Command:      CmdNavTakeoff,
		Latitude:     50.962894,
		Longitude:    11.33031,
		Altitude:     10,
		AutoContinue: true,
	}
	if diff := cmp.Diff(want, m.Waypoints[0]); diff != "" {
		t.Errorf("first waypoint mismatch (-want +got):\n%s", diff)
	}

	last := m.Waypoints[3]
	if last.Command != CmdNavLand {
		t.Errorf("expected trailing LAND, got command %d", last.Command)
	}
}

func TestParseAcceptsOtherHeaderVersions(t *testing.T) {
	doc := "QGC WPL 120\n0\t1\t3\t16\t0\t0\t0\t0\t47.0\t8.0\t50.0\t1\n"
	m, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Waypoints) != 1 {
		t.Fatalf("expected 1 waypoint, got %d", len(m.Waypoints))
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing header", "0\t1\t3\t16\t0\t0\t0\t0\t47.0\t8.0\t50.0\t1\n"},
		{"short row", "QGC WPL 110\n0\t1\t3\t16\t47.0\t8.0\t50.0\t1\n"},
		{"non-numeric latitude", "QGC WPL 110\n0\t1\t3\t16\t0\t0\t0\t0\tnorth\t8.0\t50.0\t1\n"},
		{"non-numeric command", "QGC WPL 110\n0\t1\t3\tfly\t0\t0\t0\t0\t47.0\t8.0\t50.0\t1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.doc)); err == nil {
				t.Errorf("expected parse error for %s", tc.name)
			}
		})
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	doc := "QGC WPL 110\n\n0\t1\t3\t16\t0\t0\t0\t0\t47.0\t8.0\t50.0\t1\n\n"
	m, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Waypoints) != 1 {
		t.Fatalf("expected 1 waypoint, got %d", len(m.Waypoints))
	}
}

func TestFlightPath(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleMission))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	flight := FlightPath(m.Waypoints)
	if len(flight) != 3 {
		t.Fatalf("expected terminal LAND dropped, got %d waypoints", len(flight))
	}
	for _, wp := range flight {
		if wp.Command == CmdNavLand {
			t.Errorf("LAND survived FlightPath")
		}
	}

	// A mission without a terminal command is returned unchanged.
	noLand := m.Waypoints[:2]
	if got := FlightPath(noLand); len(got) != 2 {
		t.Errorf("expected untouched path, got %d waypoints", len(got))
	}

	if got := FlightPath(nil); len(got) != 0 {
		t.Errorf("expected empty path, got %d waypoints", len(got))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	home := Fix{Lat: 50.962894, Lon: 11.33031, Alt: 0}
	pattern := []Fix{
		{Lat: 50.962984, Lon: 11.330453, Alt: 12.5},
		{Lat: 50.963074, Lon: 11.330596, Alt: 15},
	}

	wps := BuildFlight(home, pattern)
	if len(wps) != 4 {
		t.Fatalf("expected TAKEOFF + 2 + LAND, got %d rows", len(wps))
	}
	if wps[0].Command != CmdNavTakeoff || !wps[0].Current {
		t.Errorf("first row should be the current TAKEOFF, got %+v", wps[0])
	}
	if wps[0].Altitude != pattern[0].Alt {
		t.Errorf("takeoff altitude should match first pattern point, got %g", wps[0].Altitude)
	}
	if wps[3].Command != CmdNavLand {
		t.Errorf("last row should be LAND, got %+v", wps[3])
	}

	var buf bytes.Buffer
	if err := Write(&buf, wps); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "QGC WPL 110\n") {
		t.Errorf("output missing header:\n%s", buf.String())
	}

	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if diff := cmp.Diff(wps, back.Waypoints); diff != "" {
		t.Errorf("round trip mismatch (-wrote +parsed):\n%s", diff)
	}
}

func TestCommandName(t *testing.T) {
	if got := CommandName(CmdNavTakeoff); got != "TAKEOFF" {
		t.Errorf("CommandName(22) = %q", got)
	}
	if got := CommandName(99); got != "CMD_99" {
		t.Errorf("CommandName(99) = %q", got)
	}
}
