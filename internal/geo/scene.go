package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/skyshow-data/missionkit/internal/wpl"
)

// ScenePoint is a point in an abstract drawing frame (SVG units or any
// other local unit), Z being the local height.
type ScenePoint struct {
	X float64
	Y float64
	Z float64
}

// SceneTransform places a drawing into the local tangent frame: scale
// from drawing units to meters, rotate by yaw, then translate.
type SceneTransform struct {
	ScaleMetersPerUnit float64
	YawDeg             float64
	OffsetEast         float64
	OffsetNorth        float64
}

// Apply maps a scene XY to east/north meters.
func (t SceneTransform) Apply(p ScenePoint) (east, north float64) {
	x := p.X * t.ScaleMetersPerUnit
	y := p.Y * t.ScaleMetersPerUnit
	yaw := t.YawDeg * math.Pi / 180
	cos, sin := math.Cos(yaw), math.Sin(yaw)
	east = x*cos - y*sin + t.OffsetEast
	north = x*sin + y*cos + t.OffsetNorth
	return east, north
}

// AltitudeMode selects how scene Z becomes mission altitude.
type AltitudeMode int

const (
	// AltitudeRelative keeps Z as-is; the relative-altitude mission
	// frame supplies the ground reference.
	AltitudeRelative AltitudeMode = iota
	// AltitudeAMSL adds the site elevation so altitudes are absolute.
	AltitudeAMSL
)

// ParseAltitudeMode accepts the REL/AMSL spelling used by the site
// configuration files.
func ParseAltitudeMode(s string) (AltitudeMode, error) {
	switch strings.ToUpper(s) {
	case "REL", "":
		return AltitudeRelative, nil
	case "AMSL":
		return AltitudeAMSL, nil
	default:
		return 0, fmt.Errorf("unknown altitude mode %q (want REL or AMSL)", s)
	}
}

// Georeference converts scene points to geographic fixes around the
// origin. siteAlt is the site elevation used in AMSL mode, zOffset is
// added to every altitude in either mode.
func Georeference(origin Origin, transform SceneTransform, mode AltitudeMode, siteAlt, zOffset float64, pts []ScenePoint) []wpl.Fix {
	fixes := make([]wpl.Fix, len(pts))
	for i, p := range pts {
		east, north := transform.Apply(p)
		lat, lon := origin.ToGeodetic(east, north)
		alt := p.Z + zOffset
		if mode == AltitudeAMSL {
			alt += siteAlt
		}
		fixes[i] = wpl.Fix{Lat: lat, Lon: lon, Alt: alt}
	}
	return fixes
}

// ReadScenePoints loads a local-points CSV (header x,y[,z]; one point
// per row). Rows with a missing Z column get Z = 0.
func ReadScenePoints(r io.Reader) ([]ScenePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var pts []ScenePoint
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			// Header row.
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected at least 2 columns, got %d", line, len(record))
		}
		var p ScenePoint
		if p.X, err = strconv.ParseFloat(strings.TrimSpace(record[0]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad x %q", line, record[0])
		}
		if p.Y, err = strconv.ParseFloat(strings.TrimSpace(record[1]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad y %q", line, record[1])
		}
		if len(record) > 2 {
			if p.Z, err = strconv.ParseFloat(strings.TrimSpace(record[2]), 64); err != nil {
				return nil, fmt.Errorf("line %d: bad z %q", line, record[2])
			}
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// ReadScenePointsFile is ReadScenePoints for a path on disk.
func ReadScenePointsFile(path string) ([]ScenePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pts, err := ReadScenePoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}
