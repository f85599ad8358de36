// Package geo converts between geographic coordinates and a local
// flat-earth East-North-Up frame anchored at a reference point.
//
// The projection treats the earth as a sphere of the WGS-84 equatorial
// radius. Accuracy degrades with distance from the reference and near
// the poles; that is the accepted trade for a short-range mission
// preview, not a defect.
package geo

import (
	"errors"
	"math"

	"github.com/skyshow-data/missionkit/internal/wpl"
)

// EarthRadiusMeters is the WGS-84 equatorial radius, used here as a
// spherical approximation.
const EarthRadiusMeters = 6378137.0

// ErrNoWaypoints is returned when a projection is requested for an
// empty sequence: without a first waypoint there is no reference point.
var ErrNoWaypoints = errors.New("geo: no waypoints to project")

// LocalPosition is a point in the local tangent frame, meters east and
// north of the origin, up above it.
type LocalPosition struct {
	East  float64
	North float64
	Up    float64
}

// Origin is the reference point of a local tangent frame.
type Origin struct {
	lat0 float64 // radians
	lon0 float64 // radians
}

// NewOrigin anchors a local frame at the given position in degrees.
func NewOrigin(latDeg, lonDeg float64) Origin {
	return Origin{
		lat0: latDeg * math.Pi / 180,
		lon0: lonDeg * math.Pi / 180,
	}
}

// ToLocal projects a position in degrees onto the tangent plane.
func (o Origin) ToLocal(latDeg, lonDeg float64) (east, north float64) {
	dlat := latDeg*math.Pi/180 - o.lat0
	dlon := lonDeg*math.Pi/180 - o.lon0
	north = EarthRadiusMeters * dlat
	east = EarthRadiusMeters * math.Cos(o.lat0) * dlon
	return east, north
}

// ToGeodetic is the inverse of ToLocal: offsets in meters back to
// degrees. Round-tripping through ToLocal reproduces the input to
// floating-point precision.
func (o Origin) ToGeodetic(east, north float64) (latDeg, lonDeg float64) {
	lat := o.lat0 + north/EarthRadiusMeters
	lon := o.lon0 + east/(EarthRadiusMeters*math.Cos(o.lat0))
	return lat * 180 / math.Pi, lon * 180 / math.Pi
}

// ProjectMission converts a waypoint sequence to local positions, one
// output per input in the same order. The first waypoint is the origin
// and always maps to (0, 0, its altitude). Altitude passes through
// unchanged; it is already in meters.
func ProjectMission(wps []wpl.Waypoint) ([]LocalPosition, error) {
	if len(wps) == 0 {
		return nil, ErrNoWaypoints
	}
	origin := NewOrigin(wps[0].Latitude, wps[0].Longitude)
	out := make([]LocalPosition, len(wps))
	for i, wp := range wps {
		east, north := origin.ToLocal(wp.Latitude, wp.Longitude)
		out[i] = LocalPosition{East: east, North: north, Up: wp.Altitude}
	}
	return out, nil
}
