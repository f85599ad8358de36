package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/skyshow-data/missionkit/internal/wpl"
)

// QGroundControl .plan JSON. Field names and structure follow what QGC
// itself writes for a version 1 plan file.

type PlanItem struct {
	AMSLAltAboveTerrain *float64   `json:"AMSLAltAboveTerrain"`
	Altitude            float64    `json:"Altitude"`
	AltitudeMode        int        `json:"AltitudeMode"`
	AutoContinue        bool       `json:"autoContinue"`
	Command             int        `json:"command"`
	DoJumpID            int        `json:"doJumpId"`
	Frame               int        `json:"frame"`
	Params              [7]float64 `json:"params"`
	Type                string     `json:"type"`
}

type PlanMission struct {
	CruiseSpeed         float64    `json:"cruiseSpeed"`
	FirmwareType        int        `json:"firmwareType"`
	HoverSpeed          float64    `json:"hoverSpeed"`
	Items               []PlanItem `json:"items"`
	PlannedHomePosition [3]float64 `json:"plannedHomePosition"`
	VehicleType         int        `json:"vehicleType"`
	Version             int        `json:"version"`
}

type geoFence struct {
	Circles  []struct{} `json:"circles"`
	Polygons []struct{} `json:"polygons"`
	Version  int        `json:"version"`
}

type rallyPoints struct {
	Points  []struct{} `json:"points"`
	Version int        `json:"version"`
}

type Plan struct {
	FileType      string      `json:"fileType"`
	GeoFence      geoFence    `json:"geoFence"`
	GroundStation string      `json:"groundStation"`
	Mission       PlanMission `json:"mission"`
	RallyPoints   rallyPoints `json:"rallyPoints"`
	Version       int         `json:"version"`
}

// PlanOptions tunes the generated plan. Zero values fall back to the
// defaults QGC would pick for a small multirotor.
type PlanOptions struct {
	CruiseSpeed  float64
	HoverSpeed   float64
	DwellSeconds float64
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.CruiseSpeed == 0 {
		o.CruiseSpeed = 2.0
	}
	if o.HoverSpeed == 0 {
		o.HoverSpeed = 3.0
	}
	return o
}

// BuildPlan converts a mission into a QGC plan document. Each waypoint
// becomes a SimpleItem; param1 carries the dwell time for plain
// NAV_WAYPOINT rows when DwellSeconds is set.
func BuildPlan(m *wpl.Mission, o PlanOptions) *Plan {
	o = o.withDefaults()

	items := make([]PlanItem, 0, len(m.Waypoints))
	for seq, w := range m.Waypoints {
		item := PlanItem{
			Altitude:     w.Altitude,
			AltitudeMode: 1,
			AutoContinue: w.AutoContinue,
			Command:      w.Command,
			DoJumpID:     seq + 1,
			Frame:        w.Frame,
			Params:       [7]float64{w.Param1, w.Param2, w.Param3, w.Param4, w.Latitude, w.Longitude, w.Altitude},
			Type:         "SimpleItem",
		}
		if o.DwellSeconds > 0 && w.Command == wpl.CmdNavWaypoint && item.Params[0] == 0 {
			item.Params[0] = o.DwellSeconds
		}
		items = append(items, item)
	}

	var home [3]float64
	if len(m.Waypoints) > 0 {
		home = [3]float64{m.Waypoints[0].Latitude, m.Waypoints[0].Longitude, 0}
	}

	return &Plan{
		FileType: "Plan",
		GeoFence: geoFence{
			Circles:  []struct{}{},
			Polygons: []struct{}{},
			Version:  2,
		},
		GroundStation: "QGroundControl",
		Mission: PlanMission{
			CruiseSpeed:         o.CruiseSpeed,
			FirmwareType:        12,
			HoverSpeed:          o.HoverSpeed,
			Items:               items,
			PlannedHomePosition: home,
			VehicleType:         2,
			Version:             2,
		},
		RallyPoints: rallyPoints{
			Points:  []struct{}{},
			Version: 2,
		},
		Version: 1,
	}
}

// WritePlan writes the plan as indented JSON.
func WritePlan(w io.Writer, p *Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WritePlanFile writes the plan JSON to a file.
func WritePlanFile(path string, p *Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePlan(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
