// Package render turns a local flight path into the operator-facing
// views: an interactive 3D chart (HTML) and static PNG projections.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/skyshow-data/missionkit/internal/geo"
)

// altitude colour ramp, low to high (viridis).
var altitudeColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// PathChart renders a flight path as a connected 3D line with a marker
// and an index label at every waypoint.
type PathChart struct {
	// SourceFile names the mission file in the chart title.
	SourceFile string
	// Title overrides the default "Flight Path — <file>" title.
	Title string
	// Path is the converted local-frame path, ordered.
	Path []geo.LocalPosition
	// Labels carries one text label per path point, usually the
	// original waypoint index. Optional; indices are generated when nil.
	Labels []string
}

func (pc *PathChart) title() string {
	if pc.Title != "" {
		return pc.Title
	}
	return "Flight Path — " + filepath.Base(pc.SourceFile)
}

func (pc *PathChart) labels() []string {
	if pc.Labels != nil {
		return pc.Labels
	}
	out := make([]string, len(pc.Path))
	for i := range out {
		out[i] = fmt.Sprintf("%d", i)
	}
	return out
}

// Render writes the chart as a standalone HTML page.
func (pc *PathChart) Render(w io.Writer) error {
	if len(pc.Path) == 0 {
		return fmt.Errorf("render: empty path")
	}

	labels := pc.labels()
	lineData := make([]opts.Chart3DData, 0, len(pc.Path))
	markData := make([]opts.Chart3DData, 0, len(pc.Path))
	minUp, maxUp := pc.Path[0].Up, pc.Path[0].Up
	for i, p := range pc.Path {
		value := []interface{}{p.East, p.North, p.Up}
		lineData = append(lineData, opts.Chart3DData{Value: value})
		markData = append(markData, opts.Chart3DData{Name: labels[i], Value: value})
		minUp = math.Min(minUp, p.Up)
		maxUp = math.Max(maxUp, p.Up)
	}
	if maxUp == minUp {
		maxUp = minUp + 1
	}

	axMin, axMax := equalRanges(pc.Path)

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pc.title(),
			Width:     "1000px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    pc.title(),
			Subtitle: fmt.Sprintf("%d waypoints, local ENU frame anchored at waypoint 0", len(pc.Path)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "East (m)", Type: "value", Min: axMin[0], Max: axMax[0], Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "North (m)", Type: "value", Min: axMin[1], Max: axMax[1], Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Altitude (m)", Type: "value", Min: axMin[2], Max: axMax[2], Show: opts.Bool(true)}),
		// Identical box edges keep one meter the same length on every
		// axis, matching the identical data ranges above.
		charts.WithGrid3DOpts(opts.Grid3D{
			Show:      opts.Bool(true),
			BoxWidth:  100,
			BoxDepth:  100,
			BoxHeight: 100,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minUp),
			Max:        float32(maxUp),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: altitudeColors},
		}),
	)

	scatter.AddSeries("waypoints", markData,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}", Position: "top"}),
	)

	// go-echarts fixes one series type per chart, but ECharts itself has
	// no such restriction: append the connecting line3D series directly.
	scatter.MultiSeries = append(scatter.MultiSeries, charts.SingleSeries{
		Name:        "path",
		Type:        types.ChartLine3D,
		CoordSystem: types.ChartCartesian3D,
		Data:        lineData,
	})

	return scatter.Render(w)
}

// RenderFile writes the chart HTML to a file.
func (pc *PathChart) RenderFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Handler serves the chart over HTTP for the preview mode.
func Handler(pc *PathChart) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pc.Render(w); err != nil {
			http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		}
	}
}

// pathPoint is the JSON shape of one local position.
type pathPoint struct {
	Label string  `json:"label"`
	East  float64 `json:"east_m"`
	North float64 `json:"north_m"`
	Up    float64 `json:"up_m"`
}

// PathJSONHandler serves the local positions as JSON alongside the
// chart, for scripted consumers of the preview server.
func PathJSONHandler(pc *PathChart) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labels := pc.labels()
		points := make([]pathPoint, len(pc.Path))
		for i, p := range pc.Path {
			points[i] = pathPoint{Label: labels[i], East: p.East, North: p.North, Up: p.Up}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"file":   filepath.Base(pc.SourceFile),
			"points": points,
		}); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode path: %v", err), http.StatusInternalServerError)
		}
	}
}

// equalRanges returns per-axis [min, max] windows of identical width,
// each centred on its axis' data, so a meter east renders as long as a
// meter north or up. The window gets a small pad so edge markers stay
// visible.
func equalRanges(path []geo.LocalPosition) (mins, maxs [3]float64) {
	lo := [3]float64{path[0].East, path[0].North, path[0].Up}
	hi := lo
	for _, p := range path {
		v := [3]float64{p.East, p.North, p.Up}
		for i := range v {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}

	span := 0.0
	for i := range lo {
		span = math.Max(span, hi[i]-lo[i])
	}
	half := span / 2 * 1.05
	if half == 0 {
		half = 1.0
	}

	for i := range lo {
		mid := (lo[i] + hi[i]) / 2
		mins[i] = mid - half
		maxs[i] = mid + half
	}
	return mins, maxs
}
