package render

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skyshow-data/missionkit/internal/geo"
)

var testPath = []geo.LocalPosition{
	{East: 0, North: 0, Up: 10},
	{East: 25, North: 12, Up: 15},
	{East: 50, North: 30, Up: 20},
	{East: 40, North: 60, Up: 12},
}

func TestPathChartRender(t *testing.T) {
	pc := &PathChart{
		SourceFile: "show/mission.waypoints",
		Path:       testPath,
		Labels:     []string{"0", "1", "2", "3"},
	}

	var buf bytes.Buffer
	if err := pc.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"mission.waypoints",
		"East (m)",
		"North (m)",
		"Altitude (m)",
		"line3D",
		"scatter3D",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestPathChartRenderEmptyPath(t *testing.T) {
	pc := &PathChart{SourceFile: "x.waypoints"}
	if err := pc.Render(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPathChartTitleOverride(t *testing.T) {
	pc := &PathChart{SourceFile: "a.waypoints", Title: "Rehearsal B", Path: testPath}
	var buf bytes.Buffer
	if err := pc.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Rehearsal B") {
		t.Error("custom title not rendered")
	}
}

func TestHandler(t *testing.T) {
	pc := &PathChart{SourceFile: "m.waypoints", Path: testPath}
	rr := httptest.NewRecorder()
	Handler(pc)(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "East (m)") {
		t.Error("handler body missing axis label")
	}
}

func TestPathJSONHandler(t *testing.T) {
	pc := &PathChart{SourceFile: "show/m.waypoints", Path: testPath, Labels: []string{"0", "1", "2", "3"}}
	rr := httptest.NewRecorder()
	PathJSONHandler(pc)(rr, httptest.NewRequest("GET", "/path.json", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}

	var doc struct {
		File   string `json:"file"`
		Points []struct {
			Label string  `json:"label"`
			East  float64 `json:"east_m"`
			North float64 `json:"north_m"`
			Up    float64 `json:"up_m"`
		} `json:"points"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if doc.File != "m.waypoints" {
		t.Errorf("file = %q", doc.File)
	}
	if len(doc.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(doc.Points))
	}
	if doc.Points[1].Label != "1" || doc.Points[1].East != 25 || doc.Points[1].Up != 15 {
		t.Errorf("second point = %+v", doc.Points[1])
	}
}

func TestEqualRanges(t *testing.T) {
	mins, maxs := equalRanges(testPath)

	// All three windows share one width.
	w0 := maxs[0] - mins[0]
	for i := 1; i < 3; i++ {
		if math.Abs((maxs[i]-mins[i])-w0) > 1e-9 {
			t.Errorf("axis %d width %g != %g", i, maxs[i]-mins[i], w0)
		}
	}

	// The widest extent (north: 0..60) fits inside with padding.
	if w0 < 60 {
		t.Errorf("window width %g smaller than data span", w0)
	}
	if mins[1] > 0 || maxs[1] < 60 {
		t.Errorf("north window [%g, %g] does not cover data", mins[1], maxs[1])
	}

	// Degenerate single point still yields a non-empty window.
	mins, maxs = equalRanges([]geo.LocalPosition{{East: 5, North: 5, Up: 5}})
	if maxs[0]-mins[0] <= 0 {
		t.Errorf("degenerate window [%g, %g]", mins[0], maxs[0])
	}
}

func TestSaveProjections(t *testing.T) {
	dir := t.TempDir()
	files, err := SaveProjections(dir, "mission", testPath, []string{"0", "1", "2", "3"})
	if err != nil {
		t.Fatalf("SaveProjections failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			t.Fatalf("missing output %s: %v", f, err)
		}
		if info.Size() == 0 {
			t.Errorf("empty plot file %s", f)
		}
		if filepath.Dir(f) != dir {
			t.Errorf("plot written outside dir: %s", f)
		}
	}
}

func TestSaveProjectionsEmptyPath(t *testing.T) {
	if _, err := SaveProjections(t.TempDir(), "m", nil, nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
