package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skyshow-data/missionkit/internal/geo"
)

// SaveProjections writes two static views of the path next to the
// interactive chart: a top-down East/North plot with equal axis scaling
// and an altitude-over-distance profile. Returns the files written.
func SaveProjections(dir, baseName string, path []geo.LocalPosition, labels []string) ([]string, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("render: empty path")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	topFile := filepath.Join(dir, baseName+"_topdown.png")
	if err := saveTopDown(topFile, path, labels); err != nil {
		return nil, fmt.Errorf("top-down plot: %w", err)
	}

	profileFile := filepath.Join(dir, baseName+"_profile.png")
	if err := saveProfile(profileFile, path, labels); err != nil {
		return nil, fmt.Errorf("profile plot: %w", err)
	}

	return []string{topFile, profileFile}, nil
}

func saveTopDown(file string, path []geo.LocalPosition, labels []string) error {
	p := plot.New()
	p.Title.Text = "Top-down view"
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"

	pts := make(plotter.XYs, len(path))
	for i, lp := range path {
		pts[i] = plotter.XY{X: lp.East, Y: lp.North}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}

	p.Add(line, scatter)

	if labels != nil {
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}

	// Same span on both axes so the ground track is not distorted.
	mins, maxs := equalRanges(path)
	p.X.Min, p.X.Max = mins[0], maxs[0]
	p.Y.Min, p.Y.Max = mins[1], maxs[1]

	return p.Save(8*vg.Inch, 8*vg.Inch, file)
}

func saveProfile(file string, path []geo.LocalPosition, labels []string) error {
	p := plot.New()
	p.Title.Text = "Altitude profile"
	p.X.Label.Text = "Along-path distance (m)"
	p.Y.Label.Text = "Altitude (m)"

	pts := make(plotter.XYs, len(path))
	dist := 0.0
	for i, lp := range path {
		if i > 0 {
			prev := path[i-1]
			dist += math.Hypot(lp.East-prev.East, lp.North-prev.North)
		}
		pts[i] = plotter.XY{X: dist, Y: lp.Up}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}

	p.Add(line, scatter)

	if labels != nil {
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}

	return p.Save(10*vg.Inch, 5*vg.Inch, file)
}
