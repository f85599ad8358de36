package geo

import (
	"math"
	"testing"
)

func TestComputeStatsSimplePath(t *testing.T) {
	path := []LocalPosition{
		{East: 0, North: 0, Up: 10},
		{East: 30, North: 0, Up: 10},  // 30 m level leg
		{East: 30, North: 40, Up: 10}, // 40 m level leg
		{East: 30, North: 40, Up: 25}, // 15 m climb
		{East: 30, North: 40, Up: 20}, // 5 m descent
	}
	s := ComputeStats(path)

	if s.Points != 5 {
		t.Errorf("Points = %d", s.Points)
	}
	if math.Abs(s.TotalLength-90) > 1e-9 {
		t.Errorf("TotalLength = %g, want 90", s.TotalLength)
	}
	if s.MinLeg != 5 || s.MaxLeg != 40 {
		t.Errorf("leg extremes = %g/%g, want 5/40", s.MinLeg, s.MaxLeg)
	}
	if math.Abs(s.MeanLeg-22.5) > 1e-9 {
		t.Errorf("MeanLeg = %g, want 22.5", s.MeanLeg)
	}
	if s.Climb != 15 || s.Descent != 5 {
		t.Errorf("climb/descent = %g/%g, want 15/5", s.Climb, s.Descent)
	}
	if s.MaxEast != 30 || s.MaxNorth != 40 || s.MinUp != 10 || s.MaxUp != 25 {
		t.Errorf("bounds wrong: %+v", s)
	}
}

func TestComputeStatsDegenerateInputs(t *testing.T) {
	if s := ComputeStats(nil); s.Points != 0 || s.TotalLength != 0 {
		t.Errorf("empty path stats = %+v", s)
	}

	s := ComputeStats([]LocalPosition{{East: 2, North: 3, Up: 4}})
	if s.Points != 1 || s.TotalLength != 0 || s.MeanLeg != 0 {
		t.Errorf("single point stats = %+v", s)
	}
	if s.MinEast != 2 || s.MaxNorth != 3 || s.MaxUp != 4 {
		t.Errorf("single point bounds = %+v", s)
	}
}
