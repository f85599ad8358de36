package geo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PathStats summarises a local flight path for the operator's sanity
// check and the inspection catalog.
type PathStats struct {
	Points      int
	TotalLength float64 // meters along all legs
	MeanLeg     float64
	MinLeg      float64
	MaxLeg      float64
	P95Leg      float64
	Climb       float64 // summed positive altitude change
	Descent     float64 // summed negative altitude change, positive value
	MinEast     float64
	MaxEast     float64
	MinNorth    float64
	MaxNorth    float64
	MinUp       float64
	MaxUp       float64
}

// ComputeStats walks the path once. A path with fewer than two points
// has zero-valued leg statistics but still reports its bounds.
func ComputeStats(path []LocalPosition) PathStats {
	s := PathStats{Points: len(path)}
	if len(path) == 0 {
		return s
	}

	s.MinEast, s.MaxEast = path[0].East, path[0].East
	s.MinNorth, s.MaxNorth = path[0].North, path[0].North
	s.MinUp, s.MaxUp = path[0].Up, path[0].Up

	legs := make([]float64, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		leg := math.Sqrt((b.East-a.East)*(b.East-a.East) +
			(b.North-a.North)*(b.North-a.North) +
			(b.Up-a.Up)*(b.Up-a.Up))
		legs = append(legs, leg)
		s.TotalLength += leg

		if dz := b.Up - a.Up; dz > 0 {
			s.Climb += dz
		} else {
			s.Descent -= dz
		}

		s.MinEast = math.Min(s.MinEast, b.East)
		s.MaxEast = math.Max(s.MaxEast, b.East)
		s.MinNorth = math.Min(s.MinNorth, b.North)
		s.MaxNorth = math.Max(s.MaxNorth, b.North)
		s.MinUp = math.Min(s.MinUp, b.Up)
		s.MaxUp = math.Max(s.MaxUp, b.Up)
	}

	if len(legs) > 0 {
		s.MeanLeg = stat.Mean(legs, nil)
		sorted := make([]float64, len(legs))
		copy(sorted, legs)
		sort.Float64s(sorted)
		s.MinLeg = sorted[0]
		s.MaxLeg = sorted[len(sorted)-1]
		s.P95Leg = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}
	return s
}
