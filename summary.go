package droneshow

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldSummary describes the extent of a generated point field.
type FieldSummary struct {
	Points         int
	MinX, MaxX     float64
	MinY, MaxY     float64
	MinZ, MaxZ     float64
	CentroidX      float64
	CentroidY      float64
	DistinctColors int
	LayersUsed     int
}

// Width is the extent along X.
func (s FieldSummary) Width() float64 { return s.MaxX - s.MinX }

// Height is the extent along Y.
func (s FieldSummary) Height() float64 { return s.MaxY - s.MinY }

// Summarize computes bounds, centroid and layer usage of points.
func Summarize(points []ShowPoint) FieldSummary {
	if len(points) == 0 {
		return FieldSummary{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	colors := make(map[string]struct{})
	heights := make(map[float64]struct{})
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
		colors[p.Color] = struct{}{}
		heights[p.Z] = struct{}{}
	}
	return FieldSummary{
		Points:         len(points),
		MinX:           floats.Min(xs),
		MaxX:           floats.Max(xs),
		MinY:           floats.Min(ys),
		MaxY:           floats.Max(ys),
		MinZ:           floats.Min(zs),
		MaxZ:           floats.Max(zs),
		CentroidX:      stat.Mean(xs, nil),
		CentroidY:      stat.Mean(ys, nil),
		DistinctColors: len(colors),
		LayersUsed:     len(heights),
	}
}
