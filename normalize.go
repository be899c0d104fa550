package droneshow

import "gonum.org/v1/gonum/floats"

// NormalizedPoint is a sampled point in show space: origin at the center of
// the sampled bounding box, Y pointing up.
type NormalizedPoint struct {
	X, Y  float64
	Color string
}

// Normalize recenters samples on their bounding box and scales them so the
// longer axis spans maxSize. A zero-extent axis uses scale 1 for its own term,
// so the overall scale min(sx, sy) never divides by zero.
func Normalize(samples []SampledPoint, maxSize float64) []NormalizedPoint {
	n := len(samples)
	if n == 0 {
		return nil
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		xs[i] = float64(s.X)
		ys[i] = float64(s.Y)
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	width := maxX - minX
	height := maxY - minY

	scaleX, scaleY := 1.0, 1.0
	if width > 0 {
		scaleX = maxSize / width
	}
	if height > 0 {
		scaleY = maxSize / height
	}
	scale := min(scaleX, scaleY)

	floats.AddConst(-(minX + width/2), xs)
	floats.Scale(scale, xs)
	// Image rows grow downward, show space grows upward.
	floats.AddConst(-(minY + height/2), ys)
	floats.Scale(-scale, ys)

	out := make([]NormalizedPoint, n)
	for i, s := range samples {
		out[i] = NormalizedPoint{X: xs[i], Y: ys[i], Color: s.Color}
	}
	return out
}
