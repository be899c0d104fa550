package droneshow

import (
	"fmt"
	"slices"

	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
)

// ShowPoint is one drone position in the emitted document.
type ShowPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color string  `json:"color"`
}

// ColorLayerMap assigns every distinct color a layer index in [0, MaxLayers).
type ColorLayerMap struct {
	Colors    []string // distinct colors, ascending
	Layers    map[string]int
	MaxLayers int
}

// BuildColorLayerMap deduplicates colors, sorts them lexicographically and
// assigns rank modulo maxLayers. Input order has no effect on the result.
// Colors past the maxLayers-th share a layer with an earlier one.
func BuildColorLayerMap(colors []string, maxLayers int) ColorLayerMap {
	if maxLayers <= 0 {
		maxLayers = 1
	}
	distinct := slices.Clone(colors)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	layers := make(map[string]int, len(distinct))
	for i, c := range distinct {
		layers[c] = i % maxLayers
	}
	return ColorLayerMap{
		Colors:    distinct,
		Layers:    layers,
		MaxLayers: maxLayers,
	}
}

// Layer returns the layer of color.
func (m ColorLayerMap) Layer(color string) (int, bool) {
	l, ok := m.Layers[color]
	return l, ok
}

// Height returns the z coordinate of color's layer.
func (m ColorLayerMap) Height(color string, zGap float64) float64 {
	return float64(m.Layers[color]) * zGap
}

// AssignLayers is the second pass over the normalized points: it builds the
// color layer map from the global color set, then lifts each point to
// z = layer * zGap. Point order is preserved.
func AssignLayers(points []NormalizedPoint, maxLayers int, zGap float64) (ColorLayerMap, []ShowPoint) {
	colors := make([]string, len(points))
	for i, p := range points {
		colors[i] = p.Color
	}
	m := BuildColorLayerMap(colors, maxLayers)
	monitoring.Logf("distinct colors detected: %d", len(m.Colors))

	out := make([]ShowPoint, len(points))
	for i, p := range points {
		out[i] = ShowPoint{
			X:     p.X,
			Y:     p.Y,
			Z:     m.Height(p.Color, zGap),
			Color: p.Color,
		}
	}
	return m, out
}

func (p ShowPoint) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.1f) %s", p.X, p.Y, p.Z, p.Color)
}
