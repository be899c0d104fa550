package droneshow

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func palette35() []string {
	colors := make([]string, 35)
	for i := range colors {
		colors[i] = fmt.Sprintf("#00%02x%02x", i, 255-i)
	}
	return colors
}

func TestBuildColorLayerMap_IndependentOfOrder(t *testing.T) {
	colors := palette35()
	want := BuildColorLayerMap(colors, 30)

	rng := rand.New(rand.NewPCG(42, 0))
	for range 5 {
		shuffled := slices.Clone(colors)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		// Repeats must not shift ranks either.
		shuffled = append(shuffled, shuffled[:7]...)
		got := BuildColorLayerMap(shuffled, 30)
		assert.Equal(t, want.Layers, got.Layers)
		assert.Equal(t, want.Colors, got.Colors)
	}
}

func TestBuildColorLayerMap_Wraparound(t *testing.T) {
	colors := palette35()
	m := BuildColorLayerMap(colors, 30)
	require.Len(t, m.Colors, 35)
	require.True(t, slices.IsSorted(m.Colors))

	l0, ok := m.Layer(m.Colors[0])
	require.True(t, ok)
	l30, ok := m.Layer(m.Colors[30])
	require.True(t, ok)
	assert.Equal(t, 0, l0)
	assert.Equal(t, l0, l30)
	assert.Equal(t, m.Height(m.Colors[0], 10), m.Height(m.Colors[30], 10))

	l29, _ := m.Layer(m.Colors[29])
	assert.Equal(t, 29, l29)
	assert.Equal(t, 290.0, m.Height(m.Colors[29], 10))

	for _, c := range colors {
		l, _ := m.Layer(c)
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 30)
	}

	_, ok = m.Layer("#ffffff")
	assert.False(t, ok)
}

func TestBuildColorLayerMap_NonPositiveCap(t *testing.T) {
	m := BuildColorLayerMap([]string{"#000000", "#111111"}, 0)
	assert.Equal(t, 1, m.MaxLayers)
	assert.Equal(t, map[string]int{"#000000": 0, "#111111": 0}, m.Layers)
}

func TestAssignLayers(t *testing.T) {
	points := []NormalizedPoint{
		{X: 1, Y: 2, Color: "#ff0000"},
		{X: 3, Y: 4, Color: "#0000ff"},
		{X: 5, Y: 6, Color: "#ff0000"},
		{X: 7, Y: 8, Color: "#00ff00"},
	}
	m, out := AssignLayers(points, 30, 10)
	assert.Equal(t, []string{"#0000ff", "#00ff00", "#ff0000"}, m.Colors)

	want := []ShowPoint{
		{X: 1, Y: 2, Z: 20, Color: "#ff0000"},
		{X: 3, Y: 4, Z: 0, Color: "#0000ff"},
		{X: 5, Y: 6, Z: 20, Color: "#ff0000"},
		{X: 7, Y: 8, Z: 10, Color: "#00ff00"},
	}
	assert.Equal(t, want, out)
}

func TestAssignLayers_SingleColorStaysOnGround(t *testing.T) {
	points := []NormalizedPoint{{Color: "#ff0000"}, {X: 1, Color: "#ff0000"}}
	_, out := AssignLayers(points, 30, 10)
	for _, p := range out {
		assert.Zero(t, p.Z)
	}
}
