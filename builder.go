// Package droneshow turns a raster image into a colored drone-show point field.
package droneshow

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Number of output points (drones). Sampling draws with replacement when
	// the filled foreground has fewer pixels.
	DroneCount int
	// Span of the longer normalized axis, in show units.
	MaxSize float64
	// Alpha above this value is foreground (images with a transparency channel).
	AlphaThreshold uint8
	// Luma below this value is foreground (opaque images, near-white background).
	BrightnessThreshold uint8
	// Number of height tiers. Distinct colors beyond it wrap around.
	MaxLayers int
	// Vertical distance between consecutive tiers.
	ZGap float64
	// Random seed for sampling. Negative draws a fresh seed per run.
	// Layer assignment does not depend on it.
	Seed int64
	// When > 0, sampled colors are snapped to a palette of this many colors
	// before layer assignment.
	PaletteSize   int
	PaletteMethod PaletteMethod
	// Document metadata.
	Title     string
	LayerID   string
	LayerName string
	Duration  int
}

func DefaultOptions() Options {
	return Options{
		DroneCount:          10000,
		MaxSize:             100,
		AlphaThreshold:      10,
		BrightnessThreshold: 245,
		MaxLayers:           30,
		ZGap:                10.0,
		Seed:                -1,
		PaletteMethod:       PaletteMethodDominantColor,
		Title:               "Image Drone Show",
		LayerID:             "layer_01_image",
		LayerName:           "Image Shape",
		Duration:            500,
	}
}

// Validate rejects options the pipeline cannot run with.
func (o Options) Validate() error {
	if o.DroneCount <= 0 {
		return fmt.Errorf("drone count must be positive, got %d", o.DroneCount)
	}
	if !(o.MaxSize > 0) || math.IsInf(o.MaxSize, 0) {
		return fmt.Errorf("max size must be positive and finite, got %g", o.MaxSize)
	}
	if o.MaxLayers <= 0 {
		return fmt.Errorf("max layers must be positive, got %d", o.MaxLayers)
	}
	if !(o.ZGap >= 0) || math.IsInf(o.ZGap, 0) {
		return fmt.Errorf("z gap must be non-negative and finite, got %g", o.ZGap)
	}
	if o.PaletteSize < 0 {
		return fmt.Errorf("palette size must be non-negative, got %d", o.PaletteSize)
	}
	if o.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %d", o.Duration)
	}
	return nil
}

// Source returns the random source selected by Seed.
func (o Options) Source() rand.Source {
	if o.Seed < 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(uint64(o.Seed), 0x9e3779b97f4a7c15)
}

func (o Options) layerMeta() LayerMeta {
	return LayerMeta{
		Title:    o.Title,
		ID:       o.LayerID,
		Name:     o.LayerName,
		Duration: o.Duration,
	}
}

// FieldBuilder runs the image to point-field pipeline and keeps each stage's
// output. Stages run strictly in order; each one reads only what earlier
// stages left on the builder.
type FieldBuilder struct {
	InputImage  image.Image
	Options     Options
	Mask        *Mask
	Contours    []Contour
	Samples     []SampledPoint
	Points      []NormalizedPoint
	Palette     []colorful.Color
	ColorLayers ColorLayerMap
	ShowPoints  []ShowPoint
	Warnings    []Warning
	src         rand.Source
}

func NewFieldBuilder(input image.Image, opt Options) *FieldBuilder {
	return &FieldBuilder{
		InputImage: input,
		Options:    opt,
	}
}

// WithSource overrides the random source derived from Options.Seed.
func (fb *FieldBuilder) WithSource(src rand.Source) *FieldBuilder {
	fb.src = src
	return fb
}

func (fb *FieldBuilder) Build() error {
	if fb.InputImage == nil {
		return &ImageLoadError{Err: errors.New("nil image")}
	}
	if err := fb.Options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if fb.src == nil {
		fb.src = fb.Options.Source()
	}

	fb.segment()
	if err := fb.fill(); err != nil {
		return err
	}
	if err := fb.sample(); err != nil {
		return err
	}
	fb.normalize()
	fb.quantize()
	fb.assignLayers()
	return nil
}

func (fb *FieldBuilder) segment() {
	fb.Mask = Segment(fb.InputImage, fb.Options)
	mode := "brightness"
	if HasAlphaChannel(fb.InputImage) {
		mode = "alpha"
	}
	monitoring.Logf("segmented %dx%d image (%s): %d foreground pixels", fb.Mask.W, fb.Mask.H, mode, fb.Mask.Count())
}

func (fb *FieldBuilder) fill() error {
	contours, err := FillHoles(fb.Mask)
	if err != nil {
		return err
	}
	fb.Contours = contours
	monitoring.Logf("filled %d outer contours: %d foreground pixels", len(contours), fb.Mask.Count())
	return nil
}

func (fb *FieldBuilder) sample() error {
	samples, warn, err := Sample(fb.Mask, fb.InputImage, fb.Options.DroneCount, fb.src)
	if err != nil {
		return err
	}
	if warn != nil {
		fb.Warnings = append(fb.Warnings, *warn)
		monitoring.Logf("warning: %s", warn)
	}
	fb.Samples = samples
	return nil
}

func (fb *FieldBuilder) normalize() {
	fb.Points = Normalize(fb.Samples, fb.Options.MaxSize)
}

func (fb *FieldBuilder) quantize() {
	if fb.Options.PaletteSize <= 0 {
		return
	}
	colors := make([]string, len(fb.Points))
	for i, p := range fb.Points {
		colors[i] = p.Color
	}
	fb.Palette = ExtractPalette(colors, fb.Options.PaletteSize, fb.Options.PaletteMethod)
	SortPaletteByBrightness(fb.Palette)
	fb.Points = QuantizePoints(fb.Points, fb.Palette)
	monitoring.Logf("quantized colors to a %d-color %s palette", len(fb.Palette), fb.Options.PaletteMethod)
}

func (fb *FieldBuilder) assignLayers() {
	fb.ColorLayers, fb.ShowPoints = AssignLayers(fb.Points, fb.Options.MaxLayers, fb.Options.ZGap)
}

// Document assembles the show document from the last successful Build.
func (fb *FieldBuilder) Document() *Document {
	return NewDocument(fb.ShowPoints, fb.Options.layerMeta())
}

// Convert runs the whole pipeline on img.
func Convert(img image.Image, opt Options) (*Document, []Warning, error) {
	fb := NewFieldBuilder(img, opt)
	if err := fb.Build(); err != nil {
		return nil, fb.Warnings, err
	}
	return fb.Document(), fb.Warnings, nil
}
