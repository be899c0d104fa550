package droneshow

import (
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

// squareOnTransparent returns a w x h transparent NRGBA with an opaque c square
// covering r.
func squareOnTransparent(w, h int, r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// opaqueRGBA returns a w x h opaque image filled with bg.
func opaqueRGBA(w, h int, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

// maskFrom parses rows of '#' (foreground) and '.' (background).
func maskFrom(rows ...string) *Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			m.Set(x, y, ch == '#')
		}
	}
	return m
}

var red = color.NRGBA{R: 255, A: 255}
