package droneshow

import (
	"image"
	"image/color"
)

// Mask is a binary foreground grid with the same dimensions as its source image.
type Mask struct {
	W, H int
	Pix  []bool // row-major, len = W*H
}

func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]bool, w*h)}
}

func maskOffset(w, x, y int) int {
	return y*w + x
}

func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Pix[maskOffset(m.W, x, y)]
}

func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[maskOffset(m.W, x, y)] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Coordinates lists every foreground pixel in row-major order.
func (m *Mask) Coordinates() []image.Point {
	out := make([]image.Point, 0, m.Count())
	for y := range m.H {
		for x := range m.W {
			if m.Pix[maskOffset(m.W, x, y)] {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Gray renders the mask as white foreground on black background.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := range m.H {
		for x := range m.W {
			if m.Pix[maskOffset(m.W, x, y)] {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}
