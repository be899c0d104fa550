package droneshow

import "image"

// Contour describes one outer boundary of the mask and the region it encloses.
type Contour struct {
	Start  image.Point // first boundary pixel in row-major order
	Bounds image.Rectangle
	Area   int // pixels enclosed, boundary included
}

var (
	dx4 = []int{-1, 0, 1, 0}
	dy4 = []int{0, -1, 0, 1}
	dx8 = []int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy8 = []int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// outsideBackground marks background pixels 4-connected to the image border.
// Everything else is either foreground or a hole enclosed by an 8-connected
// foreground boundary.
func outsideBackground(mask *Mask) []bool {
	w, h := mask.W, mask.H
	outside := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))
	seed := func(x, y int) {
		i := maskOffset(w, x, y)
		if !mask.Pix[i] && !outside[i] {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	for x := range w {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := range h {
		seed(0, y)
		seed(w-1, y)
	}
	for c := 0; c < len(queue); c++ {
		cur := queue[c]
		cx, cy := cur%w, cur/w
		for k := range 4 {
			nx, ny := cx+dx4[k], cy+dy4[k]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			n := maskOffset(w, nx, ny)
			if !mask.Pix[n] && !outside[n] {
				outside[n] = true
				queue = append(queue, n)
			}
		}
	}
	return outside
}

// FindOuterContours returns one Contour per outermost 8-connected foreground
// region. Regions nested inside another region's holes are part of that outer
// region and are not reported separately.
func FindOuterContours(mask *Mask) []Contour {
	if mask.W == 0 || mask.H == 0 {
		return nil
	}
	return findOuterContours(mask, outsideBackground(mask))
}

func findOuterContours(mask *Mask, outside []bool) []Contour {
	w, h := mask.W, mask.H
	seen := make([]bool, w*h)
	var contours []Contour
	for y := range h {
		for x := range w {
			start := maskOffset(w, x, y)
			if outside[start] || seen[start] {
				continue
			}
			c := Contour{
				Start:  image.Point{X: x, Y: y},
				Bounds: image.Rect(x, y, x+1, y+1),
			}
			seen[start] = true
			elems := make([]int, 1, 64)
			elems[0] = start
			for i := 0; i < len(elems); i++ {
				cur := elems[i]
				cx, cy := cur%w, cur/w
				c.Bounds = c.Bounds.Union(image.Rect(cx, cy, cx+1, cy+1))
				for k := range 8 {
					nx, ny := cx+dx8[k], cy+dy8[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					n := maskOffset(w, nx, ny)
					if !outside[n] && !seen[n] {
						seen[n] = true
						elems = append(elems, n)
					}
				}
			}
			c.Area = len(elems)
			contours = append(contours, c)
		}
	}
	return contours
}

// FillHoles rasterizes the solid interior of every outer contour back into
// mask, so that enclosed background holes become foreground. It returns the
// outer contours, or ErrNoForeground when there are none; the mask is left
// untouched in that case.
func FillHoles(mask *Mask) ([]Contour, error) {
	if mask.W == 0 || mask.H == 0 {
		return nil, ErrNoForeground
	}
	outside := outsideBackground(mask)
	contours := findOuterContours(mask, outside)
	if len(contours) == 0 {
		return nil, ErrNoForeground
	}
	for i, out := range outside {
		if !out {
			mask.Pix[i] = true
		}
	}
	return contours, nil
}
