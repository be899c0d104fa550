package droneshow

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes any registered raster format. name is only used for error reporting.
func DecodeImage(r io.Reader, name string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &ImageLoadError{Path: name, Err: err}
	}
	return img, nil
}

// HasAlphaChannel reports whether img carries a transparency channel.
//
// Straight-alpha images always count, even when every pixel is opaque; in that
// case the brightness fallback is skipped and the whole frame is foreground.
// Premultiplied images (the PNG decoder's truecolor type) count only when some
// pixel is actually translucent.
func HasAlphaChannel(img image.Image) bool {
	switch im := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return true
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	case *image.Paletted:
		for _, c := range im.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// Segment builds the foreground mask of img.
//
// With a transparency channel, pixels with alpha above opt.AlphaThreshold are
// foreground and color is ignored. Otherwise the image is reduced to luma and
// pixels darker than opt.BrightnessThreshold are foreground (near-white
// background assumed).
func Segment(img image.Image, opt Options) *Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := NewMask(w, h)

	if HasAlphaChannel(img) {
		for y := range h {
			for x := range w {
				_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				mask.Pix[maskOffset(w, x, y)] = uint8(a>>8) > opt.AlphaThreshold
			}
		}
		return mask
	}

	for y := range h {
		for x := range w {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			mask.Pix[maskOffset(w, x, y)] = g.Y < opt.BrightnessThreshold
		}
	}
	return mask
}
