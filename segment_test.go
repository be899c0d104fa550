package droneshow

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_AlphaThreshold(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 11})
	img.SetNRGBA(2, 2, color.NRGBA{A: 10})
	img.SetNRGBA(3, 3, color.NRGBA{G: 200, A: 255})

	mask := Segment(img, DefaultOptions())
	assert.True(t, mask.At(1, 1), "alpha 11 is above the threshold even for a white pixel")
	assert.False(t, mask.At(2, 2), "alpha 10 is not above the threshold")
	assert.True(t, mask.At(3, 3))
	assert.Equal(t, 2, mask.Count())
}

func TestSegment_BrightnessThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 244})
	img.SetGray(1, 0, color.Gray{Y: 245})
	img.SetGray(2, 0, color.Gray{Y: 0})

	mask := Segment(img, DefaultOptions())
	assert.Equal(t, []bool{true, false, true}, mask.Pix)
}

func TestSegment_OpaqueRGBAUsesBrightness(t *testing.T) {
	img := opaqueRGBA(5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(2, 2, color.RGBA{R: 20, G: 20, B: 20, A: 255})
	require.False(t, HasAlphaChannel(img))

	mask := Segment(img, DefaultOptions())
	assert.Equal(t, 1, mask.Count())
	assert.True(t, mask.At(2, 2))
}

// An image with a straight alpha channel that is fully opaque never reaches the
// brightness branch, so a white background is kept as foreground.
func TestSegment_OpaqueAlphaChannelSkipsBrightness(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	require.True(t, HasAlphaChannel(img))

	mask := Segment(img, DefaultOptions())
	assert.Equal(t, 16, mask.Count())
}

func TestSegment_AllWhiteOpaqueHasNoForeground(t *testing.T) {
	img := opaqueRGBA(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	mask := Segment(img, DefaultOptions())
	assert.Zero(t, mask.Count())

	_, err := FillHoles(mask)
	assert.ErrorIs(t, err, ErrNoForeground)
}

func TestSegment_NonZeroOrigin(t *testing.T) {
	base := squareOnTransparent(10, 10, image.Rect(6, 6, 8, 8), red)
	sub := base.SubImage(image.Rect(5, 5, 10, 10))

	mask := Segment(sub, DefaultOptions())
	assert.Equal(t, 5, mask.W)
	assert.Equal(t, 5, mask.H)
	assert.True(t, mask.At(1, 1))
	assert.True(t, mask.At(2, 2))
	assert.False(t, mask.At(0, 0))
	assert.Equal(t, 4, mask.Count())
}

func TestHasAlphaChannel(t *testing.T) {
	translucent := opaqueRGBA(2, 2, color.RGBA{A: 255})
	translucent.SetRGBA(0, 0, color.RGBA{A: 0})

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 1, 1)), true},
		{"opaque rgba", opaqueRGBA(2, 2, color.RGBA{R: 1, A: 255}), false},
		{"translucent rgba", translucent, true},
		{"gray", image.NewGray(image.Rect(0, 0, 1, 1)), false},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), false},
		{"paletted opaque", image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White}), false},
		{"paletted transparent", image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent, color.Black}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAlphaChannel(tt.img))
		})
	}
}

func TestDecodeImage(t *testing.T) {
	src := squareOnTransparent(6, 4, image.Rect(1, 1, 3, 3), red)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := DecodeImage(&buf, "square.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())

	_, err = DecodeImage(strings.NewReader("not an image"), "junk.png")
	var loadErr *ImageLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "junk.png", loadErr.Path)
	assert.ErrorIs(t, err, image.ErrFormat)
}
