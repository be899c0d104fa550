// Package sprite renders the point-light texture used by show renderers.
package sprite

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

type Options struct {
	Size   int     // canvas side in pixels
	Radius float64 // opaque core radius
	Glow   int     // number of fading rings outside the core
}

func DefaultOptions() Options {
	return Options{Size: 64, Radius: 20, Glow: 5}
}

func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("sprite size must be positive, got %d", o.Size)
	}
	if o.Radius <= 0 || 2*o.Radius > float64(o.Size) {
		return fmt.Errorf("sprite radius %g does not fit a %dpx canvas", o.Radius, o.Size)
	}
	if o.Glow < 0 {
		return fmt.Errorf("glow must be non-negative, got %d", o.Glow)
	}
	return nil
}

func render(opt Options) (*gg.Context, error) {
	dc := gg.NewContext(opt.Size, opt.Size)
	dc.Clear()
	c := float64(opt.Size) / 2

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawCircle(c, c, opt.Radius)
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("filling core: %w", err)
	}

	dc.SetLineWidth(1)
	for i := range opt.Glow {
		alpha := 1 - float64(i)/float64(opt.Glow)
		dc.SetRGBA(1, 1, 1, alpha)
		dc.DrawCircle(c, c, opt.Radius+float64(i))
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("stroking glow ring %d: %w", i, err)
		}
	}
	return dc, nil
}

// Draw renders a white disc with a soft edge on a transparent canvas.
func Draw(opt Options) (image.Image, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	dc, err := render(opt)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Save renders the sprite into a PNG at path.
func Save(path string, opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	dc, err := render(opt)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
