package utils

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	droneshow "github.com/INMD1-Repo/Visualcomputing-Dron"
	"github.com/lucasb-eyer/go-colorful"
)

// ReadImage opens and decodes path. Failures are *droneshow.ImageLoadError.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &droneshow.ImageLoadError{Path: path, Err: err}
	}
	defer file.Close()
	return droneshow.DecodeImage(bufio.NewReader(file), path)
}

// SaveImage encodes img as PNG into filename.
func SaveImage(img image.Image, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", filename, cerr)
		}
	}()
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return w.Flush()
}

// SaveMask writes the mask as a black/white PNG.
func SaveMask(mask *droneshow.Mask, filename string) error {
	return SaveImage(mask.Gray(), filename)
}

func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := range h {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}

// WriteDocument encodes doc next to path and renames it into place, so the
// target is either the previous file or the complete new document.
// Failures are *droneshow.WriteError.
func WriteDocument(doc *droneshow.Document, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &droneshow.WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &droneshow.WriteError{Path: path, Err: err}
	}

	w := bufio.NewWriter(tmp)
	if err := doc.Encode(w); err != nil {
		return fail(err)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &droneshow.WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &droneshow.WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &droneshow.WriteError{Path: path, Err: err}
	}
	return nil
}

// ReadDocumentFile loads and validates a show document from disk.
func ReadDocumentFile(path string) (*droneshow.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return droneshow.ReadDocument(bufio.NewReader(f))
}

// ConvertFile reads imagePath, runs the pipeline and writes the document to
// outputPath. The builder is returned on success and on pipeline errors so
// callers can inspect warnings and intermediate stages.
func ConvertFile(imagePath, outputPath string, opt droneshow.Options) (*droneshow.FieldBuilder, error) {
	img, err := ReadImage(imagePath)
	if err != nil {
		return nil, err
	}
	fb := droneshow.NewFieldBuilder(img, opt)
	if err := fb.Build(); err != nil {
		return fb, err
	}
	if err := WriteDocument(fb.Document(), outputPath); err != nil {
		return fb, err
	}
	return fb, nil
}
