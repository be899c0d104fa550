package utils

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	droneshow "github.com/INMD1-Repo/Visualcomputing-Dron"
	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func writeSquarePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(dir, "square.png")
	require.NoError(t, SaveImage(img, path))
	return path
}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	img, err := ReadImage(writeSquarePNG(t, dir))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())

	var loadErr *droneshow.ImageLoadError

	_, err = ReadImage(filepath.Join(dir, "missing.png"))
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("\x89PNG garbage"), 0o644))
	_, err = ReadImage(corrupt)
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, corrupt, loadErr.Path)
}

func TestWriteDocument_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.json")
	doc := droneshow.NewDocument([]droneshow.ShowPoint{
		{X: -1.5, Y: 2, Z: 10, Color: "#112233"},
	}, droneshow.LayerMeta{Title: "t", ID: "l1", Name: "n", Duration: 3})

	require.NoError(t, WriteDocument(doc, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	got, err := ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Overwrite keeps a single, complete file.
	doc.Title = "second"
	require.NoError(t, WriteDocument(doc, path))
	got, err = ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteDocument_Unwritable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "show.json")
	err := WriteDocument(droneshow.NewDocument(nil, droneshow.LayerMeta{}), path)

	var writeErr *droneshow.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, path, writeErr.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveImage_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "mask.png")
	err := SaveImage(image.NewGray(image.Rect(0, 0, 2, 2)), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoFileExists(t, path)
}

func TestSaveMaskAndPalette(t *testing.T) {
	dir := t.TempDir()
	mask := droneshow.NewMask(3, 2)
	mask.Set(1, 1, true)
	maskPath := filepath.Join(dir, "mask.png")
	require.NoError(t, SaveMask(mask, maskPath))

	f, err := os.Open(maskPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	g := color.GrayModel.Convert(img.At(1, 1)).(color.Gray)
	assert.Equal(t, uint8(255), g.Y)
	g = color.GrayModel.Convert(img.At(0, 0)).(color.Gray)
	assert.Zero(t, g.Y)

	palPath := filepath.Join(dir, "palette.png")
	require.NoError(t, SavePalette([]colorful.Color{{R: 1}, {B: 1}}, 8, palPath))
	pf, err := os.Open(palPath)
	require.NoError(t, err)
	defer pf.Close()
	cfg, err := png.DecodeConfig(pf)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)

	assert.Error(t, SavePalette(nil, 8, filepath.Join(dir, "empty.png")))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := writeSquarePNG(t, dir)
	output := filepath.Join(dir, "show.json")

	opt := droneshow.DefaultOptions()
	opt.DroneCount = 50
	opt.MaxSize = 10
	opt.Seed = 3

	fb, err := ConvertFile(input, output, opt)
	require.NoError(t, err)
	assert.Len(t, fb.ShowPoints, 50)

	doc, err := ReadDocumentFile(output)
	require.NoError(t, err)
	assert.Equal(t, 50, doc.NumPoints())
	for _, p := range doc.Layers[0].Points {
		assert.Equal(t, "#ff0000", p.Color)
	}

	_, err = ConvertFile(filepath.Join(dir, "nope.png"), output, opt)
	var loadErr *droneshow.ImageLoadError
	assert.True(t, errors.As(err, &loadErr))
}
