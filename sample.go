package droneshow

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SampledPoint is a foreground pixel drawn by the sampler, with its source color.
type SampledPoint struct {
	X, Y  int
	Color string // "#rrggbb"
}

// SamplingStrategy fills dst with indices into a population of the given size.
type SamplingStrategy interface {
	Draw(dst []int, population int, src rand.Source)
	Replacement() bool
}

// WithoutReplacement draws unique indices. It requires len(dst) <= population.
type WithoutReplacement struct{}

func (WithoutReplacement) Draw(dst []int, population int, src rand.Source) {
	n := len(dst)
	if n == 0 {
		return
	}
	// sampleuv permutes the whole population when it is small relative to n;
	// beyond n*n it would fall back to an O(n^2) rejection scheme, so sparse
	// populations use a partial Fisher-Yates instead.
	if population < n*n {
		sampleuv.WithoutReplacement(dst, population, src)
		return
	}
	partialShuffle(dst, population, rand.New(src))
}

// partialShuffle runs the first len(dst) steps of a Fisher-Yates shuffle of
// [0, population), tracking only the displaced entries.
func partialShuffle(dst []int, population int, rng *rand.Rand) {
	moved := make(map[int]int, len(dst))
	at := func(i int) int {
		if v, ok := moved[i]; ok {
			return v
		}
		return i
	}
	for i := range dst {
		j := i + rng.IntN(population-i)
		dst[i], moved[j] = at(j), at(i)
	}
}

func (WithoutReplacement) Replacement() bool { return false }

// WithReplacement draws each index independently and uniformly; duplicates are expected.
type WithReplacement struct{}

func (WithReplacement) Draw(dst []int, population int, src rand.Source) {
	rng := rand.New(src)
	for i := range dst {
		dst[i] = rng.IntN(population)
	}
}

func (WithReplacement) Replacement() bool { return true }

// StrategyFor picks the sampling variant for drawing n items from population.
func StrategyFor(population, n int) SamplingStrategy {
	if population >= n {
		return WithoutReplacement{}
	}
	return WithReplacement{}
}

// Sample draws exactly n foreground coordinates of mask and attaches the color
// of img at each one. When the foreground is smaller than n, coordinates are
// drawn with replacement and a Warning is returned alongside the points.
func Sample(mask *Mask, img image.Image, n int, src rand.Source) ([]SampledPoint, *Warning, error) {
	candidates := mask.Coordinates()
	if len(candidates) == 0 {
		return nil, nil, ErrEmptyRegion
	}

	var warn *Warning
	strategy := StrategyFor(len(candidates), n)
	if strategy.Replacement() {
		warn = &Warning{
			Kind:       WarnSampledWithReplacement,
			Population: len(candidates),
			Requested:  n,
		}
	}

	idxs := make([]int, n)
	strategy.Draw(idxs, len(candidates), src)

	b := img.Bounds()
	out := make([]SampledPoint, n)
	for i, idx := range idxs {
		p := candidates[idx]
		out[i] = SampledPoint{
			X:     p.X,
			Y:     p.Y,
			Color: HexColorAt(img, b.Min.X+p.X, b.Min.Y+p.Y),
		}
	}
	return out, warn, nil
}

// HexColorAt returns the straight (non-premultiplied) RGB of img at (x, y) as "#rrggbb".
func HexColorAt(img image.Image, x, y int) string {
	var c color.NRGBA
	switch im := img.(type) {
	case *image.NRGBA:
		c = im.NRGBAAt(x, y)
	default:
		c = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}
