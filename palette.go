package droneshow

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names produced by PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "dominant", "":
		return PaletteMethodDominantColor, true
	}
	return PaletteMethodDominantColor, false
}

// paletteCandidate is a representative color and the share of samples behind it.
type paletteCandidate struct {
	Col    colorful.Color
	Weight float64
}

// colorCount is one bin of the sampled color histogram.
type colorCount struct {
	Hex   string
	Col   colorful.Color
	Count int
}

// histogram counts each distinct parseable color, most frequent first. Ties
// are broken by hex so the order does not depend on the input order.
func histogram(colors []string) []colorCount {
	counts := make(map[string]int)
	for _, c := range colors {
		counts[c]++
	}
	bins := make([]colorCount, 0, len(counts))
	for hex, n := range counts {
		col, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		bins = append(bins, colorCount{Hex: hex, Col: col, Count: n})
	}
	slices.SortFunc(bins, func(a, b colorCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Hex, b.Hex)
	})
	return bins
}

// SortPaletteByBrightness orders colors by Lab lightness, darkest first.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, _, _ := a.Lab()
		lb, _, _ := b.Lab()
		return cmp.Compare(la, lb)
	})
}

// ExtractPalette reduces the sampled colors to at most k representatives.
// Both methods only ever see the sampled population, never the whole image.
func ExtractPalette(colors []string, k int, method PaletteMethod) []colorful.Color {
	if k <= 0 {
		return nil
	}
	bins := histogram(colors)
	if len(bins) == 0 {
		return nil
	}
	if len(bins) <= k {
		out := make([]colorful.Color, len(bins))
		for i, b := range bins {
			out[i] = b.Col
		}
		return out
	}

	var cands []paletteCandidate
	if method == PaletteMethodKMeans {
		cands = kmeansCandidates(bins, k)
		if len(cands) == 0 {
			monitoring.Logf("palette warning: kmeans produced no clusters, falling back to dominantcolor")
		}
	}
	if len(cands) == 0 {
		cands = dominantCandidates(bins, k)
	}
	return pickDiverse(cands, k)
}

// dominantCandidates runs dominantcolor over a square swatch image holding
// one pixel per sample. Leftover pixels of the square repeat the samples from
// the start so no background color is introduced.
func dominantCandidates(bins []colorCount, k int) []paletteCandidate {
	var pixels []color.NRGBA
	for _, b := range bins {
		r, g, bl := b.Col.RGB255()
		px := color.NRGBA{R: r, G: g, B: bl, A: 255}
		for range b.Count {
			pixels = append(pixels, px)
		}
	}
	side := int(math.Ceil(math.Sqrt(float64(len(pixels)))))
	swatch := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := range side * side {
		swatch.SetNRGBA(i%side, i/side, pixels[i%len(pixels)])
	}

	found := dominantcolor.FindWeight(swatch, max(24, k*8))
	cands := make([]paletteCandidate, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, paletteCandidate{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	if len(cands) == 0 {
		// The histogram itself is a valid, if coarse, candidate list.
		for _, b := range bins {
			cands = append(cands, paletteCandidate{Col: b.Col, Weight: float64(b.Count)})
		}
	}
	return cands
}

// maxKMeansObservations bounds the clustering input; heavier bins are
// thinned proportionally.
const maxKMeansObservations = 12000

// kmeansCandidates clusters the samples in Lab space and returns one
// candidate per non-empty cluster, weighted by its population.
func kmeansCandidates(bins []colorCount, k int) []paletteCandidate {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	keep := min(1.0, float64(maxKMeansObservations)/float64(total))

	dataset := make(clusters.Observations, 0, min(total, maxKMeansObservations+len(bins)))
	for _, b := range bins {
		l, a, bb := b.Col.Lab()
		n := max(1, int(math.Round(float64(b.Count)*keep)))
		for range n {
			dataset = append(dataset, clusters.Coordinates{l, a, bb})
		}
	}

	workK := min(max(k*4, k+2), len(bins))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil {
		monitoring.Logf("palette warning: kmeans: %v", err)
		return nil
	}

	cands := make([]paletteCandidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Lab(c.Center[0], c.Center[1], c.Center[2]).Clamped()
		cands = append(cands, paletteCandidate{Col: col, Weight: float64(len(c.Observations))})
	}
	return cands
}

// pickDiverse seeds the palette with the heaviest candidate and then keeps
// adding the candidate farthest (in Lab) from everything chosen so far, with
// a bonus for heavier candidates. Candidates identical to a chosen color are
// never picked, so fewer than k colors may come back.
func pickDiverse(cands []paletteCandidate, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	heaviest := slices.MaxFunc(cands, func(a, b paletteCandidate) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
	maxW := max(heaviest.Weight, 1e-6)

	chosen := []colorful.Color{heaviest.Col.Clamped()}
	used := make([]bool, len(cands))
	for len(chosen) < min(k, len(cands)) {
		best, bestScore := -1, 0.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			col := c.Col.Clamped()
			nearest := math.Inf(1)
			for _, p := range chosen {
				nearest = min(nearest, col.DistanceLab(p))
			}
			if nearest == 0 {
				used[i] = true
				continue
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(max(c.Weight, 1e-6)/maxW))
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		chosen = append(chosen, cands[best].Col.Clamped())
	}
	return chosen
}

// QuantizePoints replaces every point color with its nearest palette entry in
// Lab space. The input slice is not modified.
func QuantizePoints(points []NormalizedPoint, palette []colorful.Color) []NormalizedPoint {
	out := slices.Clone(points)
	if len(palette) == 0 {
		return out
	}
	snapped := make(map[string]string)
	for i, p := range out {
		hex, ok := snapped[p.Color]
		if !ok {
			hex = nearestPaletteHex(p.Color, palette)
			snapped[p.Color] = hex
		}
		out[i].Color = hex
	}
	return out
}

func nearestPaletteHex(hex string, palette []colorful.Color) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	best := 0
	bestD := math.MaxFloat64
	for i, p := range palette {
		if d := c.DistanceLab(p); d < bestD {
			bestD = d
			best = i
		}
	}
	return palette[best].Hex()
}
