package utils

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog/log"
	"github.com/setanarut/hotspot"
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

// ParsePaletteMethod accepts the names returned by PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch s {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "":
		return PaletteMethodDominantColor, true
	}
	return 0, false
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// ItemPixels packs the overlay pixels of every component owned by key into
// a square image, row by row. The tail of the last row repeats the first
// pixels so the image holds no filler colour. It returns nil when the item
// has no components.
func ItemPixels(seg *hotspot.Segmentation, key string) *image.NRGBA {
	set := seg.LabelsOf(key)
	if len(set) == 0 {
		return nil
	}
	member := make(map[uint32]bool, len(set))
	for _, l := range set {
		member[l] = true
	}
	lm := seg.Labels()
	ov := seg.Overlay()
	var picked []int
	for i, l := range lm.Labels {
		if member[l] {
			picked = append(picked, i*4)
		}
	}
	side := int(math.Ceil(math.Sqrt(float64(len(picked)))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := range side * side {
		src := picked[i%len(picked)]
		copy(img.Pix[i*4:i*4+3], ov.Pix[src:src+3])
		img.Pix[i*4+3] = 255
	}
	return img
}

// ItemPalette extracts up to k representative overlay colours of an item.
func ItemPalette(seg *hotspot.Segmentation, key string, k int, method PaletteMethod) []colorful.Color {
	img := ItemPixels(seg, key)
	if img == nil {
		return nil
	}
	p := ExtractPalette(img, k, method)
	SortPaletteByBrightness(p)
	return p
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := extractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		log.Warn().Msg("kmeans returned an empty palette, falling back to dominantcolor")
	}
	return extractDominantPalette(img, k)
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	luma := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ya, yb := luma(a), luma(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func extractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, weightedColor{Col: col, Weight: c.Weight})
	}
	return selectDiverse(cands, k)
}

func extractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return nil
	}

	// Subsample large items so partitioning stays interactive.
	const maxSamples = 12000
	step := 1
	if n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}
	obs := make(clusters.Observations, 0, min(n, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{
				float64(r) / 0xffff,
				float64(g) / 0xffff,
				float64(bl) / 0xffff,
			})
		}
	}
	if len(obs) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	cands := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		cands = append(cands, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return selectDiverse(cands, k)
}

// minLabDistance is the Lab distance (go-colorful scale, L in [0,1]) below
// which two candidates count as the same colour.
const minLabDistance = 0.01

// selectDiverse greedily picks up to k colours, seeded with the heaviest one
// and then maximising Lab distance to the picked set scaled by weight.
// Candidates closer than minLabDistance to a picked colour are never picked.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	type entry struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	entries := make([]entry, len(cands))
	maxW := 1e-6
	for i, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		entries[i] = entry{col: col, lab: [3]float64{l, a, b}, w: w}
	}

	picked := make([]int, 0, k)
	used := make([]bool, len(entries))
	seed := 0
	for i := range entries {
		if entries[i].w > entries[seed].w {
			seed = i
		}
	}
	picked = append(picked, seed)
	used[seed] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, e := range entries {
			if used[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, p := range picked {
				d0 := e.lab[0] - entries[p].lab[0]
				d1 := e.lab[1] - entries[p].lab[1]
				d2 := e.lab[2] - entries[p].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			if minD2 < minLabDistance*minLabDistance {
				continue
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(e.w/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, p := range picked {
		out[i] = entries[p].col
	}
	return out
}

// PaletteImage renders palette as a row of tileSize×tileSize swatches.
func PaletteImage(palette []colorful.Color, tileSize int) (*image.NRGBA, error) {
	if len(palette) == 0 {
		return nil, errors.New("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		fill := color.NRGBA{R: r, G: g, B: b, A: 255}
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img, nil
}
