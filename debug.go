package hotspot

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	backgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	unmappedColor   = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

// indexColor returns a stable, well separated colour for index i.
func indexColor(i int) color.NRGBA {
	// Golden angle steps keep neighbouring indices apart in hue.
	h := math.Mod(float64(i)*137.50776, 360)
	c := colorful.Hcl(h, 0.55, 0.62).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// LabelImage paints every component of lm in its own colour over white.
func LabelImage(lm LabelMap) *image.NRGBA {
	palette := make([]color.NRGBA, lm.Count+1)
	palette[0] = backgroundColor
	for l := 1; l <= lm.Count; l++ {
		palette[l] = indexColor(l)
	}
	return paint(lm, palette)
}

// OwnershipImage paints components by owning item. Unmapped components are
// grey, which makes anchors that miss their shapes easy to spot.
func (s *Segmentation) OwnershipImage() *image.NRGBA {
	palette := make([]color.NRGBA, s.labels.Count+1)
	palette[0] = backgroundColor
	for l := 1; l <= s.labels.Count; l++ {
		if i, ok := s.res.Owner(uint32(l)); ok {
			palette[l] = indexColor(i + 1)
		} else {
			palette[l] = unmappedColor
		}
	}
	return paint(s.labels, palette)
}

func paint(lm LabelMap, palette []color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, lm.W, lm.H))
	for y := range lm.H {
		for x := range lm.W {
			c := palette[lm.Labels[labelOffset(lm.W, x, y)]]
			off := pixOffset(img, x, y)
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
	return img
}
