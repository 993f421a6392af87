package hotspot

import (
	"image"
	"image/color"
	"testing"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 200, G: 10, B: 10, A: 255}
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, c)
	return img
}

// fillRect paints the half-open rectangle [x0,x1)×[y0,y1).
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fixture is a 10×4 drawing with three components:
//
//	label 1: square x 1..2, y 1..2   item "a"
//	label 2: square x 6..7, y 1..2   item "b"
//	label 3: single pixel (4, 3)      unmapped
//
// The overlay is solid red.
func fixture(t *testing.T) *Segmentation {
	t.Helper()
	base := filled(10, 4, white)
	fillRect(base, 1, 1, 3, 3, black)
	fillRect(base, 6, 1, 8, 3, black)
	fillRect(base, 4, 3, 5, 4, black)
	overlay := filled(10, 4, red)
	cat := Catalog{
		{Key: "a", Title: "Alpha", Message: "first square", Anchors: []Anchor{{X: 0.15, Y: 0.375}}},
		{Key: "b", Title: "Beta", Message: "second square", Anchors: []Anchor{{X: 0.65, Y: 0.375}}},
		{Key: "ghost", Title: "Ghost", Message: "anchored on background", Anchors: []Anchor{{X: 0.05, Y: 0.05}}},
	}
	seg, err := NewSegmentation(base, overlay, cat, DefaultOptions())
	if err != nil {
		t.Fatalf("NewSegmentation: %v", err)
	}
	return seg
}

// unitRect maps display units one to one onto the fixture's pixels.
var unitRect = Rect{Width: 10, Height: 4}
