package hotspot

import "math"

// Rect is the on-screen bounding box of the rendered surface, in display units.
type Rect struct {
	Left, Top, Width, Height float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width &&
		y >= r.Top && y < r.Top+r.Height
}

// Locate maps a pointer position in display space onto lm and returns the
// label under it, or 0 for background and positions off the surface.
// The scale is derived from r on every call since the surface may be
// resized or scrolled between events.
func Locate(x, y float64, r Rect, lm LabelMap) uint32 {
	if !(r.Width > 0 && r.Height > 0) {
		return 0
	}
	fx := math.Floor((x - r.Left) * (float64(lm.W) / r.Width))
	fy := math.Floor((y - r.Top) * (float64(lm.H) / r.Height))
	if !(fx >= 0 && fx < float64(lm.W) && fy >= 0 && fy < float64(lm.H)) {
		return 0
	}
	return lm.Labels[labelOffset(lm.W, int(fx), int(fy))]
}
