package hotspot

import "image"

// Compositor recolours one item at a time. It owns a single output buffer
// that every Render call overwrites, so it is not safe for concurrent use.
type Compositor struct {
	seg *Segmentation
	out *image.NRGBA
}

func NewCompositor(seg *Segmentation) *Compositor {
	return &Compositor{
		seg: seg,
		out: image.NewNRGBA(image.Rect(0, 0, seg.Width(), seg.Height())),
	}
}

// Render returns the base image with every pixel of the item's components
// replaced by the overlay colour at full opacity. An empty or unknown key,
// or an item without components, yields the base image unchanged.
// The returned image is reused by the next call.
func (c *Compositor) Render(key string) *image.NRGBA {
	base := c.seg.base
	copy(c.out.Pix, base.Pix)

	mask := c.seg.maskOf(key)
	if mask == nil {
		return c.out
	}
	labels := c.seg.labels.Labels
	w, h := c.seg.Width(), c.seg.Height()
	ov := c.seg.overlay.Pix
	dst := c.out.Pix
	for y := range h {
		for x := range w {
			if !mask[labels[labelOffset(w, x, y)]] {
				continue
			}
			off := pixOffset(c.out, x, y)
			dst[off] = ov[off]
			dst[off+1] = ov[off+1]
			dst[off+2] = ov[off+2]
			dst[off+3] = 255
		}
	}
	return c.out
}
