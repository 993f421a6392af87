package hotspot

import (
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

type Options struct {
	// Logger receives build timings and diagnostic counts.
	Logger zerolog.Logger
	// StackHint is the initial capacity of the flood fill stack.
	// It grows on demand; a value near the longest expected shape
	// perimeter avoids most reallocations.
	StackHint int
}

// DefaultOptions logs nothing.
func DefaultOptions() Options {
	return Options{
		Logger:    zerolog.Nop(),
		StackHint: 1024,
	}
}

// LabelMap is a dense row-major label array. 0 marks background, 1..Count
// identify 4-connected foreground components.
type LabelMap struct {
	W, H   int
	Labels []uint32 // len = W*H
	Count  int
}

// At returns the label at (x, y), or 0 outside the map.
func (lm LabelMap) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= lm.W || y >= lm.H {
		return 0
	}
	return lm.Labels[labelOffset(lm.W, x, y)]
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func pixOffset(img *image.NRGBA, x, y int) int {
	return y*img.Stride + x*4
}

// BuildLabels segments img into 4-connected foreground components.
// Labels are allocated in row-major order of each component's first pixel,
// so two runs over the same image give identical maps.
func BuildLabels(img *image.NRGBA) LabelMap {
	return buildLabels(img, 0)
}

func buildLabels(img *image.NRGBA, stackHint int) LabelMap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	lm := LabelMap{W: w, H: h, Labels: make([]uint32, w*h)}
	if w == 0 || h == 0 {
		return lm
	}
	if stackHint <= 0 {
		stackHint = 64
	}

	fg := foregroundMask(img)
	dx4 := [4]int{-1, 0, 1, 0}
	dy4 := [4]int{0, -1, 0, 1}
	stack := make([]int, 0, stackHint)
	var label uint32

	for y := range h {
		for x := range w {
			start := labelOffset(w, x, y)
			if !fg[start] || lm.Labels[start] != 0 {
				continue
			}
			label++
			lm.Labels[start] = label
			stack = append(stack[:0], start)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx := cur % w
				cy := cur / w
				for k := range 4 {
					nx, ny := cx+dx4[k], cy+dy4[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := labelOffset(w, nx, ny)
					// Labelled on push so every pixel enters the stack at most once.
					if fg[nIdx] && lm.Labels[nIdx] == 0 {
						lm.Labels[nIdx] = label
						stack = append(stack, nIdx)
					}
				}
			}
		}
	}
	lm.Count = int(label)
	return lm
}

func foregroundMask(img *image.NRGBA) []bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fg := make([]bool, w*h)
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			off := x * 4
			fg[labelOffset(w, x, y)] = IsForeground(row[off], row[off+1], row[off+2])
		}
	}
	return fg
}

// ToNRGBA copies img into a new origin-zero, tightly packed *image.NRGBA.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// NewSegmentation validates the inputs, labels the base image and resolves
// the catalog against it. The result is immutable.
func NewSegmentation(base, overlay image.Image, catalog Catalog, opt Options) (*Segmentation, error) {
	bs, ovs := base.Bounds().Size(), overlay.Bounds().Size()
	if bs.X <= 0 || bs.Y <= 0 {
		return nil, fmt.Errorf("base %dx%d: %w", bs.X, bs.Y, ErrEmptyImage)
	}
	if bs != ovs {
		return nil, fmt.Errorf("base %dx%d, overlay %dx%d: %w", bs.X, bs.Y, ovs.X, ovs.Y, ErrDimensionMismatch)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	log := opt.Logger
	seg := &Segmentation{
		base:    ToNRGBA(base),
		overlay: ToNRGBA(overlay),
		catalog: append(Catalog(nil), catalog...),
		index:   make(map[string]int, len(catalog)),
	}
	for i, it := range seg.catalog {
		seg.index[it.Key] = i
	}

	start := time.Now()
	seg.labels = buildLabels(seg.base, opt.StackHint)
	log.Debug().
		Int("width", bs.X).
		Int("height", bs.Y).
		Int("components", seg.labels.Count).
		Dur("elapsed", time.Since(start)).
		Msg("labels built")

	seg.res = Resolve(seg.labels, seg.catalog)
	seg.masks = make([][]bool, len(seg.catalog))
	for i := range seg.catalog {
		seg.masks[i] = seg.res.mask(i, seg.labels.Count)
	}

	d := seg.Diagnostics()
	log.Info().
		Int("components", d.Components).
		Int("unmapped", d.Unmapped).
		Int("items", len(d.Items)).
		Int("conflicts", len(d.Conflicts)).
		Msg("segmentation ready")
	for _, it := range d.Items {
		ev := log.Debug()
		if it.Components == 0 {
			ev = log.Warn()
		}
		ev.Str("item", it.Key).Int("components", it.Components).Int("pixels", it.Pixels).Msg("item resolved")
	}
	return seg, nil
}
