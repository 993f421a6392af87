package hotspot

import (
	"fmt"
	"math"
	"slices"
)

// Anchor is a sample point in normalised image coordinates, X and Y in [0,1].
type Anchor struct {
	X, Y float64
}

// Pixel converts a to pixel coordinates of a w×h image. The result may lie
// outside the image when a is outside [0,1).
func (a Anchor) Pixel(w, h int) (int, int) {
	return int(math.Floor(a.X * float64(w))), int(math.Floor(a.Y * float64(h)))
}

type Item struct {
	Key     string
	Title   string
	Message string
	Anchors []Anchor
}

// Catalog is the ordered list of items. Order matters: when two items
// claim the same component the later one owns it.
type Catalog []Item

func (c Catalog) Validate() error {
	seen := make(map[string]int, len(c))
	for i, it := range c {
		if it.Key == "" {
			return fmt.Errorf("catalog item %d: %w", i, ErrEmptyKey)
		}
		if j, ok := seen[it.Key]; ok {
			return fmt.Errorf("catalog items %d and %d %q: %w", j, i, it.Key, ErrDuplicateKey)
		}
		seen[it.Key] = i
		if len(it.Anchors) == 0 {
			return fmt.Errorf("catalog item %q: %w", it.Key, ErrNoAnchors)
		}
	}
	return nil
}

// Resolution holds the two lookup tables produced by Resolve.
type Resolution struct {
	owner  []int      // label -> catalog index, -1 when unmapped
	sets   [][]uint32 // catalog index -> labels in anchor order
	claims []uint8    // label -> number of items sampling it, saturating
}

// Resolve samples lm at every anchor of every item and groups the hit
// components by item. Anchors that fall outside the map or on background
// contribute nothing.
func Resolve(lm LabelMap, catalog Catalog) Resolution {
	res := Resolution{
		owner:  make([]int, lm.Count+1),
		sets:   make([][]uint32, len(catalog)),
		claims: make([]uint8, lm.Count+1),
	}
	for i := range res.owner {
		res.owner[i] = -1
	}
	for i, it := range catalog {
		var set []uint32
		for _, a := range it.Anchors {
			x, y := a.Pixel(lm.W, lm.H)
			l := lm.At(x, y)
			if l == 0 || slices.Contains(set, l) {
				continue
			}
			set = append(set, l)
		}
		res.sets[i] = set
		for _, l := range set {
			res.owner[l] = i
			if res.claims[l] < math.MaxUint8 {
				res.claims[l]++
			}
		}
	}
	return res
}

// Owner returns the catalog index owning label l.
func (r Resolution) Owner(l uint32) (int, bool) {
	if l == 0 || int(l) >= len(r.owner) {
		return -1, false
	}
	i := r.owner[l]
	return i, i >= 0
}

// Labels returns the component set of the i-th catalog item.
func (r Resolution) Labels(i int) []uint32 {
	if i < 0 || i >= len(r.sets) {
		return nil
	}
	return r.sets[i]
}

// Unmapped counts components owned by no item.
func (r Resolution) Unmapped() int {
	n := 0
	for l := 1; l < len(r.owner); l++ {
		if r.owner[l] < 0 {
			n++
		}
	}
	return n
}

// Conflicts lists labels sampled by more than one item, ascending.
func (r Resolution) Conflicts() []uint32 {
	var out []uint32
	for l := 1; l < len(r.claims); l++ {
		if r.claims[l] > 1 {
			out = append(out, uint32(l))
		}
	}
	return out
}

func (r Resolution) mask(i, count int) []bool {
	set := r.Labels(i)
	if len(set) == 0 {
		return nil
	}
	m := make([]bool, count+1)
	for _, l := range set {
		m[l] = true
	}
	return m
}
