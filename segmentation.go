package hotspot

import "image"

// Segmentation is the immutable result of labelling an image pair and
// resolving a catalog against it. It is safe for concurrent reads.
type Segmentation struct {
	base    *image.NRGBA
	overlay *image.NRGBA
	labels  LabelMap
	catalog Catalog
	index   map[string]int
	res     Resolution
	masks   [][]bool // catalog index -> label membership, nil when empty
}

func (s *Segmentation) Width() int  { return s.labels.W }
func (s *Segmentation) Height() int { return s.labels.H }

// Labels returns the label map. Callers must not modify it.
func (s *Segmentation) Labels() LabelMap { return s.labels }

func (s *Segmentation) Base() *image.NRGBA    { return s.base }
func (s *Segmentation) Overlay() *image.NRGBA { return s.overlay }

// Catalog returns the validated catalog. Callers must not modify it.
func (s *Segmentation) Catalog() Catalog { return s.catalog }

// Item looks up a catalog item by key.
func (s *Segmentation) Item(key string) (Item, bool) {
	i, ok := s.index[key]
	if !ok {
		return Item{}, false
	}
	return s.catalog[i], true
}

// LabelsOf returns the components resolved for key.
// Callers must not modify the returned slice.
func (s *Segmentation) LabelsOf(key string) []uint32 {
	i, ok := s.index[key]
	if !ok {
		return nil
	}
	return s.res.Labels(i)
}

// ItemForLabel returns the item owning label l.
func (s *Segmentation) ItemForLabel(l uint32) (Item, bool) {
	i, ok := s.res.Owner(l)
	if !ok {
		return Item{}, false
	}
	return s.catalog[i], true
}

// ItemAt resolves a display-space pointer position to an item.
func (s *Segmentation) ItemAt(x, y float64, r Rect) (Item, bool) {
	return s.ItemForLabel(Locate(x, y, r, s.labels))
}

func (s *Segmentation) maskOf(key string) []bool {
	i, ok := s.index[key]
	if !ok {
		return nil
	}
	return s.masks[i]
}
