package hotspot

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diagnostics summarises how well a catalog's anchors cover the segmented
// components. Unmapped is the main signal when tuning anchor points.
type Diagnostics struct {
	Components int
	Unmapped   int
	Items      []ItemDiagnostics
	// Conflicts lists components claimed by more than one item; the last
	// claiming item in catalog order owns them.
	Conflicts []uint32
	Area      AreaStats
}

type ItemDiagnostics struct {
	Key        string
	Components int
	Pixels     int
}

// AreaStats describes component sizes in pixels.
type AreaStats struct {
	Mean, StdDev, Median, Max float64
}

func (s *Segmentation) Diagnostics() Diagnostics {
	areas := s.labels.Areas()
	d := Diagnostics{
		Components: s.labels.Count,
		Unmapped:   s.res.Unmapped(),
		Items:      make([]ItemDiagnostics, len(s.catalog)),
		Conflicts:  s.res.Conflicts(),
		Area:       areaStats(areas[1:]),
	}
	for i, it := range s.catalog {
		set := s.res.Labels(i)
		px := 0
		for _, l := range set {
			px += areas[l]
		}
		d.Items[i] = ItemDiagnostics{Key: it.Key, Components: len(set), Pixels: px}
	}
	return d
}

// Areas returns the pixel count of every label, indexed by label.
// Index 0 counts background pixels.
func (lm LabelMap) Areas() []int {
	areas := make([]int, lm.Count+1)
	for _, l := range lm.Labels {
		areas[l]++
	}
	return areas
}

func areaStats(areas []int) AreaStats {
	if len(areas) == 0 {
		return AreaStats{}
	}
	x := make([]float64, len(areas))
	for i, a := range areas {
		x[i] = float64(a)
	}
	slices.Sort(x)
	return AreaStats{
		Mean:   stat.Mean(x, nil),
		StdDev: stat.PopStdDev(x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		Max:    floats.Max(x),
	}
}
