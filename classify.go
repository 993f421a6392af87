package hotspot

// Threshold is the near-white cutoff shared by both foreground tests.
const Threshold = 245

// IsForeground reports whether a pixel belongs to a drawn shape.
// A pixel with every channel above Threshold is background. Any other pixel is
// foreground when its unweighted mean brightness is strictly below Threshold,
// so light grey line edges still count.
func IsForeground(r, g, b uint8) bool {
	if r > Threshold && g > Threshold && b > Threshold {
		return false
	}
	// (r+g+b)/3 < Threshold without the division.
	return int(r)+int(g)+int(b) < 3*Threshold
}
