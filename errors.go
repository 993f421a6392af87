package hotspot

import "errors"

var (
	// ErrDimensionMismatch is returned when the base and overlay images differ in size.
	ErrDimensionMismatch = errors.New("base and overlay dimensions differ")
	// ErrEmptyImage is returned for an image with zero width or height.
	ErrEmptyImage = errors.New("empty image")
	ErrEmptyKey   = errors.New("item key is empty")
	// ErrDuplicateKey is returned when two catalog items share a key.
	ErrDuplicateKey = errors.New("duplicate item key")
	ErrNoAnchors    = errors.New("item has no anchor points")
)
