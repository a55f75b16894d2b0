package braimg

import "errors"

var (
	// ErrInvalidWidth is returned when the character width bound is not a positive integer
	ErrInvalidWidth = errors.New("max character width must be a positive integer")
	// ErrEmptyImage is returned for images with no pixels
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrNoSource is returned when an Image has nothing to load
	ErrNoSource = errors.New("no image source configured")

	// ErrUnaligned means an image does not tile into 2x4 braille cells.
	// It indicates a programming error: normalized images are always aligned.
	ErrUnaligned = errors.New("image dimensions are not multiples of 2x4")
	// ErrPaletteMismatch means an indexed image does not use the expected palette
	ErrPaletteMismatch = errors.New("indexed image palette mismatch")
	// ErrGridMismatch means the glyph and color grids have different dimensions
	ErrGridMismatch = errors.New("braille and color grid dimensions differ")
)
