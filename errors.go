package snapshot

import "errors"

// Sentinel errors for the snapshot package.
var (
	// ErrNilRoot is returned when a snapshot is requested without a root box.
	ErrNilRoot = errors.New("snapshot: nil root box")

	// ErrInvalidRoot is returned when the style/geometry provider cannot
	// resolve the root node.
	ErrInvalidRoot = errors.New("snapshot: invalid root node")

	// ErrInvalidGeometry is returned when a box has a negative or non-finite
	// size.
	ErrInvalidGeometry = errors.New("snapshot: invalid box geometry")

	// ErrNotSupported marks style features the compositor deliberately does
	// not paint, such as gradients, background images and outline strokes.
	ErrNotSupported = errors.New("snapshot: not supported")

	// ErrEmptySurface is returned when encoding a surface that has no
	// pixels, either because its geometry is empty or it was closed.
	ErrEmptySurface = errors.New("snapshot: empty surface")

	// ErrInvalidColor is returned by ParseColor for unrecognized colors.
	ErrInvalidColor = errors.New("snapshot: invalid color")
)
