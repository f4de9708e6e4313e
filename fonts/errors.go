package fonts

import "errors"

// Sentinel errors for the fonts package.
var (
	// ErrInvalidFont is returned when a font shorthand has no size or family.
	ErrInvalidFont = errors.New("fonts: invalid font shorthand")

	// ErrUnknownFamily is returned when no registered family, including the
	// fallback family, can serve a font.
	ErrUnknownFamily = errors.New("fonts: unknown font family")
)
