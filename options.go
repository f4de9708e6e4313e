package snapshot

import (
	"image/color"

	"github.com/gogpu/snapshot/fonts"
)

// Option configures a snapshot or surface.
//
// Example:
//
//	// Default: transparent surface, Go fonts, blurred shadows
//	s, err := snapshot.Snapshot(root)
//
//	// White page behind the boxes, custom fonts
//	s, err := snapshot.Snapshot(root,
//	    snapshot.WithBackground(color.White),
//	    snapshot.WithFonts(reg))
type Option func(*options)

// options holds optional configuration for snapshots.
type options struct {
	fonts      *fonts.Registry
	background color.Color
	noBlur     bool
}

// defaultOptions returns the default snapshot options.
func defaultOptions() options {
	return options{
		fonts:      nil, // Will be set to fonts.DefaultRegistry if nil
		background: nil, // Transparent surface
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fonts == nil {
		o.fonts = fonts.DefaultRegistry()
	}
	return o
}

// WithFonts sets the font registry used to draw and measure text.
func WithFonts(r *fonts.Registry) Option {
	return func(o *options) {
		o.fonts = r
	}
}

// WithBackground fills the surface with c before any box is painted.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithoutBlur paints shadows as sharp fills. Blurring is the most
// expensive part of a snapshot.
func WithoutBlur() Option {
	return func(o *options) {
		o.noBlur = true
	}
}
