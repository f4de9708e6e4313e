package snapshot

import (
	"fmt"
	"image/color"

	"github.com/gogpu/snapshot/fonts"
)

// StyledBox is a rectangle with the computed paint attributes the
// compositor reproduces. Rect is in absolute page coordinates; children
// paint after their parent in slice order.
type StyledBox struct {
	Rect Rect

	// BackgroundColor is nil when the box has no background fill.
	BackgroundColor color.Color
	// BackgroundImage holds a raw background-image value. Any non-empty
	// value, such as a gradient, is not painted.
	BackgroundImage string

	Borders [4]BorderSide // indexed by Side
	Radius  BorderRadius

	// Shadows are in declaration order; the first one renders on top.
	Shadows []ShadowDescriptor

	OutlineWidth float64
	OutlineStyle BorderStyle
	OutlineColor color.Color

	TextRuns []TextRun
	Children []*StyledBox
}

// TextRun is a piece of text content with the line rectangles its layout
// produced.
type TextRun struct {
	Content string
	Lines   []Rect
	Font    fonts.Font
	Color   color.Color
}

// Border returns the border side s.
func (b *StyledBox) Border(s Side) BorderSide { return b.Borders[s] }

// Walk calls fn for b and its descendants in paint order. Returning false
// from fn skips the children of that box.
func (b *StyledBox) Walk(fn func(*StyledBox) bool) {
	if b == nil || !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// validate checks every box of the tree for a usable rectangle.
func (b *StyledBox) validate() error {
	var err error
	b.Walk(func(n *StyledBox) bool {
		if err != nil {
			return false
		}
		if !n.Rect.valid() {
			err = fmt.Errorf("%w: box %v", ErrInvalidGeometry, n.Rect)
			return false
		}
		return true
	})
	return err
}
