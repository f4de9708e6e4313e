package snapshot

import (
	"image/color"

	"github.com/gogpu/snapshot/fonts"
)

// Canvas is the set of drawing primitives the paint engine issues.
// Coordinates are in surface pixels. Surface rasterizes them; Recorder
// keeps them for inspection.
type Canvas interface {
	// FillRoundedRect fills r with per-corner elliptical radii. A positive
	// blur applies a gaussian blur with sigma blur/2 to the fill.
	FillRoundedRect(r Rect, radius BorderRadius, c color.Color, blur float64)

	// StrokeLine strokes a straight segment with butt caps.
	StrokeLine(x0, y0, x1, y1 float64, s LineStyle)

	// StrokeArc strokes the elliptical arc centered at (cx, cy) from angle
	// a0 to a1 in radians, clockwise in screen space.
	StrokeArc(cx, cy, rx, ry, a0, a1 float64, s LineStyle)

	// FillText draws s with its baseline starting at (x, y).
	FillText(s string, x, y float64, f fonts.Font, c color.Color)

	// MeasureText returns the advance width of s.
	MeasureText(s string, f fonts.Font) float64
}

// LineStyle describes a stroke.
type LineStyle struct {
	Width float64
	Color color.Color
	// Dash alternates dash and gap lengths. Nil means a solid line.
	Dash []float64
}

// PaintContext translates box coordinates into surface coordinates. It is
// passed by value down the tree.
type PaintContext struct {
	OffsetX, OffsetY float64
}

// Point maps a box-space point to surface space.
func (pc PaintContext) Point(x, y float64) (float64, float64) {
	return x + pc.OffsetX, y + pc.OffsetY
}

// Rect maps a box-space rectangle to surface space.
func (pc PaintContext) Rect(r Rect) Rect {
	return r.Offset(pc.OffsetX, pc.OffsetY)
}
