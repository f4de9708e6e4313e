package snapshot

import (
	"fmt"
	"math"

	"github.com/gogpu/snapshot/fonts"
)

// painter walks a StyledBox tree and issues Canvas calls in paint order:
// shadows, background, borders, text, then children depth-first.
type painter struct {
	dst Canvas
}

// Render paints the tree rooted at root onto dst using geometry g, which
// normally comes from Measure. Render validates the tree before issuing
// any drawing call.
func Render(root *StyledBox, dst Canvas, g Geometry) error {
	if root == nil {
		return ErrNilRoot
	}
	if err := root.validate(); err != nil {
		return err
	}
	p := painter{dst: dst}
	p.paintBox(root, g.context(root.Rect))
	return nil
}

func (p painter) paintBox(b *StyledBox, pc PaintContext) {
	r := pc.Rect(b.Rect)
	p.paintShadows(b, r)
	p.paintBackground(b, r)
	p.paintBorders(b, r)
	p.paintOutline(b, r)
	p.paintText(b, pc)
	for _, c := range b.Children {
		p.paintBox(c, pc)
	}
}

// paintShadows fills the shadows back to front so that the first declared
// shadow ends up on top.
func (p painter) paintShadows(b *StyledBox, r Rect) {
	for i := len(b.Shadows) - 1; i >= 0; i-- {
		sh := b.Shadows[i]
		if !isVisible(sh.Color) {
			continue
		}
		sr := r.Outset(sh.Spread).Offset(sh.OffsetX, sh.OffsetY)
		if sr.Empty() {
			continue
		}
		p.dst.FillRoundedRect(sr, b.Radius, sh.Color, sh.Blur)
	}
}

func (p painter) paintBackground(b *StyledBox, r Rect) {
	if b.BackgroundImage != "" {
		Logger().Debug("snapshot: background image skipped",
			"image", b.BackgroundImage, "err", fmt.Errorf("%w: background-image", ErrNotSupported))
		return
	}
	if !isVisible(b.BackgroundColor) {
		return
	}
	p.dst.FillRoundedRect(r, b.Radius, b.BackgroundColor, 0)
}

// borderLineStyle returns the stroke for a visible side.
func borderLineStyle(side BorderSide) LineStyle {
	ls := LineStyle{Width: side.Width, Color: side.Color}
	if side.Style == BorderDashed || side.Style == BorderDotted {
		ls.Dash = []float64{2 * side.Width, side.Width}
	}
	return ls
}

// paintBorders strokes each side along its center line. The segments stop
// where the adjacent corners' radii begin.
func (p painter) paintBorders(b *StyledBox, r Rect) {
	rad := clampRadius(r, b.Radius)
	tl := rad.Corner(CornerTopLeft)
	tr := rad.Corner(CornerTopRight)
	br := rad.Corner(CornerBottomRight)
	bl := rad.Corner(CornerBottomLeft)

	// Segments run clockwise. With clamped radii adjacent corners never
	// overlap, so a segment is at worst a point.
	type segment struct{ x0, y0, x1, y1 float64 }
	var segs [4]segment
	if c := b.Borders[SideTop].Width / 2; c > 0 {
		segs[SideTop] = segment{r.X + tl.H, r.Y + c, r.Right() - tr.H, r.Y + c}
	}
	if c := b.Borders[SideRight].Width / 2; c > 0 {
		segs[SideRight] = segment{r.Right() - c, r.Y + tr.V, r.Right() - c, r.Bottom() - br.V}
	}
	if c := b.Borders[SideBottom].Width / 2; c > 0 {
		segs[SideBottom] = segment{r.Right() - br.H, r.Bottom() - c, r.X + bl.H, r.Bottom() - c}
	}
	if c := b.Borders[SideLeft].Width / 2; c > 0 {
		segs[SideLeft] = segment{r.X + c, r.Bottom() - bl.V, r.X + c, r.Y + tl.V}
	}

	for side := SideTop; side <= SideLeft; side++ {
		s := b.Borders[side]
		if !s.Visible() {
			continue
		}
		seg := segs[side]
		p.dst.StrokeLine(seg.x0, seg.y0, seg.x1, seg.y1, borderLineStyle(s))
	}
	p.paintCorners(b, r, rad)
}

// corners lists, for each corner, the sides that meet there and the arc
// angles, clockwise on screen.
var corners = [4]struct {
	a, b   Side
	a0, a1 float64
}{
	CornerTopLeft:     {SideLeft, SideTop, math.Pi, 1.5 * math.Pi},
	CornerTopRight:    {SideTop, SideRight, 1.5 * math.Pi, 2 * math.Pi},
	CornerBottomRight: {SideRight, SideBottom, 0, 0.5 * math.Pi},
	CornerBottomLeft:  {SideBottom, SideLeft, 0.5 * math.Pi, math.Pi},
}

// paintCorners strokes the rounded corner arcs whose adjacent sides share
// the same visible style. The arc runs through the middle of the border.
// radius is the clamped box radius.
func (p painter) paintCorners(b *StyledBox, r Rect, radius BorderRadius) {
	for c := CornerTopLeft; c <= CornerBottomLeft; c++ {
		rad := radius.Corner(c)
		if rad.IsZero() {
			continue
		}
		k := corners[c]
		sa, sb := b.Borders[k.a], b.Borders[k.b]
		if !sa.Visible() || !sameSide(sa, sb) {
			continue
		}
		half := sa.Width / 2
		var cx, cy float64
		switch c {
		case CornerTopLeft:
			cx, cy = r.X+rad.H, r.Y+rad.V
		case CornerTopRight:
			cx, cy = r.Right()-rad.H, r.Y+rad.V
		case CornerBottomRight:
			cx, cy = r.Right()-rad.H, r.Bottom()-rad.V
		case CornerBottomLeft:
			cx, cy = r.X+rad.H, r.Bottom()-rad.V
		}
		rx, ry := rad.H-half, rad.V-half
		if rx <= 0 || ry <= 0 {
			continue
		}
		p.dst.StrokeArc(cx, cy, rx, ry, k.a0, k.a1, borderLineStyle(sa))
	}
}

// paintOutline only logs: outlines size the surface but are not drawn.
func (p painter) paintOutline(b *StyledBox, r Rect) {
	if b.OutlineWidth <= 0 || b.OutlineStyle == BorderNone || !isVisible(b.OutlineColor) {
		return
	}
	Logger().Debug("snapshot: outline skipped", "rect", r.String(),
		"err", fmt.Errorf("%w: outline", ErrNotSupported))
}

// paintText packs each run into its line rectangles and draws every line
// with its baseline one font size below the line top.
func (p painter) paintText(b *StyledBox, pc PaintContext) {
	for _, run := range b.TextRuns {
		if run.Content == "" || len(run.Lines) == 0 || !isVisible(run.Color) {
			continue
		}
		f := run.Font
		if f.Size <= 0 {
			f.Size = fonts.DefaultSize
		}
		measure := func(s string) float64 { return p.dst.MeasureText(s, f) }
		for _, line := range PackLines(run.Content, run.Lines, measure) {
			x, y := pc.Point(line.Rect.X, line.Rect.Y+f.Size)
			p.dst.FillText(line.Text, x, y, f, run.Color)
		}
	}
}
