package snapshot

import "math"

// kappa is the control point distance for approximating a quarter ellipse
// with one cubic Bézier curve.
const kappa = 0.5522847498307936

// pathBuilder is the subset of gg.Context used to describe paths.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// clampRadius scales all radii by the same factor so that adjacent corners
// never overlap, following the CSS corner-overlap rule.
func clampRadius(r Rect, radius BorderRadius) BorderRadius {
	h, v := radius.Horizontal, radius.Vertical
	f := 1.0
	scale := func(length, a, b float64) {
		if sum := a + b; sum > 0 {
			f = math.Min(f, length/sum)
		}
	}
	scale(r.Width, h[CornerTopLeft], h[CornerTopRight])
	scale(r.Width, h[CornerBottomLeft], h[CornerBottomRight])
	scale(r.Height, v[CornerTopLeft], v[CornerBottomLeft])
	scale(r.Height, v[CornerTopRight], v[CornerBottomRight])
	if f >= 1 {
		return radius
	}
	for i := range h {
		h[i] *= f
		v[i] *= f
	}
	return BorderRadius{Horizontal: h, Vertical: v}
}

// roundedRectPath appends a closed rectangle with elliptical corners to p,
// clockwise from the end of the top-left corner.
func roundedRectPath(p pathBuilder, r Rect, radius BorderRadius) {
	radius = clampRadius(r, radius)
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	tl := radius.Corner(CornerTopLeft)
	tr := radius.Corner(CornerTopRight)
	br := radius.Corner(CornerBottomRight)
	bl := radius.Corner(CornerBottomLeft)
	if tl.IsZero() {
		tl = CornerRadius{}
	}
	if tr.IsZero() {
		tr = CornerRadius{}
	}
	if br.IsZero() {
		br = CornerRadius{}
	}
	if bl.IsZero() {
		bl = CornerRadius{}
	}

	p.MoveTo(x0+tl.H, y0)
	p.LineTo(x1-tr.H, y0)
	if !tr.IsZero() {
		p.CubicTo(x1-tr.H+tr.H*kappa, y0, x1, y0+tr.V-tr.V*kappa, x1, y0+tr.V)
	}
	p.LineTo(x1, y1-br.V)
	if !br.IsZero() {
		p.CubicTo(x1, y1-br.V+br.V*kappa, x1-br.H+br.H*kappa, y1, x1-br.H, y1)
	}
	p.LineTo(x0+bl.H, y1)
	if !bl.IsZero() {
		p.CubicTo(x0+bl.H-bl.H*kappa, y1, x0, y1-bl.V+bl.V*kappa, x0, y1-bl.V)
	}
	p.LineTo(x0, y0+tl.V)
	if !tl.IsZero() {
		p.CubicTo(x0, y0+tl.V-tl.V*kappa, x0+tl.H-tl.H*kappa, y0, x0+tl.H, y0)
	}
	p.ClosePath()
}

// arcPath appends an elliptical arc from angle a0 to a1 to p, split into
// segments of at most a quarter turn. Angles grow clockwise on screen.
func arcPath(p pathBuilder, cx, cy, rx, ry, a0, a1 float64) {
	for a1 < a0 {
		a1 += 2 * math.Pi
	}
	n := int(math.Ceil((a1-a0)/(math.Pi/2) - 1e-9))
	if n == 0 {
		return
	}
	step := (a1 - a0) / float64(n)
	p.MoveTo(cx+rx*math.Cos(a0), cy+ry*math.Sin(a0))
	for i := range n {
		s := a0 + float64(i)*step
		e := s + step
		alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3
		cs, ss := math.Cos(s), math.Sin(s)
		ce, se := math.Cos(e), math.Sin(e)
		p.CubicTo(
			cx+rx*(cs-alpha*ss), cy+ry*(ss+alpha*cs),
			cx+rx*(ce+alpha*se), cy+ry*(se-alpha*ce),
			cx+rx*ce, cy+ry*se,
		)
	}
}
