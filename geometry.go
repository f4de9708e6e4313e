package snapshot

import (
	"fmt"
	"math"
)

// Geometry is the size of the output surface and the translation that
// maps the root box into it.
type Geometry struct {
	Width, Height float64
	// OriginOffsetX and OriginOffsetY are where the root box's top-left
	// corner lands on the surface. They are non-zero when shadows or an
	// outline extend past the root's left or top edge.
	OriginOffsetX, OriginOffsetY float64
}

// Size returns the surface size in whole device pixels.
func (g Geometry) Size() (width, height int) {
	return int(math.Ceil(g.Width)), int(math.Ceil(g.Height))
}

func (g Geometry) String() string {
	return fmt.Sprintf("%gx%g origin (%g,%g)", g.Width, g.Height, g.OriginOffsetX, g.OriginOffsetY)
}

// context returns the paint context that maps boxes of the tree rooted at
// root onto a surface with this geometry.
func (g Geometry) context(root Rect) PaintContext {
	return PaintContext{
		OffsetX: g.OriginOffsetX - root.X,
		OffsetY: g.OriginOffsetY - root.Y,
	}
}

// Measure computes the surface geometry for the tree rooted at root. The
// bounds start at the root rectangle and grow to cover the root's shadows
// and outline. Descendants never grow the surface.
func Measure(root *StyledBox) (Geometry, error) {
	if root == nil {
		return Geometry{}, ErrNilRoot
	}
	if err := root.validate(); err != nil {
		return Geometry{}, err
	}

	r := root.Rect
	startX, startY := r.X, r.Y
	endX, endY := r.Right(), r.Bottom()
	var originX, originY float64

	for _, sh := range root.Shadows {
		startX = math.Min(startX, r.X-sh.Spread+sh.OffsetX)
		startY = math.Min(startY, r.Y-sh.Spread+sh.OffsetY)
		endX = math.Max(endX, r.Right()+sh.Spread+sh.OffsetX)
		endY = math.Max(endY, r.Bottom()+sh.Spread+sh.OffsetY)

		if d := sh.OffsetX - sh.Spread; d < 0 && -d > originX {
			originX = -d
		}
		if d := sh.OffsetY - sh.Spread; d < 0 && -d > originY {
			originY = -d
		}
	}

	width := endX - startX
	height := endY - startY

	// The outline only adds the part not already covered by shadows.
	if ow := root.OutlineWidth; ow > 0 {
		if r.X-ow < startX {
			grow := ow - (r.X - startX)
			width += grow
			originX += grow
		}
		if r.Y-ow < startY {
			grow := ow - (r.Y - startY)
			height += grow
			originY += grow
		}
		if r.Right()+ow > endX {
			width += r.Right() + ow - endX
		}
		if r.Bottom()+ow > endY {
			height += r.Bottom() + ow - endY
		}
	}

	g := Geometry{Width: width, Height: height, OriginOffsetX: originX, OriginOffsetY: originY}
	Logger().Debug("snapshot: measured", "geometry", g.String(), "shadows", len(root.Shadows))
	return g, nil
}
