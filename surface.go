package snapshot

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/snapshot/fonts"
	"github.com/gogpu/snapshot/internal/blur"
)

// Surface is the raster a snapshot paints into. It implements Canvas on
// top of a gg.Context. Its dimensions never change after creation.
//
// A Surface is owned by one paint pass at a time and is not safe for
// concurrent use.
type Surface struct {
	Width, Height int

	// OriginOffsetX and OriginOffsetY locate the root box's top-left
	// corner on the surface.
	OriginOffsetX, OriginOffsetY float64

	dc     *gg.Context
	fonts  *fonts.Registry
	noBlur bool
}

// NewSurface allocates a surface sized for g.
func NewSurface(g Geometry, opts ...Option) *Surface {
	o := newOptions(opts)
	w, h := g.Size()
	s := &Surface{
		Width:         w,
		Height:        h,
		OriginOffsetX: g.OriginOffsetX,
		OriginOffsetY: g.OriginOffsetY,
		fonts:         o.fonts,
		noBlur:        o.noBlur,
	}
	if w > 0 && h > 0 {
		s.dc = gg.NewContext(w, h)
		if o.background != nil {
			s.dc.ClearWithColor(gg.FromColor(o.background))
		}
	}
	Logger().Info("snapshot: surface allocated", "width", w, "height", h)
	return s
}

// Geometry returns the geometry the surface was created for, in whole
// pixels.
func (s *Surface) Geometry() Geometry {
	return Geometry{
		Width:         float64(s.Width),
		Height:        float64(s.Height),
		OriginOffsetX: s.OriginOffsetX,
		OriginOffsetY: s.OriginOffsetY,
	}
}

// FillRoundedRect implements Canvas.
func (s *Surface) FillRoundedRect(r Rect, radius BorderRadius, c color.Color, blurRadius float64) {
	if s.dc == nil || r.Empty() || !isVisible(c) {
		return
	}
	if blurRadius > 0 && !s.noBlur {
		s.fillBlurred(r, radius, c, blurRadius/2)
		return
	}
	s.dc.SetColor(c)
	roundedRectPath(s.dc, r, radius)
	if err := s.dc.Fill(); err != nil {
		Logger().Warn("snapshot: fill failed", "rect", r.String(), "err", err)
	}
}

// fillBlurred rasterizes the shape into a scratch context, blurs its
// coverage and composites the result tinted with c.
func (s *Surface) fillBlurred(r Rect, radius BorderRadius, c color.Color, sigma float64) {
	pad := blur.Extent(sigma)
	x0 := max(int(math.Floor(r.X))-pad, -pad)
	y0 := max(int(math.Floor(r.Y))-pad, -pad)
	x1 := min(int(math.Ceil(r.Right()))+pad, s.Width+pad)
	y1 := min(int(math.Ceil(r.Bottom()))+pad, s.Height+pad)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return
	}

	scratch := gg.NewContext(w, h)
	defer scratch.Close()
	scratch.SetColor(color.White)
	roundedRectPath(scratch, r.Offset(-float64(x0), -float64(y0)), radius)
	if err := scratch.Fill(); err != nil {
		Logger().Warn("snapshot: shadow fill failed", "rect", r.String(), "err", err)
		return
	}

	plane := coverage(scratch.Image(), w, h)
	blur.Alpha(plane, w, h, sigma)

	tint := color.NRGBAModel.Convert(c).(color.NRGBA)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, a := range plane {
		if a == 0 {
			continue
		}
		p := out.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2] = tint.R, tint.G, tint.B
		p[3] = uint8((uint32(a)*uint32(tint.A) + 127) / 255)
	}
	s.dc.DrawImageEx(gg.ImageBufFromImage(out), gg.DrawImageOptions{
		X:             float64(x0),
		Y:             float64(y0),
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

// coverage extracts the alpha channel of img as a w*h plane.
func coverage(img image.Image, w, h int) []uint8 {
	plane := make([]uint8, w*h)
	if rgba, ok := img.(*image.RGBA); ok {
		for y := range h {
			row := rgba.Pix[y*rgba.Stride:]
			for x := range w {
				plane[y*w+x] = row[x*4+3]
			}
		}
		return plane
	}
	b := img.Bounds()
	for y := range h {
		for x := range w {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			plane[y*w+x] = uint8(a >> 8)
		}
	}
	return plane
}

// StrokeLine implements Canvas.
func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, ls LineStyle) {
	if s.dc == nil || ls.Width <= 0 || !isVisible(ls.Color) {
		return
	}
	s.applyStroke(ls)
	s.dc.MoveTo(x0, y0)
	s.dc.LineTo(x1, y1)
	if err := s.dc.Stroke(); err != nil {
		Logger().Warn("snapshot: stroke failed", "err", err)
	}
}

// StrokeArc implements Canvas.
func (s *Surface) StrokeArc(cx, cy, rx, ry, a0, a1 float64, ls LineStyle) {
	if s.dc == nil || ls.Width <= 0 || rx <= 0 || ry <= 0 || !isVisible(ls.Color) {
		return
	}
	s.applyStroke(ls)
	arcPath(s.dc, cx, cy, rx, ry, a0, a1)
	if err := s.dc.Stroke(); err != nil {
		Logger().Warn("snapshot: arc stroke failed", "err", err)
	}
}

// applyStroke sets the full stroke state. gg keeps paint state between
// calls, so every field is set explicitly.
func (s *Surface) applyStroke(ls LineStyle) {
	st := gg.DefaultStroke().WithWidth(ls.Width).WithCap(gg.LineCapButt)
	if len(ls.Dash) > 0 {
		st = st.WithDashPattern(ls.Dash...)
	}
	s.dc.SetStroke(st)
	s.dc.SetColor(ls.Color)
}

// FillText implements Canvas.
func (s *Surface) FillText(str string, x, y float64, f fonts.Font, c color.Color) {
	if s.dc == nil || str == "" || !isVisible(c) {
		return
	}
	face, err := s.fonts.Face(f)
	if err != nil {
		Logger().Warn("snapshot: font unavailable", "font", f.String(), "err", err)
		return
	}
	s.dc.SetFont(face)
	s.dc.SetColor(c)
	s.dc.DrawString(str, x, y)
}

// MeasureText implements Canvas.
func (s *Surface) MeasureText(str string, f fonts.Font) float64 {
	return s.fonts.Measure(str, f)
}

// Image returns a copy of the surface pixels.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	}
	return s.dc.Image()
}

// EncodePNG writes the surface as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return ErrEmptySurface
	}
	return s.dc.EncodePNG(w)
}

// SavePNG writes the surface as a PNG file.
func (s *Surface) SavePNG(path string) error {
	if s.dc == nil {
		return ErrEmptySurface
	}
	return s.dc.SavePNG(path)
}

// Close releases the surface raster. Close is idempotent.
func (s *Surface) Close() error {
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
