package snapshot

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/snapshot/fonts"
)

// Style holds computed CSS property values keyed by property name.
type Style map[string]string

// Get returns the trimmed value of prop, or "" when it is unset.
func (s Style) Get(prop string) string {
	return strings.TrimSpace(s[prop])
}

// TextFragment is a run of text owned directly by a node, with the line
// rectangles the layout engine produced for it.
type TextFragment struct {
	Content string
	Rects   []Rect
}

// Provider supplies geometry and computed styles for a tree of nodes of
// type N, typically the elements of a laid-out document.
type Provider[N any] interface {
	// Rect returns the node's border box in page coordinates.
	Rect(N) (Rect, error)
	// ComputedStyle returns the node's computed style.
	ComputedStyle(N) Style
	// Children returns the node's element children in document order.
	Children(N) []N
	// TextFragments returns the node's own text with its line boxes.
	TextFragments(N) []TextFragment
}

// Build converts the tree rooted at root into StyledBoxes. The provider is
// not consulted after Build returns. A root whose rectangle cannot be
// resolved yields ErrInvalidRoot; descendants without a rectangle are
// skipped.
func Build[N any](p Provider[N], root N) (*StyledBox, error) {
	r, err := p.Rect(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !r.valid() {
		return nil, fmt.Errorf("%w: rect %v", ErrInvalidRoot, r)
	}
	return build(p, root, r), nil
}

func build[N any](p Provider[N], n N, r Rect) *StyledBox {
	st := p.ComputedStyle(n)
	b := boxFromStyle(r, st)

	tf := textTransform(st)
	f := fontFromStyle(st)
	for _, frag := range p.TextFragments(n) {
		b.TextRuns = append(b.TextRuns, TextRun{
			Content: tf(frag.Content),
			Lines:   append([]Rect(nil), frag.Rects...),
			Font:    f,
			Color:   currentColor(st),
		})
	}

	for _, c := range p.Children(n) {
		cr, err := p.Rect(c)
		if err != nil || !cr.valid() {
			Logger().Debug("snapshot: skipping node without geometry", "err", err)
			continue
		}
		b.Children = append(b.Children, build(p, c, cr))
	}
	return b
}

// Capture builds the tree rooted at root and paints it with Snapshot.
func Capture[N any](p Provider[N], root N, opts ...Option) (*Surface, error) {
	b, err := Build(p, root)
	if err != nil {
		return nil, err
	}
	return Snapshot(b, opts...)
}

var sideNames = [4]string{"top", "right", "bottom", "left"}

var cornerNames = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func currentColor(st Style) color.Color {
	if c, err := ParseColor(st.Get("color")); err == nil {
		return c
	}
	return color.Black
}

// styleColor parses prop, resolving currentcolor against the element's
// color. Unset or invalid values yield def.
func styleColor(st Style, prop string, def color.Color) color.Color {
	v := st.Get(prop)
	if v == "" {
		return def
	}
	c, err := ParseColorWith(v, currentColor(st))
	if err != nil {
		Logger().Debug("snapshot: ignoring color", "property", prop, "value", v)
		return def
	}
	return c
}

func styleLength(st Style, prop string) float64 {
	v, ok := ParseLength(st.Get(prop))
	if !ok || v < 0 {
		return 0
	}
	return v
}

// boxFromStyle resolves the paint attributes of one box.
func boxFromStyle(r Rect, st Style) *StyledBox {
	b := &StyledBox{
		Rect:            r,
		BackgroundColor: styleColor(st, "background-color", nil),
		Shadows:         ParseShadowList(st.Get("box-shadow")),
		OutlineWidth:    styleLength(st, "outline-width"),
		OutlineStyle:    ParseBorderStyle(st.Get("outline-style")),
		OutlineColor:    styleColor(st, "outline-color", currentColor(st)),
	}
	if img := st.Get("background-image"); img != "" && !strings.EqualFold(img, "none") {
		b.BackgroundImage = img
	}
	for i, name := range sideNames {
		prefix := "border-" + name
		b.Borders[i] = BorderSide{
			Width: styleLength(st, prefix+"-width"),
			Style: ParseBorderStyle(st.Get(prefix + "-style")),
			Color: styleColor(st, prefix+"-color", currentColor(st)),
		}
	}
	b.Radius = radiusFromStyle(st, r)
	return b
}

// radiusFromStyle reads border-radius, letting the per-corner longhands
// override the shorthand.
func radiusFromStyle(st Style, r Rect) BorderRadius {
	rad := ParseBorderRadius(st.Get("border-radius"), r.Width, r.Height)
	for i, name := range cornerNames {
		v := st.Get("border-" + name + "-radius")
		if v == "" {
			continue
		}
		fields := strings.Fields(v)
		if len(fields) > 2 {
			continue
		}
		h, okH := parseRadius(fields[0], r.Width)
		vert, okV := parseRadius(fields[len(fields)-1], r.Height)
		if !okH || !okV {
			continue
		}
		rad.Horizontal[i], rad.Vertical[i] = h, vert
	}
	return rad
}

// fontFromStyle reads the font shorthand and lets any font longhand
// replace its part of it.
func fontFromStyle(st Style) fonts.Font {
	f := fonts.Default()
	if v := st.Get("font"); v != "" {
		if parsed, err := fonts.Parse(v); err == nil {
			f = parsed
		} else {
			Logger().Debug("snapshot: unusable font", "font", v, "err", err)
		}
	}
	for _, l := range fontLonghands {
		v := st.Get(l.prop)
		if v == "" {
			continue
		}
		parsed, err := fonts.Parse(l.shorthand(v))
		if err != nil {
			Logger().Debug("snapshot: unusable font longhand", "property", l.prop, "value", v, "err", err)
			continue
		}
		l.apply(&f, parsed)
	}
	return f
}

// fontLonghands wraps each longhand into a minimal shorthand and copies
// the parsed part back.
var fontLonghands = []struct {
	prop      string
	shorthand func(string) string
	apply     func(dst *fonts.Font, src fonts.Font)
}{
	{"font-style", func(v string) string { return v + " 1px serif" },
		func(dst *fonts.Font, src fonts.Font) { dst.Style = src.Style }},
	{"font-weight", func(v string) string { return v + " 1px serif" },
		func(dst *fonts.Font, src fonts.Font) { dst.Weight = src.Weight }},
	{"font-size", func(v string) string { return v + " serif" },
		func(dst *fonts.Font, src fonts.Font) { dst.Size = src.Size }},
	{"font-family", func(v string) string { return "1px " + v },
		func(dst *fonts.Font, src fonts.Font) { dst.Families = src.Families }},
}

// textTransform returns the text-transform of st as a function.
func textTransform(st Style) func(string) string {
	tag := language.Und
	if lang := st.Get("lang"); lang != "" {
		if t, err := language.Parse(lang); err == nil {
			tag = t
		}
	}
	var c cases.Caser
	switch strings.ToLower(st.Get("text-transform")) {
	case "uppercase":
		c = cases.Upper(tag)
	case "lowercase":
		c = cases.Lower(tag)
	case "capitalize":
		c = cases.Title(tag, cases.NoLower)
	default:
		return func(s string) string { return s }
	}
	return c.String
}
