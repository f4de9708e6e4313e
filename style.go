package snapshot

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// BorderStyle is the line style of a border side or outline.
type BorderStyle uint8

// Border styles. Styles without a dedicated rendering (double, groove,
// ridge, inset, outset) paint as BorderSolid.
const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderDashed
	BorderDotted
)

func (s BorderStyle) String() string {
	switch s {
	case BorderSolid:
		return "solid"
	case BorderDashed:
		return "dashed"
	case BorderDotted:
		return "dotted"
	default:
		return "none"
	}
}

// ParseBorderStyle parses a CSS border-style keyword. Unknown keywords
// are treated as none.
func ParseBorderStyle(raw string) BorderStyle {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "solid", "double", "groove", "ridge", "inset", "outset":
		return BorderSolid
	case "dashed":
		return BorderDashed
	case "dotted":
		return BorderDotted
	default:
		return BorderNone
	}
}

// Side indexes the four sides of a box.
type Side int

// Sides in CSS order.
const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return "side(" + strconv.Itoa(int(s)) + ")"
}

// BorderSide describes one side of a box border.
type BorderSide struct {
	Width float64
	Color color.Color
	Style BorderStyle
}

// Visible reports whether the side paints anything.
func (b BorderSide) Visible() bool {
	return b.Width > 0 && b.Style != BorderNone && isVisible(b.Color)
}

func sameSide(a, b BorderSide) bool {
	if a.Width != b.Width || a.Style != b.Style {
		return false
	}
	if a.Color == nil || b.Color == nil {
		return a.Color == b.Color
	}
	ar, ag, ab, aa := a.Color.RGBA()
	br, bg, bb, ba := b.Color.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// ShadowDescriptor is one entry of a box-shadow list.
type ShadowDescriptor struct {
	Color   color.Color
	OffsetX float64
	OffsetY float64
	Blur    float64
	Spread  float64
}

// Corner indexes the corners of a box, clockwise from top-left.
type Corner int

// Corners in CSS border-radius order.
const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// CornerRadius is the elliptical radius of a single corner.
type CornerRadius struct {
	H, V float64
}

// IsZero reports whether the corner is square.
func (c CornerRadius) IsZero() bool { return c.H <= 0 || c.V <= 0 }

// BorderRadius holds the horizontal and vertical radii of the four
// corners, ordered top-left, top-right, bottom-right, bottom-left.
type BorderRadius struct {
	Horizontal [4]float64
	Vertical   [4]float64
}

// UniformRadius returns a circular radius r on every corner.
func UniformRadius(r float64) BorderRadius {
	return BorderRadius{Horizontal: [4]float64{r, r, r, r}, Vertical: [4]float64{r, r, r, r}}
}

// Corner returns the radius of corner c.
func (b BorderRadius) Corner(c Corner) CornerRadius {
	return CornerRadius{H: b.Horizontal[c], V: b.Vertical[c]}
}

// IsZero reports whether every corner is square.
func (b BorderRadius) IsZero() bool {
	for c := CornerTopLeft; c <= CornerBottomLeft; c++ {
		if !b.Corner(c).IsZero() {
			return false
		}
	}
	return true
}

// String formats the radius as a CSS border-radius value with all eight
// components, e.g. "10px 5px 10px 5px / 10px 5px 10px 5px".
func (b BorderRadius) String() string {
	var sb strings.Builder
	for i, v := range b.Horizontal {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatPx(v))
	}
	sb.WriteString(" /")
	for _, v := range b.Vertical {
		sb.WriteByte(' ')
		sb.WriteString(formatPx(v))
	}
	return sb.String()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParseLength parses a CSS length in px. A unitless zero is accepted.
func ParseLength(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if num, ok := strings.CutSuffix(s, "px"); ok {
		v, err := strconv.ParseFloat(num, 64)
		return v, err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != 0 {
		return 0, false
	}
	return 0, true
}

// componentLists tokenizes a CSS value into comma-separated lists of
// component values. Function calls such as rgba(0, 0, 0, .5) stay a
// single component, so commas inside them never split a list.
func componentLists(raw string) ([][]string, error) {
	l := css.NewLexer(parse.NewInputString(raw))
	var (
		lists [][]string
		cur   []string
		comp  strings.Builder
		depth int
	)
	flush := func() {
		if comp.Len() > 0 {
			cur = append(cur, comp.String())
			comp.Reset()
		}
	}
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, err
			}
			if depth != 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", raw)
			}
			flush()
			if len(cur) > 0 {
				lists = append(lists, cur)
			}
			return lists, nil
		case css.CommentToken:
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", raw)
			}
		}
		if depth == 0 && tt != css.RightParenthesisToken {
			switch tt {
			case css.WhitespaceToken:
				flush()
				continue
			case css.CommaToken:
				flush()
				lists = append(lists, cur)
				cur = nil
				continue
			}
		}
		comp.Write(data)
	}
}

// ParseShadowList parses a computed box-shadow value. Entries have the form
// "<color> <x>px <y>px <blur>px [<spread>px]"; the color may also come last.
// "none", empty input and malformed entries yield no descriptors. Inset
// shadows are not painted and are dropped.
func ParseShadowList(raw string) []ShadowDescriptor {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "none") {
		return nil
	}
	lists, err := componentLists(s)
	if err != nil {
		Logger().Debug("snapshot: malformed box-shadow", "value", raw, "err", err)
		return nil
	}
	var shadows []ShadowDescriptor
	for _, parts := range lists {
		sh, ok := parseShadow(parts)
		if !ok {
			Logger().Debug("snapshot: dropping box-shadow entry", "entry", strings.Join(parts, " "))
			continue
		}
		shadows = append(shadows, sh)
	}
	return shadows
}

func parseShadow(parts []string) (ShadowDescriptor, bool) {
	var sh ShadowDescriptor
	if len(parts) < 4 || len(parts) > 5 {
		return sh, false
	}
	var lengths []string
	if c, err := ParseColor(parts[0]); err == nil {
		sh.Color = c
		lengths = parts[1:]
	} else if c, err := ParseColor(parts[len(parts)-1]); err == nil {
		sh.Color = c
		lengths = parts[:len(parts)-1]
	} else {
		return sh, false
	}
	if len(lengths) < 3 {
		return sh, false
	}
	vals := make([]float64, len(lengths))
	for i, p := range lengths {
		v, ok := ParseLength(p)
		if !ok {
			return sh, false
		}
		vals[i] = v
	}
	sh.OffsetX, sh.OffsetY, sh.Blur = vals[0], vals[1], vals[2]
	if sh.Blur < 0 {
		return sh, false
	}
	if len(vals) == 4 {
		sh.Spread = vals[3]
	}
	return sh, true
}

// ParseBorderRadius parses a computed border-radius value against a box of
// the given size. Percentages resolve against the width for horizontal
// radii and the height for vertical radii. Without a "/" the vertical
// radii equal the horizontal ones. Any unparseable value yields a zero
// radius.
func ParseBorderRadius(raw string, boxWidth, boxHeight float64) BorderRadius {
	s := strings.TrimSpace(raw)
	if s == "" {
		return BorderRadius{}
	}
	hPart, vPart, hasV := strings.Cut(s, "/")
	h, ok := parseRadiusValues(hPart, boxWidth)
	if !ok {
		return BorderRadius{}
	}
	v := h
	if hasV {
		if v, ok = parseRadiusValues(vPart, boxHeight); !ok {
			return BorderRadius{}
		}
	} else {
		// Percentages are relative to the axis they apply to.
		v, _ = parseRadiusValues(hPart, boxHeight)
	}
	return BorderRadius{Horizontal: h, Vertical: v}
}

// parseRadiusValues expands 1 to 4 radius values with the CSS rules.
func parseRadiusValues(part string, ref float64) ([4]float64, bool) {
	var out [4]float64
	fields := strings.Fields(part)
	if len(fields) == 0 || len(fields) > 4 {
		return out, false
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, ok := parseRadius(f, ref)
		if !ok {
			return out, false
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		out = [4]float64{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		out = [4]float64{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		out = [4]float64{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		out = [4]float64{vals[0], vals[1], vals[2], vals[3]}
	}
	return out, true
}

func parseRadius(tok string, ref float64) (float64, bool) {
	var v float64
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		p, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		v = p / 100 * ref
	} else {
		var ok bool
		if v, ok = ParseLength(tok); !ok {
			return 0, false
		}
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}
