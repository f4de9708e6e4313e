package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/gogpu/snapshot"
	"github.com/gogpu/snapshot/fonts"
)

var sides = [4]string{"top", "right", "bottom", "left"}

// inherited lists the properties a node takes from its parent when it does
// not set them itself.
var inherited = []string{
	"color", "font", "font-family", "font-size", "font-style", "font-weight",
	"line-height", "text-transform", "lang",
}

// initial holds the values of inherited properties at the root.
var initial = snapshot.Style{
	"color":       "black",
	"font-style":  "normal",
	"font-weight": "400",
	"font-size":   "16px",
	"font-family": "sans-serif",
}

// parseDeclarations parses an inline style attribute into a style with
// shorthands expanded to the longhands the compositor reads.
func parseDeclarations(text string) (snapshot.Style, error) {
	st := snapshot.Style{}
	text = strings.TrimSpace(text)
	if text == "" {
		return st, nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("scene: style %q: %w", text, err)
	}
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		val := strings.TrimSpace(d.Value)
		if prop == "" {
			continue
		}
		expand(st, prop, val)
	}
	return st, nil
}

// expand stores prop in st, splitting shorthands into longhands.
func expand(st snapshot.Style, prop, val string) {
	switch prop {
	case "border":
		w, s, c := splitLine(val)
		for _, side := range sides {
			setLine(st, "border-"+side, w, s, c)
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		w, s, c := splitLine(val)
		setLine(st, prop, w, s, c)
	case "border-width", "border-style", "border-color":
		kind := strings.TrimPrefix(prop, "border-")
		for i, v := range boxValues(val) {
			st["border-"+sides[i]+"-"+kind] = v
		}
	case "font":
		// Longhands let a descendant override one part and inherit the rest.
		f, err := fonts.Parse(val)
		if err != nil {
			st[prop] = val
			return
		}
		st["font-style"] = f.Style.String()
		st["font-weight"] = strconv.Itoa(int(f.Weight))
		st["font-size"] = strconv.FormatFloat(f.Size, 'f', -1, 64) + "px"
		st["font-family"] = strings.Join(f.Families, ", ")
		if f.LineHeight > 0 {
			st["line-height"] = strconv.FormatFloat(f.LineHeight, 'f', -1, 64) + "px"
		}
	case "outline":
		w, s, c := splitLine(val)
		setLine(st, "outline", w, s, c)
	case "background":
		// Only the color layer of the shorthand is painted.
		for _, tok := range fields(val) {
			if isImage(tok) {
				st["background-image"] = tok
				continue
			}
			if _, err := snapshot.ParseColor(tok); err == nil {
				st["background-color"] = tok
			}
		}
	default:
		st[prop] = val
	}
}

func setLine(st snapshot.Style, prefix, width, style, color string) {
	st[prefix+"-width"] = width
	st[prefix+"-style"] = style
	st[prefix+"-color"] = color
}

// lineWidths maps border width keywords to pixels.
var lineWidths = map[string]string{
	"thin":   "1px",
	"medium": "3px",
	"thick":  "5px",
}

// splitLine splits a border or outline shorthand into width, style and
// color, filling in the CSS initial values for missing parts.
func splitLine(val string) (width, style, color string) {
	width, style, color = "3px", "none", "currentcolor"
	for _, tok := range fields(val) {
		low := strings.ToLower(tok)
		if px, ok := lineWidths[low]; ok {
			width = px
			continue
		}
		if _, ok := snapshot.ParseLength(low); ok {
			width = low
			continue
		}
		if low == "none" || low == "hidden" || snapshot.ParseBorderStyle(low) != snapshot.BorderNone {
			style = low
			continue
		}
		color = tok
	}
	return width, style, color
}

// boxValues expands 1 to 4 values to top, right, bottom, left.
func boxValues(val string) []string {
	f := fields(val)
	for i, v := range f {
		if px, ok := lineWidths[strings.ToLower(v)]; ok {
			f[i] = px
		}
	}
	switch len(f) {
	case 1:
		return []string{f[0], f[0], f[0], f[0]}
	case 2:
		return []string{f[0], f[1], f[0], f[1]}
	case 3:
		return []string{f[0], f[1], f[2], f[1]}
	case 4:
		return f
	}
	return nil
}

// fields splits val at white space outside parentheses.
func fields(val string) []string {
	var (
		out   []string
		depth int
		start = -1
	)
	for i, r := range val {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			if start >= 0 {
				out = append(out, val[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, val[start:])
	}
	return out
}

func isImage(tok string) bool {
	low := strings.ToLower(tok)
	return strings.HasPrefix(low, "url(") || strings.Contains(low, "gradient(")
}
