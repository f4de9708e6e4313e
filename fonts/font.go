package fonts

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is the CSS font-style.
type Style uint8

const (
	// StyleNormal is an upright face.
	StyleNormal Style = iota
	// StyleItalic is a true italic face.
	StyleItalic
	// StyleOblique is a slanted face; resolved like italic.
	StyleOblique
)

// String returns the CSS keyword for the style.
func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Weight is the numeric CSS font-weight (100-900).
type Weight int

// Common weights.
const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// IsBold reports whether the weight should use a bold face.
func (w Weight) IsBold() bool { return w >= 600 }

// DefaultSize is the CSS initial font size in pixels.
const DefaultSize = 16

// Font is a resolved CSS font description. Sizes are in device pixels.
type Font struct {
	Style      Style
	Weight     Weight
	Size       float64
	LineHeight float64 // 0 means "normal"
	Families   []string
}

// Default returns the CSS initial font: 16px sans-serif.
func Default() Font {
	return Font{
		Weight:   WeightNormal,
		Size:     DefaultSize,
		Families: []string{"sans-serif"},
	}
}

// String formats the font as a CSS shorthand.
func (f Font) String() string {
	var b strings.Builder
	if f.Style != StyleNormal {
		b.WriteString(f.Style.String())
		b.WriteByte(' ')
	}
	w := f.Weight
	if w == 0 {
		w = WeightNormal
	}
	b.WriteString(strconv.Itoa(int(w)))
	b.WriteByte(' ')
	b.WriteString(formatPx(f.Size))
	if f.LineHeight > 0 {
		b.WriteString(" / ")
		b.WriteString(formatPx(f.LineHeight))
	}
	for i, fam := range f.Families {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		if strings.ContainsAny(fam, " \t") {
			b.WriteString(strconv.Quote(fam))
		} else {
			b.WriteString(fam)
		}
	}
	return b.String()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// namedSizes maps absolute-size keywords to pixels.
var namedSizes = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// Parse parses a CSS font shorthand such as
// `italic bold 12px/30px Georgia, serif`. Relative units (em, rem, %)
// resolve against the 16px initial size.
func Parse(s string) (Font, error) {
	f := Font{Weight: WeightNormal}
	fields := strings.Fields(strings.TrimSpace(s))

	i := 0
	sized := false
	for ; i < len(fields); i++ {
		tok := strings.ToLower(fields[i])

		// Size, optionally glued to the line height: 16px/24px.
		sizeTok, lineTok, hasSlash := strings.Cut(tok, "/")
		if size, ok := parseSize(sizeTok); ok {
			f.Size = size
			sized = true
			switch {
			case hasSlash && lineTok != "":
				f.LineHeight = parseLineHeight(lineTok, size)
			case hasSlash || (i+1 < len(fields) && strings.HasPrefix(fields[i+1], "/")):
				// "16px / 24px" or "16px /24px"
				if !hasSlash {
					i++
					lineTok = strings.TrimPrefix(fields[i], "/")
				}
				if lineTok == "" && i+1 < len(fields) {
					i++
					lineTok = fields[i]
				}
				f.LineHeight = parseLineHeight(strings.ToLower(lineTok), size)
			}
			i++
			break
		}

		switch tok {
		case "normal", "small-caps", "ultra-condensed", "extra-condensed", "condensed",
			"semi-condensed", "semi-expanded", "expanded", "extra-expanded", "ultra-expanded":
			// Variant and stretch do not select a different face here.
		case "italic":
			f.Style = StyleItalic
		case "oblique":
			f.Style = StyleOblique
		case "bold", "bolder":
			f.Weight = WeightBold
		case "lighter":
			f.Weight = 300
		default:
			n, err := strconv.Atoi(tok)
			if err != nil || n < 1 || n > 1000 {
				return Font{}, fmt.Errorf("%w: unexpected token %q", ErrInvalidFont, fields[i])
			}
			f.Weight = Weight(n)
		}
	}
	if !sized {
		return Font{}, fmt.Errorf("%w: missing size in %q", ErrInvalidFont, s)
	}

	f.Families = parseFamilies(strings.Join(fields[i:], " "))
	if len(f.Families) == 0 {
		return Font{}, fmt.Errorf("%w: missing family in %q", ErrInvalidFont, s)
	}
	return f, nil
}

func parseSize(tok string) (float64, bool) {
	if v, ok := namedSizes[tok]; ok {
		return v, true
	}
	unit := ""
	for _, u := range []string{"px", "pt", "rem", "em", "%"} {
		if strings.HasSuffix(tok, u) {
			unit = u
			break
		}
	}
	if unit == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(tok, unit), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	switch unit {
	case "pt":
		v *= 4.0 / 3.0
	case "em", "rem":
		v *= DefaultSize
	case "%":
		v *= DefaultSize / 100.0
	}
	return v, true
}

func parseLineHeight(tok string, size float64) float64 {
	if tok == "normal" {
		return 0
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return v * size
	}
	if strings.HasSuffix(tok, "%") {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64); err == nil {
			return v * size / 100
		}
		return 0
	}
	v, _ := parseSize(tok)
	return v
}

func parseFamilies(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
