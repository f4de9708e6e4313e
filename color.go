package snapshot

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Transparent is the fully transparent color.
var Transparent = color.NRGBA{}

// ParseColor parses a CSS color: hex notations, rgb()/rgba(), hsl()/hsla(),
// named colors and "transparent". "currentcolor" resolves to black; use
// ParseColorWith to supply the element's color.
func ParseColor(raw string) (color.Color, error) {
	return ParseColorWith(raw, color.Black)
}

// ParseColorWith is ParseColor with "currentcolor" resolving to current.
func ParseColorWith(raw string, current color.Color) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	case s == "transparent":
		return Transparent, nil
	case s == "currentcolor":
		if current == nil {
			return color.Black, nil
		}
		return current, nil
	case s[0] == '#':
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
}

func parseHexColor(s string) (color.Color, error) {
	c, err := gg.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Color(), nil
}

// funcArgs splits the arguments of a CSS color function, accepting both the
// legacy comma syntax and the space syntax with an optional "/ alpha".
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	body := s[open+1 : len(s)-1]
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
	args := strings.Fields(body)
	if len(args) != 3 && len(args) != 4 {
		return nil, false
	}
	return args, true
}

func parseRGBFunc(s string) (color.Color, error) {
	args, ok := funcArgs(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]uint8
	for i := range 3 {
		v, ok := parseChannel(args[i], 255)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = uint8(math.Round(v))
	}
	a, ok := parseAlpha(args)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

func parseHSLFunc(s string) (color.Color, error) {
	args, ok := funcArgs(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	sat, ok1 := parseChannel(args[1], 1)
	light, ok2 := parseChannel(args[2], 1)
	a, ok3 := parseAlpha(args)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, sat, light).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// parseChannel parses a number or percentage, clamped to [0, max].
func parseChannel(arg string, max float64) (float64, bool) {
	pct := strings.HasSuffix(arg, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v / 100 * max
	}
	return math.Max(0, math.Min(max, v)), true
}

func parseAlpha(args []string) (uint8, bool) {
	if len(args) < 4 {
		return 255, true
	}
	v, ok := parseChannel(args[3], 1)
	if !ok {
		return 0, false
	}
	return uint8(math.Round(v * 255)), true
}

// isVisible reports whether painting with c would change any pixel.
func isVisible(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a != 0
}
