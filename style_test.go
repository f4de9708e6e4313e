package snapshot

import (
	"image/color"
	"testing"
)

func TestParseShadowList(t *testing.T) {
	black := color.NRGBA{A: 255}
	tests := []struct {
		name string
		raw  string
		want []ShadowDescriptor
	}{
		{"none", "none", nil},
		{"empty", "  ", nil},
		{
			name: "computed form",
			raw:  "rgb(0, 0, 0) 5px 5px 10px 0px",
			want: []ShadowDescriptor{{Color: black, OffsetX: 5, OffsetY: 5, Blur: 10}},
		},
		{
			name: "spread defaults to zero",
			raw:  "#000 -5px -5px 8px",
			want: []ShadowDescriptor{{Color: black, OffsetX: -5, OffsetY: -5, Blur: 8}},
		},
		{
			name: "color last",
			raw:  "1px 2px 3px 4px black",
			want: []ShadowDescriptor{{Color: color.RGBA{A: 255}, OffsetX: 1, OffsetY: 2, Blur: 3, Spread: 4}},
		},
		{
			name: "commas inside rgba do not split",
			raw:  "rgba(0, 0, 0, 0.5) 0px 1px 2px 0px, rgba(255, 0, 0, 1) 3px 4px 5px 6px",
			want: []ShadowDescriptor{
				{Color: color.NRGBA{A: 128}, OffsetY: 1, Blur: 2},
				{Color: color.NRGBA{R: 255, A: 255}, OffsetX: 3, OffsetY: 4, Blur: 5, Spread: 6},
			},
		},
		{
			name: "malformed entry dropped",
			raw:  "rgb(0, 0, 0) 5px, #000 1px 1px 1px",
			want: []ShadowDescriptor{{Color: black, OffsetX: 1, OffsetY: 1, Blur: 1}},
		},
		{"inset dropped", "inset #000 1px 1px 1px", nil},
		{"unknown color", "notacolor 1px 1px 1px", nil},
		{"negative blur", "#000 1px 1px -1px", nil},
		{"unbalanced", "rgba(0, 0, 0 1px 1px 1px", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseShadowList(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseShadowList(%q) = %d shadows, want %d: %+v", tt.raw, len(got), len(tt.want), got)
			}
			for i := range got {
				if !sameShadow(got[i], tt.want[i]) {
					t.Errorf("shadow %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func sameShadow(a, b ShadowDescriptor) bool {
	if a.OffsetX != b.OffsetX || a.OffsetY != b.OffsetY || a.Blur != b.Blur || a.Spread != b.Spread {
		return false
	}
	return colorsEqual(a.Color, b.Color)
}

func colorsEqual(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestParseBorderRadius(t *testing.T) {
	tests := []struct {
		raw  string
		w, h float64
		want BorderRadius
	}{
		{"10px 5px", 100, 50, BorderRadius{
			Horizontal: [4]float64{10, 5, 10, 5},
			Vertical:   [4]float64{10, 5, 10, 5},
		}},
		{"4px", 100, 50, UniformRadius(4)},
		{"1px 2px 3px", 100, 50, BorderRadius{
			Horizontal: [4]float64{1, 2, 3, 2},
			Vertical:   [4]float64{1, 2, 3, 2},
		}},
		{"10% / 20%", 200, 50, BorderRadius{
			Horizontal: [4]float64{20, 20, 20, 20},
			Vertical:   [4]float64{10, 10, 10, 10},
		}},
		{"50%", 200, 100, BorderRadius{
			Horizontal: [4]float64{100, 100, 100, 100},
			Vertical:   [4]float64{50, 50, 50, 50},
		}},
		{"1px 2px 3px 4px / 5px 6px", 100, 100, BorderRadius{
			Horizontal: [4]float64{1, 2, 3, 4},
			Vertical:   [4]float64{5, 6, 5, 6},
		}},
		{"0", 100, 100, BorderRadius{}},
		{"", 100, 100, BorderRadius{}},
		{"abc", 100, 100, BorderRadius{}},
		{"1px 2px 3px 4px 5px", 100, 100, BorderRadius{}},
		{"-3px", 100, 100, BorderRadius{}},
		{"1px / junk", 100, 100, BorderRadius{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseBorderRadius(tt.raw, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("ParseBorderRadius(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBorderRadiusRoundTrip(t *testing.T) {
	in := "1px 2.5px 3px 4px / 5px 6px 7px 8.25px"
	r := ParseBorderRadius(in, 100, 100)
	if got := r.String(); got != in {
		t.Fatalf("String() = %q, want %q", got, in)
	}
	if again := ParseBorderRadius(r.String(), 100, 100); again != r {
		t.Errorf("round trip = %+v, want %+v", again, r)
	}
}

func TestBorderRadiusCorner(t *testing.T) {
	r := ParseBorderRadius("1px 2px 3px 4px / 5px 6px 7px 8px", 0, 0)
	want := []CornerRadius{{1, 5}, {2, 6}, {3, 7}, {4, 8}}
	for c := CornerTopLeft; c <= CornerBottomLeft; c++ {
		if got := r.Corner(c); got != want[c] {
			t.Errorf("Corner(%d) = %+v, want %+v", c, got, want[c])
		}
	}
	if r.IsZero() {
		t.Error("IsZero() = true for non-zero radius")
	}
	if !(BorderRadius{Horizontal: [4]float64{3, 3, 3, 3}}).IsZero() {
		t.Error("radius without vertical component should be zero")
	}
}

func TestParseBorderStyle(t *testing.T) {
	tests := map[string]BorderStyle{
		"solid":  BorderSolid,
		"DASHED": BorderDashed,
		"dotted": BorderDotted,
		"double": BorderSolid,
		"none":   BorderNone,
		"hidden": BorderNone,
		"":       BorderNone,
	}
	for raw, want := range tests {
		if got := ParseBorderStyle(raw); got != want {
			t.Errorf("ParseBorderStyle(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"5px", 5, true},
		{"-2.5px", -2.5, true},
		{"0", 0, true},
		{"3", 0, false},
		{"1em", 0, false},
		{"px", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLength(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBorderSideVisible(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	tests := []struct {
		side BorderSide
		want bool
	}{
		{BorderSide{Width: 1, Color: red, Style: BorderSolid}, true},
		{BorderSide{Width: 0, Color: red, Style: BorderSolid}, false},
		{BorderSide{Width: 1, Color: red, Style: BorderNone}, false},
		{BorderSide{Width: 1, Color: Transparent, Style: BorderSolid}, false},
		{BorderSide{Width: 1, Style: BorderSolid}, false},
	}
	for i, tt := range tests {
		if got := tt.side.Visible(); got != tt.want {
			t.Errorf("case %d: Visible() = %v, want %v", i, got, tt.want)
		}
	}
}
