package snapshot

import (
	"errors"
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/snapshot/fonts"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func render(t *testing.T, root *StyledBox) []Command {
	t.Helper()
	g, err := Measure(root)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	rec := NewRecorder(func(s string, _ fonts.Font) float64 { return monoMeasure(s) })
	if err := Render(root, rec, g); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return rec.Commands()
}

func commandTypes(cmds []Command) []CommandType {
	out := make([]CommandType, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type()
	}
	return out
}

func TestRenderPaintOrder(t *testing.T) {
	solid := BorderSide{Width: 2, Color: blue, Style: BorderSolid}
	root := &StyledBox{
		Rect:            R(0, 0, 100, 50),
		BackgroundColor: red,
		Shadows:         []ShadowDescriptor{{Color: green, OffsetX: 2, OffsetY: 2, Blur: 4}},
		Borders:         [4]BorderSide{SideTop: solid},
		TextRuns: []TextRun{{
			Content: "hi",
			Lines:   []Rect{R(0, 0, 100, 20)},
			Font:    fonts.Default(),
			Color:   color.Black,
		}},
		Children: []*StyledBox{{Rect: R(10, 10, 20, 20), BackgroundColor: blue}},
	}
	got := commandTypes(render(t, root))
	want := []CommandType{
		CmdFillRoundedRect, // shadow
		CmdFillRoundedRect, // background
		CmdStrokeLine,      // top border
		CmdFillText,
		CmdFillRoundedRect, // child background
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paint order = %v, want %v", got, want)
	}
}

func TestRenderShadowsReverseOrder(t *testing.T) {
	a := ShadowDescriptor{Color: red, OffsetX: 1, OffsetY: 1, Blur: 2}
	b := ShadowDescriptor{Color: green, OffsetX: 3, OffsetY: 3, Blur: 6, Spread: 1}
	root := &StyledBox{Rect: R(0, 0, 40, 40), Shadows: []ShadowDescriptor{a, b}}
	cmds := render(t, root)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	first := cmds[0].(FillRoundedRectCommand)
	second := cmds[1].(FillRoundedRectCommand)
	if !colorsEqual(first.Color, green) || !colorsEqual(second.Color, red) {
		t.Errorf("shadow order = %v, %v; want B then A", first, second)
	}
	if want := R(2, 2, 42, 42); first.Rect != want {
		t.Errorf("B rect = %v, want %v", first.Rect, want)
	}
	if first.Blur != 6 {
		t.Errorf("B blur = %g, want 6", first.Blur)
	}
	if root.Shadows[0] != a || root.Shadows[1] != b {
		t.Error("Render reordered the shadow slice")
	}
}

func TestRenderShadowOrigin(t *testing.T) {
	root := &StyledBox{
		Rect:            R(100, 200, 100, 50),
		BackgroundColor: red,
		Shadows:         []ShadowDescriptor{{Color: green, OffsetX: -5, OffsetY: -5, Blur: 8, Spread: 2}},
	}
	cmds := render(t, root)
	shadow := cmds[0].(FillRoundedRectCommand)
	bg := cmds[1].(FillRoundedRectCommand)
	if want := R(0, 0, 104, 54); shadow.Rect != want {
		t.Errorf("shadow rect = %v, want %v", shadow.Rect, want)
	}
	if want := R(7, 7, 100, 50); bg.Rect != want {
		t.Errorf("background rect = %v, want %v", bg.Rect, want)
	}
}

func TestRenderChildCoordinates(t *testing.T) {
	root := &StyledBox{
		Rect:         R(50, 60, 200, 100),
		OutlineWidth: 3,
		OutlineStyle: BorderSolid,
		OutlineColor: red,
		Children: []*StyledBox{{
			Rect:            R(70, 90, 20, 10),
			BackgroundColor: blue,
			Children: []*StyledBox{{
				Rect:            R(75, 95, 5, 5),
				BackgroundColor: green,
			}},
		}},
	}
	cmds := render(t, root)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2: %v", len(cmds), cmds)
	}
	// surface = box - root + origin, origin (3, 3) from the outline.
	if want := R(23, 33, 20, 10); cmds[0].(FillRoundedRectCommand).Rect != want {
		t.Errorf("child rect = %v, want %v", cmds[0].(FillRoundedRectCommand).Rect, want)
	}
	if want := R(28, 38, 5, 5); cmds[1].(FillRoundedRectCommand).Rect != want {
		t.Errorf("grandchild rect = %v, want %v", cmds[1].(FillRoundedRectCommand).Rect, want)
	}
}

func TestRenderBackgroundSkips(t *testing.T) {
	tests := []struct {
		name string
		box  *StyledBox
	}{
		{"nil color", &StyledBox{Rect: R(0, 0, 10, 10)}},
		{"transparent", &StyledBox{Rect: R(0, 0, 10, 10), BackgroundColor: Transparent}},
		{"rgba zero", &StyledBox{Rect: R(0, 0, 10, 10), BackgroundColor: color.NRGBA{R: 255}}},
		{"gradient", &StyledBox{
			Rect:            R(0, 0, 10, 10),
			BackgroundColor: red,
			BackgroundImage: "linear-gradient(red, blue)",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cmds := render(t, tt.box); len(cmds) != 0 {
				t.Errorf("got %v, want no commands", cmds)
			}
		})
	}
}

func TestRenderBorders(t *testing.T) {
	side := func(style BorderStyle) BorderSide {
		return BorderSide{Width: 4, Color: blue, Style: style}
	}
	root := &StyledBox{
		Rect: R(0, 0, 100, 50),
		Borders: [4]BorderSide{
			SideTop:    side(BorderSolid),
			SideRight:  side(BorderDashed),
			SideBottom: side(BorderDotted),
			SideLeft:   side(BorderNone),
		},
	}
	cmds := render(t, root)
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %v", len(cmds), cmds)
	}
	want := []StrokeLineCommand{
		{X0: 0, Y0: 2, X1: 100, Y1: 2, Style: LineStyle{Width: 4, Color: blue}},
		{X0: 98, Y0: 0, X1: 98, Y1: 50, Style: LineStyle{Width: 4, Color: blue, Dash: []float64{8, 4}}},
		{X0: 100, Y0: 48, X1: 0, Y1: 48, Style: LineStyle{Width: 4, Color: blue, Dash: []float64{8, 4}}},
	}
	for i, c := range cmds {
		if got := c.(StrokeLineCommand); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("border %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestRenderBordersWithRadius(t *testing.T) {
	solid := BorderSide{Width: 2, Color: red, Style: BorderSolid}
	root := &StyledBox{
		Rect:    R(0, 0, 100, 50),
		Radius:  ParseBorderRadius("10px 5px", 100, 50),
		Borders: [4]BorderSide{solid, solid, solid, solid},
	}
	cmds := render(t, root)
	var lines []StrokeLineCommand
	var arcs []StrokeArcCommand
	for _, c := range cmds {
		switch c := c.(type) {
		case StrokeLineCommand:
			lines = append(lines, c)
		case StrokeArcCommand:
			arcs = append(arcs, c)
		}
	}
	if len(lines) != 4 || len(arcs) != 4 {
		t.Fatalf("got %d lines and %d arcs, want 4 and 4", len(lines), len(arcs))
	}
	top := lines[0]
	if top.X0 != 10 || top.X1 != 95 || top.Y0 != 1 {
		t.Errorf("top border = %v, want (10,1)-(95,1)", top)
	}
	left := lines[3]
	if left.X0 != 1 || left.Y0 != 45 || left.Y1 != 10 {
		t.Errorf("left border = %v, want (1,45)-(1,10)", left)
	}
	tl := arcs[0]
	if tl.CX != 10 || tl.CY != 10 || tl.RX != 9 || tl.RY != 9 {
		t.Errorf("top-left arc = %v, want center (10,10) radii 9x9", tl)
	}
	if tl.A0 != math.Pi || tl.A1 != 1.5*math.Pi {
		t.Errorf("top-left arc angles = %g..%g", tl.A0, tl.A1)
	}
}

func TestRenderPillBorder(t *testing.T) {
	solid := BorderSide{Width: 2, Color: red, Style: BorderSolid}
	root := &StyledBox{
		Rect:            R(0, 0, 100, 40),
		BackgroundColor: green,
		Radius:          ParseBorderRadius("9999px", 100, 40),
		Borders:         [4]BorderSide{solid, solid, solid, solid},
	}
	var lines []StrokeLineCommand
	var arcs []StrokeArcCommand
	for _, c := range render(t, root) {
		switch c := c.(type) {
		case StrokeLineCommand:
			lines = append(lines, c)
		case StrokeArcCommand:
			arcs = append(arcs, c)
		}
	}
	if len(lines) != 4 || len(arcs) != 4 {
		t.Fatalf("got %d lines and %d arcs, want 4 and 4", len(lines), len(arcs))
	}
	top := lines[0]
	if !near(top.X0, 20) || !near(top.X1, 80) || top.Y0 != 1 {
		t.Errorf("top border = %v, want (20,1)-(80,1)", top)
	}
	bottom := lines[2]
	if !near(bottom.X0, 80) || !near(bottom.X1, 20) || bottom.Y0 != 39 {
		t.Errorf("bottom border = %v, want (80,39)-(20,39)", bottom)
	}
	wantCenters := [4][2]float64{{20, 20}, {80, 20}, {80, 20}, {20, 20}}
	for i, a := range arcs {
		if !near(a.RX, 19) || !near(a.RY, 19) {
			t.Errorf("arc %d radii = %gx%g, want 19x19", i, a.RX, a.RY)
		}
		if !near(a.CX, wantCenters[i][0]) || !near(a.CY, wantCenters[i][1]) {
			t.Errorf("arc %d center = (%g,%g), want (%g,%g)", i, a.CX, a.CY, wantCenters[i][0], wantCenters[i][1])
		}
	}
}

func TestRenderCornerNeedsMatchingSides(t *testing.T) {
	root := &StyledBox{
		Rect:   R(0, 0, 100, 50),
		Radius: UniformRadius(10),
		Borders: [4]BorderSide{
			SideTop:  {Width: 2, Color: red, Style: BorderSolid},
			SideLeft: {Width: 2, Color: blue, Style: BorderSolid},
		},
	}
	for _, c := range render(t, root) {
		if c.Type() == CmdStrokeArc {
			t.Errorf("unexpected arc %v between differing sides", c)
		}
	}
}

func TestRenderText(t *testing.T) {
	f := fonts.Font{Size: 10, Weight: fonts.WeightNormal, Families: []string{"sans-serif"}}
	root := &StyledBox{
		Rect: R(100, 100, 60, 40),
		TextRuns: []TextRun{{
			Content: "ab cd ef gh",
			Lines:   []Rect{R(100, 100, 60, 20), R(100, 120, 60, 20)},
			Font:    f,
			Color:   red,
		}},
	}
	cmds := render(t, root)
	want := []FillTextCommand{
		{Text: "ab cd", X: 0, Y: 10, Font: f, Color: red},
		{Text: "ef gh", X: 0, Y: 30, Font: f, Color: red},
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %v, want %d text commands", cmds, len(want))
	}
	for i, c := range cmds {
		if got := c.(FillTextCommand); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("line %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestRenderErrors(t *testing.T) {
	rec := NewRecorder(nil)
	if err := Render(nil, rec, Geometry{}); !errors.Is(err, ErrNilRoot) {
		t.Errorf("Render(nil) = %v, want ErrNilRoot", err)
	}
	bad := &StyledBox{Rect: R(0, 0, 10, 10), Children: []*StyledBox{{Rect: R(0, 0, -5, 5)}}}
	if err := Render(bad, rec, Geometry{Width: 10, Height: 10}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Render(bad) = %v, want ErrInvalidGeometry", err)
	}
	if rec.Len() != 0 {
		t.Errorf("recorded %d commands for invalid tree", rec.Len())
	}
}

func TestRecorderPlayback(t *testing.T) {
	root := &StyledBox{
		Rect:            R(0, 0, 10, 10),
		BackgroundColor: red,
		Borders:         [4]BorderSide{SideBottom: {Width: 1, Color: blue, Style: BorderDashed}},
	}
	src := NewRecorder(nil)
	if err := Render(root, src, Geometry{Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	dst := NewRecorder(nil)
	src.Playback(dst)
	if !reflect.DeepEqual(src.Commands(), dst.Commands()) {
		t.Errorf("playback = %v, want %v", dst.Commands(), src.Commands())
	}
	src.Reset()
	if src.Len() != 0 {
		t.Errorf("Len after Reset = %d", src.Len())
	}
}
