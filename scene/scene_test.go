package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/snapshot"
	"github.com/gogpu/snapshot/fonts"
)

const cardTOML = `
[root]
rect = [10, 20, 200, 100]
style = "background: #ffffff; border: 2px dashed red; border-radius: 8px; box-shadow: rgba(0, 0, 0, 0.25) 0px 4px 8px 0px; color: #333"
lang = "tr"

[[root.children]]
rect = [20, 30, 180, 24]
style = "font: bold 18px monospace; text-transform: uppercase"
text = [{ content = "istanbul", lines = [[20, 30, 180, 24]] }]

[[root.children]]
rect = [20, 60, 180, 24]
style = "font-size: 12px"
`

const cardYAML = `
root:
  rect: [10, 20, 200, 100]
  style: "background: #ffffff; border: 2px dashed red; border-radius: 8px; box-shadow: rgba(0, 0, 0, 0.25) 0px 4px 8px 0px; color: #333"
  lang: tr
  children:
    - rect: [20, 30, 180, 24]
      style: "font: bold 18px monospace; text-transform: uppercase"
      text:
        - content: istanbul
          lines: [[20, 30, 180, 24]]
    - rect: [20, 60, 180, 24]
      style: "font-size: 12px"
`

func TestParseFormats(t *testing.T) {
	for _, tc := range []struct {
		format Format
		data   string
	}{
		{FormatTOML, cardTOML},
		{FormatYAML, cardYAML},
	} {
		t.Run(tc.format.String(), func(t *testing.T) {
			s, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)

			root, err := s.Build()
			require.NoError(t, err)

			assert.Equal(t, snapshot.R(10, 20, 200, 100), root.Rect)
			assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBAModel.Convert(root.BackgroundColor))
			for side := snapshot.SideTop; side <= snapshot.SideLeft; side++ {
				b := root.Border(side)
				assert.Equal(t, 2.0, b.Width, side.String())
				assert.Equal(t, snapshot.BorderDashed, b.Style, side.String())
			}
			assert.Equal(t, snapshot.UniformRadius(8), root.Radius)
			require.Len(t, root.Shadows, 1)
			assert.Equal(t, 4.0, root.Shadows[0].OffsetY)

			require.Len(t, root.Children, 2)
			title := root.Children[0]
			require.Len(t, title.TextRuns, 1)
			run := title.TextRuns[0]
			assert.Equal(t, "İSTANBUL", run.Content, "lang inherited for text-transform")
			assert.Equal(t, 18.0, run.Font.Size)
			assert.True(t, run.Font.Weight.IsBold())
			assert.Equal(t, color.RGBA{0x33, 0x33, 0x33, 255}, color.RGBAModel.Convert(run.Color), "color inherited")
			assert.Equal(t, []snapshot.Rect{snapshot.R(20, 30, 180, 24)}, run.Lines)

			assert.Empty(t, root.Children[1].TextRuns)
		})
	}
}

func TestInheritance(t *testing.T) {
	s, err := Parse([]byte(cardTOML), FormatTOML)
	require.NoError(t, err)

	root := s.ComputedStyle(s.Root)
	assert.Equal(t, "#333", root.Get("color"))
	assert.Equal(t, "16px", root.Get("font-size"))
	assert.Equal(t, "sans-serif", root.Get("font-family"))
	assert.Equal(t, "tr", root.Get("lang"))
	assert.Empty(t, root.Get("text-transform"))

	small := s.ComputedStyle(s.Root.Children[1])
	assert.Equal(t, "12px", small.Get("font-size"))
	assert.Equal(t, "sans-serif", small.Get("font-family"), "family inherited next to own size")
	assert.Empty(t, small.Get("background-color"), "background is not inherited")
	assert.Equal(t, "#333", small.Get("color"))
}

func TestFontInheritance(t *testing.T) {
	const doc = `
[root]
rect = [0, 0, 200, 100]
style = "font: italic 20px/30px monospace"

[[root.children]]
rect = [0, 0, 200, 30]
style = "font-weight: bold"
text = [{ content = "bold", lines = [[0, 0, 200, 30]] }]

[[root.children]]
rect = [0, 30, 200, 30]
style = "font: 12px serif"
text = [{ content = "serif", lines = [[0, 30, 200, 30]] }]
`
	s, err := Parse([]byte(doc), FormatTOML)
	require.NoError(t, err)
	root, err := s.Build()
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	bold := root.Children[0].TextRuns[0].Font
	assert.Equal(t, fonts.Font{
		Style: fonts.StyleItalic, Weight: fonts.WeightBold, Size: 20, Families: []string{"monospace"},
	}, bold)
	assert.Equal(t, "30px", s.ComputedStyle(s.Root.Children[0]).Get("line-height"))

	serif := root.Children[1].TextRuns[0].Font
	assert.Equal(t, fonts.Font{
		Style: fonts.StyleNormal, Weight: fonts.WeightNormal, Size: 12, Families: []string{"serif"},
	}, serif, "own shorthand resets every part")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.yml")
	require.NoError(t, os.WriteFile(path, []byte(cardYAML), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Root.Children, 2)

	_, err = Load(filepath.Join(dir, "card.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("title = 'no root'"), FormatTOML)
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = Parse([]byte("root: [1, 2"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("[root]\nrect = [0, 0, 1, 1]"), Format(9))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml": FormatTOML,
		"b.YAML": FormatYAML,
		"c.yml":  FormatYAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("d.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSnapshotFromScene(t *testing.T) {
	s, err := Parse([]byte(cardTOML), FormatTOML)
	require.NoError(t, err)

	surface, err := snapshot.Capture[*Node](s, s.Root, snapshot.WithoutBlur())
	require.NoError(t, err)
	defer surface.Close()

	// Shadow 4px down grows the surface, nothing extends left or up.
	assert.Equal(t, 200, surface.Width)
	assert.Equal(t, 104, surface.Height)
	assert.Zero(t, surface.OriginOffsetX)
}
