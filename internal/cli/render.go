package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/snapshot"
	"github.com/gogpu/snapshot/fonts"
	"github.com/gogpu/snapshot/scene"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output     string   // PNG path, "-" for stdout
	fonts      []string // family[:bold][:italic]=path
	background string   // surface fill color
	noBlur     bool     // paint shadows with sharp edges
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene file to PNG",
		Long: `Render paints a TOML or YAML scene file into a PNG image.

The image grows to include shadows and outlines that extend past the root
box, so it can be larger than the root rect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				opts.output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: scene name with .png, - for stdout)")
	cmd.Flags().StringArrayVar(&opts.fonts, "font", nil, "register a font file as family[:bold][:italic]=path (repeatable)")
	cmd.Flags().StringVar(&opts.background, "background", "", "fill the image with this CSS color before painting")
	cmd.Flags().BoolVar(&opts.noBlur, "no-blur", false, "paint shadows without blur")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	snapOpts, err := snapshotOptions(opts)
	if err != nil {
		return err
	}

	surface, err := snapshot.Capture[*scene.Node](s, s.Root, snapOpts...)
	if err != nil {
		return err
	}
	defer surface.Close()

	if opts.output == "-" {
		if err := surface.EncodePNG(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else if err := surface.SavePNG(opts.output); err != nil {
		return err
	}
	logger.Debug("surface", "width", surface.Width, "height", surface.Height,
		"originX", surface.OriginOffsetX, "originY", surface.OriginOffsetY)
	prog.done(fmt.Sprintf("Rendered %s", opts.output))
	return nil
}

// snapshotOptions converts command flags into compositor options.
func snapshotOptions(opts renderOpts) ([]snapshot.Option, error) {
	var out []snapshot.Option
	if len(opts.fonts) > 0 {
		reg, err := loadFonts(opts.fonts)
		if err != nil {
			return nil, err
		}
		out = append(out, snapshot.WithFonts(reg))
	}
	if opts.background != "" {
		bg, err := snapshot.ParseColor(opts.background)
		if err != nil {
			return nil, fmt.Errorf("--background: %w", err)
		}
		out = append(out, snapshot.WithBackground(bg))
	}
	if opts.noBlur {
		out = append(out, snapshot.WithoutBlur())
	}
	return out, nil
}

// fontSpec is a parsed --font flag.
type fontSpec struct {
	family string
	style  fonts.Style
	weight fonts.Weight
	path   string
}

var errFontFlag = errors.New("invalid --font value")

// parseFontFlag parses family[:bold][:italic]=path.
func parseFontFlag(v string) (fontSpec, error) {
	name, path, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return fontSpec{}, fmt.Errorf("%w %q: want family=path", errFontFlag, v)
	}
	parts := strings.Split(name, ":")
	spec := fontSpec{
		family: strings.TrimSpace(parts[0]),
		style:  fonts.StyleNormal,
		weight: fonts.WeightNormal,
		path:   strings.TrimSpace(path),
	}
	if spec.family == "" {
		return fontSpec{}, fmt.Errorf("%w %q: empty family", errFontFlag, v)
	}
	for _, p := range parts[1:] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "bold":
			spec.weight = fonts.WeightBold
		case "italic":
			spec.style = fonts.StyleItalic
		default:
			return fontSpec{}, fmt.Errorf("%w %q: unknown variant %q", errFontFlag, v, p)
		}
	}
	return spec, nil
}

func loadFonts(flags []string) (*fonts.Registry, error) {
	reg := fonts.NewRegistry()
	for _, f := range flags {
		spec, err := parseFontFlag(f)
		if err != nil {
			return nil, err
		}
		// #nosec G304 -- font path is provided by the user
		data, err := os.ReadFile(spec.path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		if err := reg.Register(spec.family, spec.style, spec.weight, data); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
