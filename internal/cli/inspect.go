package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/snapshot"
	"github.com/gogpu/snapshot/fonts"
	"github.com/gogpu/snapshot/scene"
)

func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Print the geometry and draw calls of a scene",
		Long: `Inspect measures a scene file and prints the surface geometry followed by
every draw call the compositor would issue, in paint order. Nothing is
rasterized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0])
		},
	}
	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	root, err := s.Build()
	if err != nil {
		return err
	}
	g, err := snapshot.Measure(root)
	if err != nil {
		return err
	}

	rec := snapshot.NewRecorder(fonts.DefaultRegistry().Measure)
	if err := snapshot.Render(root, rec, g); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "geometry %s\n", g)
	for i, command := range rec.Commands() {
		fmt.Fprintf(w, "%4d %s\n", i, command)
	}
	loggerFromContext(cmd.Context()).Debug("inspected", "path", path, "commands", rec.Len())
	return nil
}
