package main

import (
	"fmt"

	"github.com/chazu/potter/internal/config"
	"github.com/spf13/cobra"
)

func newInfoCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [design]",
		Short: "Display mesh statistics for a design",
		Long:  "Generate the mesh in memory and show its size, closure, bounding box, volume and any geometry warnings.",
		Args:  cobra.ExactArgs(1),
	}
	flags := config.BindFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		_, app, err := g.setup(flags)
		if err != nil {
			return err
		}
		d, err := app.Load(args[0])
		if err != nil {
			return err
		}
		res, err := app.Build(d)
		if err != nil {
			return err
		}

		m := res.Mesh
		edges := m.Edges()
		min, max := m.BoundingBox()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Vessel Mesh Information")
		fmt.Fprintln(out, "=======================")
		fmt.Fprintf(out, "Name: %s\n", d.Name)
		fmt.Fprintf(out, "File: %s\n\n", args[0])

		fmt.Fprintln(out, "Mesh Statistics:")
		fmt.Fprintf(out, "  Vertices: %d\n", m.VertexCount())
		fmt.Fprintf(out, "  Triangles: %d\n", m.TriangleCount())
		fmt.Fprintf(out, "  Watertight: %s\n", yesNo(edges.Watertight()))
		fmt.Fprintf(out, "  Boundary Edges: %d\n", edges.Boundary)
		fmt.Fprintf(out, "  Surface Area: %.6f mm²\n", m.SurfaceArea())
		fmt.Fprintf(out, "  Volume: %.6f mm³\n\n", m.Volume())

		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: (%.6f, %.6f, %.6f)\n", min[0], min[1], min[2])
		fmt.Fprintf(out, "  Max: (%.6f, %.6f, %.6f)\n\n", max[0], max[1], max[2])

		fmt.Fprintf(out, "Warnings: %d\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  %s\n", w.Error())
		}
		return nil
	}
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
