package main

import (
	"path/filepath"

	"github.com/chazu/potter/internal/config"
	"github.com/chazu/potter/internal/logger"
	"github.com/chazu/potter/pkg/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate [design]",
		Short: "Generate an STL mesh from a design file",
		Long: `Generate reads a .yaml, .yml, .zy or .lisp design and writes its mesh as STL.
Without -o the file is named after the design and written to the configured
output directory.`,
		Args: cobra.ExactArgs(1),
	}
	flags := config.BindFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output STL path")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, app, err := g.setup(flags)
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

		path := output
		if path == "" {
			path = filepath.Join(cfg.Export.OutputDir, d.Name+".stl")
		}
		if cfg.Export.ASCII {
			err = export.SaveASCII(path, res.Mesh)
		} else {
			err = export.Save(path, res.Mesh)
		}
		if err != nil {
			return err
		}
		logger.Info("wrote mesh",
			zap.String("path", path),
			zap.Int("triangles", res.Mesh.TriangleCount()),
			zap.Int("warnings", len(res.Warnings)))
		return nil
	}
	return cmd
}
