package main

import (
	"fmt"

	"github.com/chazu/potter/internal/config"
	"github.com/spf13/cobra"
)

func newProfileCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [design]",
		Short: "Print the resampled wall profile",
		Long: `Print one row per profile sample: the outer radius and height, and the
inner wall radius and height when the vessel has wall thickness.
Heights are measured from the top of the foot.`,
		Args: cobra.ExactArgs(1),
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

		out := cmd.OutOrStdout()
		inner := res.InnerProfile
		if len(inner) == len(res.Profile) {
			fmt.Fprintln(out, "#\touter_r\touter_h\tinner_r\tinner_h")
		} else {
			inner = nil
			fmt.Fprintln(out, "#\touter_r\touter_h")
		}
		for i, p := range res.Profile {
			if inner != nil {
				fmt.Fprintf(out, "%d\t%.4f\t%.4f\t%.4f\t%.4f\n", i, p.X, p.Y, inner[i].X, inner[i].Y)
				continue
			}
			fmt.Fprintf(out, "%d\t%.4f\t%.4f\n", i, p.X, p.Y)
		}
		return nil
	}
	return cmd
}
