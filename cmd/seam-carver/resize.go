package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seam-carver/internal/carve"
	"seam-carver/internal/pipeline"
)

type resizeFlags struct {
	reduce         int
	width          int
	height         int
	diagnosticsDir string
}

func newResizeCommand(a *app) *cobra.Command {
	var f resizeFlags

	cmd := &cobra.Command{
		Use:   "resize INPUT OUTPUT",
		Short: "Remove vertical seams until the image has the requested width",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := f.dimensions(cmd)
			if err != nil {
				return err
			}

			progress := func(done, total int) {
				if done == total || done%50 == 0 {
					a.log.Debug("CLI", "seams removed", map[string]interface{}{
						"done":  done,
						"total": total,
					})
				}
			}

			coord, err := a.coordinator(progress)
			if err != nil {
				return err
			}
			result, err := coord.Run(cmd.Context(), pipeline.Request{
				Input:          args[0],
				Output:         args[1],
				Dimensions:     dims,
				DiagnosticsDir: f.diagnosticsDir,
				Diagnostics:    a.diagnosticsOptions(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d -> %dx%d (%d seams, mean cost %.1f)\n",
				args[1], result.Report.StartWidth, result.Report.Height,
				result.Report.EndWidth, result.Report.Height,
				result.Report.Iterations(), result.Stats.Mean)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.reduce, "reduce", "n", 0, "number of columns to remove")
	fl.IntVarP(&f.width, "width", "w", 0, "target width in pixels")
	fl.IntVar(&f.height, "height", 0, "target height; must equal the source height")
	fl.StringVar(&f.diagnosticsDir, "diagnostics", "", "directory for gradient, cost and seam images of the input")
	fl.Int("jpeg-quality", 95, "JPEG output quality (1-100)")
	addDiagnosticsFlags(cmd)
	return cmd
}

func (f resizeFlags) dimensions(cmd *cobra.Command) (carve.Dimensions, error) {
	if err := exactlyOne(cmd, "reduce", "width"); err != nil {
		return nil, err
	}
	heightSet := cmd.Flags().Changed("height")

	if cmd.Flags().Changed("reduce") {
		if heightSet {
			return nil, fmt.Errorf("--height can only be combined with --width")
		}
		return carve.Relative{DX: -f.reduce}, nil
	}
	if heightSet {
		return carve.Absolute{Width: f.width, Height: f.height}, nil
	}
	return carve.TargetWidth(f.width), nil
}
