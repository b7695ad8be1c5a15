package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDiagnoseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose INPUT DIR",
		Short: "Write gradient, cost and first-seam images for INPUT into DIR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := a.coordinator(nil)
			if err != nil {
				return err
			}
			if err := coord.Diagnose(args[0], args[1], a.diagnosticsOptions()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "diagnostics written to %s\n", args[1])
			return nil
		},
	}
	addDiagnosticsFlags(cmd)
	return cmd
}
