package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/diversifier/internal/modules/diversification"
)

func newScoreCmd(root *rootOptions) *cobra.Command {
	var (
		file        string
		maxPosition float64
		lookThrough bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the diversification score of a positions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := loadPositions(file)
			if err != nil {
				return err
			}

			container, cfg, err := root.container(cmd)
			if err != nil {
				return err
			}

			threshold := cfg.MaxPositionPercent
			if cmd.Flags().Changed("max-position") {
				threshold = maxPosition
			}

			result, err := container.DiversificationService.ComputeScore(positions, diversification.Options{
				MaxPositionPercent: threshold,
				UseLookThrough:     lookThrough,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Positions file (YAML or JSON)")
	cmd.Flags().Float64Var(&maxPosition, "max-position", 10, "Concentration threshold in percent of portfolio value")
	cmd.Flags().BoolVar(&lookThrough, "look-through", false, "Score region and sector from decomposed index fund exposure")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
