package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/diversifier/internal/domain"
)

func newLookThroughCmd(root *rootOptions) *cobra.Command {
	var (
		file  string
		total float64
	)

	cmd := &cobra.Command{
		Use:   "look-through",
		Short: "Decompose index funds into geographic and sectoral exposure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := loadPositions(file)
			if err != nil {
				return err
			}

			container, _, err := root.container(cmd)
			if err != nil {
				return err
			}

			portfolioValue := domain.TotalMarketValue(positions)
			if cmd.Flags().Changed("total") {
				portfolioValue = total
			}

			result, err := container.DiversificationService.DecomposeLookThrough(positions, portfolioValue)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Positions file (YAML or JSON)")
	cmd.Flags().Float64Var(&total, "total", 0, "Portfolio value used for coverage (default: sum of positions)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
