package main

import (
	"github.com/spf13/cobra"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "classify <identifier>",
		Short: "Show the classification of an identifier and how it was resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, _, err := root.container(cmd)
			if err != nil {
				return err
			}
			resolution := container.DiversificationService.ExplainClassification(args[0], name)
			return writeJSON(cmd.OutOrStdout(), resolution)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name used by the keyword heuristic")

	return cmd
}
