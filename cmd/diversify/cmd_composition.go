package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompositionCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "composition <identifier>",
		Short: "Show the registry breakdown of an index fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, _, err := root.container(cmd)
			if err != nil {
				return err
			}
			entry, ok := container.DiversificationService.Composition(args[0])
			if !ok {
				return fmt.Errorf("no composition data for %s", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), entry)
		},
	}
}
