package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mircorpus/dataset"
)

func cmdList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bundled dataset loaders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dataset.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
