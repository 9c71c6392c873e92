package main

import (
	"github.com/spf13/cobra"

	"mircorpus/dataset"
)

func cmdDownload(cfg *Config) *cobra.Command {
	var (
		resources []string
		force     bool
		cleanup   bool
	)
	cmd := &cobra.Command{
		Use:   "download <dataset>",
		Short: "Fetch a dataset's remote resources into its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDataset(cfg, args[0])
			if err != nil {
				return err
			}

			opts := dataset.DownloadOptions{Force: force, Cleanup: cleanup}
			if len(resources) > 0 {
				opts.Resources = resources
			}
			return d.Download(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringSliceVar(&resources, "resource", nil,
		"fetch only the named resources (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "re-fetch files that are already present")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "remove archives once extracted")
	return cmd
}
